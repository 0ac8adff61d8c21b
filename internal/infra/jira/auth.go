package jira

import (
	"encoding/base64"
	"net/http"
)

// Authenticator signs outgoing requests.
type Authenticator interface {
	Apply(req *http.Request)
}

// BasicAuth authenticates with a user name and an API token or password.
type BasicAuth struct {
	Username string
	Password string
}

// Apply implements Authenticator.
func (a BasicAuth) Apply(req *http.Request) {
	creds := base64.StdEncoding.EncodeToString([]byte(a.Username + ":" + a.Password))
	req.Header.Set("Authorization", "Basic "+creds)
}

// BearerToken authenticates with a personal access token.
type BearerToken struct {
	Token string
}

// Apply implements Authenticator.
func (a BearerToken) Apply(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+a.Token)
}
