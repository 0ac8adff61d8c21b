package jira

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/runoshun/jira-reports/internal/domain"
)

// Ensure Searcher implements domain.IssueSearcher.
var _ domain.IssueSearcher = (*Searcher)(nil)

// Searcher runs JQL searches against a Jira server or Jira Cloud.
type Searcher struct {
	client   *Client
	api      string
	pageSize int
}

// NewSearcher creates a Searcher on top of client.
// api selects the search endpoint (domain.APIServer or domain.APICloud).
func NewSearcher(client *Client, api string, pageSize int) *Searcher {
	if pageSize <= 0 || pageSize > domain.MaxPageSize {
		pageSize = domain.DefaultPageSize
	}
	if api == "" {
		api = domain.APIServer
	}
	return &Searcher{client: client, api: api, pageSize: pageSize}
}

// NewSearcherFromConfig builds a Searcher from the [jira] section.
// getenv reads the token from the environment variable named by token_env.
func NewSearcherFromConfig(cfg domain.JiraConfig, getenv func(string) string, transport http.RoundTripper) (*Searcher, error) {
	if strings.TrimSpace(cfg.Server) == "" {
		return nil, domain.ErrMissingServer
	}
	tokenEnv := cfg.TokenEnv
	if tokenEnv == "" {
		tokenEnv = domain.DefaultTokenEnv
	}
	token := getenv(tokenEnv)
	if token == "" {
		return nil, fmt.Errorf("%w: environment variable %s is empty", domain.ErrMissingCredentials, tokenEnv)
	}

	var auth Authenticator
	switch cfg.Auth {
	case domain.AuthBearer:
		auth = BearerToken{Token: token}
	default:
		if cfg.User == "" {
			return nil, fmt.Errorf("%w: [jira].user is required for basic auth", domain.ErrMissingCredentials)
		}
		auth = BasicAuth{Username: cfg.User, Password: token}
	}

	client := NewClient(ClientConfig{
		BaseURL:    cfg.Server,
		Auth:       auth,
		Transport:  transport,
		Timeout:    cfg.TimeoutDuration(),
		RateLimit:  cfg.RateLimit,
		RateBurst:  cfg.Burst,
		MaxRetries: cfg.MaxRetries,
	})
	return NewSearcher(client, cfg.API, cfg.PageSize), nil
}

// Search returns the issues matching jql, paging until the results are exhausted
// or limit issues have been collected. A limit of 0 fetches every match.
func (s *Searcher) Search(ctx context.Context, jql string, limit int) ([]domain.Issue, error) {
	var (
		issues []domain.Issue
		err    error
	)
	if s.api == domain.APICloud {
		issues, err = s.searchCloud(ctx, jql, limit)
	} else {
		issues, err = s.searchServer(ctx, jql, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", jql, err)
	}
	return issues, nil
}

// serverSearchResponse is the /rest/api/2/search payload.
type serverSearchResponse struct {
	Issues     []issueDTO `json:"issues"`
	StartAt    int        `json:"startAt"`
	MaxResults int        `json:"maxResults"`
	Total      int        `json:"total"`
}

func (s *Searcher) searchServer(ctx context.Context, jql string, limit int) ([]domain.Issue, error) {
	var all []domain.Issue
	startAt := 0
	for {
		query := url.Values{}
		query.Set("jql", jql)
		query.Set("startAt", strconv.Itoa(startAt))
		query.Set("maxResults", strconv.Itoa(s.batchSize(limit, len(all))))
		query.Set("fields", "*all")

		body, err := s.client.Get(ctx, "/rest/api/2/search", query)
		if err != nil {
			return nil, err
		}
		var page serverSearchResponse
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("decode search response: %w", err)
		}
		issues, err := mapIssues(page.Issues)
		if err != nil {
			return nil, err
		}
		all = append(all, issues...)

		startAt += len(page.Issues)
		if len(page.Issues) == 0 || startAt >= page.Total || reached(limit, len(all)) {
			return truncate(all, limit), nil
		}
	}
}

// cloudSearchRequest is the /rest/api/3/search/jql request body.
type cloudSearchRequest struct {
	JQL           string   `json:"jql"`
	NextPageToken string   `json:"nextPageToken,omitempty"`
	Fields        []string `json:"fields"`
	MaxResults    int      `json:"maxResults"`
}

// cloudSearchResponse is the /rest/api/3/search/jql payload.
type cloudSearchResponse struct {
	NextPageToken string     `json:"nextPageToken"`
	Issues        []issueDTO `json:"issues"`
	IsLast        bool       `json:"isLast"`
}

func (s *Searcher) searchCloud(ctx context.Context, jql string, limit int) ([]domain.Issue, error) {
	var all []domain.Issue
	token := ""
	for {
		req := cloudSearchRequest{
			JQL:           jql,
			NextPageToken: token,
			Fields:        []string{"*all"},
			MaxResults:    s.batchSize(limit, len(all)),
		}
		body, err := s.client.Post(ctx, "/rest/api/3/search/jql", req)
		if err != nil {
			return nil, err
		}
		var page cloudSearchResponse
		if err := json.Unmarshal(body, &page); err != nil {
			return nil, fmt.Errorf("decode search response: %w", err)
		}
		issues, err := mapIssues(page.Issues)
		if err != nil {
			return nil, err
		}
		all = append(all, issues...)

		token = page.NextPageToken
		if page.IsLast || token == "" || len(page.Issues) == 0 || reached(limit, len(all)) {
			return truncate(all, limit), nil
		}
	}
}

// GetIssue fetches a single issue with all of its fields.
func (s *Searcher) GetIssue(ctx context.Context, key string) (*domain.Issue, error) {
	version := "2"
	if s.api == domain.APICloud {
		version = "3"
	}
	query := url.Values{}
	query.Set("fields", "*all")

	body, err := s.client.Get(ctx, "/rest/api/"+version+"/issue/"+url.PathEscape(key), query)
	if err != nil {
		var httpErr *HTTPError
		if errors.As(err, &httpErr) && httpErr.IsNotFound() {
			return nil, fmt.Errorf("%w: %s", domain.ErrIssueNotFound, key)
		}
		return nil, fmt.Errorf("get issue %s: %w", key, err)
	}

	var dto issueDTO
	if err := json.Unmarshal(body, &dto); err != nil {
		return nil, fmt.Errorf("decode issue %s: %w", key, err)
	}
	issue, err := mapIssue(dto)
	if err != nil {
		return nil, err
	}
	return &issue, nil
}

func (s *Searcher) batchSize(limit, fetched int) int {
	if limit > 0 && limit-fetched < s.pageSize {
		return limit - fetched
	}
	return s.pageSize
}

func reached(limit, fetched int) bool {
	return limit > 0 && fetched >= limit
}

func truncate(issues []domain.Issue, limit int) []domain.Issue {
	if limit > 0 && len(issues) > limit {
		return issues[:limit]
	}
	if issues == nil {
		return []domain.Issue{}
	}
	return issues
}
