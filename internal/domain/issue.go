// Package domain contains core business entities and interfaces.
package domain

// Issue is a ticket fetched from the tracking server.
// Fields holds the decoded field bag as returned by the server; numbers are kept as json.Number.
type Issue struct {
	Fields map[string]any
	ID     string
	Key    string
	Self   string
	Links  []IssueLink
}

// LinkType describes the relationship carried by a link in both directions.
type LinkType struct {
	Name    string
	Inward  string // Verb seen from the inward issue (e.g. "is blocked by")
	Outward string // Verb seen from the outward issue (e.g. "blocks")
}

// IssueLink is a typed link between the issue and another one.
// At most one of InwardIssue and OutwardIssue is normally set; both are nil
// when the linked issue could not be resolved (deleted or not visible).
type IssueLink struct {
	InwardIssue  *LinkedIssue
	OutwardIssue *LinkedIssue
	Type         LinkType
	ID           string
}

// LinkedIssue is the reference to the other end of a link.
type LinkedIssue struct {
	Key     string
	Summary string
}

// Summary returns the issue's display text.
func (i Issue) Summary() (string, error) {
	v, err := summaryAccessor(i)
	if err != nil {
		return "", err
	}
	return FormatValue(v), nil
}

var summaryAccessor = mustCompileAccessor("summary")
