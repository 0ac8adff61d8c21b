package domain

import "errors"

// Domain errors.
var (
	ErrFieldNotFound         = errors.New("field not found")
	ErrMalformedLabel        = errors.New("malformed label")
	ErrInvalidFieldPath      = errors.New("invalid field path")
	ErrEmptyDefinition       = errors.New("report definition has no tables")
	ErrEmptyReportName       = errors.New("report name cannot be empty")
	ErrUnknownStyle          = errors.New("unknown table style")
	ErrMissingJQL            = errors.New("table has no JQL query")
	ErrMissingLinkType       = errors.New("LinkOneTicket table has no link attribute")
	ErrNoColumns             = errors.New("table has no columns")
	ErrUnsupportedFormat     = errors.New("unsupported definition format")
	ErrIssueNotFound         = errors.New("issue not found")
	ErrMissingCredentials    = errors.New("jira credentials not configured")
	ErrMissingServer         = errors.New("jira server not configured (set [jira].server)")
	ErrTemplateTableNotFound = errors.New("no template table matches keyword")
	ErrTemplateRowTruncated  = errors.New("template row has fewer cells than the table has columns")
	ErrTableNotFound         = errors.New("table not found in report definition")
	ErrConfigExists          = errors.New("config file already exists")
	ErrNoOutputFormat        = errors.New("no output format selected")
	ErrConfigNil             = errors.New("config is nil")
)
