package jira

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/runoshun/jira-reports/internal/domain"
)

// issueDTO is an issue as returned by the REST API.
type issueDTO struct {
	ID     string          `json:"id"`
	Key    string          `json:"key"`
	Self   string          `json:"self"`
	Fields json.RawMessage `json:"fields"`
}

type linkFieldsDTO struct {
	IssueLinks []linkDTO `json:"issuelinks"`
}

type linkDTO struct {
	InwardIssue  *linkedIssueDTO `json:"inwardIssue"`
	OutwardIssue *linkedIssueDTO `json:"outwardIssue"`
	Type         linkTypeDTO     `json:"type"`
	ID           string          `json:"id"`
}

type linkTypeDTO struct {
	Name    string `json:"name"`
	Inward  string `json:"inward"`
	Outward string `json:"outward"`
}

type linkedIssueDTO struct {
	Key    string `json:"key"`
	Fields struct {
		Summary string `json:"summary"`
	} `json:"fields"`
}

// mapIssue converts an API issue into a domain issue.
// Field values are decoded with json.Number so that numbers keep their text form.
func mapIssue(dto issueDTO) (domain.Issue, error) {
	issue := domain.Issue{
		ID:     dto.ID,
		Key:    dto.Key,
		Self:   dto.Self,
		Fields: map[string]any{},
	}
	if len(dto.Fields) == 0 || string(dto.Fields) == "null" {
		return issue, nil
	}

	dec := json.NewDecoder(bytes.NewReader(dto.Fields))
	dec.UseNumber()
	if err := dec.Decode(&issue.Fields); err != nil {
		return domain.Issue{}, fmt.Errorf("decode fields of %s: %w", dto.Key, err)
	}

	var links linkFieldsDTO
	if err := json.Unmarshal(dto.Fields, &links); err != nil {
		return domain.Issue{}, fmt.Errorf("decode links of %s: %w", dto.Key, err)
	}
	issue.Links = make([]domain.IssueLink, 0, len(links.IssueLinks))
	for _, l := range links.IssueLinks {
		issue.Links = append(issue.Links, domain.IssueLink{
			ID:           l.ID,
			Type:         domain.LinkType(l.Type),
			InwardIssue:  mapLinkedIssue(l.InwardIssue),
			OutwardIssue: mapLinkedIssue(l.OutwardIssue),
		})
	}
	return issue, nil
}

func mapLinkedIssue(dto *linkedIssueDTO) *domain.LinkedIssue {
	if dto == nil {
		return nil
	}
	return &domain.LinkedIssue{Key: dto.Key, Summary: dto.Fields.Summary}
}

func mapIssues(dtos []issueDTO) ([]domain.Issue, error) {
	issues := make([]domain.Issue, 0, len(dtos))
	for _, dto := range dtos {
		issue, err := mapIssue(dto)
		if err != nil {
			return nil, err
		}
		issues = append(issues, issue)
	}
	return issues, nil
}
