package models

import "time"

// Severity of an audit issue
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// AtLeast reports whether s is as severe as other or more
func (s Severity) AtLeast(other Severity) bool {
	return s.rank() >= other.rank()
}

func (s Severity) rank() int {
	switch s {
	case SeverityCritical:
		return 3
	case SeverityHigh:
		return 2
	case SeverityMedium:
		return 1
	default:
		return 0
	}
}

// IssueCategory groups audit issues by rule family
type IssueCategory string

const (
	CategoryLayout        IssueCategory = "layout"
	CategoryColors        IssueCategory = "colors"
	CategoryTypography    IssueCategory = "typography"
	CategoryPerformance   IssueCategory = "performance"
	CategoryCompatibility IssueCategory = "compatibility"
)

// AuditStatus classifies the overall template quality
type AuditStatus string

const (
	StatusPerfect  AuditStatus = "perfect"
	StatusGood     AuditStatus = "good"
	StatusNeedsFix AuditStatus = "needs_fix"
	StatusBroken   AuditStatus = "broken"
)

// Issue is a single finding of the auditor
type Issue struct {
	Rule        string        `json:"rule"`
	Severity    Severity      `json:"severity"`
	Category    IssueCategory `json:"category"`
	Description string        `json:"description"`
	Fix         string        `json:"fix"`
}

// Compatibility describes how a template behaves on one render target
type Compatibility struct {
	Compatible bool     `json:"compatible"`
	Notes      []string `json:"notes,omitempty"`
}

// Scalability is the product count range a template handles well
type Scalability struct {
	MinProducts     int `json:"minProducts"`
	MaxProducts     int `json:"maxProducts"`
	OptimalProducts int `json:"optimalProducts"`
}

// AuditResult is the quality report of one template definition. Never mutated after creation.
type AuditResult struct {
	ID              string                   `json:"id"`
	TemplateID      string                   `json:"templateId"`
	Template        TemplateDefinition       `json:"template"`
	Issues          []Issue                  `json:"issues"`
	Compatibility   map[string]Compatibility `json:"compatibility"`
	Scalability     Scalability              `json:"scalability"`
	Recommendations []string                 `json:"recommendations"`
	Score           int                      `json:"score"`
	Status          AuditStatus              `json:"status"`
	AuditedAt       time.Time                `json:"auditedAt"`
}

// HasCategory reports whether any issue of the given category was found
func (r *AuditResult) HasCategory(c IssueCategory) bool {
	for _, issue := range r.Issues {
		if issue.Category == c {
			return true
		}
	}
	return false
}

// HasRule reports whether the given rule fired
func (r *AuditResult) HasRule(rule string) bool {
	for _, issue := range r.Issues {
		if issue.Rule == rule {
			return true
		}
	}
	return false
}

// CountAtLeast counts issues with severity >= s
func (r *AuditResult) CountAtLeast(s Severity) int {
	n := 0
	for _, issue := range r.Issues {
		if issue.Severity.AtLeast(s) {
			n++
		}
	}
	return n
}
