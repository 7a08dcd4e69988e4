// Package audit statically checks template definitions, scores them and
// produces corrected copies.
package audit

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"catalog-studio/layout"
	"catalog-studio/models"
	"catalog-studio/registry"
)

// Severity penalties subtracted from the score
const (
	PenaltyCritical = 25
	PenaltyHigh     = 15
	PenaltyMedium   = 8
	PenaltyLow      = 3
)

// Score thresholds
const (
	PerfectScore  = 90
	PassingScore  = 60
	MaxScore      = 100
	maxConcurrent = 8
)

// subject is the template under audit with the values every rule group needs
type subject struct {
	def        models.TemplateDefinition
	geometry   models.Geometry
	scheme     models.ColorScheme
	typography models.Typography
}

// report collects issues while the rule groups run
type report struct {
	issues []models.Issue
}

func (r *report) add(rule string, severity models.Severity, category models.IssueCategory, description, fix string) {
	r.issues = append(r.issues, models.Issue{
		Rule:        rule,
		Severity:    severity,
		Category:    category,
		Description: description,
		Fix:         fix,
	})
}

// Audit runs every rule group against t and returns a new result.
// The definition itself is never modified.
func Audit(t models.TemplateDefinition) *models.AuditResult {
	s := subject{
		def:        t.Clone(),
		geometry:   layout.Dimensions(t),
		scheme:     layout.ResolveColors(t),
		typography: layout.Typography(t),
	}

	var r report
	checkLayout(s, &r)
	checkColors(s, &r)
	checkTypography(s, &r)
	checkPerformance(s, &r)
	compat := checkCompatibility(s, &r)
	scale := checkScalability(s, &r)

	result := &models.AuditResult{
		ID:            uuid.NewString(),
		TemplateID:    t.ID,
		Template:      s.def,
		Issues:        r.issues,
		Compatibility: compat,
		Scalability:   scale,
		AuditedAt:     time.Now().UTC(),
	}
	if result.Issues == nil {
		result.Issues = []models.Issue{}
	}
	result.Score = Score(result.Issues)
	result.Status = Status(result.Issues, result.Score)
	result.Recommendations = recommend(s.def, result)

	return result
}

// AuditAll audits every registry entry in parallel. Results keep registry order.
func AuditAll(ctx context.Context, reg *registry.Registry) ([]*models.AuditResult, error) {
	defs := reg.List()
	results := make([]*models.AuditResult, len(defs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)
	for i, def := range defs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			results[i] = Audit(def)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "audit all")
	}

	return results, nil
}

// Score is 100 minus the severity penalty of each issue, floored at 0
func Score(issues []models.Issue) int {
	score := MaxScore
	for _, issue := range issues {
		score -= penalty(issue.Severity)
	}
	if score < 0 {
		return 0
	}
	return score
}

func penalty(s models.Severity) int {
	switch s {
	case models.SeverityCritical:
		return PenaltyCritical
	case models.SeverityHigh:
		return PenaltyHigh
	case models.SeverityMedium:
		return PenaltyMedium
	default:
		return PenaltyLow
	}
}

// Status classifies a template from its issues and score
func Status(issues []models.Issue, score int) models.AuditStatus {
	var critical, high bool
	for _, issue := range issues {
		switch issue.Severity {
		case models.SeverityCritical:
			critical = true
		case models.SeverityHigh:
			high = true
		}
	}

	switch {
	case critical:
		return models.StatusBroken
	case high || score < PassingScore:
		return models.StatusNeedsFix
	case score >= PerfectScore:
		return models.StatusPerfect
	default:
		return models.StatusGood
	}
}
