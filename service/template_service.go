package service

import (
	"context"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"catalog-studio/audit"
	"catalog-studio/metrics"
	"catalog-studio/models"
	"catalog-studio/registry"
	"catalog-studio/repository"
)

// Correction is the outcome of correcting one template
type Correction struct {
	Before   *models.AuditResult       `json:"before"`
	After    *models.AuditResult       `json:"after"`
	Template models.TemplateDefinition `json:"template"`
	Saved    bool                      `json:"saved"`
}

// TemplateService lists, audits and corrects catalog templates
type TemplateService struct {
	log       *zap.Logger
	templates *TemplateStore
	repo      repository.TemplateRepositoryInterface
}

// NewTemplateService creates a new TemplateService. Without repo corrections
// only live in memory.
func NewTemplateService(log *zap.Logger, templates *TemplateStore, repo repository.TemplateRepositoryInterface) *TemplateService {
	return &TemplateService{
		log:       log,
		templates: templates,
		repo:      repo,
	}
}

// List returns the templates matching f
func (s *TemplateService) List(f registry.Filter) []models.TemplateDefinition {
	return s.templates.Registry().Filter(f)
}

// Get returns one template
func (s *TemplateService) Get(id string) (models.TemplateDefinition, error) {
	return s.templates.Get(id)
}

// Audit audits one template
func (s *TemplateService) Audit(id string) (*models.AuditResult, error) {
	t, err := s.templates.Get(id)
	if err != nil {
		return nil, err
	}
	result := audit.Audit(t)
	observe(result)
	return result, nil
}

// AuditAll audits every registered template
func (s *TemplateService) AuditAll(ctx context.Context) ([]*models.AuditResult, error) {
	results, err := audit.AuditAll(ctx, s.templates.Registry())
	if err != nil {
		return nil, err
	}
	for _, r := range results {
		observe(r)
	}
	return results, nil
}

// Correct audits a template, applies the automatic fixes, persists the
// corrected definition and publishes it to the registry.
func (s *TemplateService) Correct(ctx context.Context, id string) (*Correction, error) {
	t, err := s.templates.Get(id)
	if err != nil {
		return nil, err
	}

	before := audit.Audit(t)
	fixed := audit.Correct(before)
	after := audit.Audit(fixed)
	observe(after)

	c := &Correction{Before: before, After: after, Template: fixed}
	if s.repo != nil {
		if err := s.repo.SaveOverride(ctx, fixed, after.Score); err != nil {
			metrics.ErrorsTotal.WithLabelValues("save_override").Inc()
			return nil, errors.Wrap(err, "save corrected template")
		}
		c.Saved = true
	}
	s.templates.Update(fixed)

	s.log.Info("Template corrected",
		zap.String("template", id),
		zap.Int("score_before", before.Score),
		zap.Int("score_after", after.Score),
		zap.String("status", string(after.Status)),
		zap.Bool("saved", c.Saved),
	)
	return c, nil
}

func observe(r *models.AuditResult) {
	metrics.AuditScore.Observe(float64(r.Score))
	for _, issue := range r.Issues {
		metrics.AuditIssuesTotal.WithLabelValues(string(issue.Severity), string(issue.Category)).Inc()
	}
}
