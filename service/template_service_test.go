package service

import (
	"context"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"catalog-studio/models"
	"catalog-studio/registry"
)

type fakeTemplateRepo struct {
	saved map[string]models.TemplateDefinition
	err   error
}

func (r *fakeTemplateRepo) ListOverrides(context.Context) ([]models.TemplateDefinition, error) {
	var out []models.TemplateDefinition
	for _, def := range r.saved {
		out = append(out, def)
	}
	return out, nil
}

func (r *fakeTemplateRepo) SaveOverride(_ context.Context, def models.TemplateDefinition, _ int) error {
	if r.err != nil {
		return r.err
	}
	if r.saved == nil {
		r.saved = make(map[string]models.TemplateDefinition)
	}
	r.saved[def.ID] = def
	return nil
}

func brokenTemplate() models.TemplateDefinition {
	return models.TemplateDefinition{
		ID:              "overgrown",
		DisplayName:     "Overgrown",
		Industry:        "fashion",
		Density:         models.DensityMedium,
		GridColumns:     5,
		ProductsPerPage: 35,
		Palette:         models.Palette{Primary: "#7c3aed", Secondary: "#7c3aed"},
		Visual:          models.VisualFlags{BorderRadius: 25},
	}
}

func newTemplateService(repo *fakeTemplateRepo) (*TemplateService, *TemplateStore) {
	store := NewTemplateStore(registry.MustBuiltin().With(brokenTemplate()))
	if repo == nil {
		return NewTemplateService(zap.NewNop(), store, nil), store
	}
	return NewTemplateService(zap.NewNop(), store, repo), store
}

func TestTemplateServiceList(t *testing.T) {
	svc, _ := newTemplateService(nil)

	all := svc.List(registry.Filter{})
	assert.Len(t, all, registry.MustBuiltin().Len()+1)

	pets := svc.List(registry.Filter{Industry: "PETS"})
	require.Len(t, pets, 1)
	assert.Equal(t, "pets-playful", pets[0].ID)

	_, err := svc.Get("missing")
	assert.True(t, errors.Is(err, registry.ErrTemplateNotFound))
}

func TestTemplateServiceAudit(t *testing.T) {
	svc, _ := newTemplateService(nil)

	result, err := svc.Audit("overgrown")
	require.NoError(t, err)
	assert.Equal(t, models.StatusNeedsFix, result.Status)

	results, err := svc.AuditAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, results, registry.MustBuiltin().Len()+1)
	assert.Equal(t, "overgrown", results[len(results)-1].TemplateID)
}

func TestTemplateServiceCorrect(t *testing.T) {
	repo := &fakeTemplateRepo{}
	svc, store := newTemplateService(repo)

	c, err := svc.Correct(context.Background(), "overgrown")
	require.NoError(t, err)

	assert.True(t, c.Saved)
	assert.Less(t, c.Before.Score, c.After.Score)
	assert.Zero(t, c.After.CountAtLeast(models.SeverityMedium))
	assert.Equal(t, c.Template, repo.saved["overgrown"])

	live, err := store.Get("overgrown")
	require.NoError(t, err)
	assert.Equal(t, c.Template, live, "corrected definition is published")
	assert.Equal(t, 12, live.Visual.BorderRadius)
}

func TestTemplateServiceCorrectSaveFailure(t *testing.T) {
	svc, store := newTemplateService(&fakeTemplateRepo{err: errors.New("db down")})

	_, err := svc.Correct(context.Background(), "overgrown")
	require.Error(t, err)

	live, err := store.Get("overgrown")
	require.NoError(t, err)
	assert.Equal(t, 25, live.Visual.BorderRadius, "nothing is published when saving fails")
}

func TestTemplateServiceCorrectWithoutStore(t *testing.T) {
	svc, store := newTemplateService(nil)

	c, err := svc.Correct(context.Background(), "overgrown")
	require.NoError(t, err)
	assert.False(t, c.Saved)

	live, err := store.Get("overgrown")
	require.NoError(t, err)
	assert.Equal(t, c.Template, live)
}
