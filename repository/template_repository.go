package repository

import (
	"context"
	"encoding/json"

	"github.com/go-faster/errors"
	"github.com/jmoiron/sqlx"

	"catalog-studio/models"
)

// TemplateRepository stores corrected template definitions that override
// the built-in registry entries with the same id.
type TemplateRepository struct {
	db *sqlx.DB
}

// NewTemplateRepository creates a new TemplateRepository
func NewTemplateRepository(db *sqlx.DB) *TemplateRepository {
	return &TemplateRepository{db: db}
}

var _ TemplateRepositoryInterface = (*TemplateRepository)(nil)

// ListOverrides returns every stored override, oldest first
func (r *TemplateRepository) ListOverrides(ctx context.Context) ([]models.TemplateDefinition, error) {
	var raw [][]byte
	if err := r.db.SelectContext(ctx, &raw,
		`SELECT definition FROM template_overrides ORDER BY updated_at ASC, id ASC`); err != nil {
		return nil, errors.Wrap(err, "query template overrides")
	}

	defs := make([]models.TemplateDefinition, 0, len(raw))
	for _, data := range raw {
		var def models.TemplateDefinition
		if err := json.Unmarshal(data, &def); err != nil {
			return nil, errors.Wrap(err, "decode template override")
		}
		defs = append(defs, def)
	}
	return defs, nil
}

// SaveOverride inserts or replaces the override for def.ID
func (r *TemplateRepository) SaveOverride(ctx context.Context, def models.TemplateDefinition, score int) error {
	data, err := json.Marshal(def)
	if err != nil {
		return errors.Wrap(err, "encode template override")
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO template_overrides (id, definition, score, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (id) DO UPDATE
		SET definition = EXCLUDED.definition,
		    score = EXCLUDED.score,
		    updated_at = EXCLUDED.updated_at`,
		def.ID, data, score)
	if err != nil {
		return errors.Wrapf(err, "save template override %q", def.ID)
	}
	return nil
}
