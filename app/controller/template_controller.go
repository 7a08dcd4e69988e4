package controller

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"catalog-studio/models"
	"catalog-studio/registry"
	"catalog-studio/service"
)

// TemplateManager is the template service as seen by the HTTP layer
type TemplateManager interface {
	List(f registry.Filter) []models.TemplateDefinition
	Get(id string) (models.TemplateDefinition, error)
	Audit(id string) (*models.AuditResult, error)
	AuditAll(ctx context.Context) ([]*models.AuditResult, error)
	Correct(ctx context.Context, id string) (*service.Correction, error)
}

// TemplateController handles template listing, audits and corrections
type TemplateController struct {
	templates TemplateManager
}

// NewTemplateController creates a new TemplateController
func NewTemplateController(templates TemplateManager) *TemplateController {
	return &TemplateController{templates: templates}
}

// List handles GET /templates?industry=&feature=&category=
func (tc *TemplateController) List(c *gin.Context) {
	defs := tc.templates.List(registry.Filter{
		Industry: c.Query("industry"),
		Feature:  c.Query("feature"),
		Category: c.Query("category"),
	})
	if defs == nil {
		defs = []models.TemplateDefinition{}
	}
	c.JSON(http.StatusOK, gin.H{"templates": defs, "count": len(defs)})
}

// Get handles GET /templates/:id
func (tc *TemplateController) Get(c *gin.Context) {
	def, err := tc.templates.Get(c.Param("id"))
	if err != nil {
		respondError(c, "get_template", err)
		return
	}
	c.JSON(http.StatusOK, def)
}

// Audit handles GET /templates/:id/audit
func (tc *TemplateController) Audit(c *gin.Context) {
	result, err := tc.templates.Audit(c.Param("id"))
	if err != nil {
		respondError(c, "audit", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// AuditAll handles GET /templates-audit
func (tc *TemplateController) AuditAll(c *gin.Context) {
	results, err := tc.templates.AuditAll(c.Request.Context())
	if err != nil {
		respondError(c, "audit_all", err)
		return
	}

	summary := make(map[models.AuditStatus]int)
	for _, r := range results {
		summary[r.Status]++
	}
	c.JSON(http.StatusOK, gin.H{"results": results, "summary": summary})
}

// Correct handles POST /templates/:id/correct
func (tc *TemplateController) Correct(c *gin.Context) {
	correction, err := tc.templates.Correct(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, "correct", err)
		return
	}
	c.JSON(http.StatusOK, correction)
}
