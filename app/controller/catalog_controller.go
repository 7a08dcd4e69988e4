package controller

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"catalog-studio/models"
	"catalog-studio/service"
)

// CatalogRenderer is the catalog service as seen by the HTTP layer
type CatalogRenderer interface {
	Render(ctx context.Context, req models.RenderRequest, format service.Format) (*service.Artifact, error)
	RenderStored(ctx context.Context, id, templateID string, format service.Format) (*service.Artifact, error)
	PNGPage(sessionID string, page int) ([]byte, string, error)
}

// CatalogController handles HTTP requests for catalog rendering
type CatalogController struct {
	catalogs CatalogRenderer
}

// NewCatalogController creates a new CatalogController
func NewCatalogController(catalogs CatalogRenderer) *CatalogController {
	return &CatalogController{catalogs: catalogs}
}

// Render handles POST /catalog/render?format=html|pdf|png|proof
func (cc *CatalogController) Render(c *gin.Context) {
	format, err := service.ParseFormat(c.Query("format"))
	if err != nil {
		respondError(c, "render", err)
		return
	}

	var req models.RenderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	art, err := cc.catalogs.Render(c.Request.Context(), req, format)
	if err != nil {
		respondError(c, "render", err)
		return
	}
	writeArtifact(c, art)
}

// RenderStored handles GET /catalogs/:id?template=&format=
func (cc *CatalogController) RenderStored(c *gin.Context) {
	format, err := service.ParseFormat(c.Query("format"))
	if err != nil {
		respondError(c, "render_stored", err)
		return
	}

	id := strings.TrimSpace(c.Param("id"))
	art, err := cc.catalogs.RenderStored(c.Request.Context(), id, strings.TrimSpace(c.Query("template")), format)
	if err != nil {
		respondError(c, "render_stored", err)
		return
	}
	writeArtifact(c, art)
}

// PNGPage handles GET /catalog/png-page?session=XXX&page=N
func (cc *CatalogController) PNGPage(c *gin.Context) {
	session := strings.TrimSpace(c.Query("session"))
	if session == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "session parameter is required"})
		return
	}
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "page must be a positive integer"})
		return
	}

	data, filename, err := cc.catalogs.PNGPage(session, page)
	if err != nil {
		respondError(c, "png_page", err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "image/png", data)
}

func writeArtifact(c *gin.Context, art *service.Artifact) {
	c.Header("X-Catalog-Pages", strconv.Itoa(art.Document.PageCount))

	switch art.Format {
	case service.FormatPNG:
		c.JSON(http.StatusOK, gin.H{
			"sessionId":  art.SessionID,
			"totalPages": len(art.Pages),
			"pages":      art.Pages,
		})
	case service.FormatHTML:
		c.Data(http.StatusOK, art.ContentType, art.Body)
	default:
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", art.Filename))
		c.Data(http.StatusOK, art.ContentType, art.Body)
	}
}
