package router

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"catalog-studio/app/controller"
	"catalog-studio/metrics"
)

// Controllers groups the HTTP handlers served by the router
type Controllers struct {
	Catalog  *controller.CatalogController
	Template *controller.TemplateController
}

// New builds the gin engine with middleware and every route
func New(lg *zap.Logger, controllers *Controllers) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.MaxMultipartMemory = 8 << 20 // 8 MiB

	r.Use(gin.Recovery())
	r.Use(requestLogger(lg))
	r.Use(prometheusMiddleware())

	r.GET("/ping", ping)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	t := controllers.Template
	r.GET("/templates", t.List)
	r.GET("/templates/:id", t.Get)
	r.GET("/templates/:id/audit", t.Audit)
	r.POST("/templates/:id/correct", t.Correct)
	r.GET("/templates-audit", t.AuditAll)

	c := controllers.Catalog
	r.POST("/catalog/render", c.Render)
	r.GET("/catalog/png-page", c.PNGPage)
	r.GET("/catalogs/:id", c.RenderStored)

	return r
}

// ping handles GET /ping
func ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// requestLogger attaches a request scoped logger to the request context and
// logs every request once it completes.
func requestLogger(lg *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Header("X-Request-ID", id)

		reqLog := lg.With(zap.String("request_id", id))
		c.Request = c.Request.WithContext(zctx.Base(c.Request.Context(), reqLog))

		start := time.Now()
		c.Next()

		if c.Request.URL.Path == "/ping" || c.Request.URL.Path == "/metrics" {
			return
		}
		reqLog.Info("HTTP request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("client_ip", c.ClientIP()),
		)
	}
}

// prometheusMiddleware records request count and latency per route
func prometheusMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unknown"
		}
		method := c.Request.Method
		metrics.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}
