package app

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/app"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"catalog-studio/app/controller"
	"catalog-studio/app/router"
	"catalog-studio/db"
	"catalog-studio/registry"
	"catalog-studio/repository"
	"catalog-studio/service"
)

// Run creates all dependencies, starts the HTTP server, and handles graceful
// shutdown. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, _ *app.Telemetry, cfg *Config) error {
	lg.Info("Initializing", zap.String("addr", cfg.Addr))

	// Optional PostgreSQL store for catalogs and template overrides.
	conn, err := openStore(ctx, lg, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	if conn != nil {
		defer func() { _ = conn.Close() }()
	}

	// Templates: built-ins, then the extra file, then persisted corrections.
	reg, err := registry.Builtin()
	if err != nil {
		return errors.Wrap(err, "load builtin templates")
	}
	if cfg.TemplatesFile != "" {
		defs, err := registry.LoadFile(cfg.TemplatesFile)
		if err != nil {
			return errors.Wrap(err, "load templates file")
		}
		reg = reg.Merge(defs...)
		lg.Info("Loaded templates file", zap.String("path", cfg.TemplatesFile), zap.Int("count", len(defs)))
	}

	var (
		catalogRepo  repository.CatalogRepositoryInterface
		templateRepo repository.TemplateRepositoryInterface
	)
	if conn != nil {
		catalogRepo = repository.NewCatalogRepository(conn)
		tr := repository.NewTemplateRepository(conn)
		overrides, err := tr.ListOverrides(ctx)
		if err != nil {
			return errors.Wrap(err, "load template overrides")
		}
		reg = reg.Merge(overrides...)
		templateRepo = tr
		lg.Info("Applied template overrides", zap.Int("count", len(overrides)))
	}
	templates := service.NewTemplateStore(reg)

	// Drive enables drive:// image references.
	var drive service.DriveServiceInterface
	if cfg.Drive.CredentialsFile != "" {
		ds, err := service.NewDriveService(ctx, cfg.Drive.CredentialsFile)
		if err != nil {
			return errors.Wrap(err, "create drive service")
		}
		drive = ds
	}

	var inliner *service.ImageInliner
	if cfg.Images.Inline {
		inliner = service.NewImageInliner(lg.Named("images"), drive, nil, service.InlineOptions{
			BaseURL:      cfg.BaseURL,
			MaxDimension: cfg.Images.MaxDimension,
			Quality:      cfg.Images.Quality,
			Concurrency:  cfg.Images.Concurrency,
			FetchRemote:  cfg.Images.FetchRemote,
		})
	}

	// Services.
	catalogService := service.NewCatalogService(
		lg.Named("catalog"),
		templates,
		catalogRepo,
		inliner,
		service.NewChromeExporter(lg.Named("export"), cfg.Export.ChromePath, cfg.Export.Timeout),
		service.NewPNGSessions(cfg.Export.PNGSessionTTL),
	)
	templateService := service.NewTemplateService(lg.Named("templates"), templates, templateRepo)

	// HTTP.
	r := router.New(lg, &router.Controllers{
		Catalog:  controller.NewCatalogController(catalogService),
		Template: controller.NewTemplateController(templateService),
	})

	server := &http.Server{
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.Export.Timeout + 30*time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
		Addr:              cfg.Addr,
		Handler:           r,
	}
	// Requests inherit the process logger but not its cancellation.
	server.BaseContext = func(net.Listener) context.Context {
		return context.WithoutCancel(ctx)
	}

	shutdownDone := make(chan struct{})
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			lg.Error("Server shutdown error", zap.Error(err))
		}
		close(shutdownDone)
	}()

	lg.Info("Server listening",
		zap.String("addr", cfg.Addr),
		zap.Int("templates", reg.Len()),
		zap.Bool("store", conn != nil),
		zap.Bool("drive", drive != nil),
	)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.Wrap(err, "server")
	}
	<-shutdownDone
	return nil
}

// openStore connects and migrates the database. Without any connection
// settings the service runs on built-in templates only and returns nil.
func openStore(ctx context.Context, lg *zap.Logger, dsn string) (*sqlx.DB, error) {
	if dsn == "" {
		var err error
		if dsn, err = db.DSNFromEnv(); err != nil {
			lg.Warn("No database configured, stored catalogs and template corrections are disabled")
			return nil, nil
		}
	}

	conn, err := db.Open(ctx, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}
	if err := db.Migrate(ctx, conn); err != nil {
		_ = conn.Close()
		return nil, errors.Wrap(err, "run migrations")
	}
	return conn, nil
}
