// Package app assembles the dashboard stores, services and router from
// configuration and owns their lifecycle.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/district-dashboard-api/internal/handler"
	"github.com/noah-isme/district-dashboard-api/internal/middleware"
	"github.com/noah-isme/district-dashboard-api/internal/models"
	"github.com/noah-isme/district-dashboard-api/internal/realtime"
	"github.com/noah-isme/district-dashboard-api/internal/repository"
	"github.com/noah-isme/district-dashboard-api/internal/routes"
	"github.com/noah-isme/district-dashboard-api/internal/seed"
	"github.com/noah-isme/district-dashboard-api/internal/service"
	"github.com/noah-isme/district-dashboard-api/pkg/cache"
	"github.com/noah-isme/district-dashboard-api/pkg/config"
	"github.com/noah-isme/district-dashboard-api/pkg/database"
	"github.com/noah-isme/district-dashboard-api/pkg/jobs"
	"github.com/noah-isme/district-dashboard-api/pkg/logger"
	pkgmail "github.com/noah-isme/district-dashboard-api/pkg/mail"
	corsmiddleware "github.com/noah-isme/district-dashboard-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/district-dashboard-api/pkg/middleware/requestid"
	"github.com/noah-isme/district-dashboard-api/pkg/storage"
)

const exportCleanupInterval = time.Hour

// App is the single application state: every store is constructed here and
// injected into the services that own it.
type App struct {
	cfg    *config.Config
	logger *zap.Logger

	Metrics       *service.MetricsService
	Entities      *service.EntityService
	Interventions *service.InterventionService
	Toasts        *service.ToastService
	TimeTravel    *service.TimeTravelService
	Exports       *service.ExportService
	Seed          *service.SeedService

	scheduler *jobs.Scheduler
	mail      *service.MailService
	hub       *realtime.Hub
	hubCancel context.CancelFunc
	snapshots *service.SnapshotService
	cleanup   *jobs.Handle
	router    *gin.Engine

	redis      *redis.Client
	seedDB     *sqlx.DB
	snapshotDB *sqlx.DB
}

// New builds the application and loads the configured seed.
func New(ctx context.Context, cfg *config.Config, logr *zap.Logger) (*App, error) {
	if logr == nil {
		logr = zap.NewNop()
	}
	a := &App{cfg: cfg, logger: logr, scheduler: jobs.NewScheduler(logr)}
	if err := a.build(ctx); err != nil {
		a.closeClients()
		return nil, err
	}
	return a, nil
}

func (a *App) build(ctx context.Context) error {
	cfg, logr := a.cfg, a.logger
	validate := validator.New()
	a.Metrics = service.NewMetricsService()

	var publisher service.EventPublisher
	if cfg.Realtime.Enabled {
		a.hub = realtime.NewHub(realtime.HubConfig{
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			Logger:         logr,
			OnClientCount:  a.Metrics.SetRealtimeClients,
		})
		publisher = a.hub
	}

	fixtures := seed.Fixtures()
	entityRepo, err := repository.NewEntityRepository(models.SeedData{})
	if err != nil {
		return err
	}
	timelineRepo := repository.NewTimeTravelRepository(nil, nil)
	interventionRepo := repository.NewInterventionRepository()
	noteRepo := repository.NewNoteRepository()
	activityRepo := repository.NewActivityRepository(fixtures.Activity)
	goalRepo := repository.NewGoalRepository(fixtures.Goals)
	compareRepo := repository.NewCompareRepository(cfg.Compare.MaxItems)

	a.Entities = service.NewEntityService(entityRepo, logr)
	a.TimeTravel = service.NewTimeTravelService(timelineRepo, a.scheduler, cfg.TimeTravel.Interval, publisher, logr)

	loader, err := a.seedLoader(ctx)
	if err != nil {
		return err
	}
	seedParams := service.SeedServiceParams{
		Source:    cfg.Seed.Source,
		Entities:  entityRepo,
		Timeline:  timelineRepo,
		Playback:  a.TimeTravel,
		Publisher: publisher,
		Logger:    logr,
	}
	if loader != nil {
		seedParams.Loader = loader
	}
	a.Seed = service.NewSeedService(seedParams)
	loaded, err := a.Seed.Reload(ctx)
	if err != nil {
		return fmt.Errorf("load seed: %w", err)
	}
	logr.Info("seed loaded", zap.String("source", loaded.Source), zap.Int("schools", loaded.Schools), zap.Int("students", loaded.Students))

	a.Toasts = service.NewToastService(service.ToastServiceParams{
		Store:     repository.NewToastRepository(),
		Scheduler: a.scheduler,
		TTL:       cfg.Toasts.TTL,
		Publisher: publisher,
		Metrics:   a.Metrics,
		Validator: validate,
		Logger:    logr,
	})
	activity := service.NewActivityService(activityRepo, publisher, validate, logr)

	a.mail = service.NewMailService(a.mailSender(), service.MailQueueConfig{
		Workers: cfg.Mail.Workers,
		Retries: cfg.Mail.Retries,
	}, a.Metrics, logr)

	a.Interventions = service.NewInterventionService(service.InterventionServiceParams{
		Store:           interventionRepo,
		Entities:        a.Entities,
		Toasts:          a.Toasts,
		Activity:        activity,
		Mailer:          a.mail,
		Scheduler:       a.scheduler,
		Publisher:       publisher,
		Metrics:         a.Metrics,
		Validator:       validate,
		Logger:          logr,
		CompletionDelay: cfg.Interventions.CompletionDelay,
	})
	notes := service.NewNoteService(noteRepo, a.Entities, publisher, validate, logr)
	compare := service.NewCompareService(compareRepo, entityRepo, publisher, validate, logr)
	goals := service.NewGoalService(goalRepo, publisher, validate, logr)
	viewState := service.NewViewStateService(repository.NewViewStateRepository(), a.Entities, validate)
	views := service.NewViewsService(entityRepo, noteRepo, interventionRepo, timelineRepo)

	cacheSvc := service.NewCacheService(a.cacheRepository(ctx), a.Metrics, cfg.Dashboard.CacheTTL, logr, cfg.Dashboard.CacheEnabled)
	dashboard := service.NewDashboardService(entityRepo, interventionRepo, activityRepo, cacheSvc, service.DashboardConfig{
		AtRiskPreviewLimit: cfg.Dashboard.AtRiskPreviewLimit,
		CacheTTL:           cfg.Dashboard.CacheTTL,
	}, logr)

	store, err := a.exportStore(ctx)
	if err != nil {
		return err
	}
	a.Exports = service.NewExportService(entityRepo, interventionRepo, store,
		storage.NewSignedURLSigner(cfg.Exports.SignedURLSecret, cfg.Exports.SignedURLTTL),
		service.ExportConfig{APIPrefix: cfg.APIPrefix, ResultTTL: cfg.Exports.SignedURLTTL},
		a.Metrics, validate, logr)

	if cfg.Snapshot.Enabled {
		a.snapshotDB, err = database.NewSQLite(ctx, cfg.Snapshot.Path)
		if err != nil {
			return fmt.Errorf("open snapshot database: %w", err)
		}
		snapshotRepo, err := repository.NewSnapshotRepository(ctx, a.snapshotDB)
		if err != nil {
			return fmt.Errorf("prepare snapshot schema: %w", err)
		}
		a.snapshots = service.NewSnapshotService(snapshotRepo, a.scheduler, cfg.Snapshot.Interval, logr,
			service.Bucket[[]models.Intervention]("interventions", interventionRepo),
			service.Bucket[[]models.Note]("notes", noteRepo),
			service.Bucket[[]models.ActivityItem]("activity", activityRepo),
			service.Bucket[[]models.Goal]("goals", goalRepo),
			service.Bucket[models.CompareState]("compare", compareRepo),
		)
	}

	h := routes.Handlers{
		Metrics:      handler.NewMetricsHandler(a.Metrics, a.Entities),
		Dashboard:    handler.NewDashboardHandler(dashboard),
		Entities:     handler.NewEntityHandler(a.Entities),
		Views:        handler.NewViewsHandler(views),
		Intervention: handler.NewInterventionHandler(a.Interventions),
		Toasts:       handler.NewToastHandler(a.Toasts),
		Notes:        handler.NewNoteHandler(notes),
		Activity:     handler.NewActivityHandler(activity),
		Compare:      handler.NewCompareHandler(compare),
		Goals:        handler.NewGoalHandler(goals),
		TimeTravel:   handler.NewTimeTravelHandler(a.TimeTravel),
		ViewState:    handler.NewViewStateHandler(viewState),
		Exports:      handler.NewExportHandler(a.Exports),
		Admin:        handler.NewAdminHandler(a.Seed),
	}
	if a.hub != nil {
		h.Realtime = handler.NewRealtimeHandler(a.hub, logr)
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(a.Metrics))
	r.Use(middleware.ResponseMeta())
	routes.Register(r, h, routes.Options{APIPrefix: cfg.APIPrefix, EnableDocs: cfg.Env != config.EnvProduction})
	a.router = r
	return nil
}

// Router returns the HTTP handler.
func (a *App) Router() *gin.Engine {
	return a.router
}

// Start launches the background workers: realtime hub, mail queue, snapshot
// flushing and export cleanup. Pending interventions restored from a snapshot
// get their completion timers back.
func (a *App) Start(ctx context.Context) error {
	if a.hub != nil {
		hubCtx, cancel := context.WithCancel(ctx)
		a.hubCancel = cancel
		go a.hub.Run(hubCtx)
	}
	a.mail.Start(ctx)
	if a.snapshots != nil {
		if err := a.snapshots.Start(ctx); err != nil {
			return fmt.Errorf("restore snapshots: %w", err)
		}
		a.Interventions.RearmPending()
	}
	a.cleanup = a.scheduler.Every(exportCleanupInterval, func() {
		removed, err := a.Exports.Cleanup(0)
		if err != nil {
			a.logger.Warn("export cleanup failed", zap.Error(err))
			return
		}
		if len(removed) > 0 {
			a.logger.Info("expired exports removed", zap.Int("count", len(removed)))
		}
	})
	return nil
}

// Shutdown stops playback and timers, flushes snapshots, drains the mail
// queue and closes external clients.
func (a *App) Shutdown(ctx context.Context) {
	a.TimeTravel.Stop()
	a.cleanup.Cancel()
	if a.snapshots != nil {
		if err := a.snapshots.Stop(ctx); err != nil {
			a.logger.Error("final snapshot flush failed", zap.Error(err))
		}
	}
	a.scheduler.Stop()
	a.mail.Stop()
	if a.hubCancel != nil {
		a.hubCancel()
	}
	a.closeClients()
}

func (a *App) closeClients() {
	if a.redis != nil {
		_ = a.redis.Close()
	}
	if a.seedDB != nil {
		_ = a.seedDB.Close()
	}
	if a.snapshotDB != nil {
		_ = a.snapshotDB.Close()
	}
}

func (a *App) seedLoader(ctx context.Context) (*repository.SeedRepository, error) {
	if a.cfg.Seed.Source != config.SeedSourcePostgres {
		return nil, nil
	}
	db, err := database.NewPostgres(ctx, a.cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect seed database: %w", err)
	}
	a.seedDB = db
	return repository.NewSeedRepository(db), nil
}

// cacheRepository returns nil, disabling the overview cache, when Redis is
// off or unreachable.
func (a *App) cacheRepository(ctx context.Context) service.CacheRepository {
	if !a.cfg.Dashboard.CacheEnabled {
		return nil
	}
	client, err := cache.NewRedis(ctx, a.cfg.Redis)
	if err != nil {
		a.logger.Warn("redis unavailable, overview cache disabled", zap.Error(err))
		return nil
	}
	a.redis = client
	return repository.NewCacheRepository(client, "dashboard", a.logger)
}

func (a *App) mailSender() pkgmail.Sender {
	from := pkgmail.From{
		Name:    a.cfg.Mail.FromName,
		Address: a.cfg.Mail.FromAddress,
		AppName: a.cfg.AppName,
	}
	if a.cfg.Mail.Driver == config.MailDriverSendGrid && a.cfg.Mail.SendGridAPIKey != "" {
		return pkgmail.NewSendGridSender(a.cfg.Mail.SendGridAPIKey, from)
	}
	if a.cfg.Mail.Driver == config.MailDriverSendGrid {
		a.logger.Warn("SENDGRID_API_KEY missing, using console mail sender")
	}
	return pkgmail.NewConsoleSender(from, a.logger)
}

func (a *App) exportStore(ctx context.Context) (storage.ObjectStore, error) {
	if a.cfg.Exports.Driver == config.StorageDriverS3 {
		store, err := storage.NewS3Store(ctx, storage.S3Config{
			Region:    a.cfg.Exports.S3Region,
			Bucket:    a.cfg.Exports.S3Bucket,
			Endpoint:  a.cfg.Exports.S3Endpoint,
			PathStyle: a.cfg.Exports.S3PathStyle,
		})
		if err != nil {
			return nil, fmt.Errorf("configure s3 exports: %w", err)
		}
		return store, nil
	}
	return storage.NewLocalStorage(a.cfg.Exports.StorageDir)
}
