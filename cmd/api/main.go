// @title           Commodities CMS API
// @version         1.0
// @description     Catálogo de commodities: productos, dashboard, reportes y feed en tiempo real.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Bearer <token>
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	_ "github.com/jhoicas/commodities-cms/docs"
	appanalytics "github.com/jhoicas/commodities-cms/internal/application/analytics"
	"github.com/jhoicas/commodities-cms/internal/application/auth"
	"github.com/jhoicas/commodities-cms/internal/application/catalog"
	"github.com/jhoicas/commodities-cms/internal/application/usecase"
	"github.com/jhoicas/commodities-cms/internal/domain/repository"
	"github.com/jhoicas/commodities-cms/internal/infrastructure/directory"
	"github.com/jhoicas/commodities-cms/internal/infrastructure/excel"
	"github.com/jhoicas/commodities-cms/internal/infrastructure/filestore"
	"github.com/jhoicas/commodities-cms/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/commodities-cms/internal/infrastructure/pdf"
	"github.com/jhoicas/commodities-cms/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/commodities-cms/internal/infrastructure/redis"
	"github.com/jhoicas/commodities-cms/internal/infrastructure/ws"
	httpRouter "github.com/jhoicas/commodities-cms/internal/interfaces/http"
	"github.com/jhoicas/commodities-cms/pkg/config"
	"github.com/jhoicas/commodities-cms/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("session_store", cfg.Session.Store).
		Msg("iniciando aplicación")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// PostgreSQL es opcional: solo se abre si hay configuración.
	var pool *pgxpool.Pool
	if cfg.DB.Configured() {
		pool, err = postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if err := postgres.EnsureSchema(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("esquema PostgreSQL")
		}
	}

	sessions, closeSessions := buildSessionStore(ctx, cfg, pool, log)
	defer closeSessions()

	var audit repository.AuditRepository
	switch {
	case !cfg.Audit.Enabled:
	case pool != nil:
		audit = postgres.NewAuditRepository(pool)
	default:
		audit = memory.NewAuditLog(memory.DefaultAuditCapacity)
	}

	dir, err := directory.NewDemoDirectory()
	if err != nil {
		log.Fatal().Err(err).Msg("directorio de credenciales")
	}

	jwtSecret := cfg.JWT.Secret
	if jwtSecret == "" {
		// Sin secreto configurado los tokens solo valen mientras viva el proceso.
		jwtSecret = uuid.NewString()
		log.Warn().Msg("JWT_SECRET vacío: se usa un secreto aleatorio")
	}

	engine := catalog.NewEngine(catalog.SeedProducts())
	hub := ws.NewHub(log.Named("ws"), ws.DefaultBuffer)
	go hub.Run(ctx)

	authUC := auth.NewAuthUseCase(dir, sessions, auth.JWTConfig{
		Secret:     jwtSecret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Session.LoginLatency, log.Named("auth"))
	productUC := usecase.NewProductUseCase(engine, audit, hub, log.Named("catalog"))
	dashboardUC := appanalytics.NewDashboardUseCase(engine)
	reportUC := usecase.NewReportUseCase(engine, infrapdf.NewMarotoReportGenerator(), excel.NewReportGenerator(), log.Named("reports"))
	var auditUC *usecase.AuditUseCase
	if audit != nil {
		auditUC = usecase.NewAuditUseCase(audit)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Named("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Commodities CMS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "ws_clients": hub.Clients()})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Ctx:         ctx,
		AuthUC:      authUC,
		ProductUC:   productUC,
		DashboardUC: dashboardUC,
		ReportUC:    reportUC,
		AuditUC:     auditUC,
		Hub:         hub,
		JWTSecret:   jwtSecret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), 10*time.Second)
	defer stop()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// buildSessionStore elige el backend de sesiones según SESSION_STORE.
// El cierre devuelto libera las conexiones propias del backend.
func buildSessionStore(ctx context.Context, cfg *config.Config, pool *pgxpool.Pool, log *logger.Logger) (repository.SessionStore, func()) {
	ttl := cfg.Session.TTL()
	switch cfg.Session.Store {
	case config.SessionStoreFile:
		log.Info().Str("path", cfg.Session.FilePath).Msg("sesiones en archivo")
		return filestore.New(cfg.Session.FilePath), func() {}
	case config.SessionStoreRedis:
		client, err := infraredis.NewClient(ctx, infraredis.Options{
			Address:  cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		return infraredis.NewSessionStore(client, ttl), func() { _ = client.Close() }
	case config.SessionStorePostgres:
		store := postgres.NewSessionStore(pool, ttl)
		go purgeSessions(ctx, store, log)
		return store, func() {}
	default:
		return memory.NewSessionStore(ttl), func() {}
	}
}

// purgeSessions borra cada 10 minutos las sesiones vencidas en PostgreSQL.
func purgeSessions(ctx context.Context, store *postgres.SessionStore, log *logger.Logger) {
	ticker := time.NewTicker(10 * time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := store.PurgeExpired(ctx)
			if err != nil {
				log.Error().Err(err).Msg("purga de sesiones")
				continue
			}
			if n > 0 {
				log.Debug().Int64("purged", n).Msg("sesiones vencidas eliminadas")
			}
		}
	}
}
