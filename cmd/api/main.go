package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/paytrack-api/internal/application/analytics"
	"github.com/jhoicas/paytrack-api/internal/application/auth"
	"github.com/jhoicas/paytrack-api/internal/application/usecase"
	"github.com/jhoicas/paytrack-api/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/paytrack-api/internal/infrastructure/pdf"
	"github.com/jhoicas/paytrack-api/internal/infrastructure/store"
	httpRouter "github.com/jhoicas/paytrack-api/internal/interfaces/http"
	"github.com/jhoicas/paytrack-api/pkg/config"
	"github.com/jhoicas/paytrack-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := store.Open(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("abrir almacén")
	}
	defer st.Close()

	authOpts := []auth.Option{
		auth.WithBootstrap(auth.BootstrapConfig{
			LoginID:  cfg.Bootstrap.LoginID,
			Password: cfg.Bootstrap.Password,
			Name:     cfg.Bootstrap.Name,
		}),
	}
	// Limitador de intentos de login: solo con Redis configurado.
	if cfg.Redis.Enabled() && cfg.Auth.MaxLoginAttempts > 0 {
		client, err := cache.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, login sin límite de intentos")
		} else {
			defer client.Close()
			window := time.Duration(cfg.Auth.LockMinutes) * time.Minute
			authOpts = append(authOpts, auth.WithLoginLimiter(cache.NewLoginLimiter(client, cfg.Auth.MaxLoginAttempts, window)))
		}
	}
	authUC := auth.NewAuthUseCase(st.Users, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, authOpts...)

	var userOpts []usecase.UserOption
	if cfg.Auth.LoginIDMode == config.LoginIDSupplied {
		userOpts = append(userOpts, usecase.WithSuppliedLoginIDs())
	}
	userUC := usecase.NewUserUseCase(st.Users, userOpts...)
	companyUC := usecase.NewCompanyUseCase(st.Companies)
	entryUC := usecase.NewPaymentEntryUseCase(st.Entries, st.Companies, st.Users)
	reminderUC := usecase.NewReminderUseCase(st.Reminders, st.Entries, st.Users)

	pdfGenerator := infrapdf.NewAnalyticsReportGenerator(cfg.App.Name)
	analyticsUC := analytics.NewUseCase(st.Entries, st.Companies, st.Users, pdfGenerator, cfg.App.Locale)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	metrics := httpRouter.NewMetrics()
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.HTTP.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(httpRouter.RequestLogger(log.Component("http").Zerolog()))
	app.Use(metrics.Middleware())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "PayTrack API",
		}))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		pingCtx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := st.Ping(pingCtx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "degraded", "service": cfg.App.Name})
		}
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})
	app.Get("/metrics", metrics.Handler())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		CompanyUC:   companyUC,
		UserUC:      userUC,
		EntryUC:     entryUC,
		ReminderUC:  reminderUC,
		AnalyticsUC: analyticsUC,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
