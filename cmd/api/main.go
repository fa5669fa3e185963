package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/jwalitptl/hospital-records/internal/aggcache"
	"github.com/jwalitptl/hospital-records/internal/config"
	"github.com/jwalitptl/hospital-records/internal/handler"
	appointmentHandler "github.com/jwalitptl/hospital-records/internal/handler/appointment"
	bloodbankHandler "github.com/jwalitptl/hospital-records/internal/handler/bloodbank"
	dashboardHandler "github.com/jwalitptl/hospital-records/internal/handler/dashboard"
	doctorHandler "github.com/jwalitptl/hospital-records/internal/handler/doctor"
	patientHandler "github.com/jwalitptl/hospital-records/internal/handler/patient"
	pharmacyHandler "github.com/jwalitptl/hospital-records/internal/handler/pharmacy"
	"github.com/jwalitptl/hospital-records/internal/middleware"
	"github.com/jwalitptl/hospital-records/internal/repository/postgres"
	"github.com/jwalitptl/hospital-records/internal/router"
	"github.com/jwalitptl/hospital-records/internal/seed"
	appointmentService "github.com/jwalitptl/hospital-records/internal/service/appointment"
	bloodbankService "github.com/jwalitptl/hospital-records/internal/service/bloodbank"
	dashboardService "github.com/jwalitptl/hospital-records/internal/service/dashboard"
	doctorService "github.com/jwalitptl/hospital-records/internal/service/doctor"
	eventService "github.com/jwalitptl/hospital-records/internal/service/event"
	patientService "github.com/jwalitptl/hospital-records/internal/service/patient"
	pharmacyService "github.com/jwalitptl/hospital-records/internal/service/pharmacy"
	"github.com/jwalitptl/hospital-records/pkg/logger"
	"github.com/jwalitptl/hospital-records/pkg/messaging"
	"github.com/jwalitptl/hospital-records/pkg/metrics"
	"github.com/jwalitptl/hospital-records/pkg/validator"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:          "hospital-api",
		Short:        "Hospital records API",
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (default ./config.yaml or ./config/config.yaml)")

	rootCmd.AddCommand(serveCmd(&configPath))
	rootCmd.AddCommand(migrateCmd(&configPath))
	rootCmd.AddCommand(seedCmd(&configPath))

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func serveCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath)
		},
	}
}

func migrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, appLogger, err := bootstrap(*configPath)
			if err != nil {
				return err
			}

			db, err := postgres.NewDB(ctx, cfg.Database)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer db.Close()

			if err := postgres.Migrate(ctx, db); err != nil {
				return err
			}
			appLogger.Info("migrations applied")
			return nil
		},
	}
}

func seedCmd(configPath *string) *cobra.Command {
	var (
		file      string
		bloodBags int
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load fixtures and top up blood stock",
		RunE: func(cmd *cobra.Command, args []string) error {
			if file == "" && bloodBags <= 0 {
				return errors.New("nothing to seed: pass --file and/or --blood-bags")
			}

			ctx := cmd.Context()
			cfg, appLogger, err := bootstrap(*configPath)
			if err != nil {
				return err
			}

			a, err := newApp(ctx, cfg, appLogger, prometheus.NewRegistry())
			if err != nil {
				return err
			}
			defer a.Close()

			seeder := seed.NewSeeder(a.doctors, a.pharmacy, a.blood, appLogger)

			if file != "" {
				fixtures, err := seed.LoadFile(file)
				if err != nil {
					return err
				}
				if _, err := seeder.Apply(ctx, fixtures); err != nil {
					return err
				}
			}

			if bloodBags > 0 {
				totals, err := seeder.BloodStock(ctx, bloodBags)
				if err != nil {
					return err
				}
				for _, t := range totals {
					fmt.Fprintf(cmd.OutOrStdout(), "%-4s %d\n", t.BloodType, t.Bags)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&file, "file", "", "YAML fixtures file")
	cmd.Flags().IntVar(&bloodBags, "blood-bags", 0, "bags to record for every blood type without stock")
	return cmd
}

// bootstrap loads configuration and installs the process logger.
func bootstrap(configPath string) (*config.Config, *logger.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger := logger.NewLogger(&logger.Config{
		Level: logger.ParseLevel(cfg.Log.Level),
		JSON:  cfg.Log.JSON,
	})
	log.Logger = appLogger.Zerolog()

	return cfg, appLogger, nil
}

// app holds the wired store, shared by serve and seed.
type app struct {
	db      *sqlx.DB
	broker  messaging.Broker
	cache   *aggcache.Cache
	metrics *metrics.Metrics

	patients     *patientService.Service
	doctors      *doctorService.Service
	appointments *appointmentService.Service
	pharmacy     *pharmacyService.Service
	blood        *bloodbankService.Service
	dashboard    *dashboardService.Service
}

func newApp(ctx context.Context, cfg *config.Config, appLogger *logger.Logger, reg prometheus.Registerer) (*app, error) {
	db, err := postgres.NewDB(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	broker, err := eventService.NewBroker(ctx, cfg.Events)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to %s broker: %w", cfg.Events.Broker, err)
	}

	m := metrics.New(cfg.Metrics.Namespace, reg)
	cache := aggcache.New(cfg.Cache.TTL, m)
	events := eventService.NewEventService(broker, cfg.Events.ServiceName, appLogger, m)
	v := validator.New()

	// Initialize repositories
	patientRepo := postgres.NewPatientRepository(db, m)
	doctorRepo := postgres.NewDoctorRepository(db, m)
	appointmentRepo := postgres.NewAppointmentRepository(db, m)
	pharmacyRepo := postgres.NewPharmacyRepository(db, m)
	bloodRepo := postgres.NewBloodBankRepository(db, m)
	statsRepo := postgres.NewStatsRepository(db, m)

	return &app{
		db:           db,
		broker:       broker,
		cache:        cache,
		metrics:      m,
		patients:     patientService.NewService(patientRepo, v, cache, events, appLogger, m),
		doctors:      doctorService.NewService(doctorRepo, v, cache, events, appLogger, m),
		appointments: appointmentService.NewService(appointmentRepo, patientRepo, doctorRepo, v, cache, events, appLogger, m),
		pharmacy:     pharmacyService.NewService(pharmacyRepo, v, cache, events, appLogger, m),
		blood:        bloodbankService.NewService(bloodRepo, v, cache, events, appLogger, m),
		dashboard:    dashboardService.NewService(statsRepo, cache),
	}, nil
}

func (a *app) Close() {
	if err := a.broker.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close broker")
	}
	if err := a.db.Close(); err != nil {
		log.Error().Err(err).Msg("failed to close database")
	}
}

func runServer(ctx context.Context, configPath string) error {
	cfg, appLogger, err := bootstrap(configPath)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	a, err := newApp(ctx, cfg, appLogger, reg)
	if err != nil {
		return err
	}
	defer a.Close()

	if cfg.BloodBank.SeedOnStart {
		totals, err := a.blood.SeedBloodStock(ctx, cfg.BloodBank.SeedBags)
		if err != nil {
			return fmt.Errorf("failed to seed blood stock: %w", err)
		}
		appLogger.Info("blood stock seeded on start", "bags", cfg.BloodBank.SeedBags, "types", len(totals))
	}

	// Writes made by other processes reach this cache as record events
	followCtx, stopFollow := context.WithCancel(ctx)
	defer stopFollow()
	if sub, ok := a.broker.(messaging.Subscriber); ok && cfg.Events.Broker != "none" {
		go func() {
			if err := aggcache.Follow(followCtx, a.cache, sub, appLogger); err != nil {
				appLogger.Error(err, "aggregate cache stopped following record events")
			}
		}()
	}

	// Initialize handlers
	h := handler.NewHandler(a.db, reg)

	r := router.NewRouter(h, router.RouterConfig{
		Mode:             cfg.Server.Mode,
		RateLimitEnabled: cfg.RateLimit.Enabled,
		RateLimit:        rate.Limit(cfg.RateLimit.RequestsPerSecond),
		RateBurst:        cfg.RateLimit.Burst,
		CORSConfig:       middleware.DefaultCORSConfig(cfg.Security.AllowedOrigins),
		MaxBodySize:      cfg.Server.MaxBodyBytes,
		MaxHeaderSize:    cfg.Server.MaxHeaderBytes,
		RequestTimeout:   cfg.Server.RequestTimeout,
		MetricsPrefix:    cfg.Metrics.Namespace,
		MetricsPath:      cfg.Metrics.Path,
		Registerer:       reg,
	},
		patientHandler.NewHandler(a.patients),
		doctorHandler.NewHandler(a.doctors),
		appointmentHandler.NewHandler(a.appointments),
		pharmacyHandler.NewHandler(a.pharmacy),
		bloodbankHandler.NewHandler(a.blood, cfg.BloodBank.SeedBags),
		dashboardHandler.NewHandler(a.dashboard),
	)
	r.Setup()

	srv := &http.Server{
		Addr:           fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:        r.Engine(),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
	}

	serverErr := make(chan error, 1)
	go func() {
		appLogger.Info("server listening", "addr", srv.Addr, "events", cfg.Events.Broker)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}
	appLogger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	appLogger.Info("server exited properly")
	return nil
}
