package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/jwalitptl/hospital-records/internal/config"
	"github.com/jwalitptl/hospital-records/internal/email"
	"github.com/jwalitptl/hospital-records/internal/handler"
	"github.com/jwalitptl/hospital-records/internal/middleware"
	"github.com/jwalitptl/hospital-records/internal/repository/postgres"
	eventService "github.com/jwalitptl/hospital-records/internal/service/event"
	"github.com/jwalitptl/hospital-records/internal/service/stock"
	"github.com/jwalitptl/hospital-records/internal/worker"
	"github.com/jwalitptl/hospital-records/pkg/logger"
	"github.com/jwalitptl/hospital-records/pkg/metrics"
)

func main() {
	var (
		configPath string
		once       bool
	)

	rootCmd := &cobra.Command{
		Use:          "hospital-worker",
		Short:        "Scheduled low stock reporter",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), configPath, once)
		},
	}
	rootCmd.Flags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.Flags().BoolVar(&once, "once", false, "build a single report and exit")

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string, once bool) error {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	workerCfg, err := config.LoadWorkerConfig()
	if err != nil {
		return err
	}

	appLogger := logger.NewLogger(&logger.Config{
		Level: logger.ParseLevel(cfg.Log.Level),
		JSON:  cfg.Log.JSON,
	}).WithFields(map[string]interface{}{"component": "stock_reporter"})
	log.Logger = appLogger.Zerolog()

	db, err := postgres.NewDB(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	broker, err := eventService.NewBroker(ctx, cfg.Events)
	if err != nil {
		return fmt.Errorf("failed to connect to %s broker: %w", cfg.Events.Broker, err)
	}
	defer broker.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	m := metrics.New(cfg.Metrics.Namespace, reg)

	var mailer email.Service
	if workerCfg.EmailEnabled() {
		mailer = email.NewSMTPService(email.Config{
			Host:       workerCfg.SMTPHost,
			Port:       workerCfg.SMTPPort,
			Username:   workerCfg.SMTPUser,
			Password:   workerCfg.SMTPPassword,
			From:       workerCfg.From,
			Recipients: workerCfg.Recipients,
		})
	} else {
		appLogger.Info("email delivery disabled: set WORKER_SMTP_HOST and WORKER_RECIPIENTS to enable")
	}

	reports := stock.NewService(
		postgres.NewPharmacyRepository(db, m),
		postgres.NewBloodBankRepository(db, m),
	)
	events := eventService.NewEventService(broker, cfg.Events.ServiceName, appLogger, m)

	reporter := worker.NewStockReporter(reports, events, mailer, appLogger, m, worker.StockReporterConfig{
		Schedule:          workerCfg.Schedule,
		PharmacyThreshold: workerCfg.PharmacyThreshold,
		BloodThreshold:    workerCfg.BloodThreshold,
	})

	if once {
		_, err := reporter.RunOnce(ctx)
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if workerCfg.HealthAddr != "" {
		srv := healthServer(workerCfg.HealthAddr, handler.NewHandler(db, reg))
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				appLogger.Error(err, "health check server failed")
				cancel()
			}
		}()
		defer srv.Close()
	}

	// Handle shutdown signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		select {
		case <-sigChan:
			appLogger.Info("shutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	return reporter.Start(ctx)
}

func healthServer(addr string, h *handler.Handler) *http.Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(middleware.Recovery())

	h.RegisterRoutes(&engine.RouterGroup)
	engine.GET("/metrics", h.MetricsHandler())

	return &http.Server{Addr: addr, Handler: engine}
}
