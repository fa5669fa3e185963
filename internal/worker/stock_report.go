package worker

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"

	"github.com/jwalitptl/hospital-records/internal/email"
	"github.com/jwalitptl/hospital-records/internal/model"
	"github.com/jwalitptl/hospital-records/internal/service/event"
	"github.com/jwalitptl/hospital-records/pkg/logger"
	"github.com/jwalitptl/hospital-records/pkg/metrics"
)

// Reporter is implemented by stock.Service.
type Reporter interface {
	Report(ctx context.Context, pharmacyThreshold, bloodThreshold int64) (*model.StockReport, error)
}

type StockReporterConfig struct {
	Schedule          string
	PharmacyThreshold int64
	BloodThreshold    int64
}

// StockReporter builds a low stock report on a cron schedule, publishes it
// and mails it when a mailer is set.
type StockReporter struct {
	reports Reporter
	events  event.Emitter
	mailer  email.Service
	logger  *logger.Logger
	metrics *metrics.Metrics
	config  StockReporterConfig
}

// NewStockReporter creates the worker. mailer may be nil.
func NewStockReporter(
	reports Reporter,
	events event.Emitter,
	mailer email.Service,
	log *logger.Logger,
	m *metrics.Metrics,
	config StockReporterConfig,
) *StockReporter {
	if events == nil {
		events = event.Nop()
	}
	if log == nil {
		log = logger.Nop()
	}
	if config.Schedule == "" {
		config.Schedule = "@daily"
	}
	return &StockReporter{
		reports: reports,
		events:  events,
		mailer:  mailer,
		logger:  log,
		metrics: m,
		config:  config,
	}
}

// RunOnce builds and publishes a single report. A report with nothing below
// threshold is not mailed.
func (w *StockReporter) RunOnce(ctx context.Context) (*model.StockReport, error) {
	report, err := w.reports.Report(ctx, w.config.PharmacyThreshold, w.config.BloodThreshold)
	if err != nil {
		w.metrics.StockReport(0, 0, err)
		return nil, fmt.Errorf("failed to build stock report: %w", err)
	}
	w.metrics.StockReport(len(report.LowPharmacy), len(report.LowBlood), nil)
	w.events.Emit(ctx, event.StockReportGenerated, report)

	if report.Empty() {
		w.logger.Info("stock levels above thresholds",
			"pharmacy_threshold", report.PharmacyThreshold,
			"blood_threshold", report.BloodThreshold,
		)
		return report, nil
	}

	w.logger.Warn("low stock detected",
		"low_pharmacy", len(report.LowPharmacy),
		"low_blood", len(report.LowBlood),
	)

	if w.mailer != nil {
		if err := w.mailer.SendStockReport(ctx, report); err != nil {
			return report, err
		}
		w.logger.Info("stock report mailed")
	}
	return report, nil
}

// Start runs the report on the configured schedule until ctx is done, then
// waits for a running report to finish.
func (w *StockReporter) Start(ctx context.Context) error {
	c := cron.New()

	_, err := c.AddFunc(w.config.Schedule, func() {
		if _, err := w.RunOnce(ctx); err != nil {
			w.logger.Error(err, "stock report run failed")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid schedule %q: %w", w.config.Schedule, err)
	}

	c.Start()
	w.logger.Info("stock reporter started", "schedule", w.config.Schedule)

	<-ctx.Done()
	<-c.Stop().Done()
	w.logger.Info("stock reporter stopped")
	return nil
}
