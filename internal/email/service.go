package email

import (
	"bytes"
	"context"
	"fmt"
	"text/template"

	"gopkg.in/gomail.v2"

	"github.com/jwalitptl/hospital-records/internal/model"
)

// Service delivers stock reports to the configured recipients.
type Service interface {
	SendStockReport(ctx context.Context, report *model.StockReport) error
}

// Dialer is satisfied by *gomail.Dialer.
type Dialer interface {
	DialAndSend(m ...*gomail.Message) error
}

type Config struct {
	Host       string
	Port       int
	Username   string
	Password   string
	From       string
	Recipients []string
}

type SMTPService struct {
	dialer     Dialer
	from       string
	recipients []string
}

func NewSMTPService(cfg Config) *SMTPService {
	return NewSMTPServiceWithDialer(gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password), cfg.From, cfg.Recipients)
}

func NewSMTPServiceWithDialer(d Dialer, from string, recipients []string) *SMTPService {
	return &SMTPService{
		dialer:     d,
		from:       from,
		recipients: recipients,
	}
}

func (s *SMTPService) SendStockReport(ctx context.Context, report *model.StockReport) error {
	if len(s.recipients) == 0 {
		return fmt.Errorf("no recipients configured")
	}

	body, err := RenderStockReport(report)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", s.recipients...)
	m.SetHeader("Subject", Subject(report))
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send stock report: %w", err)
	}
	return nil
}

// Subject summarises the report in one line.
func Subject(report *model.StockReport) string {
	return fmt.Sprintf("Low stock report %s: %d pharmacy, %d blood",
		report.GeneratedAt.Format("2006-01-02"), len(report.LowPharmacy), len(report.LowBlood))
}

var stockReportTmpl = template.Must(template.New("stock_report").Parse(`Stock report generated {{ .GeneratedAt.Format "2006-01-02 15:04 MST" }}

Pharmacy items below {{ .PharmacyThreshold }}:
{{- range .LowPharmacy }}
  - {{ .Name }} (#{{ .ID }}): {{ .Quantity }} left
{{- else }}
  none
{{- end }}

Blood types below {{ .BloodThreshold }} bags:
{{- range .LowBlood }}
  - {{ .BloodType }}: {{ .Bags }} bags
{{- else }}
  none
{{- end }}
`))

// RenderStockReport renders the plain text email body.
func RenderStockReport(report *model.StockReport) (string, error) {
	var buf bytes.Buffer
	if err := stockReportTmpl.Execute(&buf, report); err != nil {
		return "", fmt.Errorf("failed to render stock report: %w", err)
	}
	return buf.String(), nil
}
