package email

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/jwalitptl/hospital-records/internal/model"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	if d.err != nil {
		return d.err
	}
	d.sent = append(d.sent, m...)
	return nil
}

func sampleReport() *model.StockReport {
	return &model.StockReport{
		GeneratedAt:       time.Date(2024, 5, 1, 6, 0, 0, 0, time.UTC),
		PharmacyThreshold: 10,
		BloodThreshold:    5,
		LowPharmacy: []*model.PharmacyItem{
			{Base: model.Base{ID: 3}, Name: "Insulin", Quantity: 2},
		},
		LowBlood: []*model.BloodTypeTotal{
			{BloodType: model.BloodTypeONeg, Bags: 0},
		},
	}
}

func TestRenderStockReport(t *testing.T) {
	body, err := RenderStockReport(sampleReport())
	require.NoError(t, err)

	assert.Contains(t, body, "Stock report generated 2024-05-01 06:00 UTC")
	assert.Contains(t, body, "Pharmacy items below 10:")
	assert.Contains(t, body, "  - Insulin (#3): 2 left")
	assert.Contains(t, body, "Blood types below 5 bags:")
	assert.Contains(t, body, "  - O-: 0 bags")
}

func TestRenderStockReportEmptySections(t *testing.T) {
	report := sampleReport()
	report.LowPharmacy = nil
	report.LowBlood = nil

	body, err := RenderStockReport(report)
	require.NoError(t, err)
	assert.Contains(t, body, "Pharmacy items below 10:\n  none")
	assert.Contains(t, body, "Blood types below 5 bags:\n  none")
}

func TestSendStockReport(t *testing.T) {
	d := &fakeDialer{}
	svc := NewSMTPServiceWithDialer(d, "reports@hospital.local", []string{"a@hospital.local", "b@hospital.local"})

	require.NoError(t, svc.SendStockReport(context.Background(), sampleReport()))
	require.Len(t, d.sent, 1)

	m := d.sent[0]
	assert.Equal(t, []string{"reports@hospital.local"}, m.GetHeader("From"))
	assert.Equal(t, []string{"a@hospital.local", "b@hospital.local"}, m.GetHeader("To"))
	assert.Equal(t, []string{"Low stock report 2024-05-01: 1 pharmacy, 1 blood"}, m.GetHeader("Subject"))
}

func TestSendStockReportErrors(t *testing.T) {
	t.Run("dialer failure", func(t *testing.T) {
		svc := NewSMTPServiceWithDialer(&fakeDialer{err: errors.New("connection refused")}, "x@y", []string{"a@b"})
		err := svc.SendStockReport(context.Background(), sampleReport())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "connection refused")
	})

	t.Run("no recipients", func(t *testing.T) {
		d := &fakeDialer{}
		svc := NewSMTPServiceWithDialer(d, "x@y", nil)
		assert.Error(t, svc.SendStockReport(context.Background(), sampleReport()))
		assert.Empty(t, d.sent)
	})

	t.Run("cancelled context", func(t *testing.T) {
		d := &fakeDialer{}
		svc := NewSMTPServiceWithDialer(d, "x@y", []string{"a@b"})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		assert.ErrorIs(t, svc.SendStockReport(ctx, sampleReport()), context.Canceled)
		assert.Empty(t, d.sent)
	})
}
