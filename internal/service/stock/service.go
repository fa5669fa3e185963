package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/jwalitptl/hospital-records/internal/model"
	"github.com/jwalitptl/hospital-records/internal/repository"
)

// Service builds low stock reports.
type Service struct {
	pharmacyRepo repository.PharmacyRepository
	bloodRepo    repository.BloodBankRepository
	now          func() time.Time
}

func NewService(pharmacyRepo repository.PharmacyRepository, bloodRepo repository.BloodBankRepository) *Service {
	return &Service{
		pharmacyRepo: pharmacyRepo,
		bloodRepo:    bloodRepo,
		now:          time.Now,
	}
}

// Report lists pharmacy items with quantity below pharmacyThreshold and
// blood types holding fewer than bloodThreshold bags. Types with no
// donations at all count as zero.
func (s *Service) Report(ctx context.Context, pharmacyThreshold, bloodThreshold int64) (*model.StockReport, error) {
	items, err := s.pharmacyRepo.ListBelowQuantity(ctx, pharmacyThreshold)
	if err != nil {
		return nil, fmt.Errorf("failed to list low pharmacy stock: %w", err)
	}

	totals, err := s.bloodRepo.Totals(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read blood stock: %w", err)
	}

	bags := make(map[model.BloodType]int64, len(totals))
	for _, t := range totals {
		bags[t.BloodType] = t.Bags
	}

	lowBlood := make([]*model.BloodTypeTotal, 0)
	for _, bt := range model.BloodTypes {
		if bags[bt] < bloodThreshold {
			lowBlood = append(lowBlood, &model.BloodTypeTotal{BloodType: bt, Bags: bags[bt]})
		}
	}

	return &model.StockReport{
		GeneratedAt:       s.now().UTC(),
		PharmacyThreshold: pharmacyThreshold,
		BloodThreshold:    bloodThreshold,
		LowPharmacy:       items,
		LowBlood:          lowBlood,
	}, nil
}
