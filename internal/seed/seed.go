package seed

import (
	"context"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/jwalitptl/hospital-records/internal/model"
	"github.com/jwalitptl/hospital-records/pkg/logger"
)

// Fixtures is the YAML layout accepted by `hospital-api seed --file`.
//
//	doctors:
//	  - {name: Dr. Sara, specialty: cardiology}
//	pharmacy_items:
//	  - {name: Paracetamol, price: 2.5, quantity: 100}
//	blood_stock:
//	  - {blood_type: O-, bags: 4, donor: Red Crescent}
//	blood_bags: 10
type Fixtures struct {
	Doctors       []DoctorFixture       `yaml:"doctors"`
	PharmacyItems []PharmacyItemFixture `yaml:"pharmacy_items"`
	BloodStock    []BloodStockFixture   `yaml:"blood_stock"`
	// BloodBags, when positive, tops up every blood type without stock.
	BloodBags int `yaml:"blood_bags"`
}

type DoctorFixture struct {
	Name      string `yaml:"name"`
	Specialty string `yaml:"specialty"`
	Status    string `yaml:"status"`
}

type PharmacyItemFixture struct {
	Name     string  `yaml:"name"`
	Price    float64 `yaml:"price"`
	Quantity int64   `yaml:"quantity"`
}

type BloodStockFixture struct {
	BloodType string `yaml:"blood_type"`
	Bags      int    `yaml:"bags"`
	Donor     string `yaml:"donor"`
}

type DoctorAdder interface {
	AddDoctor(ctx context.Context, req *model.CreateDoctorRequest) (*model.Doctor, error)
}

type PharmacyAdder interface {
	AddPharmacyItem(ctx context.Context, req *model.CreatePharmacyItemRequest) (*model.PharmacyItem, error)
}

type BloodStocker interface {
	RecordBloodDonation(ctx context.Context, req *model.RecordDonationRequest) (*model.BloodDonation, error)
	SeedBloodStock(ctx context.Context, bags int) ([]*model.BloodTypeTotal, error)
}

// Result counts the records a seed run created.
type Result struct {
	Doctors        int
	PharmacyItems  int
	BloodDonations int
	BloodTotals    []*model.BloodTypeTotal
}

// Seeder applies fixtures through the service layer, so every record is
// validated exactly as an API request would be.
type Seeder struct {
	doctors  DoctorAdder
	pharmacy PharmacyAdder
	blood    BloodStocker
	logger   *logger.Logger
}

func NewSeeder(doctors DoctorAdder, pharmacy PharmacyAdder, blood BloodStocker, log *logger.Logger) *Seeder {
	if log == nil {
		log = logger.Nop()
	}
	return &Seeder{
		doctors:  doctors,
		pharmacy: pharmacy,
		blood:    blood,
		logger:   log,
	}
}

// Parse decodes fixtures, rejecting unknown keys.
func Parse(r io.Reader) (*Fixtures, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f Fixtures
	if err := dec.Decode(&f); err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	return &f, nil
}

func LoadFile(path string) (*Fixtures, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open fixtures: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// Apply inserts f in order: doctors, pharmacy items, blood donations, then
// the blood stock top-up. It stops at the first rejected record.
func (s *Seeder) Apply(ctx context.Context, f *Fixtures) (*Result, error) {
	res := &Result{}

	for i, d := range f.Doctors {
		_, err := s.doctors.AddDoctor(ctx, &model.CreateDoctorRequest{
			Name:      d.Name,
			Specialty: d.Specialty,
			Status:    model.DoctorStatus(d.Status),
		})
		if err != nil {
			return res, fmt.Errorf("doctors[%d]: %w", i, err)
		}
		res.Doctors++
	}

	for i, p := range f.PharmacyItems {
		_, err := s.pharmacy.AddPharmacyItem(ctx, &model.CreatePharmacyItemRequest{
			Name:     p.Name,
			Price:    p.Price,
			Quantity: p.Quantity,
		})
		if err != nil {
			return res, fmt.Errorf("pharmacy_items[%d]: %w", i, err)
		}
		res.PharmacyItems++
	}

	for i, b := range f.BloodStock {
		_, err := s.blood.RecordBloodDonation(ctx, &model.RecordDonationRequest{
			Donor:     b.Donor,
			BloodType: model.BloodType(b.BloodType),
			Bags:      b.Bags,
		})
		if err != nil {
			return res, fmt.Errorf("blood_stock[%d]: %w", i, err)
		}
		res.BloodDonations++
	}

	if f.BloodBags > 0 {
		totals, err := s.blood.SeedBloodStock(ctx, f.BloodBags)
		if err != nil {
			return res, fmt.Errorf("blood_bags: %w", err)
		}
		res.BloodTotals = totals
	}

	s.logger.Info("fixtures applied",
		"doctors", res.Doctors,
		"pharmacy_items", res.PharmacyItems,
		"blood_donations", res.BloodDonations,
	)
	return res, nil
}

// BloodStock runs only the blood stock top-up.
func (s *Seeder) BloodStock(ctx context.Context, bags int) ([]*model.BloodTypeTotal, error) {
	totals, err := s.blood.SeedBloodStock(ctx, bags)
	if err != nil {
		return nil, fmt.Errorf("failed to seed blood stock: %w", err)
	}
	s.logger.Info("blood stock seeded", "bags", bags, "types", len(totals))
	return totals, nil
}
