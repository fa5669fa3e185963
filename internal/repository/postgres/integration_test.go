package postgres

import (
	"os"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-records/internal/model"
)

// liveDB connects to HOSPITAL_TEST_DSN, migrates and empties every table.
// The tests using it are skipped when the variable is unset.
func liveDB(t *testing.T) *sqlx.DB {
	t.Helper()

	dsn := os.Getenv("HOSPITAL_TEST_DSN")
	if dsn == "" {
		t.Skip("HOSPITAL_TEST_DSN not set")
	}

	db, err := sqlx.Connect("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, Migrate(t.Context(), db))
	_, err = db.ExecContext(t.Context(),
		`TRUNCATE appointments, patients, doctors, pharmacy_items, blood_donations RESTART IDENTITY CASCADE`)
	require.NoError(t, err)
	return db
}

func TestLive_BloodTotalsSumBags(t *testing.T) {
	db := liveDB(t)
	repo := NewBloodBankRepository(db, nil)

	for _, d := range []model.BloodDonation{
		{BloodType: model.BloodTypeAPos, Bags: 2},
		{BloodType: model.BloodTypeAPos, Bags: 3},
		{BloodType: model.BloodTypeOPos, Bags: 1},
	} {
		require.NoError(t, repo.Create(t.Context(), &d))
	}

	totals, err := repo.Totals(t.Context())
	require.NoError(t, err)
	assert.Equal(t, []*model.BloodTypeTotal{
		{BloodType: model.BloodTypeAPos, Bags: 5},
		{BloodType: model.BloodTypeOPos, Bags: 1},
	}, totals)
}

func TestLive_InventoryValuation(t *testing.T) {
	db := liveDB(t)
	repo := NewPharmacyRepository(db, nil)

	empty, err := repo.Valuation(t.Context())
	require.NoError(t, err)
	assert.Zero(t, empty.TotalValue)

	require.NoError(t, repo.Create(t.Context(), &model.PharmacyItem{Name: "Paracetamol", Price: 10, Quantity: 3}))
	require.NoError(t, repo.Create(t.Context(), &model.PharmacyItem{Name: "Ibuprofen", Price: 5, Quantity: 2}))

	v, err := repo.Valuation(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 40.0, v.TotalValue)
	assert.Equal(t, int64(2), v.Items)
}

func TestLive_PatientIDsIncreaseAndSearchIgnoresCase(t *testing.T) {
	db := liveDB(t)
	repo := NewPatientRepository(db, nil)

	var lastID int64
	for _, name := range []string{"Ali", "ali", "Walid", "Sara"} {
		p := &model.Patient{Name: name, Phone: "0100"}
		require.NoError(t, repo.Create(t.Context(), p))
		assert.Greater(t, p.ID, lastID)
		lastID = p.ID
	}

	found, err := repo.List(t.Context(), &model.PatientFilters{Query: "ali"})
	require.NoError(t, err)

	names := make([]string, 0, len(found))
	for _, p := range found {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"ali", "Ali"}, names)

	literal, err := repo.List(t.Context(), &model.PatientFilters{Query: "%"})
	require.NoError(t, err)
	assert.Empty(t, literal)
}

func TestLive_AppointmentsFilterByExactDate(t *testing.T) {
	db := liveDB(t)
	patients := NewPatientRepository(db, nil)
	doctors := NewDoctorRepository(db, nil)
	appointments := NewAppointmentRepository(db, nil)

	p := &model.Patient{Name: "Ali", Phone: "0100"}
	require.NoError(t, patients.Create(t.Context(), p))
	d := &model.Doctor{Name: "Dr. Sara", Specialty: "cardiology", Status: model.DoctorStatusAvailable}
	require.NoError(t, doctors.Create(t.Context(), d))

	for _, date := range []string{"2024-05-01", "2024-05-02", "2024-05-01"} {
		require.NoError(t, appointments.Create(t.Context(), &model.Appointment{
			PatientID: p.ID, PatientName: p.Name,
			DoctorID: d.ID, DoctorName: d.Name,
			Date: date, Time: "09:30",
		}))
	}

	got, err := appointments.List(t.Context(), &model.AppointmentFilters{Date: "2024-05-01"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, a := range got {
		assert.Equal(t, "2024-05-01", a.Date)
	}

	none, err := appointments.List(t.Context(), &model.AppointmentFilters{Date: "2024-5-1"})
	require.NoError(t, err)
	assert.Empty(t, none)
}
