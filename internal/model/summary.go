package model

import "time"

// DashboardSummary holds the record counts shown on the overview tab.
type DashboardSummary struct {
	Patients     int64 `db:"patients" json:"patients"`
	Doctors      int64 `db:"doctors" json:"doctors"`
	Appointments int64 `db:"appointments" json:"appointments"`
	Medicines    int64 `db:"medicines" json:"medicines"`
}

// StockReport lists pharmacy items and blood types that fell below their
// thresholds at GeneratedAt.
type StockReport struct {
	GeneratedAt       time.Time         `json:"generated_at"`
	PharmacyThreshold int64             `json:"pharmacy_threshold"`
	BloodThreshold    int64             `json:"blood_threshold"`
	LowPharmacy       []*PharmacyItem   `json:"low_pharmacy"`
	LowBlood          []*BloodTypeTotal `json:"low_blood"`
}

func (r *StockReport) Empty() bool {
	return len(r.LowPharmacy) == 0 && len(r.LowBlood) == 0
}
