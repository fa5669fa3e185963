package model

type BloodType string

const (
	BloodTypeAPos  BloodType = "A+"
	BloodTypeANeg  BloodType = "A-"
	BloodTypeBPos  BloodType = "B+"
	BloodTypeBNeg  BloodType = "B-"
	BloodTypeABPos BloodType = "AB+"
	BloodTypeABNeg BloodType = "AB-"
	BloodTypeOPos  BloodType = "O+"
	BloodTypeONeg  BloodType = "O-"
)

// BloodTypes lists every blood type in canonical order.
var BloodTypes = []BloodType{
	BloodTypeAPos, BloodTypeANeg,
	BloodTypeBPos, BloodTypeBNeg,
	BloodTypeABPos, BloodTypeABNeg,
	BloodTypeOPos, BloodTypeONeg,
}

func (t BloodType) Valid() bool {
	return t.Rank() >= 0
}

// Rank is the position of t in BloodTypes, or -1.
func (t BloodType) Rank() int {
	for i, bt := range BloodTypes {
		if bt == t {
			return i
		}
	}
	return -1
}

type BloodDonation struct {
	Base
	Donor     string    `db:"donor" json:"donor,omitempty"`
	BloodType BloodType `db:"blood_type" json:"blood_type"`
	Bags      int       `db:"bags" json:"bags"`
}

type RecordDonationRequest struct {
	Donor     string    `json:"donor,omitempty"`
	BloodType BloodType `json:"blood_type" validate:"required"`
	Bags      int       `json:"bags"`
}

// BloodTypeTotal is the number of bags held for one blood type.
type BloodTypeTotal struct {
	BloodType BloodType `db:"blood_type" json:"blood_type"`
	Bags      int64     `db:"bags" json:"bags"`
}

type SeedBloodStockRequest struct {
	Bags int `json:"bags"`
}
