package model

type Patient struct {
	Base
	Name  string `db:"name" json:"name"`
	Age   *int   `db:"age" json:"age,omitempty"`
	Phone string `db:"phone" json:"phone"`
}

type CreatePatientRequest struct {
	Name  string `json:"name" validate:"required"`
	Age   *int   `json:"age,omitempty" validate:"omitempty,min=1,max=120"`
	Phone string `json:"phone" validate:"required"`
}

// PatientFilters narrows a patient listing. An empty Query matches everything.
type PatientFilters struct {
	Query string
}
