package model

type DoctorStatus string

const (
	DoctorStatusAvailable DoctorStatus = "available"
	DoctorStatusBusy      DoctorStatus = "busy"
	DoctorStatusOnLeave   DoctorStatus = "on_leave"
)

func (s DoctorStatus) Valid() bool {
	switch s {
	case DoctorStatusAvailable, DoctorStatusBusy, DoctorStatusOnLeave:
		return true
	}
	return false
}

type Doctor struct {
	Base
	Name      string       `db:"name" json:"name"`
	Specialty string       `db:"specialty" json:"specialty"`
	Status    DoctorStatus `db:"status" json:"status"`
}

type CreateDoctorRequest struct {
	Name      string       `json:"name" validate:"required"`
	Specialty string       `json:"specialty" validate:"required"`
	Status    DoctorStatus `json:"status,omitempty" validate:"omitempty,oneof=available busy on_leave"`
}

type UpdateDoctorStatusRequest struct {
	Status DoctorStatus `json:"status" validate:"required,oneof=available busy on_leave"`
}
