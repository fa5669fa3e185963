package model

// Layouts for the literal date and time strings stored on an appointment.
const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Appointment links a patient and a doctor at a date and time. The names are
// copied from the referenced records at booking time.
type Appointment struct {
	Base
	PatientID   int64  `db:"patient_id" json:"patient_id"`
	PatientName string `db:"patient_name" json:"patient_name"`
	DoctorID    int64  `db:"doctor_id" json:"doctor_id"`
	DoctorName  string `db:"doctor_name" json:"doctor_name"`
	Date        string `db:"appt_date" json:"date"`
	Time        string `db:"appt_time" json:"time"`
}

// BookAppointmentRequest references the patient and doctor either by id or,
// when the id is zero, by exact name.
type BookAppointmentRequest struct {
	PatientID   int64  `json:"patient_id,omitempty" validate:"omitempty,min=1"`
	PatientName string `json:"patient_name,omitempty" validate:"required_without=PatientID"`
	DoctorID    int64  `json:"doctor_id,omitempty" validate:"omitempty,min=1"`
	DoctorName  string `json:"doctor_name,omitempty" validate:"required_without=DoctorID"`
	Date        string `json:"date" validate:"required,datetime=2006-01-02"`
	Time        string `json:"time" validate:"required,datetime=15:04"`
}

// AppointmentFilters narrows an appointment listing. Date is compared with
// plain string equality; empty means no filter.
type AppointmentFilters struct {
	Date string
}
