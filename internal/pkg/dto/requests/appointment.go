package requests

type BookAppointmentRequest struct {
	DoctorID    string `json:"doctorId" validate:"required"`
	Date        string `json:"date" validate:"required,iso_date"`
	StartTime   string `json:"startTime" validate:"required,wall_clock"`
	EndTime     string `json:"endTime" validate:"required,wall_clock"`
	TokenNumber int    `json:"tokenNumber" validate:"required,gte=1"`
	PatientID   string `json:"patientId"`
	Type        string `json:"type" validate:"required,appointment_type"`
	Notes       string `json:"notes"`
}

type UpdateAppointmentStatusRequest struct {
	Status      string `json:"status" validate:"required,oneof=confirmed completed cancelled"`
	DoctorNotes string `json:"doctorNotes"`
}
