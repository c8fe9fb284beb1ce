package responses

import "time"

type Appointment struct {
	ID          string    `json:"id"`
	PatientID   string    `json:"patientId"`
	DoctorID    string    `json:"doctorId"`
	Datetime    time.Time `json:"datetime"`
	Date        string    `json:"date"`
	StartTime   string    `json:"startTime"`
	EndTime     string    `json:"endTime"`
	TokenNumber int       `json:"tokenNumber"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	Notes       string    `json:"notes,omitempty"`
	DoctorNotes string    `json:"doctorNotes,omitempty"`
}
