package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type AppointmentType string

const (
	AppointmentTypeConsultation AppointmentType = "consultation"
	AppointmentTypeCheckup      AppointmentType = "checkup"
	AppointmentTypeFollowUp     AppointmentType = "follow-up"
)

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// CanTransitionTo encodes the doctor-facing workflow:
// scheduled -> confirmed -> completed, with cancellation possible until the
// appointment is completed.
func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	switch s {
	case AppointmentStatusScheduled:
		return next == AppointmentStatusConfirmed || next == AppointmentStatusCancelled
	case AppointmentStatusConfirmed:
		return next == AppointmentStatusCompleted || next == AppointmentStatusCancelled
	default:
		return false
	}
}

// Appointment is the projection of a successful token claim. The tuple
// (doctor_id, date, slot_start, token_number) is held by at most one
// non-cancelled appointment.
type Appointment struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PatientID   string             `bson:"patient_id" json:"patient_id"`
	DoctorID    string             `bson:"doctor_id" json:"doctor_id"`
	Datetime    time.Time          `bson:"datetime" json:"datetime"`
	Date        string             `bson:"date" json:"date"`
	SlotStart   string             `bson:"slot_start" json:"slot_start"`
	SlotEnd     string             `bson:"slot_end" json:"slot_end"`
	TokenNumber int                `bson:"token_number" json:"token_number"`
	Type        AppointmentType    `bson:"type" json:"type"`
	Status      AppointmentStatus  `bson:"status" json:"status"`
	Notes       string             `bson:"notes,omitempty" json:"notes,omitempty"`
	DoctorNotes string             `bson:"doctor_notes,omitempty" json:"doctor_notes,omitempty"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at" json:"updated_at"`
}
