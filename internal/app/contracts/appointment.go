package contracts

import (
	"context"
	"tokenbook-service/internal/app/models"
	"tokenbook-service/internal/pkg/dto/requests"
	"tokenbook-service/internal/pkg/dto/responses"
)

type AppointmentRepository interface {
	CreateAppointment(ctx context.Context, appointment *models.Appointment) (string, error)
	FindByID(ctx context.Context, appointmentID string) (*models.Appointment, error)
	// FindActiveByClaim resolves the non-cancelled appointment holding the
	// (doctor, date, slot start, token) tuple, or nil.
	FindActiveByClaim(ctx context.Context, doctorID, date, slotStart string, tokenNumber int) (*models.Appointment, error)
	UpdateStatus(ctx context.Context, appointmentID string, status models.AppointmentStatus, doctorNotes string) error
}

// AppointmentProjection materializes a confirmed token claim into an
// appointment record and notifies downstream consumers.
type AppointmentProjection interface {
	Project(ctx context.Context, input ProjectAppointmentInput) (*models.Appointment, error)
}

type ProjectAppointmentInput struct {
	PatientID   string
	DoctorID    string
	Date        string
	SlotStart   string
	SlotEnd     string
	TokenNumber int
	Type        models.AppointmentType
	Notes       string
}

type AppointmentUsecase interface {
	FindByID(ctx context.Context, session *models.Session, appointmentID string) (*responses.Appointment, error)
	UpdateStatus(ctx context.Context, session *models.Session, appointmentID string, request *requests.UpdateAppointmentStatusRequest) (*responses.Appointment, error)
}
