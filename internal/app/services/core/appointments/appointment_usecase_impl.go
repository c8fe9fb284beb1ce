package appointments

import (
	"context"
	"sync"
	"tokenbook-service/internal/app/contracts"
	"tokenbook-service/internal/app/models"
	"tokenbook-service/internal/pkg/constvars"
	"tokenbook-service/internal/pkg/dto/requests"
	"tokenbook-service/internal/pkg/dto/responses"
	"tokenbook-service/internal/pkg/exceptions"

	"go.uber.org/zap"
)

type appointmentUsecase struct {
	AppointmentRepository contracts.AppointmentRepository
	Log                   *zap.Logger
}

var (
	appointmentUsecaseInstance contracts.AppointmentUsecase
	onceAppointmentUsecase     sync.Once
)

func NewAppointmentUsecase(
	appointmentRepository contracts.AppointmentRepository,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	onceAppointmentUsecase.Do(func() {
		instance := &appointmentUsecase{
			AppointmentRepository: appointmentRepository,
			Log:                   logger,
		}
		appointmentUsecaseInstance = instance
	})
	return appointmentUsecaseInstance
}

func (uc *appointmentUsecase) FindByID(ctx context.Context, session *models.Session, appointmentID string) (*responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.FindByID error fetching appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(nil)
	}

	if session.IsPatient() && appointment.PatientID != session.PatientID {
		uc.Log.Warn("appointmentUsecase.FindByID patient requested another patient's appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		)
		return nil, exceptions.ErrAppointmentNotFound(nil)
	}

	response := buildAppointmentResponse(appointment)
	return &response, nil
}

// UpdateStatus drives the doctor-facing workflow. A claimed token is not
// returned to the free pool on cancellation: token numbers are positional
// and reusing them would shift the meaning of already-issued claims.
func (uc *appointmentUsecase) UpdateStatus(ctx context.Context, session *models.Session, appointmentID string, request *requests.UpdateAppointmentStatusRequest) (*responses.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.UpdateStatus called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String("next_status", request.Status),
	)

	appointment, err := uc.AppointmentRepository.FindByID(ctx, appointmentID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.UpdateStatus error fetching appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if appointment == nil {
		return nil, exceptions.ErrAppointmentNotFound(nil)
	}

	nextStatus := models.AppointmentStatus(request.Status)
	if !appointment.Status.CanTransitionTo(nextStatus) {
		uc.Log.Warn("appointmentUsecase.UpdateStatus invalid transition",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String("current_status", string(appointment.Status)),
			zap.String("next_status", request.Status),
		)
		return nil, exceptions.ErrInvalidStatusTransition(string(appointment.Status), request.Status)
	}

	err = uc.AppointmentRepository.UpdateStatus(ctx, appointmentID, nextStatus, request.DoctorNotes)
	if err != nil {
		uc.Log.Error("appointmentUsecase.UpdateStatus error updating appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	appointment.Status = nextStatus
	if request.DoctorNotes != "" {
		appointment.DoctorNotes = request.DoctorNotes
	}

	uc.Log.Info("appointmentUsecase.UpdateStatus succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)
	response := buildAppointmentResponse(appointment)
	return &response, nil
}

func buildAppointmentResponse(appointment *models.Appointment) responses.Appointment {
	return responses.Appointment{
		ID:          appointment.ID.Hex(),
		PatientID:   appointment.PatientID,
		DoctorID:    appointment.DoctorID,
		Datetime:    appointment.Datetime,
		Date:        appointment.Date,
		StartTime:   appointment.SlotStart,
		EndTime:     appointment.SlotEnd,
		TokenNumber: appointment.TokenNumber,
		Type:        string(appointment.Type),
		Status:      string(appointment.Status),
		Notes:       appointment.Notes,
		DoctorNotes: appointment.DoctorNotes,
	}
}
