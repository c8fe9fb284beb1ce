package controllers

import (
	"context"
	"net/http"
	"time"
	"tokenbook-service/internal/app/contracts"
	"tokenbook-service/internal/app/models"
	"tokenbook-service/internal/pkg/constvars"
	"tokenbook-service/internal/pkg/dto/requests"
	"tokenbook-service/internal/pkg/exceptions"
	"tokenbook-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type AppointmentController struct {
	Log                *zap.Logger
	BookingUsecase     contracts.BookingUsecase
	AppointmentUsecase contracts.AppointmentUsecase
}

func NewAppointmentController(logger *zap.Logger, bookingUsecase contracts.BookingUsecase, appointmentUsecase contracts.AppointmentUsecase) *AppointmentController {
	return &AppointmentController{
		Log:                logger,
		BookingUsecase:     bookingUsecase,
		AppointmentUsecase: appointmentUsecase,
	}
}

func (ctrl *AppointmentController) BookAppointment(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("AppointmentController.BookAppointment requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	session, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session)
	if !ok {
		ctrl.Log.Error("AppointmentController.BookAppointment sessionData not found in context",
			zap.String(constvars.LoggingRequestIDKey, requestID))
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingSessionData(nil))
		return
	}

	request := new(requests.BookAppointmentRequest)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		ctrl.Log.Error("AppointmentController.BookAppointment cannot parse body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	// A patient always books for themselves regardless of what the body says.
	if session.IsPatient() {
		request.PatientID = session.PatientID
	}
	if request.PatientID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrPatientIdentityMissing(nil))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("AppointmentController.BookAppointment validation failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	past, err := utils.IsPastDate(request.Date, time.Now())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseTime(err))
		return
	}
	if past {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrDateInPast(request.Date))
		return
	}

	ctrl.Log.Info("AppointmentController.BookAppointment called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, request.DoctorID),
		zap.String(constvars.LoggingPatientIDKey, request.PatientID),
		zap.String(constvars.LoggingDateKey, request.Date),
		zap.Int(constvars.LoggingTokenNumberKey, request.TokenNumber))

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.BookingUsecase.Claim(ctx, contracts.ClaimInput{
		DoctorID:    request.DoctorID,
		Date:        request.Date,
		SlotStart:   request.StartTime,
		SlotEnd:     request.EndTime,
		TokenNumber: request.TokenNumber,
		PatientID:   request.PatientID,
		Type:        models.AppointmentType(request.Type),
		Notes:       request.Notes,
	})
	if err != nil {
		ctrl.Log.Error("Error in BookingUsecase.Claim",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("AppointmentController.BookAppointment succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, response.ID))
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateAppointmentSuccessMessage, response)
}

func (ctrl *AppointmentController) FindByID(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("AppointmentController.FindByID requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	session, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session)
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingSessionData(nil))
		return
	}

	appointmentID := chi.URLParam(r, "appointmentID")

	ctrl.Log.Info("AppointmentController.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID))

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.FindByID(ctx, session, appointmentID)
	if err != nil {
		ctrl.Log.Error("Error in AppointmentUsecase.FindByID",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAppointmentSuccessMessage, response)
}

func (ctrl *AppointmentController) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("AppointmentController.UpdateStatus requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	session, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session)
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingSessionData(nil))
		return
	}

	appointmentID := chi.URLParam(r, "appointmentID")

	request := new(requests.UpdateAppointmentStatusRequest)
	if err := json.NewDecoder(r.Body).Decode(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("AppointmentController.UpdateStatus validation failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctrl.Log.Info("AppointmentController.UpdateStatus called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String("status", request.Status))

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.AppointmentUsecase.UpdateStatus(ctx, session, appointmentID, request)
	if err != nil {
		ctrl.Log.Error("Error in AppointmentUsecase.UpdateStatus",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateAppointmentStatusSuccessMessage, response)
}
