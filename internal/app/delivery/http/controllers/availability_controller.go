package controllers

import (
	"context"
	"net/http"
	"time"
	"tokenbook-service/internal/app/contracts"
	"tokenbook-service/internal/pkg/constvars"
	"tokenbook-service/internal/pkg/dto/requests"
	"tokenbook-service/internal/pkg/exceptions"
	"tokenbook-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type AvailabilityController struct {
	Log                 *zap.Logger
	AvailabilityUsecase contracts.AvailabilityUsecase
}

func NewAvailabilityController(logger *zap.Logger, availabilityUsecase contracts.AvailabilityUsecase) *AvailabilityController {
	return &AvailabilityController{
		Log:                 logger,
		AvailabilityUsecase: availabilityUsecase,
	}
}

func (ctrl *AvailabilityController) GetDailyAvailability(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok {
		ctrl.Log.Error("AvailabilityController.GetDailyAvailability requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	query := requests.AvailabilityQuery{
		DoctorID: chi.URLParam(r, "doctorID"),
		Date:     r.URL.Query().Get("date"),
	}

	ctrl.Log.Info("AvailabilityController.GetDailyAvailability called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, query.DoctorID),
		zap.String(constvars.LoggingDateKey, query.Date))

	if err := utils.ValidateStruct(query); err != nil {
		ctrl.Log.Error("AvailabilityController.GetDailyAvailability validation failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	past, err := utils.IsPastDate(query.Date, time.Now())
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseTime(err))
		return
	}
	if past {
		ctrl.Log.Warn("AvailabilityController.GetDailyAvailability date in the past",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingDateKey, query.Date))
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrDateInPast(query.Date))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.AvailabilityUsecase.GetDailyAvailability(ctx, query.DoctorID, query.Date)
	if err != nil {
		ctrl.Log.Error("Error in AvailabilityUsecase.GetDailyAvailability",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err))

		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("AvailabilityController.GetDailyAvailability succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseCountKey, len(response)))
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAvailabilitySuccessMessage, response)
}
