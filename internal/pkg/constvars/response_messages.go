package constvars

const (
	// Generic messages
	ResponseUnknown = "unknown"
	ResponseSuccess = "success"
	ResponseError   = "error"

	// Availability messages
	GetAvailabilitySuccessMessage = "get availability successfully"

	// Appointment messages
	CreateAppointmentSuccessMessage       = "appointment successfully booked"
	GetAppointmentSuccessMessage          = "get appointment successfully"
	UpdateAppointmentStatusSuccessMessage = "appointment status updated successfully"
)
