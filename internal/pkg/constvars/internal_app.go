package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_SESSION_DATA_KEY         ContextKey = "session_data"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	REQUEST_ID_PREFIX = "TKBK_SVC_"
)

const (
	ResourceAvailability = "availability"
	ResourceAppointments = "appointments"
)

// DefaultTokensPerHour is the system token rate applied to slots that do not
// carry their own rate.
const DefaultTokensPerHour = 10

const (
	DateLayout      = "2006-01-02"
	WallClockLayout = "15:04"
)

const (
	AvailabilityCacheKeyFormat = "availability:%s:%s"
	SlotLockKeyFormat          = "booking:lock:%s:%s:%s"
)
