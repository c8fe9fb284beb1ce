package constvars

const (
	MongoCollectionDoctorAvailabilities = "doctor_availabilities"
	MongoCollectionAppointments         = "appointments"
)
