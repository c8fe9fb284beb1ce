package models

// Session is the verified identity attached to a request by the auth
// collaborator. The booking core trusts it and does no authorization of its
// own beyond requiring a patient identity on booking.
type Session struct {
	UserID    string
	Role      string
	PatientID string
	DoctorID  string
}

func (s *Session) IsPatient() bool {
	return s.Role == "patient"
}

func (s *Session) IsDoctor() bool {
	return s.Role == "doctor"
}
