package domain

// AppointmentStatus represents lifecycle states for an appointment.
type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// Appointment models a booked 30-minute visit. Date is "YYYY-MM-DD" and Time
// is "HH:MM" in the clinic's local convention; the backend owns the timezone.
type Appointment struct {
	ID        string            `json:"id"`
	ClinicID  string            `json:"clinic_id"`
	PetID     string            `json:"pet_id"`
	VetID     string            `json:"vet_id"`
	ServiceID string            `json:"service_id,omitempty"`
	Date      string            `json:"date"`
	Time      string            `json:"time"`
	Status    AppointmentStatus `json:"status"`
	Notes     string            `json:"notes,omitempty"`
}
