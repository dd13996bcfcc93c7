package domain

// Patient is owned by patient-service. Other services reference it by
// id only; they never embed or mutate it.
type Patient struct {
	ID          int64  `json:"id"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	DateOfBirth string `json:"date_of_birth,omitempty"` // YYYY-MM-DD
	Contact     string `json:"contact,omitempty"`
}
