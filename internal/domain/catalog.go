package domain

// Species is a catalog entry for animal species.
type Species struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Breed is a catalog entry scoped to a species.
type Breed struct {
	ID        string `json:"id"`
	SpeciesID string `json:"species_id"`
	Name      string `json:"name"`
}

// ClinicService is a billable service offered by clinics.
type ClinicService struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"duration_minutes"`
}
