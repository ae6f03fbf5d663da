package domain

// Pet models an animal registered by a client.
type Pet struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	SpeciesID string `json:"species_id"`
	BreedID   string `json:"breed_id,omitempty"`
	OwnerID   string `json:"owner_id"`
	BirthDate string `json:"birth_date,omitempty"`
	Notes     string `json:"notes,omitempty"`
}
