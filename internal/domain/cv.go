package domain

import (
	"time"

	"github.com/google/uuid"
)

// CV is a résumé record owned by exactly one user. All text fields besides
// Name and Profession are optional and default to empty.
type CV struct {
	ID      uuid.UUID `json:"id"`
	OwnerID uuid.UUID `json:"owner_id"`

	// personal info
	Name       string `json:"name"`
	Profession string `json:"profession"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	Email      string `json:"email"`

	// content
	Summary        string `json:"summary"`
	Experience     string `json:"experience"`
	Education      string `json:"education"`
	Skills         string `json:"skills"`
	Languages      string `json:"languages"`
	Certifications string `json:"certifications"`
	Projects       string `json:"projects"`

	// social links
	Website  string `json:"website"`
	LinkedIn string `json:"linkedin"`
	GitHub   string `json:"github"`
	Twitter  string `json:"twitter"`

	// stored asset reference (filename inside the upload dir), empty if none
	PhotoPath string `json:"photo_path"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
