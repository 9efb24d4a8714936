package model

import "cv-builder/internal/domain"

// CVForm carries the CV fields posted by the create/edit forms. Fields are
// independently optional; a submitted value overwrites the stored one, empty
// included. Name and Profession must be non-empty (enforced by the schema).
type CVForm struct {
	Name       string `json:"name" form:"name"`
	Profession string `json:"profession" form:"profession"`
	Phone      string `json:"phone" form:"phone"`
	Address    string `json:"address" form:"address"`
	Email      string `json:"email" form:"email"`

	Summary        string `json:"summary" form:"summary"`
	Experience     string `json:"experience" form:"experience"`
	Education      string `json:"education" form:"education"`
	Skills         string `json:"skills" form:"skills"`
	Languages      string `json:"languages" form:"languages"`
	Certifications string `json:"certifications" form:"certifications"`
	Projects       string `json:"projects" form:"projects"`

	Website  string `json:"website" form:"website"`
	LinkedIn string `json:"linkedin" form:"linkedin"`
	GitHub   string `json:"github" form:"github"`
	Twitter  string `json:"twitter" form:"twitter"`
}

// ToMap converts the form into the shape the schema validator expects.
func (f CVForm) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"name":           f.Name,
		"profession":     f.Profession,
		"phone":          f.Phone,
		"address":        f.Address,
		"email":          f.Email,
		"summary":        f.Summary,
		"experience":     f.Experience,
		"education":      f.Education,
		"skills":         f.Skills,
		"languages":      f.Languages,
		"certifications": f.Certifications,
		"projects":       f.Projects,
		"website":        f.Website,
		"linkedin":       f.LinkedIn,
		"github":         f.GitHub,
		"twitter":        f.Twitter,
	}
}

// Apply overwrites every form-carried field of the record. Owner, photo and
// timestamps are managed by the caller.
func (f CVForm) Apply(cv *domain.CV) {
	cv.Name = f.Name
	cv.Profession = f.Profession
	cv.Phone = f.Phone
	cv.Address = f.Address
	cv.Email = f.Email
	cv.Summary = f.Summary
	cv.Experience = f.Experience
	cv.Education = f.Education
	cv.Skills = f.Skills
	cv.Languages = f.Languages
	cv.Certifications = f.Certifications
	cv.Projects = f.Projects
	cv.Website = f.Website
	cv.LinkedIn = f.LinkedIn
	cv.GitHub = f.GitHub
	cv.Twitter = f.Twitter
}
