package models

import (
	"strings"
	"time"
)

// Profile is the per-user profile aggregate. Experience and education entries
// are embedded and mutated through the methods below; the whole document is
// rewritten on save.
type Profile struct {
	ID             string       `json:"id" bson:"_id"`
	UserID         string       `json:"-" bson:"user_id"`
	Company        string       `json:"company,omitempty" bson:"company,omitempty"`
	Website        string       `json:"website,omitempty" bson:"website,omitempty"`
	Location       string       `json:"location,omitempty" bson:"location,omitempty"`
	Status         string       `json:"status" bson:"status"`
	Skills         []string     `json:"skills" bson:"skills"`
	Bio            string       `json:"bio,omitempty" bson:"bio,omitempty"`
	GithubUsername string       `json:"githubusername,omitempty" bson:"githubusername,omitempty"`
	Experience     []Experience `json:"experience" bson:"experience"`
	Education      []Education  `json:"education" bson:"education"`
	Social         Social       `json:"social" bson:"social"`
	CreatedAt      time.Time    `json:"date" bson:"date"`
	UpdatedAt      time.Time    `json:"updated_at" bson:"updated_at"`

	// User is the owning user's name/avatar summary, resolved from the users
	// collection on reads. Never persisted with the profile.
	User *UserSummary `json:"user,omitempty" bson:"-"`
}

type Experience struct {
	ID          string `json:"id" bson:"id"`
	Title       string `json:"title" bson:"title"`
	Company     string `json:"company" bson:"company"`
	Location    string `json:"location,omitempty" bson:"location,omitempty"`
	From        string `json:"from" bson:"from"`
	To          string `json:"to,omitempty" bson:"to,omitempty"`
	Current     bool   `json:"current" bson:"current"`
	Description string `json:"description,omitempty" bson:"description,omitempty"`
}

type Education struct {
	ID           string `json:"id" bson:"id"`
	School       string `json:"school" bson:"school"`
	Degree       string `json:"degree" bson:"degree"`
	FieldOfStudy string `json:"fieldofstudy" bson:"fieldofstudy"`
	From         string `json:"from" bson:"from"`
	To           string `json:"to,omitempty" bson:"to,omitempty"`
	Current      bool   `json:"current" bson:"current"`
	Description  string `json:"description,omitempty" bson:"description,omitempty"`
}

type Social struct {
	Youtube   string `json:"youtube,omitempty" bson:"youtube,omitempty"`
	Twitter   string `json:"twitter,omitempty" bson:"twitter,omitempty"`
	Facebook  string `json:"facebook,omitempty" bson:"facebook,omitempty"`
	Linkedin  string `json:"linkedin,omitempty" bson:"linkedin,omitempty"`
	Instagram string `json:"instagram,omitempty" bson:"instagram,omitempty"`
}

type UpsertProfileRequest struct {
	Status string `json:"status"`
	// Skills is a comma-separated list, normalized into trimmed strings.
	Skills         string  `json:"skills"`
	Company        *string `json:"company"`
	Website        *string `json:"website"`
	Location       *string `json:"location"`
	Bio            *string `json:"bio"`
	GithubUsername *string `json:"githubusername"`
	Youtube        *string `json:"youtube"`
	Twitter        *string `json:"twitter"`
	Facebook       *string `json:"facebook"`
	Linkedin       *string `json:"linkedin"`
	Instagram      *string `json:"instagram"`
}

type ExperienceRequest struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	From        string `json:"from"`
	To          string `json:"to"`
	Current     bool   `json:"current"`
	Description string `json:"description"`
}

type EducationRequest struct {
	School       string `json:"school"`
	Degree       string `json:"degree"`
	FieldOfStudy string `json:"fieldofstudy"`
	From         string `json:"from"`
	To           string `json:"to"`
	Current      bool   `json:"current"`
	Description  string `json:"description"`
}

func (r *UpsertProfileRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Status == "" {
		errors["status"] = "Status is required"
	}
	if len(SplitSkills(r.Skills)) == 0 {
		errors["skills"] = "Skills is required"
	}

	return errors
}

func (r *ExperienceRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.Title == "" {
		errors["title"] = "Title is required"
	}
	if r.Company == "" {
		errors["company"] = "Company is required"
	}
	if r.From == "" {
		errors["from"] = "From date is required"
	}

	return errors
}

func (r *EducationRequest) Validate() map[string]string {
	errors := make(map[string]string)

	if r.School == "" {
		errors["school"] = "School is required"
	}
	if r.Degree == "" {
		errors["degree"] = "Degree is required"
	}
	if r.FieldOfStudy == "" {
		errors["fieldofstudy"] = "Field of study is required"
	}
	if r.From == "" {
		errors["from"] = "From date is required"
	}

	return errors
}

// SplitSkills normalizes a comma-separated skill list into trimmed,
// non-empty strings.
func SplitSkills(skills string) []string {
	out := make([]string, 0)
	for _, s := range strings.Split(skills, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ApplyPatch overwrites status and skills and applies only the fields present
// in the request; absent fields are left untouched.
func (p *Profile) ApplyPatch(req *UpsertProfileRequest) {
	p.Status = req.Status
	p.Skills = SplitSkills(req.Skills)

	if req.Company != nil {
		p.Company = *req.Company
	}
	if req.Website != nil {
		p.Website = *req.Website
	}
	if req.Location != nil {
		p.Location = *req.Location
	}
	if req.Bio != nil {
		p.Bio = *req.Bio
	}
	if req.GithubUsername != nil {
		p.GithubUsername = *req.GithubUsername
	}
	if req.Youtube != nil {
		p.Social.Youtube = *req.Youtube
	}
	if req.Twitter != nil {
		p.Social.Twitter = *req.Twitter
	}
	if req.Facebook != nil {
		p.Social.Facebook = *req.Facebook
	}
	if req.Linkedin != nil {
		p.Social.Linkedin = *req.Linkedin
	}
	if req.Instagram != nil {
		p.Social.Instagram = *req.Instagram
	}
}

// AddExperience prepends the entry, newest first.
func (p *Profile) AddExperience(e Experience) {
	p.Experience = append([]Experience{e}, p.Experience...)
}

// RemoveExperience removes the entry with the given id. Returns false when no
// entry matches; the list is left unchanged in that case.
func (p *Profile) RemoveExperience(id string) bool {
	for i, e := range p.Experience {
		if e.ID == id {
			p.Experience = append(p.Experience[:i], p.Experience[i+1:]...)
			return true
		}
	}
	return false
}

// AddEducation prepends the entry, newest first.
func (p *Profile) AddEducation(e Education) {
	p.Education = append([]Education{e}, p.Education...)
}

// RemoveEducation removes the entry with the given id. Returns false when no
// entry matches.
func (p *Profile) RemoveEducation(id string) bool {
	for i, e := range p.Education {
		if e.ID == id {
			p.Education = append(p.Education[:i], p.Education[i+1:]...)
			return true
		}
	}
	return false
}
