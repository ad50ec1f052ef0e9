// Package models defines the portfolio content documents: the singleton
// profile, projects, resume items and contact submissions.
package models

import "time"

// SocialLink is a link to one of the owner's social profiles.
type SocialLink struct {
	// Platform names the network, e.g. "LinkedIn" or "GitHub".
	Platform string `json:"platform" bson:"platform"`
	// URL is the profile address on that platform.
	URL string `json:"url" bson:"url"`
}

// Skill is a named skill with a free-form proficiency level.
type Skill struct {
	Name  string `json:"name" bson:"name"`
	Level string `json:"level" bson:"level"`
}

// Profile is the about-me document. Exactly one canonical instance exists;
// it has no identifier of its own.
type Profile struct {
	// Name is the owner's display name.
	Name string `json:"name" bson:"name"`
	// Tagline is the one-line professional headline.
	Tagline string `json:"tagline" bson:"tagline"`
	// Bio is the biography paragraph.
	Bio string `json:"bio" bson:"bio"`
	// ProfileImageURL points at the portrait image.
	ProfileImageURL string `json:"profileImageUrl" bson:"profileImageUrl"`
	Email           string `json:"email" bson:"email"`
	Phone           string `json:"phone" bson:"phone"`
	Location        string `json:"location" bson:"location"`
	// SocialLinks keeps the order the owner entered them in.
	SocialLinks []SocialLink `json:"socialLinks" bson:"socialLinks"`
	// Skills keeps the order the owner entered them in.
	Skills []Skill `json:"skills" bson:"skills"`
	// CreatedAt and UpdatedAt are assigned by the store.
	CreatedAt *time.Time `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// ProfilePatch carries the fields of a profile upsert. A nil field was not
// supplied by the caller and leaves the stored value untouched.
type ProfilePatch struct {
	Name            *string       `json:"name"`
	Tagline         *string       `json:"tagline"`
	Bio             *string       `json:"bio"`
	ProfileImageURL *string       `json:"profileImageUrl"`
	Email           *string       `json:"email"`
	Phone           *string       `json:"phone"`
	Location        *string       `json:"location"`
	SocialLinks     *[]SocialLink `json:"socialLinks"`
	Skills          *[]Skill      `json:"skills"`
}

// Apply merges the supplied fields of p over base and returns the result.
func (p ProfilePatch) Apply(base Profile) Profile {
	out := base
	if p.Name != nil {
		out.Name = *p.Name
	}
	if p.Tagline != nil {
		out.Tagline = *p.Tagline
	}
	if p.Bio != nil {
		out.Bio = *p.Bio
	}
	if p.ProfileImageURL != nil {
		out.ProfileImageURL = *p.ProfileImageURL
	}
	if p.Email != nil {
		out.Email = *p.Email
	}
	if p.Phone != nil {
		out.Phone = *p.Phone
	}
	if p.Location != nil {
		out.Location = *p.Location
	}
	if p.SocialLinks != nil {
		out.SocialLinks = *p.SocialLinks
	}
	if p.Skills != nil {
		out.Skills = *p.Skills
	}
	return out
}

// Project is a portfolio project.
type Project struct {
	// ID is assigned by the store on create.
	ID string `json:"id" bson:"_id"`
	// Title is required.
	Title string `json:"title" bson:"title" validate:"required"`
	// Description is required.
	Description string `json:"description" bson:"description" validate:"required"`
	// Technologies lists the stack; every entry must be non-empty.
	Technologies []string `json:"technologies" bson:"technologies" validate:"dive,required"`
	// ImageURL falls back to a placeholder image when empty.
	ImageURL      string `json:"imageUrl" bson:"imageUrl"`
	ProjectURL    string `json:"projectUrl,omitempty" bson:"projectUrl,omitempty"`
	SourceCodeURL string `json:"sourceCodeUrl,omitempty" bson:"sourceCodeUrl,omitempty"`
	// StartDate orders the listing, newest first.
	StartDate *time.Time `json:"startDate,omitempty" bson:"startDate,omitempty"`
	// EndDate is nil while the project is ongoing.
	EndDate   *time.Time `json:"endDate" bson:"endDate"`
	Featured  bool       `json:"featured" bson:"featured"`
	CreatedAt *time.Time `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// ContactSubmission is a message sent through the contact form.
type ContactSubmission struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// ContactResult is the outcome reported back to the contact form.
type ContactResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
