package models

import (
	"strings"
	"time"

	"github.com/pngalemo/portfolio/internal/apperr"
	"github.com/pngalemo/portfolio/internal/validation"
)

// Category is the resume section an item belongs to.
type Category string

const (
	CategoryExperience    Category = "Experience"
	CategoryEducation     Category = "Education"
	CategoryCertification Category = "Certification"
	CategorySkill         Category = "Skill"
	CategoryAward         Category = "Award"
)

// Categories lists every valid category in declaration order.
var Categories = []Category{
	CategoryExperience,
	CategoryEducation,
	CategoryCertification,
	CategorySkill,
	CategoryAward,
}

// Valid reports whether c is one of Categories.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// ResumeItem is the stored, category-agnostic shape of a resume entry.
// Which fields are required depends on Category; see Classify.
type ResumeItem struct {
	ID           string     `json:"id" bson:"_id"`
	Category     Category   `json:"category" bson:"category"`
	Title        string     `json:"title,omitempty" bson:"title,omitempty"`
	Organization string     `json:"organization,omitempty" bson:"organization,omitempty"`
	Location     string     `json:"location,omitempty" bson:"location,omitempty"`
	StartDate    *time.Time `json:"startDate,omitempty" bson:"startDate,omitempty"`
	// EndDate is nil for current positions.
	EndDate     *time.Time `json:"endDate,omitempty" bson:"endDate,omitempty"`
	Description string     `json:"description,omitempty" bson:"description,omitempty"`
	Details     []string   `json:"details,omitempty" bson:"details,omitempty"`
	SkillName   string     `json:"skillName,omitempty" bson:"skillName,omitempty"`
	SkillLevel  string     `json:"skillLevel,omitempty" bson:"skillLevel,omitempty"`
	// GPA is only shown for Education entries.
	GPA            *float64   `json:"gpa,omitempty" bson:"gpa,omitempty"`
	CertificateURL string     `json:"certificateURL,omitempty" bson:"certificateURL,omitempty"`
	CreatedAt      *time.Time `json:"createdAt,omitempty" bson:"createdAt,omitempty"`
	UpdatedAt      *time.Time `json:"updatedAt,omitempty" bson:"updatedAt,omitempty"`
}

// Entry is one variant of the resume sum type. Each variant carries exactly
// the fields its category requires.
type Entry interface {
	Category() Category
	isEntry()
}

// ExperienceEntry is a job or role.
type ExperienceEntry struct {
	Title        string     `json:"title" validate:"required"`
	Organization string     `json:"organization" validate:"required"`
	StartDate    *time.Time `json:"startDate" validate:"required"`
}

// EducationEntry is a degree or course of study.
type EducationEntry struct {
	Title        string     `json:"title" validate:"required"`
	Organization string     `json:"organization" validate:"required"`
	StartDate    *time.Time `json:"startDate" validate:"required"`
	GPA          *float64   `json:"gpa" validate:"omitempty,gte=0"`
}

// CertificationEntry is a certificate with a verification link.
type CertificationEntry struct {
	Title          string `json:"title" validate:"required"`
	Organization   string `json:"organization" validate:"required"`
	CertificateURL string `json:"certificateURL" validate:"required"`
}

// SkillEntry is a named skill with a level.
type SkillEntry struct {
	SkillName  string `json:"skillName" validate:"required"`
	SkillLevel string `json:"skillLevel" validate:"required"`
}

// AwardEntry is an award granted by an organization.
type AwardEntry struct {
	Title        string `json:"title" validate:"required"`
	Organization string `json:"organization" validate:"required"`
}

func (ExperienceEntry) Category() Category    { return CategoryExperience }
func (EducationEntry) Category() Category     { return CategoryEducation }
func (CertificationEntry) Category() Category { return CategoryCertification }
func (SkillEntry) Category() Category         { return CategorySkill }
func (AwardEntry) Category() Category         { return CategoryAward }

func (ExperienceEntry) isEntry()    {}
func (EducationEntry) isEntry()     {}
func (CertificationEntry) isEntry() {}
func (SkillEntry) isEntry()         {}
func (AwardEntry) isEntry()         {}

// Classify discriminates item by its category, builds the matching Entry
// variant and validates the variant's required fields. It is the only place
// category-dependent requiredness is decided.
func Classify(item ResumeItem) (Entry, error) {
	var entry Entry
	switch item.Category {
	case CategoryExperience:
		entry = ExperienceEntry{
			Title:        strings.TrimSpace(item.Title),
			Organization: strings.TrimSpace(item.Organization),
			StartDate:    item.StartDate,
		}
	case CategoryEducation:
		entry = EducationEntry{
			Title:        strings.TrimSpace(item.Title),
			Organization: strings.TrimSpace(item.Organization),
			StartDate:    item.StartDate,
			GPA:          item.GPA,
		}
	case CategoryCertification:
		entry = CertificationEntry{
			Title:          strings.TrimSpace(item.Title),
			Organization:   strings.TrimSpace(item.Organization),
			CertificateURL: strings.TrimSpace(item.CertificateURL),
		}
	case CategorySkill:
		entry = SkillEntry{
			SkillName:  strings.TrimSpace(item.SkillName),
			SkillLevel: strings.TrimSpace(item.SkillLevel),
		}
	case CategoryAward:
		entry = AwardEntry{
			Title:        strings.TrimSpace(item.Title),
			Organization: strings.TrimSpace(item.Organization),
		}
	case "":
		return nil, apperr.Validation("category is required")
	default:
		return nil, apperr.Validationf("category must be one of Experience, Education, Certification, Skill, Award; got %q", item.Category)
	}

	if err := validation.StructFor(entry, string(item.Category)+" entries"); err != nil {
		return nil, err
	}
	return entry, nil
}
