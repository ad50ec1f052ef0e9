package service

import (
	"time"

	"github.com/pngalemo/portfolio/internal/models"
)

// Server-side placeholders. They are returned when the store holds nothing
// and must stay distinguishable from the client-side fallbacks.
const (
	DefaultProfileImage = "https://placehold.co/300x300/E0E0E0/757575?text=Profile"
	DefaultProjectImage = "https://placehold.co/600x400/CCCCCC/757575?text=Project+Image"

	SampleProjectID    = "defaultProjectId"
	SampleProjectTitle = "Sample Project"

	SeedExperienceID = "defaultResumeExpId"
	SeedEducationID  = "defaultResumeEduId"
	SeedSkillID      = "defaultResumeSkillId"
)

// PlaceholderProfile is persisted by the first read of an empty store.
func PlaceholderProfile() models.Profile {
	return models.Profile{
		Name:            "Your Name",
		Tagline:         "Your Professional Tagline",
		Bio:             "Please update your bio in the database.",
		ProfileImageURL: DefaultProfileImage,
		Email:           "your.email@example.com",
		Phone:           "Your Phone",
		Location:        "Your Location",
		SocialLinks:     []models.SocialLink{},
		Skills:          []models.Skill{},
	}
}

// DefaultProfile supplies the fields omitted by the first upsert.
func DefaultProfile() models.Profile {
	return models.Profile{
		Name:            "Your Name",
		Tagline:         "Your Professional Tagline",
		Bio:             "A brief biography about yourself. Highlight your key skills, experiences, and passions. Make it engaging and professional.",
		ProfileImageURL: DefaultProfileImage,
		Email:           "your.email@example.com",
		Phone:           "+1 123-456-7890",
		Location:        "City, Country",
		SocialLinks:     []models.SocialLink{},
		Skills:          []models.Skill{},
	}
}

// SampleProject is listed when no project exists. It is never stored.
func SampleProject() models.Project {
	return models.Project{
		ID:            SampleProjectID,
		Title:         SampleProjectTitle,
		Description:   "This is a sample project. Add your projects to the database.",
		Technologies:  []string{"MongoDB", "Express", "React", "Node"},
		ImageURL:      DefaultProjectImage,
		ProjectURL:    "#",
		SourceCodeURL: "#",
		Featured:      true,
	}
}

// SeedResumeItems is listed when no resume item matches, whatever the
// requested category. It is never stored.
func SeedResumeItems() []models.ResumeItem {
	expStart := time.Date(2020, time.January, 15, 0, 0, 0, 0, time.UTC)
	eduStart := time.Date(2018, time.August, 1, 0, 0, 0, 0, time.UTC)
	eduEnd := time.Date(2020, time.May, 1, 0, 0, 0, 0, time.UTC)

	return []models.ResumeItem{
		{
			ID:           SeedExperienceID,
			Category:     models.CategoryExperience,
			Title:        "Lead Developer",
			Organization: "Tech Solutions Inc.",
			Location:     "Remote",
			StartDate:    &expStart,
			Description:  "Led a team to develop innovative web applications.",
			Details: []string{
				"Mentored junior developers.",
				"Improved application performance by 20%.",
			},
		},
		{
			ID:           SeedEducationID,
			Category:     models.CategoryEducation,
			Title:        "M.Sc. Computer Science",
			Organization: "State University",
			Location:     "City, State",
			StartDate:    &eduStart,
			EndDate:      &eduEnd,
			Description:  "Focused on AI and Machine Learning.",
		},
		{
			ID:         SeedSkillID,
			Category:   models.CategorySkill,
			SkillName:  "Node.js",
			SkillLevel: "Expert",
		},
	}
}
