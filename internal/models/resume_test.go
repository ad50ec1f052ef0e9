package models

import (
	"strings"
	"testing"
	"time"

	"github.com/pngalemo/portfolio/internal/apperr"
)

func date(y int) *time.Time {
	d := time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC)
	return &d
}

func TestClassify(t *testing.T) {
	gpa := 3.8

	tests := []struct {
		name     string
		item     ResumeItem
		wantCat  Category
		wantErr  string
		wantType Entry
	}{
		{
			name:     "experience ok",
			item:     ResumeItem{Category: CategoryExperience, Title: "Engineer", Organization: "Acme", StartDate: date(2020)},
			wantCat:  CategoryExperience,
			wantType: ExperienceEntry{},
		},
		{
			name:    "experience without organization",
			item:    ResumeItem{Category: CategoryExperience, Title: "Engineer", StartDate: date(2020)},
			wantErr: "organization is required for Experience entries",
		},
		{
			name:    "experience without start date",
			item:    ResumeItem{Category: CategoryExperience, Title: "Engineer", Organization: "Acme"},
			wantErr: "startDate is required for Experience entries",
		},
		{
			name:     "education with gpa",
			item:     ResumeItem{Category: CategoryEducation, Title: "M.Sc.", Organization: "State University", StartDate: date(2018), GPA: &gpa},
			wantCat:  CategoryEducation,
			wantType: EducationEntry{},
		},
		{
			name:    "education without start date",
			item:    ResumeItem{Category: CategoryEducation, Title: "M.Sc.", Organization: "State University"},
			wantErr: "startDate is required for Education entries",
		},
		{
			name:    "certification without url",
			item:    ResumeItem{Category: CategoryCertification, Title: "RHCSA", Organization: "Red Hat"},
			wantErr: "certificateURL is required for Certification entries",
		},
		{
			name:     "certification ok without dates",
			item:     ResumeItem{Category: CategoryCertification, Title: "RHCSA", Organization: "Red Hat", CertificateURL: "https://example.com/c"},
			wantCat:  CategoryCertification,
			wantType: CertificationEntry{},
		},
		{
			name:    "skill without skill name",
			item:    ResumeItem{Category: CategorySkill, SkillLevel: "Expert"},
			wantErr: "skillName is required for Skill entries",
		},
		{
			name:    "skill with blank name",
			item:    ResumeItem{Category: CategorySkill, SkillName: "   ", SkillLevel: "Expert"},
			wantErr: "skillName is required for Skill entries",
		},
		{
			name:     "skill ok without title",
			item:     ResumeItem{Category: CategorySkill, SkillName: "Go", SkillLevel: "Expert"},
			wantCat:  CategorySkill,
			wantType: SkillEntry{},
		},
		{
			name:    "award without organization",
			item:    ResumeItem{Category: CategoryAward, Title: "Best Paper"},
			wantErr: "organization is required for Award entries",
		},
		{
			name:     "award ok",
			item:     ResumeItem{Category: CategoryAward, Title: "Best Paper", Organization: "ACM"},
			wantCat:  CategoryAward,
			wantType: AwardEntry{},
		},
		{
			name:    "missing category",
			item:    ResumeItem{Title: "Anything"},
			wantErr: "category is required",
		},
		{
			name:    "unknown category",
			item:    ResumeItem{Category: "Hobby", Title: "Chess"},
			wantErr: "category must be one of",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entry, err := Classify(tt.item)
			if tt.wantErr != "" {
				if err == nil {
					t.Fatalf("Classify() error = nil; want %q", tt.wantErr)
				}
				if !apperr.Is(err, apperr.KindValidation) {
					t.Errorf("Classify() error kind = %v; want validation", apperr.KindOf(err))
				}
				if !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("Classify() error = %q; want substring %q", err.Error(), tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Classify() unexpected error: %v", err)
			}
			if entry.Category() != tt.wantCat {
				t.Errorf("Category() = %q; want %q", entry.Category(), tt.wantCat)
			}
			switch tt.wantType.(type) {
			case ExperienceEntry:
				if _, ok := entry.(ExperienceEntry); !ok {
					t.Errorf("entry type = %T; want ExperienceEntry", entry)
				}
			case EducationEntry:
				if e, ok := entry.(EducationEntry); !ok || e.GPA == nil {
					t.Errorf("entry = %#v; want EducationEntry with GPA", entry)
				}
			case CertificationEntry:
				if _, ok := entry.(CertificationEntry); !ok {
					t.Errorf("entry type = %T; want CertificationEntry", entry)
				}
			case SkillEntry:
				if _, ok := entry.(SkillEntry); !ok {
					t.Errorf("entry type = %T; want SkillEntry", entry)
				}
			case AwardEntry:
				if _, ok := entry.(AwardEntry); !ok {
					t.Errorf("entry type = %T; want AwardEntry", entry)
				}
			}
		})
	}
}

func TestCategory_Valid(t *testing.T) {
	for _, c := range Categories {
		if !c.Valid() {
			t.Errorf("%q.Valid() = false", c)
		}
	}
	if Category("Skills").Valid() {
		t.Error(`"Skills".Valid() = true; want false`)
	}
}

func TestProfilePatch_Apply(t *testing.T) {
	base := Profile{Name: "Old", Tagline: "Keep", Skills: []Skill{{Name: "Go"}}}
	name := "New"
	links := []SocialLink{{Platform: "GitHub", URL: "https://github.com/x"}}

	got := ProfilePatch{Name: &name, SocialLinks: &links}.Apply(base)

	if got.Name != "New" || got.Tagline != "Keep" {
		t.Errorf("Apply() = %+v; want name replaced and tagline kept", got)
	}
	if len(got.SocialLinks) != 1 || len(got.Skills) != 1 {
		t.Errorf("Apply() links/skills = %v/%v", got.SocialLinks, got.Skills)
	}
}
