package web

import (
	"strconv"
	"time"

	"github.com/pngalemo/portfolio/internal/models"
)

// ImageNotFound replaces images that fail to load in the browser.
const ImageNotFound = "https://placehold.co/600x400/CCCCCC/757575?text=Image+Not+Found"

// ResumeOrder is the order resume sections are shown in.
var ResumeOrder = []models.Category{
	models.CategoryExperience,
	models.CategoryEducation,
	models.CategorySkill,
	models.CategoryCertification,
	models.CategoryAward,
}

// ResumeSection is one rendered category of the resume.
type ResumeSection struct {
	Category models.Category
	Heading  string
	Items    []models.ResumeItem
}

// GroupResume buckets items by category in ResumeOrder, dropping empty
// sections and keeping the listing order inside each one.
func GroupResume(items []models.ResumeItem) []ResumeSection {
	buckets := make(map[models.Category][]models.ResumeItem, len(ResumeOrder))
	for _, item := range items {
		buckets[item.Category] = append(buckets[item.Category], item)
	}

	sections := make([]ResumeSection, 0, len(ResumeOrder))
	for _, c := range ResumeOrder {
		if len(buckets[c]) == 0 {
			continue
		}
		heading := string(c)
		if c == models.CategorySkill {
			heading = "Skills"
		}
		sections = append(sections, ResumeSection{Category: c, Heading: heading, Items: buckets[c]})
	}
	return sections
}

// ProjectDates formats a project's span, e.g. "Mar 2021 – Ongoing".
// It is empty when neither date is set.
func ProjectDates(start, end *time.Time) string {
	return dateRange(start, end, "Jan 2006", "Ongoing")
}

// ResumeDates formats a resume item's span, e.g. "March 2021 – Present".
func ResumeDates(start, end *time.Time) string {
	return dateRange(start, end, "January 2006", "Present")
}

func dateRange(start, end *time.Time, layout, open string) string {
	if start == nil && end == nil {
		return ""
	}
	from := open
	if start != nil {
		from = start.UTC().Format(layout)
	}
	to := open
	if end != nil {
		to = end.UTC().Format(layout)
	}
	return from + " – " + to
}

// FormatGPA renders a GPA without trailing zeros.
func FormatGPA(gpa *float64) string {
	if gpa == nil {
		return ""
	}
	return strconv.FormatFloat(*gpa, 'f', -1, 64)
}
