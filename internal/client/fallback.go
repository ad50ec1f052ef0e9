package client

import (
	"context"
	"errors"

	"github.com/pngalemo/portfolio/internal/models"
)

// Client-side fallbacks. They are used only when a call fails and differ
// from every server-side placeholder.
const (
	ErrorProfileImage = "https://placehold.co/300x300/FF0000/FFFFFF?text=Error"

	AboutBanner    = "Failed to load about information. Please try refreshing the page."
	ProjectsBanner = "Failed to load projects. Please try refreshing the page."
	ResumeBanner   = "Failed to load resume information. Please try refreshing."

	ContactNetworkFailure = "Submission failed due to a network or server error."
	ContactRejected       = "Submission failed. Please try again."
)

// FallbackProfile is shown when the profile cannot be fetched.
func FallbackProfile() models.Profile {
	return models.Profile{
		Name:            "Error Loading Name",
		Bio:             "Could not load bio. Please check API connection.",
		ProfileImageURL: ErrorProfileImage,
		SocialLinks:     []models.SocialLink{},
		Skills:          []models.Skill{},
	}
}

// View is what a page renders: the data plus an error banner, which is
// empty unless Data is a fallback.
type View[T any] struct {
	Data   T
	Banner string
	// Err is the underlying failure, for logging.
	Err error
}

// Failed reports whether the view holds fallback data.
func (v View[T]) Failed() bool {
	return v.Banner != ""
}

// LoadAbout fetches the profile, or falls back to FallbackProfile.
func (c *Client) LoadAbout(ctx context.Context) View[models.Profile] {
	p, err := c.About(ctx)
	if err != nil {
		return View[models.Profile]{Data: FallbackProfile(), Banner: AboutBanner, Err: err}
	}
	return View[models.Profile]{Data: *p}
}

// LoadProjects fetches the projects, or falls back to an empty list.
func (c *Client) LoadProjects(ctx context.Context) View[[]models.Project] {
	projects, err := c.Projects(ctx)
	if err != nil {
		return View[[]models.Project]{Data: []models.Project{}, Banner: ProjectsBanner, Err: err}
	}
	return View[[]models.Project]{Data: projects}
}

// LoadResume fetches resume items, or falls back to an empty list.
func (c *Client) LoadResume(ctx context.Context, category models.Category) View[[]models.ResumeItem] {
	items, err := c.Resume(ctx, category)
	if err != nil {
		return View[[]models.ResumeItem]{Data: []models.ResumeItem{}, Banner: ResumeBanner, Err: err}
	}
	return View[[]models.ResumeItem]{Data: items}
}

// SubmitContact always yields a result to show next to the form. A server
// rejection carries the server's message; a transport failure carries
// ContactNetworkFailure.
func (c *Client) SubmitContact(ctx context.Context, sub models.ContactSubmission) (models.ContactResult, error) {
	res, err := c.Contact(ctx, sub)
	if err == nil {
		return *res, nil
	}

	var se *StatusError
	if errors.As(err, &se) {
		msg := se.Message
		if msg == "" {
			msg = ContactRejected
		}
		return models.ContactResult{Message: msg}, err
	}
	return models.ContactResult{Message: ContactNetworkFailure}, err
}
