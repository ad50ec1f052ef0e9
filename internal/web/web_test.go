package web

import (
	"context"
	"errors"
	"html"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pngalemo/portfolio/internal/client"
	"github.com/pngalemo/portfolio/internal/models"
)

type fakeSource struct {
	about     client.View[models.Profile]
	projects  client.View[[]models.Project]
	resume    client.View[[]models.ResumeItem]
	contact   models.ContactResult
	contactEr error
	submitted []models.ContactSubmission
}

func (f *fakeSource) LoadAbout(context.Context) client.View[models.Profile] { return f.about }
func (f *fakeSource) LoadProjects(context.Context) client.View[[]models.Project] {
	return f.projects
}
func (f *fakeSource) LoadResume(context.Context, models.Category) client.View[[]models.ResumeItem] {
	return f.resume
}
func (f *fakeSource) SubmitContact(_ context.Context, sub models.ContactSubmission) (models.ContactResult, error) {
	f.submitted = append(f.submitted, sub)
	return f.contact, f.contactEr
}

func newTestServer(t *testing.T, src *fakeSource) http.Handler {
	t.Helper()
	h, err := New(src, zap.NewNop(), Options{ContactLimit: 100, ContactWindow: time.Minute})
	require.NoError(t, err)
	return h
}

func get(h http.Handler, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
	return rec
}

func ptime(year int, month time.Month) *time.Time {
	t := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestAboutView(t *testing.T) {
	t.Run("server placeholder renders without banner", func(t *testing.T) {
		src := &fakeSource{about: client.View[models.Profile]{Data: models.Profile{
			Name: "Your Name", Bio: "Please update your bio in the database.",
			Skills: []models.Skill{{Name: "Go", Level: "Expert"}},
		}}}
		rec := get(newTestServer(t, src), "/about")
		body := rec.Body.String()

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, body, "Your Name")
		assert.Contains(t, body, "Expert")
		assert.NotContains(t, body, "error-banner")
	})

	t.Run("client fallback renders with banner", func(t *testing.T) {
		src := &fakeSource{about: client.View[models.Profile]{
			Data:   client.FallbackProfile(),
			Banner: client.AboutBanner,
			Err:    errors.New("connection refused"),
		}}
		body := get(newTestServer(t, src), "/").Body.String()

		assert.Contains(t, body, "Error Loading Name")
		assert.Contains(t, body, "error-banner")
		assert.Contains(t, body, client.AboutBanner)
		assert.Contains(t, html.UnescapeString(body), ImageNotFound)
	})
}

func TestProjectsView(t *testing.T) {
	t.Run("cards", func(t *testing.T) {
		src := &fakeSource{projects: client.View[[]models.Project]{Data: []models.Project{{
			Title: "Site", Description: "Portfolio site", Featured: true,
			Technologies: []string{"Go", "Postgres"},
			StartDate:    ptime(2021, time.March),
		}}}}
		body := get(newTestServer(t, src), "/projects").Body.String()

		assert.Contains(t, body, "Featured")
		assert.Contains(t, body, "Mar 2021 – Ongoing")
		assert.Contains(t, body, "Postgres")
	})

	t.Run("empty", func(t *testing.T) {
		src := &fakeSource{projects: client.View[[]models.Project]{Data: []models.Project{}}}
		body := get(newTestServer(t, src), "/projects").Body.String()
		assert.Contains(t, body, "No projects to display yet. Check back soon!")
	})

	t.Run("failure shows banner instead of empty state", func(t *testing.T) {
		src := &fakeSource{projects: client.View[[]models.Project]{Data: []models.Project{}, Banner: client.ProjectsBanner}}
		body := get(newTestServer(t, src), "/projects").Body.String()
		assert.Contains(t, body, client.ProjectsBanner)
		assert.NotContains(t, body, "No projects to display yet.")
	})
}

func TestResumeView(t *testing.T) {
	gpa := 3.8
	src := &fakeSource{resume: client.View[[]models.ResumeItem]{Data: []models.ResumeItem{
		{Category: models.CategoryAward, Title: "Best Paper", Organization: "ACM"},
		{Category: models.CategorySkill, SkillName: "Node.js", SkillLevel: "Expert"},
		{Category: models.CategoryEducation, Title: "M.Sc.", Organization: "State University", StartDate: ptime(2018, time.August), EndDate: ptime(2020, time.May), GPA: &gpa},
		{Category: models.CategoryExperience, Title: "Lead Developer", Organization: "Tech Solutions Inc.", StartDate: ptime(2020, time.January)},
	}}}
	body := get(newTestServer(t, src), "/resume").Body.String()

	order := []string{"Lead Developer", "M.Sc.", "Node.js", "Best Paper"}
	last := -1
	for _, s := range order {
		idx := strings.Index(body, s)
		require.GreaterOrEqual(t, idx, 0, "missing %q", s)
		assert.Greater(t, idx, last, "%q out of order", s)
		last = idx
	}
	assert.Contains(t, body, "January 2020 – Present")
	assert.Contains(t, body, "August 2018 – May 2020")
	assert.Contains(t, body, "GPA: 3.8")
}

func TestResumeView_Empty(t *testing.T) {
	src := &fakeSource{resume: client.View[[]models.ResumeItem]{Data: []models.ResumeItem{}}}
	body := get(newTestServer(t, src), "/resume").Body.String()
	assert.Contains(t, body, "No resume information available yet.")
}

func TestContactSubmit(t *testing.T) {
	post := func(h http.Handler, form url.Values) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	t.Run("missing field never reaches the API", func(t *testing.T) {
		src := &fakeSource{}
		rec := post(newTestServer(t, src), url.Values{"name": {"Ada"}, "message": {"Hi"}})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Please fill in all fields.")
		assert.Empty(t, src.submitted)
	})

	t.Run("sent", func(t *testing.T) {
		src := &fakeSource{contact: models.ContactResult{Success: true, Message: "Message sent successfully! Thank you for reaching out."}}
		rec := post(newTestServer(t, src), url.Values{"name": {"Ada"}, "email": {"ada@example.com"}, "message": {"Hi"}})
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Thank you for reaching out.")
		require.Len(t, src.submitted, 1)
		assert.Equal(t, "ada@example.com", src.submitted[0].Email)
	})

	t.Run("network failure", func(t *testing.T) {
		src := &fakeSource{
			contact:   models.ContactResult{Message: client.ContactNetworkFailure},
			contactEr: errors.New("dial tcp: refused"),
		}
		rec := post(newTestServer(t, src), url.Values{"name": {"Ada"}, "email": {"ada@example.com"}, "message": {"Hi"}})
		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, rec.Body.String(), client.ContactNetworkFailure)
		assert.Contains(t, rec.Body.String(), `value="Ada"`)
	})
}

func TestNotFoundView(t *testing.T) {
	rec := get(newTestServer(t, &fakeSource{}), "/nowhere")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "404")
}

func TestDateRanges(t *testing.T) {
	assert.Equal(t, "", ProjectDates(nil, nil))
	assert.Equal(t, "Ongoing – Feb 2022", ProjectDates(nil, ptime(2022, time.February)))
	assert.Equal(t, "March 2019 – Present", ResumeDates(ptime(2019, time.March), nil))
	assert.Equal(t, "", FormatGPA(nil))
}

func TestGroupResume(t *testing.T) {
	sections := GroupResume([]models.ResumeItem{
		{ID: "c", Category: models.CategoryCertification},
		{ID: "s", Category: models.CategorySkill},
		{ID: "x", Category: models.CategoryExperience},
	})
	require.Len(t, sections, 3)
	assert.Equal(t, models.CategoryExperience, sections[0].Category)
	assert.Equal(t, "Skills", sections[1].Heading)
	assert.Equal(t, models.CategoryCertification, sections[2].Category)
}
