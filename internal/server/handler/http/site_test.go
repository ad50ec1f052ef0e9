package http

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/pngalemo/portfolio/internal/client"
	"github.com/pngalemo/portfolio/internal/models"
	"github.com/pngalemo/portfolio/internal/web"
)

// newSite wires the web views to the API router in-process, the way the
// server does when no API URL is configured.
func newSite(t *testing.T, contactLimit int) *testServer {
	t.Helper()
	ts := &testServer{
		profile:  &fakeProfileService{profile: &models.Profile{Name: "Ada", Tagline: "Engineer"}},
		projects: &fakeProjectService{projects: map[string]models.Project{}},
		resume:   &fakeResumeService{},
		contact:  &fakeContactService{},
	}
	log := zap.NewNop()

	loopback := &client.HandlerTransport{}
	api := client.NewWithHTTPClient("https://localhost:5001/api", &http.Client{Transport: loopback, Timeout: 5 * time.Second})
	site, err := web.New(api, log, web.Options{ContactLimit: contactLimit, ContactWindow: time.Minute})
	if err != nil {
		t.Fatalf("web.New: %v", err)
	}

	ts.handler = NewRouter(Handlers{
		About:    &AboutHandler{ProfileService: ts.profile, Log: log},
		Projects: &ProjectHandler{ProjectService: ts.projects, Log: log},
		Resume:   &ResumeHandler{ResumeService: ts.resume, Log: log},
		Contact:  &ContactHandler{ContactService: ts.contact, Log: log},
		Health:   &HealthHandler{Log: log},
	}, RouterOptions{ContactLimit: contactLimit, ContactWindow: time.Minute, Web: site}, log)
	loopback.Handler = ts.handler
	return ts
}

func TestSite_ViewsOverTLSShowStoredContent(t *testing.T) {
	ts := newSite(t, 5)
	srv := httptest.NewTLSServer(ts.handler)
	defer srv.Close()

	for _, path := range []string{"/", "/about"} {
		resp, err := srv.Client().Get(srv.URL + path)
		if err != nil {
			t.Fatalf("GET %s: %v", path, err)
		}
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			t.Fatalf("GET %s status = %d; want 200", path, resp.StatusCode)
		}
		page := string(body)
		if !strings.Contains(page, "Ada") {
			t.Errorf("GET %s does not show the stored profile", path)
		}
		if strings.Contains(page, "Error Loading Name") || strings.Contains(page, "error-banner") {
			t.Errorf("GET %s shows the client fallback", path)
		}
	}

	resp, err := srv.Client().Get(srv.URL + "/projects")
	if err != nil {
		t.Fatalf("GET /projects: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if !strings.Contains(string(body), "Sample Project") || strings.Contains(string(body), "error-banner") {
		t.Errorf("GET /projects = %q; want the server placeholder without a banner", body)
	}
}

func postContactForm(h http.Handler, visitor string) *httptest.ResponseRecorder {
	form := url.Values{"name": {"Ada"}, "email": {"ada@example.com"}, "message": {"Hi"}}
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-Forwarded-For", visitor)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestSite_ContactLimitIsPerVisitor(t *testing.T) {
	const limit = 5
	ts := newSite(t, limit)

	visitors := limit + 2
	for i := 1; i <= visitors; i++ {
		rec := postContactForm(ts.handler, fmt.Sprintf("203.0.113.%d", i))
		if rec.Code != http.StatusOK {
			t.Fatalf("visitor %d status = %d; want 200", i, rec.Code)
		}
	}
	if ts.contact.calls != visitors {
		t.Fatalf("contact service calls = %d; want %d", ts.contact.calls, visitors)
	}

	for i := 0; i < limit; i++ {
		postContactForm(ts.handler, "198.51.100.9")
	}
	if rec := postContactForm(ts.handler, "198.51.100.9"); rec.Code != http.StatusTooManyRequests {
		t.Errorf("repeat visitor status = %d; want 429", rec.Code)
	}
}
