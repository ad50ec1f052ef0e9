// Package web renders the portfolio pages from the API. When an API call
// fails the pages show the client fallbacks together with an error banner.
package web

import (
	"bytes"
	"context"
	"embed"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/pngalemo/portfolio/internal/client"
	"github.com/pngalemo/portfolio/internal/middleware"
	"github.com/pngalemo/portfolio/internal/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// Source loads page data. *client.Client implements it.
type Source interface {
	LoadAbout(ctx context.Context) client.View[models.Profile]
	LoadProjects(ctx context.Context) client.View[[]models.Project]
	LoadResume(ctx context.Context, category models.Category) client.View[[]models.ResumeItem]
	SubmitContact(ctx context.Context, sub models.ContactSubmission) (models.ContactResult, error)
}

// Options tunes the contact form.
type Options struct {
	// ContactLimit form posts are accepted per ContactWindow and client IP.
	ContactLimit  int
	ContactWindow time.Duration
}

type page struct {
	Title         string
	Active        string
	Banner        string
	Data          any
	ImageNotFound string
	Year          int
}

type contactPage struct {
	Form   models.ContactSubmission
	Result models.ContactResult
}

// Server renders the portfolio views.
type Server struct {
	src   Source
	log   *zap.Logger
	pages map[string]*template.Template
	now   func() time.Time
}

// New returns a handler serving /, /about, /projects, /resume and /contact.
func New(src Source, log *zap.Logger, opts Options) (http.Handler, error) {
	s := &Server{src: src, log: log, pages: map[string]*template.Template{}, now: time.Now}

	funcs := template.FuncMap{
		"projectDates": ProjectDates,
		"resumeDates":  ResumeDates,
		"gpa":          FormatGPA,
	}
	for _, name := range []string{"about", "projects", "resume", "contact", "notfound"} {
		t, err := template.New(name).Funcs(funcs).ParseFS(templateFS, "templates/base.html", "templates/"+name+".html")
		if err != nil {
			return nil, err
		}
		s.pages[name] = t
	}

	r := chi.NewRouter()
	r.Get("/", s.About)
	r.Get("/about", s.About)
	r.Get("/projects", s.Projects)
	r.Get("/resume", s.Resume)
	r.Get("/contact", s.ContactForm)
	r.With(middleware.RateLimitByIP(opts.ContactLimit, opts.ContactWindow, s.tooManyContacts)).
		Post("/contact", s.ContactSubmit)
	r.NotFound(s.NotFound)
	return r, nil
}

// About renders the profile.
func (s *Server) About(w http.ResponseWriter, r *http.Request) {
	v := s.src.LoadAbout(apiContext(r))
	s.logFallback("about", v.Err)
	s.render(w, http.StatusOK, "about", page{Title: "About", Active: "about", Banner: v.Banner, Data: v.Data})
}

// Projects renders the project cards.
func (s *Server) Projects(w http.ResponseWriter, r *http.Request) {
	v := s.src.LoadProjects(apiContext(r))
	s.logFallback("projects", v.Err)
	s.render(w, http.StatusOK, "projects", page{Title: "Projects", Active: "projects", Banner: v.Banner, Data: v.Data})
}

// Resume renders the resume grouped by category.
func (s *Server) Resume(w http.ResponseWriter, r *http.Request) {
	v := s.src.LoadResume(apiContext(r), "")
	s.logFallback("resume", v.Err)
	s.render(w, http.StatusOK, "resume", page{Title: "Resume", Active: "resume", Banner: v.Banner, Data: GroupResume(v.Data)})
}

// ContactForm renders an empty contact form.
func (s *Server) ContactForm(w http.ResponseWriter, _ *http.Request) {
	s.render(w, http.StatusOK, "contact", page{Title: "Contact", Active: "contact", Data: contactPage{}})
}

// ContactSubmit relays the posted form and renders the outcome. The form
// keeps its values unless the message was sent.
func (s *Server) ContactSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.render(w, http.StatusBadRequest, "contact", page{Title: "Contact", Active: "contact",
			Data: contactPage{Result: models.ContactResult{Message: "Please fill in all fields."}}})
		return
	}
	form := models.ContactSubmission{
		Name:    strings.TrimSpace(r.PostForm.Get("name")),
		Email:   strings.TrimSpace(r.PostForm.Get("email")),
		Message: strings.TrimSpace(r.PostForm.Get("message")),
	}

	data := contactPage{Form: form}
	status := http.StatusOK
	if form.Name == "" || form.Email == "" || form.Message == "" {
		data.Result = models.ContactResult{Message: "Please fill in all fields."}
		status = http.StatusBadRequest
	} else {
		res, err := s.src.SubmitContact(apiContext(r), form)
		data.Result = res
		if err != nil {
			s.log.Warn("contact submission failed", zap.Error(err))
			status = http.StatusBadGateway
		}
		if res.Success {
			data.Form = models.ContactSubmission{}
		}
	}
	s.render(w, status, "contact", page{Title: "Contact", Active: "contact", Data: data})
}

// NotFound renders the 404 page.
func (s *Server) NotFound(w http.ResponseWriter, _ *http.Request) {
	s.render(w, http.StatusNotFound, "notfound", page{Title: "Not Found"})
}

func (s *Server) tooManyContacts(w http.ResponseWriter, _ *http.Request) {
	s.render(w, http.StatusTooManyRequests, "contact", page{Title: "Contact", Active: "contact",
		Data: contactPage{Result: models.ContactResult{Message: "Too many messages. Please try again later."}}})
}

// apiContext carries the visitor's address to the API calls made for r.
func apiContext(r *http.Request) context.Context {
	return client.WithForwardedFor(r.Context(), r.RemoteAddr)
}

func (s *Server) logFallback(view string, err error) {
	if err != nil {
		s.log.Warn("showing fallback content", zap.String("view", view), zap.Error(err))
	}
}

func (s *Server) render(w http.ResponseWriter, status int, name string, p page) {
	p.ImageNotFound = ImageNotFound
	p.Year = s.now().Year()

	var buf bytes.Buffer
	if err := s.pages[name].ExecuteTemplate(&buf, "base", p); err != nil {
		s.log.Error("render page", zap.String("page", name), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
