package client

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pngalemo/portfolio/internal/models"
)

// roundTripperFunc lets a function stand in for the transport.
type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func newTestClient(fn roundTripperFunc) *Client {
	return NewWithHTTPClient("http://api.test/api/", &http.Client{Transport: fn, Timeout: time.Second})
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": {"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestClient_About(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, http.MethodGet, req.Method)
		assert.Equal(t, "http://api.test/api/about", req.URL.String())
		return jsonResponse(http.StatusOK, `{"name":"Ada","skills":[{"name":"Go","level":"Expert"}]}`), nil
	})

	p, err := c.About(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Ada", p.Name)
	assert.Equal(t, []models.Skill{{Name: "Go", Level: "Expert"}}, p.Skills)
}

func TestClient_ResumeCategoryQuery(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, "Award", req.URL.Query().Get("category"))
		return jsonResponse(http.StatusOK, `[]`), nil
	})
	_, err := c.Resume(context.Background(), models.CategoryAward)
	require.NoError(t, err)
}

func TestClient_CreateProjectSendsJSON(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		assert.Equal(t, http.MethodPost, req.Method)
		assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
		b, _ := io.ReadAll(req.Body)
		assert.Contains(t, string(b), `"title":"Site"`)
		return jsonResponse(http.StatusCreated, `{"id":"p1","title":"Site"}`), nil
	})

	p, err := c.CreateProject(context.Background(), models.Project{Title: "Site"})
	require.NoError(t, err)
	assert.Equal(t, "p1", p.ID)
}

func TestClient_StatusError(t *testing.T) {
	c := newTestClient(func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusNotFound, `{"message":"Project not found"}`), nil
	})

	err := c.DeleteProject(context.Background(), "nope")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.Equal(t, "Project not found", se.Message)
}

func TestClient_InvalidJSON(t *testing.T) {
	c := newTestClient(func(*http.Request) (*http.Response, error) {
		return jsonResponse(http.StatusOK, `not-json`), nil
	})
	_, err := c.Projects(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid response")
}

func TestLoadAbout(t *testing.T) {
	tests := []struct {
		name       string
		rt         roundTripperFunc
		wantName   string
		wantBanner string
	}{
		{
			name: "network failure",
			rt: func(*http.Request) (*http.Response, error) {
				return nil, errors.New("connection refused")
			},
			wantName:   "Error Loading Name",
			wantBanner: AboutBanner,
		},
		{
			name: "server error",
			rt: func(*http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusInternalServerError, `{"message":"Server Error"}`), nil
			},
			wantName:   "Error Loading Name",
			wantBanner: AboutBanner,
		},
		{
			name: "decode failure",
			rt: func(*http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `{"name":`), nil
			},
			wantName:   "Error Loading Name",
			wantBanner: AboutBanner,
		},
		{
			name: "server placeholder is not an error",
			rt: func(*http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `{"name":"Your Name","bio":"Please update your bio in the database."}`), nil
			},
			wantName: "Your Name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestClient(tt.rt).LoadAbout(context.Background())
			assert.Equal(t, tt.wantName, v.Data.Name)
			assert.Equal(t, tt.wantBanner, v.Banner)
			assert.Equal(t, tt.wantBanner != "", v.Failed())
			if v.Failed() {
				assert.Error(t, v.Err)
				assert.Equal(t, ErrorProfileImage, v.Data.ProfileImageURL)
			}
		})
	}
}

func TestLoadListsFallBackToEmpty(t *testing.T) {
	c := newTestClient(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("timeout")
	})

	projects := c.LoadProjects(context.Background())
	assert.Empty(t, projects.Data)
	assert.NotNil(t, projects.Data)
	assert.Equal(t, ProjectsBanner, projects.Banner)

	resume := c.LoadResume(context.Background(), "")
	assert.Empty(t, resume.Data)
	assert.Equal(t, ResumeBanner, resume.Banner)
}

func TestSubmitContact(t *testing.T) {
	tests := []struct {
		name        string
		rt          roundTripperFunc
		wantSuccess bool
		wantMessage string
		wantErr     bool
	}{
		{
			name: "sent",
			rt: func(*http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusOK, `{"success":true,"message":"Message sent successfully! Thank you for reaching out."}`), nil
			},
			wantSuccess: true,
			wantMessage: "Message sent successfully! Thank you for reaching out.",
		},
		{
			name: "rejected by server",
			rt: func(*http.Request) (*http.Response, error) {
				return jsonResponse(http.StatusBadRequest, `{"success":false,"message":"Please fill in all fields."}`), nil
			},
			wantMessage: "Please fill in all fields.",
			wantErr:     true,
		},
		{
			name: "network failure",
			rt: func(*http.Request) (*http.Response, error) {
				return nil, errors.New("dial tcp: no route to host")
			},
			wantMessage: ContactNetworkFailure,
			wantErr:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := newTestClient(tt.rt).SubmitContact(context.Background(), models.ContactSubmission{Name: "Ada", Email: "ada@example.com", Message: "Hi"})
			assert.Equal(t, tt.wantSuccess, res.Success)
			assert.Equal(t, tt.wantMessage, res.Message)
			assert.Equal(t, tt.wantErr, err != nil)
		})
	}
}

func TestHandlerTransport(t *testing.T) {
	api := chi.NewRouter()
	api.Get("/api/about", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "203.0.113.5", r.Header.Get("X-Forwarded-For"))
		assert.NotEmpty(t, r.RemoteAddr)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"Ada"}`))
	})
	api.Delete("/api/projects/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Project not found"}`))
	})

	c := NewWithHTTPClient("https://localhost:5001/api", &http.Client{Transport: &HandlerTransport{Handler: api}})

	// A context that already carries an outer router's state must not
	// change how the API routes.
	outer := context.WithValue(context.Background(), chi.RouteCtxKey, chi.NewRouteContext())
	ctx := WithForwardedFor(outer, "203.0.113.5:4444")

	p, err := c.About(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Ada", p.Name)

	err = c.DeleteProject(ctx, "nope")
	var se *StatusError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, http.StatusNotFound, se.StatusCode)
	assert.Equal(t, "Project not found", se.Message)
}

func TestHandlerTransport_NoHandler(t *testing.T) {
	c := NewWithHTTPClient("http://localhost/api", &http.Client{Transport: &HandlerTransport{}})
	_, err := c.About(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "request failed")
}

func TestWithForwardedFor_Empty(t *testing.T) {
	c := newTestClient(func(req *http.Request) (*http.Response, error) {
		assert.Empty(t, req.Header.Get("X-Forwarded-For"))
		return jsonResponse(http.StatusOK, `{}`), nil
	})
	_, err := c.About(WithForwardedFor(context.Background(), ""))
	require.NoError(t, err)
}
