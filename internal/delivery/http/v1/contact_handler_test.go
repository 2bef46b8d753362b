package v1_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"go-contact-backend/config"
	v1 "go-contact-backend/internal/delivery/http/v1"
	"go-contact-backend/internal/domain"
	"go-contact-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type MockContactUC struct {
	mock.Mock
}

func (m *MockContactUC) SubmitContact(ctx context.Context, sub *domain.Submission) error {
	return m.Called(ctx, sub).Error(0)
}

type envelope struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	Details   string `json:"details"`
	RequestID string `json:"request_id"`
}

func newTestRouter(uc domain.ContactUsecase) *gin.Engine {
	return v1.NewRouter(v1.RouterDeps{
		ContactUC: uc,
		Config: &config.Config{
			RateLimitRPS:   100,
			RateLimitBurst: 100,
		},
	})
}

func postForm(router *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func validForm() url.Values {
	return url.Values{
		"vorname":  {"Max"},
		"nachname": {"Mustermann"},
		"email":    {"max@example.com"},
		"message":  {"Ich interessiere mich für Ihr Angebot."},
		"privacy":  {"on"},
	}
}

func TestSubmitContactEndpoint(t *testing.T) {
	t.Run("Should answer with the thank-you envelope on success", func(t *testing.T) {
		uc := new(MockContactUC)
		uc.On("SubmitContact", mock.Anything, mock.MatchedBy(func(sub *domain.Submission) bool {
			return sub.FirstName == "Max" && sub.ConsentGiven && sub.Honeypot == ""
		})).Return(nil)

		w := postForm(newTestRouter(uc), "/api/contact", validForm())

		assert.Equal(t, http.StatusOK, w.Code)
		env := decode(t, w)
		assert.True(t, env.Success)
		assert.Equal(t, domain.MsgThankYou, env.Message)
		assert.Empty(t, env.Details)
		assert.NotEmpty(t, env.RequestID)
		uc.AssertExpectations(t)
	})

	t.Run("Should serve the legacy submit alias", func(t *testing.T) {
		uc := new(MockContactUC)
		uc.On("SubmitContact", mock.Anything, mock.Anything).Return(nil)

		w := postForm(newTestRouter(uc), "/submit", validForm())
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("Should render validation failures as 422 envelopes", func(t *testing.T) {
		uc := new(MockContactUC)
		uc.On("SubmitContact", mock.Anything, mock.Anything).
			Return(apperror.UnprocessableEntity("Bitte geben Sie Ihren Vornamen an."))

		w := postForm(newTestRouter(uc), "/api/contact", url.Values{})

		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		env := decode(t, w)
		assert.False(t, env.Success)
		assert.Contains(t, env.Message, "Vornamen")
	})

	t.Run("Should expose diagnostics only through details", func(t *testing.T) {
		uc := new(MockContactUC)
		uc.On("SubmitContact", mock.Anything, mock.Anything).
			Return(apperror.New(http.StatusInternalServerError, domain.MsgDeliveryFailed, nil).
				WithDetails("resend: unexpected status 500; mailgun: unexpected status 500"))

		w := postForm(newTestRouter(uc), "/api/contact", validForm())

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		env := decode(t, w)
		assert.False(t, env.Success)
		assert.Equal(t, domain.MsgDeliveryFailed, env.Message)
		assert.Contains(t, env.Details, "resend")
		assert.NotContains(t, env.Message, "resend")
	})

	t.Run("Should answer unexpected errors with a generic 500", func(t *testing.T) {
		uc := new(MockContactUC)
		uc.On("SubmitContact", mock.Anything, mock.Anything).Return(assert.AnError)

		w := postForm(newTestRouter(uc), "/api/contact", validForm())

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		env := decode(t, w)
		assert.Equal(t, domain.MsgUnexpected, env.Message)
		assert.Equal(t, assert.AnError.Error(), env.Details)
	})
}

func TestCORSAndMethods(t *testing.T) {
	t.Run("Should answer preflight with 204 and CORS headers", func(t *testing.T) {
		router := newTestRouter(new(MockContactUC))
		req := httptest.NewRequest(http.MethodOptions, "/api/contact", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Empty(t, w.Body.String())
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
		assert.Equal(t, "POST, OPTIONS", w.Header().Get("Access-Control-Allow-Methods"))
		assert.Equal(t, "Content-Type", w.Header().Get("Access-Control-Allow-Headers"))
	})

	t.Run("Should carry CORS headers on every response", func(t *testing.T) {
		uc := new(MockContactUC)
		uc.On("SubmitContact", mock.Anything, mock.Anything).Return(nil)

		w := postForm(newTestRouter(uc), "/api/contact", validForm())
		assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("Should reject other methods with 405 and an Allow header", func(t *testing.T) {
		router := newTestRouter(new(MockContactUC))
		req := httptest.NewRequest(http.MethodGet, "/api/contact", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
		assert.Equal(t, "POST, OPTIONS", w.Header().Get("Allow"))
	})
}

func TestHealthAndFallback(t *testing.T) {
	t.Run("Should report health through the envelope", func(t *testing.T) {
		router := newTestRouter(new(MockContactUC))
		req := httptest.NewRequest(http.MethodGet, "/api/health", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, decode(t, w).Success)
	})

	t.Run("Should answer unmatched routes with 404 when no static dir is set", func(t *testing.T) {
		router := newTestRouter(new(MockContactUC))
		req := httptest.NewRequest(http.MethodGet, "/irgendwo", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestRateLimit(t *testing.T) {
	t.Run("Should throttle repeated submissions from one client", func(t *testing.T) {
		uc := new(MockContactUC)
		uc.On("SubmitContact", mock.Anything, mock.Anything).Return(nil)

		router := v1.NewRouter(v1.RouterDeps{
			ContactUC: uc,
			Config: &config.Config{
				RateLimitRPS:   1,
				RateLimitBurst: 1,
			},
		})

		first := postForm(router, "/api/contact", validForm())
		second := postForm(router, "/api/contact", validForm())

		assert.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, http.StatusTooManyRequests, second.Code)
		assert.False(t, decode(t, second).Success)
	})
}
