package v1

import (
	"net/http"
	"time"

	"go-contact-backend/internal/delivery/http/response"
	"go-contact-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the contact routes (public, no auth
// required). The bare /submit alias exists for older embeds of the
// form script that predate the /api prefix.
func NewContactHandler(api *gin.RouterGroup, root *gin.Engine, limit gin.HandlerFunc, contactUC domain.ContactUsecase) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	api.POST("/contact", limit, handler.SubmitContact)
	root.POST("/submit", limit, handler.SubmitContact)
}

// SubmitContact accepts a form-encoded contact submission, runs it
// through the pipeline and answers with the JSON envelope.
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	sub := domain.NewSubmission(map[string]string{
		"vorname":        c.PostForm("vorname"),
		"nachname":       c.PostForm("nachname"),
		"email":          c.PostForm("email"),
		"message":        c.PostForm("message"),
		"privacy":        c.PostForm("privacy"),
		"website":        c.PostForm("website"),
		"recaptchaToken": c.PostForm("recaptchaToken"),
	}, c.ClientIP(), time.Now())

	if err := h.contactUC.SubmitContact(c.Request.Context(), sub); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, domain.MsgThankYou)
}
