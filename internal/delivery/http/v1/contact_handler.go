package v1

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"humusgarden-backend/internal/delivery/http/middleware"
	"humusgarden-backend/internal/delivery/http/response"
	"humusgarden-backend/internal/domain"
	"humusgarden-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
)

// Client-facing messages. Relay failure details never reach the client.
const (
	MsgMissingFields  = "Faltan campos obligatorios"
	MsgNotConfigured  = "Configuracion SMTP incompleta en el servidor"
	MsgDeliveryFailed = "No se pudo enviar el mensaje"
)

type ContactHandler struct {
	contactUC domain.ContactUsecase
}

// NewContactHandler registers the contact routes (public, no auth required)
func NewContactHandler(public *gin.RouterGroup, contactUC domain.ContactUsecase) {
	handler := &ContactHandler{
		contactUC: contactUC,
	}

	public.POST("/contact", handler.SubmitContact)
}

// SubmitContact godoc
// @Summary      Submit Contact Form
// @Description  Relays a contact form submission to the business inbox as one email. phone is optional.
// @Tags         contact
// @Accept       json
// @Produce      json
// @Param        contact  body      domain.ContactSubmission  true  "Contact Form Data"
// @Success      200      {object}  response.Ack
// @Failure      400      {object}  response.ErrorBody
// @Failure      413      {object}  response.ErrorBody
// @Failure      500      {object}  response.ErrorBody
// @Router       /api/contact [post]
func (h *ContactHandler) SubmitContact(c *gin.Context) {
	raw, err := c.GetRawData()
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			_ = c.Error(apperror.TooLarge(middleware.MsgBodyTooLarge))
			return
		}
		raw = nil
	}

	req := decodeSubmission(c.ContentType(), raw)

	// A client disconnect must not abort a send already in progress
	ctx := context.WithoutCancel(c.Request.Context())

	if err := h.contactUC.SendContactMessage(ctx, &req); err != nil {
		switch {
		case errors.Is(err, domain.ErrMissingFields):
			_ = c.Error(apperror.BadRequest(MsgMissingFields))
		case errors.Is(err, domain.ErrMailNotConfigured):
			_ = c.Error(apperror.New(http.StatusInternalServerError, MsgNotConfigured, nil))
		default:
			_ = c.Error(apperror.Internal(MsgDeliveryFailed, err))
		}
		return
	}

	response.OK(c)
}

// decodeSubmission reads the form fields from a JSON object body. Other
// content types, malformed JSON and non-object values yield an empty submission.
func decodeSubmission(contentType string, raw []byte) domain.ContactSubmission {
	if contentType != binding.MIMEJSON || len(raw) == 0 {
		return domain.ContactSubmission{}
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return domain.ContactSubmission{}
	}
	return domain.NewContactSubmission(fields)
}
