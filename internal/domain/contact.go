package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

// Service values offered by the contact form. The server does not enforce them.
const (
	ServiceMaintenance = "mantencion"
	ServiceDesign      = "diseno"
	ServiceIrrigation  = "riego"
	ServiceOther       = "otros"
)

// Services is the catalogue shown in the form's service select
var Services = []string{ServiceMaintenance, ServiceDesign, ServiceIrrigation, ServiceOther}

// IsKnownService reports whether s is one of the form's options
func IsKnownService(s string) bool {
	return slices.Contains(Services, s)
}

var (
	// ErrMissingFields: name, email, service or message is absent or empty
	ErrMissingFields = errors.New("missing required contact fields")
	// ErrMailNotConfigured: SMTP credentials were not supplied at startup
	ErrMailNotConfigured = errors.New("smtp relay is not configured")
	// ErrDeliveryFailed: the relay rejected or never accepted the message
	ErrDeliveryFailed = errors.New("contact email delivery failed")
)

// ContactSubmission is a single contact form post. It lives for one request only.
type ContactSubmission struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required"`
	Phone   string `json:"phone"`
	Service string `json:"service" validate:"required" enums:"mantencion,diseno,riego,otros"`
	Message string `json:"message" validate:"required"`
}

// ContactUsecase defines the interface for contact form operations
type ContactUsecase interface {
	// SendContactMessage validates the submission and relays it as one email
	SendContactMessage(ctx context.Context, req *ContactSubmission) error
}

// NewContactSubmission builds a submission from a decoded JSON object.
// Values are taken the way the web form posts them: absent, null, false,
// zero and "" count as missing; other scalars are stringified.
func NewContactSubmission(fields map[string]any) ContactSubmission {
	return ContactSubmission{
		Name:    formValue(fields["name"]),
		Email:   formValue(fields["email"]),
		Phone:   formValue(fields["phone"]),
		Service: formValue(fields["service"]),
		Message: formValue(fields["message"]),
	}
}

func formValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if !val {
			return ""
		}
		return "true"
	case json.Number:
		if f, err := val.Float64(); err == nil && f == 0 {
			return ""
		}
		return val.String()
	case float64:
		if val == 0 {
			return ""
		}
		return fmt.Sprint(val)
	default:
		// objects and arrays are never empty for the form
		raw, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(raw)
	}
}
