package usecase

import (
	"context"
	"fmt"

	"humusgarden-backend/internal/domain"
	"humusgarden-backend/pkg/email"
	"humusgarden-backend/pkg/logger"
	"humusgarden-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
)

type contactUsecase struct {
	sender     email.Sender
	envelope   email.Envelope
	configured bool
	validate   *validator.Validate
}

// NewContactUsecase creates a new contact usecase. configured is the startup
// SMTP credential check; it is consulted on every submission.
func NewContactUsecase(sender email.Sender, envelope email.Envelope, configured bool, validate *validator.Validate) domain.ContactUsecase {
	return &contactUsecase{
		sender:     sender,
		envelope:   envelope,
		configured: configured,
		validate:   validate,
	}
}

// SendContactMessage validates the submission and relays it as one email.
// Nothing is retried.
func (uc *contactUsecase) SendContactMessage(ctx context.Context, req *domain.ContactSubmission) error {
	if req == nil {
		req = &domain.ContactSubmission{}
	}

	if err := uc.validate.Struct(req); err != nil {
		missing := validation.MissingFields(err)
		logger.Log.Debug("Contact submission rejected",
			"missing", missing,
			"labels", validation.Labels(missing),
		)
		return domain.ErrMissingFields
	}

	// Already logged once at startup
	if !uc.configured {
		return domain.ErrMailNotConfigured
	}

	msg, err := email.NewContactMessage(uc.envelope, email.ContactEmailData{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Service: req.Service,
		Message: req.Message,
	})
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrDeliveryFailed, err)
	}

	logger.Log.Debug("Relaying contact email", "message", msg.String())

	// The cause is logged by the HTTP error middleware
	if err := uc.sender.Send(ctx, msg); err != nil {
		return fmt.Errorf("%w: %w", domain.ErrDeliveryFailed, err)
	}

	logger.Log.Info("Contact email sent",
		"service", req.Service,
		"known_service", domain.IsKnownService(req.Service),
		"recipients", len(msg.To),
	)
	return nil
}
