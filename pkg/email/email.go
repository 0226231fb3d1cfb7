package email

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"text/template"

	"humusgarden-backend/config"

	"gopkg.in/gomail.v2"
)

// BrandTag prefixes every contact notification subject
const BrandTag = "[HumusGarden]"

// PhonePlaceholder replaces an empty phone number in the notification body
const PhonePlaceholder = "No indicado"

// Message is a plain-text email ready for the relay
type Message struct {
	From    string
	To      []string
	Cc      []string
	ReplyTo string
	Subject string
	Text    string
}

// Sender delivers a message through some relay.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// Envelope holds the addresses resolved from configuration once at startup
type Envelope struct {
	From string
	To   []string
	Cc   []string
}

// NewEnvelope resolves sender/recipient fallbacks to the SMTP account
func NewEnvelope(cfg *config.Config) Envelope {
	return Envelope{
		From: cfg.SenderAddress(),
		To:   cfg.RecipientAddresses(),
		Cc:   cfg.CCAddresses(),
	}
}

// ContactEmailData holds the data for contact form emails
type ContactEmailData struct {
	Name    string
	Email   string
	Phone   string
	Service string
	Message string
}

// contactEmailTemplate is the plain-text body of the contact notification
const contactEmailTemplate = `Nuevo contacto desde humusgarden.cl

Nombre: {{.Name}}
Email: {{.Email}}
Telefono: {{if .Phone}}{{.Phone}}{{else}}` + PhonePlaceholder + `{{end}}
Servicio: {{.Service}}

Mensaje:
{{.Message}}`

var contactTmpl = template.Must(template.New("contact").Parse(contactEmailTemplate))

// NewContactMessage renders the notification for a contact submission
func NewContactMessage(env Envelope, data ContactEmailData) (Message, error) {
	var body bytes.Buffer
	if err := contactTmpl.Execute(&body, data); err != nil {
		return Message{}, fmt.Errorf("failed to execute email template: %w", err)
	}

	return Message{
		From:    env.From,
		To:      env.To,
		Cc:      env.Cc,
		ReplyTo: data.Email,
		Subject: fmt.Sprintf("%s %s - Nuevo mensaje", BrandTag, data.Service),
		Text:    body.String(),
	}, nil
}

// SMTPSender sends messages through an authenticated SMTP relay
type SMTPSender struct {
	dialer *gomail.Dialer
}

// NewSMTPSender creates a sender from the process configuration. Implicit TLS
// follows cfg.SMTPSecure; otherwise gomail upgrades with STARTTLS when offered.
func NewSMTPSender(cfg *config.Config) *SMTPSender {
	d := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	d.SSL = cfg.SMTPSecure
	return &SMTPSender{dialer: d}
}

// Send dials the relay and submits msg. The dial and SMTP exchange are not
// bound to ctx; a started delivery runs to completion.
func (s *SMTPSender) Send(_ context.Context, msg Message) error {
	if err := s.dialer.DialAndSend(buildMessage(msg)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func buildMessage(msg Message) *gomail.Message {
	m := gomail.NewMessage(gomail.SetCharset("UTF-8"))
	m.SetHeader("From", msg.From)
	m.SetHeader("To", msg.To...)
	if len(msg.Cc) > 0 {
		m.SetHeader("Cc", msg.Cc...)
	}
	if msg.ReplyTo != "" {
		m.SetHeader("Reply-To", msg.ReplyTo)
	}
	m.SetHeader("Subject", msg.Subject)
	m.SetBody("text/plain", msg.Text)
	return m
}

// String renders msg headers for debug logs; the body is omitted
func (m Message) String() string {
	return fmt.Sprintf("from=%s to=%s cc=%s reply_to=%s subject=%q",
		m.From, strings.Join(m.To, ","), strings.Join(m.Cc, ","), m.ReplyTo, m.Subject)
}
