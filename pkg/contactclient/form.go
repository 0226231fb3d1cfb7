package contactclient

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/atomic"
)

// State of the contact form
type State string

const (
	StateIdle    State = "idle"
	StateSending State = "sending"
	StateSuccess State = "success"
	StateError   State = "error"
)

// Messages shown next to the submit button
const (
	MsgIdle        = "Respondemos en horario laboral."
	MsgSending     = "Enviando..."
	MsgSuccess     = "Gracias. Te responderemos en 24 horas habiles."
	MsgFailed      = "No pudimos enviar el formulario. Intenta mas tarde."
	MsgUnreachable = "No pudimos conectar con el servidor. Revisa tu conexion e intenta nuevamente."
)

// Status is what the form currently displays
type Status struct {
	State   State
	Message string
}

// Form holds the field values of one contact form and at most one
// submission in flight.
type Form struct {
	client   *Client
	inFlight *atomic.Bool

	mu     sync.Mutex
	values Submission
	status Status
}

func NewForm(client *Client) *Form {
	return &Form{
		client:   client,
		inFlight: atomic.NewBool(false),
		status:   Status{State: StateIdle, Message: MsgIdle},
	}
}

func (f *Form) SetValues(v Submission) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values = v
}

func (f *Form) Values() Submission {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.values
}

func (f *Form) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

func (f *Form) setStatus(s State, msg string) Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = Status{State: s, Message: msg}
	return f.status
}

// Submit sends the current values. It returns false without doing anything
// while another Submit on the same form is still running. On success the
// values are cleared.
func (f *Form) Submit(ctx context.Context) (Status, bool) {
	if !f.inFlight.CompareAndSwap(false, true) {
		return f.Status(), false
	}
	defer f.inFlight.Store(false)

	f.setStatus(StateSending, MsgSending)

	err := f.client.Submit(ctx, f.Values())
	switch {
	case err == nil:
		f.SetValues(Submission{})
		return f.setStatus(StateSuccess, MsgSuccess), true
	case errors.Is(err, ErrUnreachable):
		return f.setStatus(StateError, MsgUnreachable), true
	default:
		return f.setStatus(StateError, MsgFailed), true
	}
}
