package v1_test

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"humusgarden-backend/config"
	v1 "humusgarden-backend/internal/delivery/http/v1"
	"humusgarden-backend/internal/usecase"
	"humusgarden-backend/pkg/email"
	"humusgarden-backend/pkg/logger"
	"humusgarden-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, msg email.Message) error {
	return m.Called(ctx, msg).Error(0)
}

func newTestRouter(sender email.Sender, configured bool) *gin.Engine {
	cfg := &config.Config{
		SMTPUser:       "cuenta@humusgarden.cl",
		BodyLimitBytes: 1 << 10,
	}
	contactUC := usecase.NewContactUsecase(sender, email.NewEnvelope(cfg), configured, validation.New())

	return v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		HealthUC:  usecase.NewHealthUsecase(),
		Config:    cfg,
	})
}

func postContact(r http.Handler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSubmitContactSuccess(t *testing.T) {
	sender := new(MockSender)
	sender.On("Send", mock.Anything, mock.AnythingOfType("email.Message")).Return(nil).Once().Run(func(args mock.Arguments) {
		msg := args.Get(1).(email.Message)
		assert.Equal(t, "ana@x.cl", msg.ReplyTo)
		assert.Contains(t, msg.Subject, "riego")
		assert.Contains(t, msg.Text, "Telefono: "+email.PhonePlaceholder)
		assert.Equal(t, "cuenta@humusgarden.cl", msg.From)
		assert.Equal(t, []string{"cuenta@humusgarden.cl"}, msg.To)
	})
	r := newTestRouter(sender, true)

	w := postContact(r, `{"name":"Ana","email":"ana@x.cl","service":"riego","message":"Hola"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	sender.AssertNumberOfCalls(t, "Send", 1)
}

func TestSubmitContactValidation(t *testing.T) {
	bodies := map[string]string{
		"missing service": `{"name":"Ana","email":"ana@x.cl","message":"Hola"}`,
		"empty name":      `{"name":"","email":"ana@x.cl","service":"riego","message":"Hola"}`,
		"empty object":    `{}`,
		"no body":         ``,
		"malformed json":  `{"name":"Ana",`,
		"json array":      `["Ana"]`,
		"json null":       `null`,
		"zero name":       `{"name":0,"email":"ana@x.cl","service":"riego","message":"Hola"}`,
		"false email":     `{"name":"Ana","email":false,"service":"riego","message":"Hola"}`,
		"null message":    `{"name":"Ana","email":"ana@x.cl","service":"riego","message":null}`,
	}

	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			sender := new(MockSender)
			r := newTestRouter(sender, true)

			w := postContact(r, body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.JSONEq(t, `{"error":"`+v1.MsgMissingFields+`"}`, w.Body.String())
			sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
		})
	}
}

func TestSubmitContactNonStringValues(t *testing.T) {
	t.Run("Numeric phone is relayed", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("Send", mock.Anything, mock.AnythingOfType("email.Message")).Return(nil).Once().Run(func(args mock.Arguments) {
			msg := args.Get(1).(email.Message)
			assert.Contains(t, msg.Text, "Telefono: 56912345678")
		})
		r := newTestRouter(sender, true)

		w := postContact(r, `{"name":"Ana","email":"ana@x.cl","phone":56912345678,"service":"riego","message":"Hola"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"ok":true}`, w.Body.String())
		sender.AssertNumberOfCalls(t, "Send", 1)
	})

	t.Run("Numeric required field counts as present", func(t *testing.T) {
		sender := new(MockSender)
		sender.On("Send", mock.Anything, mock.AnythingOfType("email.Message")).Return(nil).Once().Run(func(args mock.Arguments) {
			msg := args.Get(1).(email.Message)
			assert.Contains(t, msg.Text, "Nombre: 5")
		})
		r := newTestRouter(sender, true)

		w := postContact(r, `{"name":5,"email":"ana@x.cl","service":"riego","message":"Hola"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		sender.AssertNumberOfCalls(t, "Send", 1)
	})
}

func TestSubmitContactRequiresJSONContentType(t *testing.T) {
	sender := new(MockSender)
	r := newTestRouter(sender, true)

	req := httptest.NewRequest(http.MethodPost, "/api/contact",
		strings.NewReader(`{"name":"Ana","email":"ana@x.cl","service":"riego","message":"Hola"}`))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error":"`+v1.MsgMissingFields+`"}`, w.Body.String())
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)

	t.Run("Charset parameter is accepted", func(t *testing.T) {
		sender.On("Send", mock.Anything, mock.Anything).Return(nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/contact",
			strings.NewReader(`{"name":"Ana","email":"ana@x.cl","service":"riego","message":"Hola"}`))
		req.Header.Set("Content-Type", "application/json; charset=utf-8")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		sender.AssertNumberOfCalls(t, "Send", 1)
	})
}

func TestSubmitContactNotConfigured(t *testing.T) {
	sender := new(MockSender)
	r := newTestRouter(sender, false)

	w := postContact(r, `{"name":"Ana","email":"ana@x.cl","service":"riego","message":"Hola"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"`+v1.MsgNotConfigured+`"}`, w.Body.String())
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestSubmitContactDeliveryFailure(t *testing.T) {
	var logs bytes.Buffer
	logger.InitWithWriter(&logs, "info")
	t.Cleanup(func() { logger.InitWithWriter(&bytes.Buffer{}, "info") })

	sender := new(MockSender)
	sender.On("Send", mock.Anything, mock.Anything).Return(errors.New("dial tcp 10.0.0.1:587: connect: network is unreachable")).Once()
	r := newTestRouter(sender, true)

	w := postContact(r, `{"name":"Ana","email":"ana@x.cl","service":"riego","message":"Hola"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error":"`+v1.MsgDeliveryFailed+`"}`, w.Body.String())
	assert.NotEqual(t, v1.MsgMissingFields, v1.MsgDeliveryFailed)
	assert.NotContains(t, w.Body.String(), "unreachable")
	assert.Contains(t, logs.String(), "network is unreachable")
}

func TestSubmitContactDetachedFromClientCancel(t *testing.T) {
	sender := new(MockSender)
	sender.On("Send", mock.Anything, mock.Anything).Return(nil).Once().Run(func(args mock.Arguments) {
		ctx := args.Get(0).(context.Context)
		assert.NoError(t, ctx.Err())
	})
	r := newTestRouter(sender, true)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/api/contact",
		strings.NewReader(`{"name":"Ana","email":"ana@x.cl","service":"riego","message":"Hola"}`)).WithContext(ctx)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	sender.AssertNumberOfCalls(t, "Send", 1)
}

func TestSubmitContactBodyTooLarge(t *testing.T) {
	sender := new(MockSender)
	r := newTestRouter(sender, true)

	big := `{"name":"Ana","email":"ana@x.cl","service":"riego","message":"` + strings.Repeat("a", 2048) + `"}`

	t.Run("Declared length", func(t *testing.T) {
		w := postContact(r, big)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Contains(t, w.Body.String(), `"error"`)
	})

	t.Run("Chunked body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/contact", strings.NewReader(big))
		req.Header.Set("Content-Type", "application/json")
		req.ContentLength = -1
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
		assert.Contains(t, w.Body.String(), `"error"`)
	})

	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestHealth(t *testing.T) {
	for _, configured := range []bool{true, false} {
		r := newTestRouter(new(MockSender), configured)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	}
}

func TestRouterCORSAndUnknownRoutes(t *testing.T) {
	r := newTestRouter(new(MockSender), true)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "https://humusgarden.cl")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, "https://humusgarden.cl", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/unknown", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"error"`)
}
