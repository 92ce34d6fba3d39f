package service

import (
	"errors"
	"net/textproto"
	"testing"
	"time"

	"portal_creditos/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// timeoutError simula un net.Error con timeout.
type timeoutError struct{}

func (timeoutError) Error() string   { return "i/o timeout" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func Test_classifySMTPError(t *testing.T) {
	tests := []struct {
		name         string
		err          error
		wantCategory model.MailErrorCategory
	}{
		{"auth 535", &textproto.Error{Code: 535, Msg: "authentication credentials invalid"}, model.MailErrAuth},
		{"auth 530", &textproto.Error{Code: 530, Msg: "authentication required"}, model.MailErrAuth},
		{"sender rejected 550", &textproto.Error{Code: 550, Msg: "relay denied"}, model.MailErrSenderRejected},
		{"sender rejected 553", &textproto.Error{Code: 553, Msg: "invalid sender domain"}, model.MailErrSenderRejected},
		{"rate limited 421", &textproto.Error{Code: 421, Msg: "too many connections"}, model.MailErrRateLimited},
		{"rate limited 452", &textproto.Error{Code: 452, Msg: "too many recipients"}, model.MailErrRateLimited},
		{"timeout", timeoutError{}, model.MailErrTimeout},
		{"unknown", errors.New("connection reset by peer"), model.MailErrUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifySMTPError(tt.err)

			var mailErr *model.MailError
			require.ErrorAs(t, err, &mailErr)
			assert.Equal(t, tt.wantCategory, mailErr.Category)
			// Todo fallo de transporte desemboca en el mismo sentinel.
			assert.ErrorIs(t, err, model.ErrMailTransport)
		})
	}
}

func Test_buildMIMEMessage(t *testing.T) {
	msg := buildMIMEMessage(
		"no-reply@portalcreditos.example",
		"cliente@example.com",
		"Restablece tu contraseña",
		"<p>hola</p>",
		"hola",
	)

	assert.Contains(t, msg, "From: no-reply@portalcreditos.example\r\n")
	assert.Contains(t, msg, "To: cliente@example.com\r\n")
	assert.Contains(t, msg, "Subject: Restablece tu contraseña\r\n")
	assert.Contains(t, msg, "Content-Type: multipart/alternative")
	assert.Contains(t, msg, "Content-Type: text/plain; charset=UTF-8")
	assert.Contains(t, msg, "Content-Type: text/html; charset=UTF-8")
	assert.Contains(t, msg, "<p>hola</p>")
	assert.Contains(t, msg, "\r\nhola\r\n")
}

func Test_formatTTL(t *testing.T) {
	assert.Equal(t, "1 hora", formatTTL(time.Hour))
	assert.Equal(t, "24 horas", formatTTL(24*time.Hour))
	assert.Equal(t, "15 minutos", formatTTL(15*time.Minute))
}
