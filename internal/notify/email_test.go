package notify

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stmtapi/internal/config"
)

func TestNewEmail(t *testing.T) {
	t.Run("disabled when host empty", func(t *testing.T) {
		n, err := NewEmail(config.SMTPConfig{}, "ops@example.com")
		assert.NoError(t, err)
		assert.Nil(t, n)
	})

	t.Run("missing from", func(t *testing.T) {
		_, err := NewEmail(config.SMTPConfig{Host: "smtp.example.com"}, "ops@example.com")
		assert.Error(t, err)
	})

	t.Run("missing recipient", func(t *testing.T) {
		_, err := NewEmail(config.SMTPConfig{Host: "smtp.example.com", From: "noreply@example.com"}, "")
		assert.Error(t, err)
	})
}

func TestRenderProcessingComplete(t *testing.T) {
	body, err := RenderProcessingComplete(ProcessingResult{
		DocumentID: "doc-1",
		Filename:   "q1 <statement>.pdf",
		Holdings:   12,
		TotalValue: 125000.5,
		Currency:   "USD",
	})

	require.NoError(t, err)
	assert.Contains(t, body, "Holdings extracted: 12")
	assert.Contains(t, body, "125000.50 USD")
	assert.Contains(t, body, "doc-1")
	// html/template must escape the filename.
	assert.Contains(t, body, "q1 &lt;statement&gt;.pdf")
	assert.NotContains(t, body, "<statement>")
}

func TestProcessingComplete(t *testing.T) {
	cfg := config.SMTPConfig{
		Host:     "smtp.example.com",
		Port:     "587",
		Username: "user",
		Password: "pass",
		From:     "noreply@example.com",
	}

	t.Run("sends rendered message", func(t *testing.T) {
		var gotAddr, gotFrom string
		var gotTo []string
		var gotMsg []byte

		n := &emailNotifier{cfg: cfg, to: "ops@example.com", send: func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
			gotAddr, gotFrom, gotTo, gotMsg = addr, from, to, msg
			return nil
		}}

		err := n.ProcessingComplete(context.Background(), ProcessingResult{DocumentID: "doc-1", Filename: "q1.pdf", Holdings: 3, TotalValue: 10, Currency: "USD"})

		require.NoError(t, err)
		assert.Equal(t, "smtp.example.com:587", gotAddr)
		assert.Equal(t, "noreply@example.com", gotFrom)
		assert.Equal(t, []string{"ops@example.com"}, gotTo)
		assert.Contains(t, string(gotMsg), "Subject: Statement processed")
		assert.Contains(t, string(gotMsg), "q1.pdf")
	})

	t.Run("propagates send failure", func(t *testing.T) {
		n := &emailNotifier{cfg: cfg, to: "ops@example.com", send: func(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
			return errors.New("connection refused")
		}}

		err := n.ProcessingComplete(context.Background(), ProcessingResult{DocumentID: "doc-1"})
		assert.Error(t, err)
	})
}
