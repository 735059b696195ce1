package notify

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"net/smtp"

	"stmtapi/internal/config"
	"stmtapi/internal/logx"
)

const processedSubject = "Statement processed"

var processedTemplate = template.Must(template.New("processed").Parse(`<html>
<body>
  <p>Your statement <strong>{{.Filename}}</strong> has been processed.</p>
  <ul>
    <li>Holdings extracted: {{.Holdings}}</li>
    <li>Total value: {{printf "%.2f" .TotalValue}} {{.Currency}}</li>
  </ul>
  <p>Document ID: {{.DocumentID}}</p>
</body>
</html>`))

// emailNotifier sends notifications over SMTP with PLAIN auth.
type emailNotifier struct {
	cfg  config.SMTPConfig
	to   string
	send func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

// NewEmail creates an SMTP notifier. It returns (nil, nil) when SMTP is not
// configured, so callers can wire a nil Notifier and skip notifications.
func NewEmail(cfg config.SMTPConfig, to string) (Notifier, error) {
	if cfg.Host == "" {
		return nil, nil
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("smtp from address is required")
	}
	if to == "" {
		return nil, fmt.Errorf("notification recipient is required")
	}
	return &emailNotifier{cfg: cfg, to: to, send: smtp.SendMail}, nil
}

func (n *emailNotifier) ProcessingComplete(ctx context.Context, res ProcessingResult) error {
	body, err := RenderProcessingComplete(res)
	if err != nil {
		return err
	}

	msg := buildMessage(n.cfg.From, n.to, processedSubject, body)
	addr := n.cfg.Host + ":" + n.cfg.Port

	var auth smtp.Auth
	if n.cfg.Username != "" {
		auth = smtp.PlainAuth("", n.cfg.Username, n.cfg.Password, n.cfg.Host)
	}

	if err := n.send(addr, auth, n.cfg.From, []string{n.to}, msg); err != nil {
		logx.Error("notification_send_failed", err, map[string]any{
			"component":   "notify",
			"document_id": res.DocumentID,
		})
		return fmt.Errorf("send mail: %w", err)
	}

	logx.Info("notification_sent", map[string]any{
		"component":   "notify",
		"document_id": res.DocumentID,
	})
	return nil
}

// RenderProcessingComplete renders the completion email body.
func RenderProcessingComplete(res ProcessingResult) (string, error) {
	var buf bytes.Buffer
	if err := processedTemplate.Execute(&buf, res); err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}

func buildMessage(from, to, subject, htmlBody string) []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(htmlBody)
	return buf.Bytes()
}
