package email

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"
)

// ContactData holds the data for contact form notification emails
type ContactData struct {
	FirstName   string
	LastName    string
	Email       string
	Message     string
	SubmittedAt time.Time
	RemoteIP    string
	BotScore    float64
	HasBotScore bool
}

func (d ContactData) fullName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}

// notificationTemplate is the HTML template for contact form emails.
// All submitted values are escaped by html/template on interpolation;
// the message body is pre-escaped separately so its line breaks survive
// as <br> tags.
const notificationTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Neue Kontaktanfrage</title>
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .header { background: #0066cc; color: white; padding: 20px; text-align: center; }
        .content { padding: 20px; background: #f9f9f9; }
        .field { margin-bottom: 15px; }
        .label { font-weight: bold; color: #555; }
        .value { margin-top: 5px; }
        .message-box { background: white; padding: 15px; border-left: 4px solid #0066cc; margin-top: 10px; }
        .footer { text-align: center; padding: 20px; color: #888; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>Neue Kontaktanfrage</h1>
        </div>
        <div class="content">
            <div class="field">
                <div class="label">Von:</div>
                <div class="value">{{.Name}} ({{.Email}})</div>
            </div>
            <div class="field">
                <div class="label">Nachricht:</div>
                <div class="message-box">{{.MessageHTML}}</div>
            </div>
        </div>
        <div class="footer">
            <p>Gesendet am {{.Timestamp}} über das Kontaktformular.</p>
            <p>Datenschutzerklärung akzeptiert: ja</p>{{if .RemoteIP}}
            <p>IP-Adresse: {{.RemoteIP}}</p>{{end}}{{if .Score}}
            <p>reCAPTCHA-Score: {{.Score}}</p>{{end}}
            <p>Zum Antworten einfach auf diese E-Mail antworten (Reply-To: {{.Email}}).</p>
        </div>
    </div>
</body>
</html>`

// Compose renders the plain-text and HTML notification bodies for a
// validated submission and wraps them into a provider-ready Message.
func Compose(from, to string, data ContactData) (*Message, error) {
	text := composeText(data)

	html, err := composeHTML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to render notification email: %w", err)
	}

	return &Message{
		From:    from,
		To:      to,
		ReplyTo: data.Email,
		Subject: fmt.Sprintf("Kontaktanfrage von %s", data.fullName()),
		Text:    text,
		HTML:    html,
	}, nil
}

func composeText(data ContactData) string {
	var b strings.Builder
	b.WriteString("==============================\n")
	b.WriteString(" Neue Kontaktanfrage\n")
	b.WriteString("==============================\n\n")
	fmt.Fprintf(&b, "Name:   %s\n", data.fullName())
	fmt.Fprintf(&b, "E-Mail: %s\n\n", data.Email)
	b.WriteString("Nachricht:\n")
	b.WriteString(data.Message)
	b.WriteString("\n\n------------------------------\n")
	fmt.Fprintf(&b, "Gesendet am: %s\n", formatTimestamp(data.SubmittedAt))
	b.WriteString("Datenschutzerklärung akzeptiert: ja\n")
	if data.RemoteIP != "" {
		fmt.Fprintf(&b, "IP-Adresse: %s\n", data.RemoteIP)
	}
	if data.HasBotScore {
		fmt.Fprintf(&b, "reCAPTCHA-Score: %.2f\n", data.BotScore)
	}
	return b.String()
}

func composeHTML(data ContactData) (string, error) {
	tmpl, err := template.New("notification").Parse(notificationTemplate)
	if err != nil {
		return "", fmt.Errorf("failed to parse email template: %w", err)
	}

	// Escape first, then turn line breaks into tags. Doing it in this
	// order keeps user-controlled "<br>" strings escaped.
	escaped := template.HTMLEscapeString(data.Message)
	messageHTML := template.HTML(strings.ReplaceAll(escaped, "\n", "<br>"))

	score := ""
	if data.HasBotScore {
		score = fmt.Sprintf("%.2f", data.BotScore)
	}

	var body bytes.Buffer
	err = tmpl.Execute(&body, map[string]any{
		"Name":        data.fullName(),
		"Email":       data.Email,
		"MessageHTML": messageHTML,
		"Timestamp":   formatTimestamp(data.SubmittedAt),
		"RemoteIP":    data.RemoteIP,
		"Score":       score,
	})
	if err != nil {
		return "", fmt.Errorf("failed to execute email template: %w", err)
	}
	return body.String(), nil
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format("02.01.2006 15:04 Uhr (UTC)")
}
