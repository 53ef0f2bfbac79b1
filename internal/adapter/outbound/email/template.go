package email

import (
	"bytes"
	"fmt"
	"html/template"
)

// Sender identifies the From address of outgoing mail.
type Sender struct {
	Address string
	Name    string
}

var notificationTemplate = template.Must(template.New("notification").Parse(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
        .container { max-width: 600px; margin: 0 auto; padding: 20px; }
        .footer { margin-top: 30px; font-size: 12px; color: #666; }
    </style>
</head>
<body>
    <div class="container">
        <h1>{{.Subject}}</h1>
        <p>Hi {{.Name}},</p>
        <p>{{.Message}}</p>
        <div class="footer">
            <p>You are receiving this email because of activity on your PropMarket account.</p>
        </div>
    </div>
</body>
</html>
`))

// renderNotification renders the HTML body of a notification email.
func renderNotification(name, subject, message string) (string, error) {
	if name == "" {
		name = "there"
	}
	var buf bytes.Buffer
	err := notificationTemplate.Execute(&buf, map[string]string{
		"Name":    name,
		"Subject": subject,
		"Message": message,
	})
	if err != nil {
		return "", fmt.Errorf("render template: %w", err)
	}
	return buf.String(), nil
}
