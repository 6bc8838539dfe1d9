package mailer

import (
	"bytes"
	"embed"
	"html/template"
	"time"

	"gopkg.in/mail.v2"
)

//go:embed "templates"
var templateFS embed.FS

// Mailer sends templated emails through an SMTP server.
type Mailer struct {
	dialer   *mail.Dialer
	sender   string
	attempts int
}

// Message is a rendered email ready to be sent.
type Message struct {
	Subject   string
	PlainBody string
	HTMLBody  string
}

// New initializes a Mailer for the given SMTP server. Every connection uses
// a 5-second timeout.
func New(host string, port int, username, password, sender string) Mailer {
	dialer := mail.NewDialer(host, port, username, password)
	dialer.Timeout = 5 * time.Second
	return Mailer{
		dialer:   dialer,
		sender:   sender,
		attempts: 3,
	}
}

// Render executes the subject, plainBody and htmlBody templates defined in
// templateFile.
func Render(templateFile string, data any) (Message, error) {
	tmpl, err := template.New("email").ParseFS(templateFS, "templates/"+templateFile)
	if err != nil {
		return Message{}, err
	}
	var msg Message
	parts := []struct {
		name string
		dst  *string
	}{
		{"subject", &msg.Subject},
		{"plainBody", &msg.PlainBody},
		{"htmlBody", &msg.HTMLBody},
	}
	for _, part := range parts {
		buf := new(bytes.Buffer)
		if err := tmpl.ExecuteTemplate(buf, part.name, data); err != nil {
			return Message{}, err
		}
		*part.dst = buf.String()
	}
	return msg, nil
}

// Send renders templateFile with data and delivers it to recipient, retrying
// a failed delivery up to three times.
func (m Mailer) Send(recipient, templateFile string, data any) error {
	rendered, err := Render(templateFile, data)
	if err != nil {
		return err
	}
	msg := mail.NewMessage()
	msg.SetHeader("To", recipient)
	msg.SetHeader("From", m.sender)
	msg.SetHeader("Subject", rendered.Subject)
	msg.SetBody("text/plain", rendered.PlainBody)
	msg.AddAlternative("text/html", rendered.HTMLBody)
	for i := 1; i <= m.attempts; i++ {
		err = m.dialer.DialAndSend(msg)
		if err == nil {
			return nil
		}
		if i < m.attempts {
			time.Sleep(500 * time.Millisecond)
		}
	}
	return err
}
