package notify

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"
)

// MailNotifier emails the reminder to the assignee. Optional sink;
// only wired when SMTP settings are configured.
type MailNotifier struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

func NewMailNotifier(host string, port int, user, password, from string) *MailNotifier {
	return &MailNotifier{Host: host, Port: port, User: user, Password: password, From: from}
}

func (n *MailNotifier) Notify(_ context.Context, r Reminder) error {
	if r.UserEmail == "" {
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", n.From)
	m.SetHeader("To", r.UserEmail)
	m.SetHeader("Subject", r.Title())
	m.SetBody("text/plain", r.Body())

	d := gomail.NewDialer(n.Host, n.Port, n.User, n.Password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send reminder mail: %w", err)
	}
	return nil
}
