package queue

import (
	"fmt"

	gomail "gopkg.in/gomail.v2"
)

// SMTPMailer delivers notification jobs over SMTP.
type SMTPMailer struct {
	Host     string
	Port     int
	Username string
	Password string
	// From is the fallback sender used when a job carries no hotel
	// address.
	From string
}

// Send implements Mailer.
func (m SMTPMailer) Send(job NotificationJob) error {
	if len(job.Recipients) == 0 {
		return fmt.Errorf("notification %s has no recipients", job.ReservationCode)
	}
	from := job.From
	if from == "" {
		from = m.From
	}
	msg := gomail.NewMessage()
	msg.SetHeader("From", from)
	msg.SetHeader("To", job.Recipients...)
	msg.SetHeader("Subject", job.Subject)
	msg.SetBody("text/plain", job.Body)

	d := gomail.NewDialer(m.Host, m.Port, m.Username, m.Password)
	return d.DialAndSend(msg)
}
