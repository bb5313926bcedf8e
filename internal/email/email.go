package email

import (
	"fmt"
	"net/smtp"

	"github.com/golang/glog"

	"studentportal/internal/config"
)

// Sender delivers portal emails over SMTP using the server configuration.
// Sending is skipped with a warning when the SMTP settings are incomplete.
type Sender struct {
	cfg *config.ServerConfig
}

// NewSender creates a Sender bound to the given configuration.
func NewSender(cfg *config.ServerConfig) *Sender {
	return &Sender{cfg: cfg}
}

func (s *Sender) configured() bool {
	return s.cfg.SMTPServer != "" && s.cfg.SMTPUser != "" &&
		s.cfg.SMTPPassword != "" && s.cfg.SenderEmail != ""
}

// SendEnrollmentConfirmation emails the student after a successful enrollment.
func (s *Sender) SendEnrollmentConfirmation(recipient, studentName, courseName string) error {
	if !s.configured() {
		glog.Warning("SMTP settings incomplete, skipping enrollment email")
		return nil
	}

	subject := fmt.Sprintf("Course Enrollment Confirmation: %s", courseName)
	body := fmt.Sprintf(
		"Hi %s,\r\n\r\n"+
			"You have successfully enrolled in the course: %s.\r\n\r\n"+
			"Happy learning!\r\n\r\n"+
			"Student Portal Team\r\n",
		studentName, courseName)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		s.cfg.SenderEmail, recipient, subject, body)

	addr := fmt.Sprintf("%s:%d", s.cfg.SMTPServer, s.cfg.SMTPPort)
	a := smtp.PlainAuth("", s.cfg.SMTPUser, s.cfg.SMTPPassword, s.cfg.SMTPServer)

	// smtp.SendMail negotiates STARTTLS when the server offers it.
	if err := smtp.SendMail(addr, a, s.cfg.SenderEmail, []string{recipient}, []byte(msg)); err != nil {
		return fmt.Errorf("sending enrollment email: %w", err)
	}

	glog.Infof("enrollment email sent to %s", recipient)
	return nil
}
