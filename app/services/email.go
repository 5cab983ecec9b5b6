package services

import "fmt"

// EmailService simulates sending mail through an SMTP relay.
type EmailService struct {
	logger   Logger
	smtpHost string
	smtpPort int
}

func NewEmailService(logger Logger, smtpHost string, smtpPort int) *EmailService {
	return &EmailService{logger: logger, smtpHost: smtpHost, smtpPort: smtpPort}
}

func (s *EmailService) SendEmail(to, subject, body string) error {
	if to == "" {
		return fmt.Errorf("email: empty recipient")
	}
	s.logger.Log(fmt.Sprintf("Sending email to: %s with subject: %s", to, subject))
	s.logger.Log(fmt.Sprintf("Email sent successfully to: %s", to))
	return nil
}

// SMTPConfig returns the relay host and port.
func (s *EmailService) SMTPConfig() (string, int) {
	return s.smtpHost, s.smtpPort
}
