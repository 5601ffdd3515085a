package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"jobsite-backend/config"
)

// Service sends transactional emails over SMTP. Callers treat delivery as
// fire-and-forget: failures are logged by the caller, never propagated.
type Service struct {
	host      string
	port      string
	username  string
	password  string
	fromEmail string
}

func NewService(cfg *config.Config) *Service {
	return &Service{
		host:      cfg.SMTPHost,
		port:      cfg.SMTPPort,
		username:  cfg.SMTPUsername,
		password:  cfg.SMTPPassword,
		fromEmail: cfg.SMTPFromEmail,
	}
}

// IsConfigured checks if the service has valid SMTP configuration
func (s *Service) IsConfigured() bool {
	return s.host != "" && s.username != "" && s.password != ""
}

// SendWelcome greets a newly registered user.
func (s *Service) SendWelcome(to, fullName string) error {
	subject := "Welcome to JobSite Platform!"
	body := fmt.Sprintf(
		"Hi %s,\n\nWelcome to JobSite! Your account has been successfully created.\n\nRegards,\nJobSite Team",
		fullName,
	)
	return s.sendPlain(to, subject, body)
}

const passwordResetTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>Password Reset</title>
</head>
<body style="font-family: Arial, sans-serif; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h2>Password Reset - JobSite Platform</h2>
        <p>Hi {{.FullName}},</p>
        <p>We received a request to reset your password. Click the link below to choose a new one. The link is valid for one hour and can be used once.</p>
        <p><a href="{{.ResetLink}}">Reset your password</a></p>
        <p>If you did not request this, you can safely ignore this email.</p>
        <p>Regards,<br>JobSite Team</p>
    </div>
</body>
</html>`

// SendPasswordReset deposits a single-use reset link with the user.
func (s *Service) SendPasswordReset(to, fullName, resetLink string) error {
	tmpl, err := template.New("reset").Parse(passwordResetTemplate)
	if err != nil {
		return fmt.Errorf("failed to parse email template: %w", err)
	}

	var body bytes.Buffer
	err = tmpl.Execute(&body, struct {
		FullName  string
		ResetLink string
	}{fullName, resetLink})
	if err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	return s.sendHTML(to, "Password Reset - JobSite Platform", body.String())
}

// SendNewApplication notifies a recruiter that a candidate applied to
// one of their jobs.
func (s *Service) SendNewApplication(to, jobTitle, candidateName string) error {
	subject := fmt.Sprintf("New Application for %s", jobTitle)
	body := fmt.Sprintf(
		"%s has applied to your job posting \"%s\".\n\nLog in to review the application.\n\nRegards,\nJobSite Team",
		candidateName, jobTitle,
	)
	return s.sendPlain(to, subject, body)
}

// SendApplicationReceived confirms submission to the candidate.
func (s *Service) SendApplicationReceived(to, fullName, jobTitle string) error {
	subject := "Application Submitted Successfully"
	body := fmt.Sprintf(
		"Hi %s,\n\nYour application for \"%s\" has been received.\n\nWe will review your application and get back to you soon.\n\nRegards,\nJobSite Team",
		fullName, jobTitle,
	)
	return s.sendPlain(to, subject, body)
}

func (s *Service) sendPlain(to, subject, body string) error {
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		s.fromEmail, to, subject, body,
	))
	return s.send(to, msg)
}

func (s *Service) sendHTML(to, subject, body string) error {
	msg := []byte(fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s",
		s.fromEmail, to, subject, body,
	))
	return s.send(to, msg)
}

func (s *Service) send(to string, msg []byte) error {
	auth := smtp.PlainAuth("", s.username, s.password, s.host)
	addr := fmt.Sprintf("%s:%s", s.host, s.port)
	if err := smtp.SendMail(addr, auth, s.fromEmail, []string{to}, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
