package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"

	"github.com/resend/resend-go/v3"

	"smart-campus/internal/config"
)

type Service interface {
	SendWelcomeEmail(ctx context.Context, toEmail, username string) error
	SendPermissionRequestEmail(ctx context.Context, toEmail, recipientName, requesterName, permissionLabel, reason string) error
	SendPermissionDecisionEmail(ctx context.Context, toEmail, recipientName, permissionLabel, decision string) error
}

type service struct {
	client *resend.Client
	config *config.Config
}

func NewService(cfg *config.Config) Service {
	return &service{
		client: resend.NewClient(cfg.ResendAPIKey),
		config: cfg,
	}
}

var bodyTmpl = template.Must(template.New("body").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif; color: #333;">
  <h2>{{.Title}}</h2>
  <p>Hi {{.Name}},</p>
  <p>{{.Message}}</p>
  {{if .Link}}<p><a href="{{.Link}}">{{.LinkText}}</a></p>{{end}}
  <p>Smart Campus</p>
</body>
</html>`))

type bodyData struct {
	Title    string
	Name     string
	Message  string
	Link     string
	LinkText string
}

func (s *service) sendEmail(toEmail, subject string, data bodyData) error {
	var body bytes.Buffer
	if err := bodyTmpl.Execute(&body, data); err != nil {
		return fmt.Errorf("failed to execute email template: %w", err)
	}

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("Smart Campus <%s>", s.config.FromEmail),
		To:      []string{toEmail},
		Html:    body.String(),
		Subject: subject,
	}

	_, err := s.client.Emails.Send(params)
	return err
}

func (s *service) SendWelcomeEmail(ctx context.Context, toEmail, username string) error {
	return s.sendEmail(toEmail, "Welcome to Smart Campus!", bodyData{
		Title:    "Welcome to Smart Campus!",
		Name:     username,
		Message:  "Your account has been created successfully. You can now log in and explore campus events, clubs and more.",
		Link:     fmt.Sprintf("https://%s/login", s.config.Domain),
		LinkText: "Log in",
	})
}

func (s *service) SendPermissionRequestEmail(ctx context.Context, toEmail, recipientName, requesterName, permissionLabel, reason string) error {
	return s.sendEmail(toEmail, "New Permission Request - Smart Campus", bodyData{
		Title:    "New Permission Request",
		Name:     recipientName,
		Message:  fmt.Sprintf("%s requested permission for %s: %s", requesterName, permissionLabel, reason),
		Link:     fmt.Sprintf("https://%s/permission-requests", s.config.Domain),
		LinkText: "Review pending requests",
	})
}

func (s *service) SendPermissionDecisionEmail(ctx context.Context, toEmail, recipientName, permissionLabel, decision string) error {
	return s.sendEmail(toEmail, fmt.Sprintf("Permission Request %s - Smart Campus", decision), bodyData{
		Title:   fmt.Sprintf("Permission Request %s", decision),
		Name:    recipientName,
		Message: fmt.Sprintf("Your request for %s has been %s.", permissionLabel, decision),
	})
}
