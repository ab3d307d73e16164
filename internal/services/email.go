package services

import (
	"context"
	"fmt"

	"familyinvitations/internal/domain"
)

const responseRecordedTemplate = "response_recorded"

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService creates an EmailService with the given mailer and
// template renderer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{
		mailer:   mailer,
		renderer: renderer,
	}
}

func (s *emailService) SendResponseRecorded(ctx context.Context, data *domain.ResponseRecordedEmailData) error {
	subject, html, text, err := s.renderer.Render(responseRecordedTemplate, data)
	if err != nil {
		return fmt.Errorf("render %s: %w", responseRecordedTemplate, err)
	}
	if err := s.mailer.Send(data.HostEmail, subject, html, text); err != nil {
		return fmt.Errorf("send %s: %w", responseRecordedTemplate, err)
	}
	return nil
}
