package services

import (
	"context"
	"fmt"

	"confprogram/internal/domain"
)

type emailService struct {
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
}

// NewEmailService returns an EmailService that renders named templates and
// sends them through the configured mailer.
func NewEmailService(mailer domain.Mailer, renderer domain.EmailTemplateRenderer) domain.EmailService {
	return &emailService{
		mailer:   mailer,
		renderer: renderer,
	}
}

func (s *emailService) SendEnrollmentConfirmation(ctx context.Context, data *domain.EnrollmentConfirmationEmailData) error {
	subject, html, text, err := s.renderer.Render("enrollment_confirmation", data)
	if err != nil {
		return fmt.Errorf("render enrollment confirmation: %w", err)
	}
	if err := s.mailer.Send(data.Email, subject, html, text); err != nil {
		return fmt.Errorf("send enrollment confirmation: %w", err)
	}
	return nil
}
