// Package email delivers recruiter notifications over SMTP.
package email

import (
	"context"

	"recruit_portal_backend/platform/config"
)

// Sender sends the notification emails the portal produces.
type Sender interface {
	SendCampaignCompletedEmail(ctx context.Context, toEmail, campaignName string, completed, successful, failed int) error
	SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error
}

// NoopSender is used when email delivery is disabled.
type NoopSender struct{}

func (NoopSender) SendCampaignCompletedEmail(ctx context.Context, toEmail, campaignName string, completed, successful, failed int) error {
	return nil
}

func (NoopSender) SendCustomEmail(ctx context.Context, toEmail, subject, htmlContent string) error {
	return nil
}

// NewSender returns the configured sender, or a no-op when email is disabled.
func NewSender(cfg config.EmailConfig) Sender {
	if !cfg.GetEmailEnabled() {
		return NoopSender{}
	}
	return NewSMTPSender(cfg.GetSMTPHost(), cfg.GetSMTPPort(),
		cfg.GetSMTPUsername(), cfg.GetSMTPPassword(),
		cfg.GetEmailFromAddress(), cfg.GetEmailFromName())
}
