package email

import (
	"context"
	"fmt"
	"html/template"
	"strings"
	"time"
)

// Message tags used for delivery analytics and DevSender filenames.
const (
	TagVerificationCode = "verification-code"
	TagResetCode        = "password-reset-code"
)

// codeTmpl renders both OTP messages; only the wording differs.
var codeTmpl = template.Must(template.New("code").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: -apple-system, 'Segoe UI', Roboto, sans-serif; color: #1a1a1a; max-width: 480px; margin: 0 auto; padding: 24px;">
  <h2 style="margin-bottom: 8px;">{{.Heading}}</h2>
  <p>Hi {{.Name}},</p>
  <p>{{.Intro}}</p>
  <p style="font-size: 32px; font-weight: 700; letter-spacing: 6px; margin: 24px 0;">{{.Code}}</p>
  <p>The code expires in {{.ExpiresIn}}. If you didn't request it, you can safely ignore this email.</p>
  <p style="color: #6b7280; font-size: 13px; margin-top: 32px;">— The {{.Product}} team</p>
</body>
</html>`))

type codeMessageData struct {
	Heading   string
	Name      string
	Intro     string
	Code      string
	ExpiresIn string
	Product   string
}

// CodeMailer builds and delivers the two OTP messages the auth flows need.
// It satisfies the orchestrator's notifier contract without the orchestrator
// knowing anything about providers or markup.
type CodeMailer struct {
	sender  EmailSender
	product string
}

// NewCodeMailer wraps sender with the OTP message templates.
func NewCodeMailer(sender EmailSender, product string) *CodeMailer {
	if product == "" {
		product = "Foliogen"
	}
	return &CodeMailer{sender: sender, product: product}
}

// SendVerificationCode mails the email-verification code.
func (m *CodeMailer) SendVerificationCode(ctx context.Context, to, name, code string, expiresIn time.Duration) error {
	subject := fmt.Sprintf("Your %s verification code", m.product)
	body, err := m.render(codeMessageData{
		Heading:   "Verify your email",
		Name:      displayName(name),
		Intro:     fmt.Sprintf("Use this code to verify your email address for %s:", m.product),
		Code:      code,
		ExpiresIn: humanDuration(expiresIn),
		Product:   m.product,
	})
	if err != nil {
		return err
	}

	return m.sender.SendEmail(ctx, SendEmailParams{
		SendTo:   to,
		Subject:  subject,
		BodyHTML: body,
		Tag:      TagVerificationCode,
	})
}

// SendPasswordResetCode mails the password-reset code.
func (m *CodeMailer) SendPasswordResetCode(ctx context.Context, to, name, code string, expiresIn time.Duration) error {
	subject := fmt.Sprintf("Your %s password reset code", m.product)
	body, err := m.render(codeMessageData{
		Heading:   "Reset your password",
		Name:      displayName(name),
		Intro:     fmt.Sprintf("Use this code to reset your %s password:", m.product),
		Code:      code,
		ExpiresIn: humanDuration(expiresIn),
		Product:   m.product,
	})
	if err != nil {
		return err
	}

	return m.sender.SendEmail(ctx, SendEmailParams{
		SendTo:   to,
		Subject:  subject,
		BodyHTML: body,
		Tag:      TagResetCode,
	})
}

func (m *CodeMailer) render(data codeMessageData) (string, error) {
	var sb strings.Builder
	if err := codeTmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("%w: failed to render template: %v", ErrFailedToSendEmail, err)
	}
	return sb.String(), nil
}

func displayName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "there"
	}
	return name
}

func humanDuration(d time.Duration) string {
	if d < time.Hour {
		minutes := int(d.Round(time.Minute).Minutes())
		if minutes == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", minutes)
	}
	hours := int(d.Round(time.Hour).Hours())
	if hours == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", hours)
}
