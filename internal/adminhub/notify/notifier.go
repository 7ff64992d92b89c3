package notify

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/aussiebroadwan/adminhub/internal/adminhub/domain"
	"github.com/aussiebroadwan/adminhub/internal/adminhub/metrics"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

// Template names, also used as metric labels.
const (
	TemplatePasswordReset     = "password_reset"
	TemplateSubscriptionAlert = "subscription_alert"
)

// Notifier renders the platform's email templates and hands them to a Mailer.
type Notifier struct {
	Mailer  Mailer
	Metrics *metrics.Metrics

	// BaseURL is the public origin used to build links, without a trailing slash.
	BaseURL string
}

type passwordResetData struct {
	DisplayName string
	ResetURL    string
	ExpiresAt   string
}

// SendPasswordReset emails a reset link carrying the raw token.
func (n *Notifier) SendPasswordReset(ctx context.Context, u domain.User, token string, expiresAt time.Time) error {
	name := u.DisplayName
	if name == "" {
		name = u.Email
	}
	return n.send(ctx, TemplatePasswordReset, u.Email, "Reset your adminhub password", passwordResetData{
		DisplayName: name,
		ResetURL:    n.BaseURL + "/reset-password?token=" + token,
		ExpiresAt:   expiresAt.UTC().Format(time.RFC1123),
	})
}

type subscriptionAlertData struct {
	CompanyName string
	Previous    string
	Status      string
	CompanyURL  string
}

// SendSubscriptionAlert tells a company's admin that its subscription
// status changed.
func (n *Notifier) SendSubscriptionAlert(ctx context.Context, c domain.Company, previous domain.CompanyStatus) error {
	if c.AdminEmail == "" {
		return fmt.Errorf("notify: company %s has no admin email", c.ID)
	}
	subject := fmt.Sprintf("Subscription for %s is now %s", c.Name, c.Status)
	return n.send(ctx, TemplateSubscriptionAlert, c.AdminEmail, subject, subscriptionAlertData{
		CompanyName: c.Name,
		Previous:    string(previous),
		Status:      string(c.Status),
		CompanyURL:  n.BaseURL + "/dashboard/companies",
	})
}

func (n *Notifier) send(ctx context.Context, name, to, subject string, data any) error {
	var body bytes.Buffer
	err := templates.ExecuteTemplate(&body, name+".html", data)
	if err != nil {
		err = fmt.Errorf("notify: render %s: %w", name, err)
	} else {
		err = n.Mailer.Send(ctx, Message{To: []string{to}, Subject: subject, HTML: body.String()})
	}
	n.Metrics.EmailSent(name, err)
	return err
}
