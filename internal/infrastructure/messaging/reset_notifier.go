package messaging

import (
	"context"

	"github.com/oksasatya/portfolio-api/internal/application"
	"github.com/oksasatya/portfolio-api/pkg/mailer"
	mailtpl "github.com/oksasatya/portfolio-api/pkg/mailer/templates"
)

// Publisher is satisfied by helpers.RabbitPublisher.
type Publisher interface {
	PublishJSON(ctx context.Context, msgType string, body any) error
}

// ResetNotifier enqueues password reset emails for the email worker.
type ResetNotifier struct {
	Pub        Publisher
	AppName    string
	SupportURL string
}

func NewResetNotifier(pub Publisher, appName, supportURL string) *ResetNotifier {
	return &ResetNotifier{Pub: pub, AppName: appName, SupportURL: supportURL}
}

func (n *ResetNotifier) SendPasswordReset(ctx context.Context, notice application.ResetNotice) error {
	data := mailtpl.NewPasswordResetData(n.AppName, notice.Name, notice.Email, notice.Link, notice.ExpiresAt,
		mailtpl.WithIP(notice.IP),
		mailtpl.WithUserAgent(notice.UserAgent),
		mailtpl.WithSupportURL(n.SupportURL),
	)
	job := mailer.EmailJob{To: notice.Email, Template: mailtpl.PasswordReset, Data: data}
	return n.Pub.PublishJSON(ctx, mailer.JobType, job)
}
