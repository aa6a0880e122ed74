package mailer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mailtpl "github.com/oksasatya/portfolio-api/pkg/mailer/templates"
)

type sent struct{ to, subject, text, html string }

type fakeSender struct {
	out []sent
	err error
}

func (f *fakeSender) Send(_ context.Context, to, subject, text, html string) error {
	if f.err != nil {
		return f.err
	}
	f.out = append(f.out, sent{to, subject, text, html})
	return nil
}

func jobBytes(t *testing.T, job EmailJob) []byte {
	t.Helper()
	b, err := json.Marshal(job)
	require.NoError(t, err)
	return b
}

func TestWorker_RendersTemplate(t *testing.T) {
	s := &fakeSender{}
	w := &Worker{Sender: s}
	job := EmailJob{
		To:       "ann@example.com",
		Template: mailtpl.PasswordReset,
		Data:     mailtpl.NewPasswordResetData("Folio", "Ann", "", "https://app.test/r?token=t", time.Now().Add(time.Hour)),
	}

	require.NoError(t, w.Handle(context.Background(), jobBytes(t, job)))
	require.Len(t, s.out, 1)
	assert.Equal(t, "ann@example.com", s.out[0].to)
	assert.Equal(t, "Folio: reset your password", s.out[0].subject)
	assert.Contains(t, s.out[0].text, "ann@example.com")
}

func TestWorker_RawMessage(t *testing.T) {
	s := &fakeSender{}
	w := &Worker{Sender: s}
	require.NoError(t, w.Handle(context.Background(), jobBytes(t, EmailJob{To: "a@b.com", Subject: "hi", Text: "body"})))
	assert.Equal(t, "body", s.out[0].text)
}

func TestWorker_PermanentFailures(t *testing.T) {
	w := &Worker{Sender: &fakeSender{}}
	for name, body := range map[string][]byte{
		"not json":         []byte("{"),
		"no recipient":     jobBytes(t, EmailJob{Subject: "x", Text: "y"}),
		"unknown template": jobBytes(t, EmailJob{To: "a@b.com", Template: "nope"}),
		"empty body":       jobBytes(t, EmailJob{To: "a@b.com", Subject: "x"}),
	} {
		assert.ErrorIs(t, w.Handle(context.Background(), body), ErrBadJob, name)
	}
}

func TestWorker_SendFailureIsRetryable(t *testing.T) {
	w := &Worker{Sender: &fakeSender{err: errors.New("mailgun 503")}}
	err := w.Handle(context.Background(), jobBytes(t, EmailJob{To: "a@b.com", Subject: "x", Text: "y"}))
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrBadJob)
}
