package mailer

import (
	"strings"
	"testing"

	"github.com/BOVAGE/QuizBank/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderJobActivate(t *testing.T) {
	subject, body, err := RenderJob(Job{
		Template: TemplateActivate,
		To:       "chidi@example.com",
		Link:     "https://quizbank.example.com/api/v1/auth/email-verify?token=abc",
		SiteName: "QuizBank",
	})
	require.NoError(t, err)
	assert.Equal(t, "QuizBank: Email Account Verification", subject)
	assert.Contains(t, body, "https://quizbank.example.com/api/v1/auth/email-verify?token=abc")
	assert.Contains(t, body, "QuizBank")
}

func TestRenderJobAllTemplates(t *testing.T) {
	job := Job{
		To:       "chidi@example.com",
		Link:     "https://quizbank.example.com",
		SiteName: "QuizBank",
	}
	for _, name := range []string{TemplateActivate, TemplateResetPassword, TemplateNowStaff, TemplateNoLongerStaff} {
		job.Template = name
		subject, body, err := RenderJob(job)
		require.NoError(t, err, name)
		assert.True(t, strings.HasPrefix(subject, "QuizBank: "), name)
		assert.Contains(t, body, "QuizBank", name)
	}
}

func TestRenderJobUnknownTemplate(t *testing.T) {
	_, _, err := RenderJob(Job{Template: "no-such-template"})
	assert.Error(t, err)
}

func TestBuildMessageHeaders(t *testing.T) {
	client := NewSMTPClient(config.SMTP{From: "noreply@quizbank.example.com"})
	msg := client.buildMessage("chidi@example.com", "QuizBank: Password Reset", "<html></html>")

	assert.Contains(t, msg, "From: noreply@quizbank.example.com\r\n")
	assert.Contains(t, msg, "To: chidi@example.com\r\n")
	assert.Contains(t, msg, "Subject: QuizBank: Password Reset\r\n")
	assert.Contains(t, msg, "Content-Type: text/html; charset=UTF-8\r\n")
	assert.True(t, strings.HasSuffix(msg, "\r\n<html></html>"))
}
