package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"

	"github.com/BOVAGE/QuizBank/config"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Default is the process-wide mail service, installed by main.
var Default *Service

// Job is one outbound email. Jobs travel through the queue as JSON.
type Job struct {
	ID       string `json:"id"`
	Template string `json:"template"`
	To       string `json:"to"`
	Link     string `json:"link"`
	SiteName string `json:"site_name"`
}

const (
	TemplateActivate      = "activate"
	TemplateResetPassword = "reset-password"
	TemplateNowStaff      = "now-staff"
	TemplateNoLongerStaff = "no-longer-staff"
)

type messageSpec struct {
	subject string
	body    string
}

var templates = map[string]messageSpec{
	TemplateActivate: {
		subject: "%s: Email Account Verification",
		body: `<html><body>
<h2>{{.SiteName}} - Verify your email address</h2>
<p>Follow the link below to activate your account:</p>
<p><a href="{{.Link}}">{{.Link}}</a></p>
<p>If you didn't create an account, please ignore this email.</p>
</body></html>`,
	},
	TemplateResetPassword: {
		subject: "%s: Password Reset",
		body: `<html><body>
<h2>{{.SiteName}} - Reset your password</h2>
<p>Follow the link below to choose a new password:</p>
<p><a href="{{.Link}}">{{.Link}}</a></p>
<p>If you didn't request a reset, please ignore this email.</p>
</body></html>`,
	},
	TemplateNowStaff: {
		subject: "%s: Staff Role Granted",
		body: `<html><body>
<h2>{{.SiteName}}</h2>
<p>You are now a staff member on {{.SiteName}}.</p>
</body></html>`,
	},
	TemplateNoLongerStaff: {
		subject: "%s: Staff Role Removed",
		body: `<html><body>
<h2>{{.SiteName}}</h2>
<p>You are no longer a staff member on {{.SiteName}}.</p>
</body></html>`,
	},
}

// SMTPClient delivers rendered jobs over plain SMTP.
type SMTPClient struct {
	config config.SMTP
}

func NewSMTPClient(cfg config.SMTP) *SMTPClient {
	return &SMTPClient{config: cfg}
}

// RenderJob produces the subject and HTML body for a job.
func RenderJob(job Job) (subject string, body string, err error) {
	spec, ok := templates[job.Template]
	if !ok {
		return "", "", fmt.Errorf("unknown mail template %q", job.Template)
	}
	t, err := template.New(job.Template).Parse(spec.body)
	if err != nil {
		return "", "", fmt.Errorf("failed to parse template: %w", err)
	}
	var rendered bytes.Buffer
	if err := t.Execute(&rendered, job); err != nil {
		return "", "", fmt.Errorf("failed to execute template: %w", err)
	}
	return fmt.Sprintf(spec.subject, job.SiteName), rendered.String(), nil
}

func (c *SMTPClient) Send(job Job) error {
	subject, body, err := RenderJob(job)
	if err != nil {
		return err
	}

	var auth smtp.Auth
	if c.config.Username != "" || c.config.Password != "" {
		auth = smtp.PlainAuth("", c.config.Username, c.config.Password, c.config.Host)
	}

	msg := c.buildMessage(job.To, subject, body)
	addr := fmt.Sprintf("%s:%d", c.config.Host, c.config.Port)
	if err := smtp.SendMail(addr, auth, c.config.From, []string{job.To}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (c *SMTPClient) buildMessage(to, subject, body string) string {
	msg := fmt.Sprintf("From: %s\r\n", c.config.From)
	msg += fmt.Sprintf("To: %s\r\n", to)
	msg += fmt.Sprintf("Subject: %s\r\n", subject)
	msg += "MIME-Version: 1.0\r\n"
	msg += "Content-Type: text/html; charset=UTF-8\r\n"
	msg += "\r\n"
	msg += body
	return msg
}

// Service queues outbound email. Delivery is fire-and-forget: callers never
// see a send failure and state changes are never rolled back over one.
type Service struct {
	smtp  *SMTPClient
	queue *QueueClient
	log   *zap.SugaredLogger
}

// NewService wires the mail service. queue may be nil, in which case jobs are
// sent directly on a background goroutine instead of through the broker.
func NewService(smtpClient *SMTPClient, queue *QueueClient, log *zap.SugaredLogger) *Service {
	return &Service{smtp: smtpClient, queue: queue, log: log}
}

// Send enqueues one email and returns immediately.
func (s *Service) Send(templateName, to, link, siteName string) {
	job := Job{
		ID:       uuid.NewString(),
		Template: templateName,
		To:       to,
		Link:     link,
		SiteName: siteName,
	}
	if s.queue != nil {
		if err := s.queue.Publish(job); err == nil {
			return
		} else {
			s.log.Warnw("mail publish failed, sending directly", "job_id", job.ID, "error", err)
		}
	}
	go s.deliver(job)
}

func (s *Service) deliver(job Job) {
	if err := s.smtp.Send(job); err != nil {
		s.log.Errorw("mail delivery failed", "job_id", job.ID, "template", job.Template, "error", err)
		return
	}
	s.log.Infow("mail delivered", "job_id", job.ID, "template", job.Template)
}
