package services

import (
	"bytes"
	"crypto/tls"
	"errors"
	"fmt"
	htmltemplate "html/template"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"strings"
	texttemplate "text/template"
	"time"
)

type IMailService interface {
	// SendPlanReady tells a captured lead that their plan is waiting.
	SendPlanReady(to, planName, resumeURL string) error
}

type SMTPConfig struct {
	Host       string
	Port       int // 587 STARTTLS, 465 implicit TLS
	Username   string
	Password   string
	From       string
	FromName   string
	UseSSL     bool
	RequireTLS bool

	AppName string
}

type smtpMailer struct {
	cfg  SMTPConfig
	html *htmltemplate.Template
	text *texttemplate.Template
	now  func() time.Time
}

func NewSMTPMailService(cfg SMTPConfig) (IMailService, error) {
	if cfg.Host == "" || cfg.From == "" {
		return nil, errors.New("smtp host and from address are required")
	}
	return &smtpMailer{
		cfg:  cfg,
		html: htmltemplate.Must(htmltemplate.New("plan_ready.html").Parse(planReadyHTML)),
		text: texttemplate.Must(texttemplate.New("plan_ready.txt").Parse(planReadyText)),
		now:  time.Now,
	}, nil
}

// planReadyMail feeds both templates.
type planReadyMail struct {
	Heading  string
	PlanName string
	CTAURL   string
	CTALabel string
	Brand    string
	Year     int
}

const planReadySubject = "Your personalized plan is ready"

func (m *smtpMailer) SendPlanReady(to, planName, resumeURL string) error {
	rcpt, msg, err := m.preparePlanReady(to, planName, resumeURL)
	if err != nil {
		return err
	}
	return m.deliver(rcpt, msg)
}

// preparePlanReady returns the bare envelope recipient and the full message.
func (m *smtpMailer) preparePlanReady(to, planName, resumeURL string) (string, []byte, error) {
	addr, err := mail.ParseAddress(to)
	if err != nil {
		return "", nil, fmt.Errorf("recipient %q: %w", to, err)
	}

	htmlBody, textBody, err := m.render(planReadyMail{
		Heading:  planReadySubject,
		PlanName: planName,
		CTAURL:   resumeURL,
		CTALabel: "See my plan",
		Brand:    m.cfg.AppName,
		Year:     m.now().Year(),
	})
	if err != nil {
		return "", nil, err
	}
	return addr.Address, m.compose(addr.String(), planReadySubject, htmlBody, textBody), nil
}

const planReadyHTML = `<!doctype html>
<html lang="en">
<head><meta charset="UTF-8"><title>{{.Heading}}</title></head>
<body style="margin:0;padding:32px 16px;background:#f6f1fb;font-family:Arial,Helvetica,sans-serif;color:#2d1441">
  <table role="presentation" width="100%" style="max-width:560px;margin:0 auto;background:#fff;border-radius:12px">
    <tr><td style="padding:32px">
      <h1 style="font-size:22px;margin:0 0 16px">{{.Heading}}</h1>
      <p style="font-size:16px;line-height:1.5">We saved your answers. Your <strong>{{.PlanName}}</strong> is waiting for you.</p>
      {{with .CTAURL}}<p style="text-align:center;margin:32px 0"><a href="{{.}}" style="background:#7432b4;color:#fff;padding:14px 28px;border-radius:8px;text-decoration:none">{{$.CTALabel}}</a></p>{{end}}
      <p style="font-size:12px;color:#8a7a99">&copy; {{.Year}} {{.Brand}}</p>
    </td></tr>
  </table>
</body>
</html>`

const planReadyText = `{{.Heading}}

We saved your answers. Your {{.PlanName}} is waiting for you.
{{with .CTAURL}}
{{$.CTALabel}}: {{.}}
{{end}}
-- {{.Brand}} (c) {{.Year}}
`

func (m *smtpMailer) render(data planReadyMail) (string, string, error) {
	var htmlBuf, textBuf bytes.Buffer
	if err := m.html.Execute(&htmlBuf, data); err != nil {
		return "", "", fmt.Errorf("render html: %w", err)
	}
	if err := m.text.Execute(&textBuf, data); err != nil {
		return "", "", fmt.Errorf("render text: %w", err)
	}
	return htmlBuf.String(), textBuf.String(), nil
}

// compose builds a multipart/alternative message, plain text first. to is
// written as the To header verbatim.
func (m *smtpMailer) compose(to, subject, htmlBody, textBody string) []byte {
	now := m.now()
	boundary := fmt.Sprintf("=_plan_%x", now.UnixNano())

	headers := []string{
		"From: " + m.fromHeader(),
		"To: " + to,
		"Subject: " + mime.QEncoding.Encode("utf-8", subject),
		"Date: " + now.Format(time.RFC1123Z),
		"MIME-Version: 1.0",
		fmt.Sprintf("Content-Type: multipart/alternative; boundary=%q", boundary),
	}

	var b strings.Builder
	b.WriteString(strings.Join(headers, "\r\n"))
	b.WriteString("\r\n\r\n")
	for _, part := range []struct{ ctype, body string }{
		{"text/plain", textBody},
		{"text/html", htmlBody},
	} {
		fmt.Fprintf(&b, "--%s\r\nContent-Type: %s; charset=UTF-8\r\n\r\n%s\r\n", boundary, part.ctype, part.body)
	}
	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return []byte(b.String())
}

func (m *smtpMailer) fromHeader() string {
	name := strings.TrimSpace(m.cfg.FromName)
	if name == "" {
		return m.cfg.From
	}
	return (&mail.Address{Name: name, Address: m.cfg.From}).String()
}

func (m *smtpMailer) dial() (*smtp.Client, error) {
	addr := net.JoinHostPort(m.cfg.Host, fmt.Sprint(m.cfg.Port))
	tlsCfg := &tls.Config{ServerName: m.cfg.Host, MinVersion: tls.VersionTLS12}
	d := &net.Dialer{Timeout: 10 * time.Second}

	if m.cfg.UseSSL {
		conn, err := tls.DialWithDialer(d, "tcp", addr, tlsCfg)
		if err != nil {
			return nil, err
		}
		return smtp.NewClient(conn, m.cfg.Host)
	}

	conn, err := d.Dial("tcp", addr)
	if err != nil {
		return nil, err
	}
	// NewClient closes conn itself when the greeting fails
	client, err := smtp.NewClient(conn, m.cfg.Host)
	if err != nil {
		return nil, err
	}
	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(tlsCfg); err != nil {
			client.Close()
			return nil, err
		}
	} else if m.cfg.RequireTLS {
		client.Close()
		return nil, errors.New("smtp server does not offer STARTTLS")
	}
	return client, nil
}

func (m *smtpMailer) deliver(to string, msg []byte) error {
	client, err := m.dial()
	if err != nil {
		return fmt.Errorf("smtp connect: %w", err)
	}
	defer client.Close()

	if m.cfg.Username != "" {
		if err := client.Auth(smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)); err != nil {
			return fmt.Errorf("smtp auth: %w", err)
		}
	}
	if err := client.Mail(m.cfg.From); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return err
	}
	wc, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := wc.Write(msg); err != nil {
		wc.Close()
		return err
	}
	if err := wc.Close(); err != nil {
		return err
	}
	return client.Quit()
}
