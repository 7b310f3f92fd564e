// Package mailer delivers finished-report notifications over SMTP. The copy
// differs for the internal reports inbox and for applicant-facing addresses,
// so each send picks a template from the recipient mix.
package mailer

import (
	"fmt"
	"mime"
	"net/smtp"
	"strings"
	"time"
)

// InternalInbox is the operations address that receives every report.
const InternalInbox = "reports@rented123.com"

// Config holds SMTP connection settings.
type Config struct {
	Host     string `json:"host"`
	Port     int    `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
	From     string `json:"from"`
}

// Mailer sends report notification emails.
type Mailer struct {
	cfg  Config
	send func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error
}

// New returns a Mailer for the given SMTP settings.
func New(cfg Config) *Mailer {
	return &Mailer{cfg: cfg, send: smtp.SendMail}
}

// Notification describes one finished report to announce.
type Notification struct {
	Recipients  []string
	FullName    string
	ReportID    string
	RiskLevel   string
	DownloadURL string
}

// Send emails the notification to every recipient using the template that
// matches the recipient mix.
func (m *Mailer) Send(n Notification) error {
	if len(n.Recipients) == 0 {
		return fmt.Errorf("no recipients")
	}

	kind := Classify(n.Recipients)
	msg := buildMessage(m.cfg.From, n, kind)

	addr := fmt.Sprintf("%s:%d", m.cfg.Host, m.cfg.Port)
	var auth smtp.Auth
	if m.cfg.Username != "" {
		auth = smtp.PlainAuth("", m.cfg.Username, m.cfg.Password, m.cfg.Host)
	}
	if err := m.send(addr, auth, m.cfg.From, n.Recipients, msg); err != nil {
		return fmt.Errorf("send report email: %w", err)
	}
	return nil
}

// Kind is the email template family chosen from the recipient mix.
type Kind string

const (
	// KindInternal goes only to the reports inbox.
	KindInternal Kind = "internal"
	// KindMixed goes to the reports inbox plus outside addresses.
	KindMixed Kind = "mixed"
	// KindApplicant goes only to outside addresses.
	KindApplicant Kind = "applicant"
	// KindApplicantCopy is an applicant-only send that still references the
	// internal archive copy.
	KindApplicantCopy Kind = "applicant_copy"
)

// Classify picks the template family for a recipient list.
func Classify(recipients []string) Kind {
	internal := false
	external := false
	for _, r := range recipients {
		if strings.EqualFold(strings.TrimSpace(r), InternalInbox) {
			internal = true
		} else {
			external = true
		}
	}
	switch {
	case internal && external:
		return KindMixed
	case internal:
		return KindInternal
	case external && len(recipients) > 1:
		return KindApplicantCopy
	default:
		return KindApplicant
	}
}

func buildMessage(from string, n Notification, kind Kind) []byte {
	subject := subjectFor(n, kind)
	text := textBody(n, kind)
	html := htmlBody(n, kind)

	boundary := fmt.Sprintf("b-%d", time.Now().UnixNano())
	var b strings.Builder
	fmt.Fprintf(&b, "From: %s\r\n", from)
	fmt.Fprintf(&b, "To: %s\r\n", strings.Join(n.Recipients, ", "))
	fmt.Fprintf(&b, "Subject: %s\r\n", mime.QEncoding.Encode("utf-8", subject))
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%q\r\n", boundary)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/plain; charset=utf-8\r\n\r\n")
	b.WriteString(text)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s\r\n", boundary)
	b.WriteString("Content-Type: text/html; charset=utf-8\r\n\r\n")
	b.WriteString(html)
	b.WriteString("\r\n")

	fmt.Fprintf(&b, "--%s--\r\n", boundary)
	return []byte(b.String())
}

func subjectFor(n Notification, kind Kind) string {
	if kind == KindInternal {
		return fmt.Sprintf("[%s] Background check completed: %s (%s risk)", n.ReportID, n.FullName, n.RiskLevel)
	}
	return fmt.Sprintf("Your background check report is ready (%s)", n.ReportID)
}

func textBody(n Notification, kind Kind) string {
	var b strings.Builder
	switch kind {
	case KindInternal:
		fmt.Fprintf(&b, "Background check %s for %s has completed.\n", n.ReportID, n.FullName)
		fmt.Fprintf(&b, "Risk level: %s\n\n", n.RiskLevel)
	case KindMixed:
		fmt.Fprintf(&b, "The background check report %s for %s is ready.\n\n", n.ReportID, n.FullName)
	default:
		fmt.Fprintf(&b, "Hello,\n\nThe background check report for %s is ready.\n\n", n.FullName)
	}
	fmt.Fprintf(&b, "Download the report:\n%s\n\n", n.DownloadURL)
	b.WriteString("This link expires in 24 hours.\n")
	if kind == KindApplicantCopy {
		b.WriteString("A copy has been archived with Rented123.\n")
	}
	return b.String()
}

func htmlBody(n Notification, kind Kind) string {
	var b strings.Builder
	b.WriteString("<html><body style=\"font-family:Helvetica,Arial,sans-serif;color:#1c1917;\">")
	switch kind {
	case KindInternal:
		fmt.Fprintf(&b, "<p>Background check <strong>%s</strong> for <strong>%s</strong> has completed.</p>", n.ReportID, n.FullName)
		fmt.Fprintf(&b, "<p>Risk level: <strong>%s</strong></p>", n.RiskLevel)
	case KindMixed:
		fmt.Fprintf(&b, "<p>The background check report <strong>%s</strong> for <strong>%s</strong> is ready.</p>", n.ReportID, n.FullName)
	default:
		fmt.Fprintf(&b, "<p>Hello,</p><p>The background check report for <strong>%s</strong> is ready.</p>", n.FullName)
	}
	fmt.Fprintf(&b, `<p><a href="%s" style="background:#1d4ed8;color:#fff;padding:8px 16px;border-radius:4px;text-decoration:none;">Download report</a></p>`, n.DownloadURL)
	b.WriteString("<p style=\"color:#57534e;font-size:12px;\">This link expires in 24 hours.</p>")
	if kind == KindApplicantCopy {
		b.WriteString("<p style=\"color:#57534e;font-size:12px;\">A copy has been archived with Rented123.</p>")
	}
	b.WriteString("</body></html>")
	return b.String()
}
