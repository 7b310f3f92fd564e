package mailer

import (
	"net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		recipients []string
		want       Kind
	}{
		{"internal only", []string{InternalInbox}, KindInternal},
		{"internal case-insensitive", []string{"Reports@Rented123.com"}, KindInternal},
		{"mixed", []string{InternalInbox, "jane@example.com"}, KindMixed},
		{"single applicant", []string{"jane@example.com"}, KindApplicant},
		{"applicant with copy", []string{"jane@example.com", "agent@example.com"}, KindApplicantCopy},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.recipients))
		})
	}
}

type captured struct {
	addr string
	auth smtp.Auth
	from string
	to   []string
	msg  string
}

func newCapturingMailer(cfg Config) (*Mailer, *captured) {
	m := New(cfg)
	sent := &captured{}
	m.send = func(addr string, auth smtp.Auth, from string, to []string, msg []byte) error {
		*sent = captured{addr: addr, auth: auth, from: from, to: to, msg: string(msg)}
		return nil
	}
	return m, sent
}

func testConfig() Config {
	return Config{
		Host:     "smtp.example.com",
		Port:     587,
		Username: "mailer",
		Password: "hunter2",
		From:     "noreply@rented123.com",
	}
}

func testNotification(recipients ...string) Notification {
	return Notification{
		Recipients:  recipients,
		FullName:    "Jane Doe",
		ReportID:    "BCR-ABC123",
		RiskLevel:   "low",
		DownloadURL: "https://screener.rented123.com/reports/BCR-ABC123?token=tok",
	}
}

func TestSendInternal(t *testing.T) {
	m, sent := newCapturingMailer(testConfig())

	require.NoError(t, m.Send(testNotification(InternalInbox)))

	assert.Equal(t, "smtp.example.com:587", sent.addr)
	assert.NotNil(t, sent.auth)
	assert.Equal(t, "noreply@rented123.com", sent.from)
	assert.Equal(t, []string{InternalInbox}, sent.to)

	assert.Contains(t, sent.msg, "Background check completed: Jane Doe")
	assert.Contains(t, sent.msg, "Risk level: low")
	assert.Contains(t, sent.msg, "multipart/alternative")
	assert.Contains(t, sent.msg, "Content-Type: text/plain; charset=utf-8")
	assert.Contains(t, sent.msg, "Content-Type: text/html; charset=utf-8")
	assert.Contains(t, sent.msg, "https://screener.rented123.com/reports/BCR-ABC123?token=tok")
	assert.Contains(t, sent.msg, "This link expires in 24 hours.")
}

func TestSendApplicant(t *testing.T) {
	m, sent := newCapturingMailer(testConfig())

	require.NoError(t, m.Send(testNotification("jane@example.com")))

	assert.Contains(t, sent.msg, "Your background check report is ready")
	assert.Contains(t, sent.msg, "Hello,")
	assert.NotContains(t, sent.msg, "Risk level")
	assert.NotContains(t, sent.msg, "archived with Rented123")
}

func TestSendApplicantCopyMentionsArchive(t *testing.T) {
	m, sent := newCapturingMailer(testConfig())

	require.NoError(t, m.Send(testNotification("jane@example.com", "agent@example.com")))

	assert.Contains(t, sent.msg, "A copy has been archived with Rented123.")
}

func TestSendWithoutAuth(t *testing.T) {
	cfg := testConfig()
	cfg.Username = ""
	m, sent := newCapturingMailer(cfg)

	require.NoError(t, m.Send(testNotification(InternalInbox)))
	assert.Nil(t, sent.auth)
}

func TestSendNoRecipients(t *testing.T) {
	m, _ := newCapturingMailer(testConfig())
	assert.Error(t, m.Send(Notification{}))
}
