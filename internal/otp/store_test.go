package otp

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreConsumeOnce(t *testing.T) {
	s := NewMemoryStore()
	s.Put("user@example.com", "123456", time.Minute)

	assert.True(t, s.Consume("user@example.com", "123456"))
	// single-use: the second attempt fails
	assert.False(t, s.Consume("user@example.com", "123456"))
}

func TestMemoryStoreWrongCodeKeepsEntry(t *testing.T) {
	s := NewMemoryStore()
	s.Put("user@example.com", "123456", time.Minute)

	assert.False(t, s.Consume("user@example.com", "654321"))
	// the right code still works afterwards
	assert.True(t, s.Consume("user@example.com", "123456"))
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore()
	current := time.Now()
	s.now = func() time.Time { return current }

	s.Put("user@example.com", "123456", 10*time.Minute)

	current = current.Add(10*time.Minute + time.Second)
	assert.False(t, s.Consume("user@example.com", "123456"))
	// expired entries are dropped, not resurrected
	current = current.Add(-time.Hour)
	assert.False(t, s.Consume("user@example.com", "123456"))
}

func TestMemoryStorePutReplaces(t *testing.T) {
	s := NewMemoryStore()
	s.Put("user@example.com", "111111", time.Minute)
	s.Put("user@example.com", "222222", time.Minute)

	assert.False(t, s.Consume("user@example.com", "111111"))
	assert.True(t, s.Consume("user@example.com", "222222"))
}

func TestMemoryStoreUnknownTarget(t *testing.T) {
	s := NewMemoryStore()
	assert.False(t, s.Consume("nobody@example.com", "123456"))
}

type fakeMailer struct {
	to, subject, body string
	err               error
}

func (m *fakeMailer) Send(to, subject, body string) error {
	m.to, m.subject, m.body = to, subject, body
	return m.err
}

func TestServiceIssueAndVerify(t *testing.T) {
	store := NewMemoryStore()
	mailer := &fakeMailer{}
	svc := NewService(store, mailer, 10*time.Minute, nil)

	require.NoError(t, svc.Issue("user@example.com"))
	assert.Equal(t, "user@example.com", mailer.to)
	assert.Contains(t, mailer.subject, "Password Reset")
	assert.Regexp(t, `\b\d{6}\b`, mailer.body)

	// extract the code from the mail body and verify it
	var code string
	for _, word := range []byte(mailer.body) {
		if word >= '0' && word <= '9' {
			code += string(word)
			if len(code) == 6 {
				break
			}
		}
	}
	require.Len(t, code, 6)
	assert.True(t, svc.Verify("user@example.com", code))
	assert.False(t, svc.Verify("user@example.com", code))
}

func TestGenerateCodeRange(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := generateCode()
		require.NoError(t, err)
		assert.Len(t, code, 6)
		assert.GreaterOrEqual(t, code, "100000")
		assert.LessOrEqual(t, code, "999999")
	}
}
