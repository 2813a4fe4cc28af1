package email

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/accountd-dev/accountd/internal/config"
)

func TestIsCorrect(t *testing.T) {
	e := New(&config.Email{SMTPServer: "smtp.example.com"})

	valid := []string{
		"a@b.com",
		"user.name+tag@sub.example.org",
		"x@y.co",
	}
	for _, addr := range valid {
		assert.NoError(t, e.IsCorrect(addr), addr)
	}

	invalid := []string{
		"emailteste.com",
		"@example.com",
		"a@b",
		"a@b.c",
		"a@@b.com",
		"",
	}
	for _, addr := range invalid {
		assert.Error(t, e.IsCorrect(addr), addr)
	}
}

func TestBuildMessage(t *testing.T) {
	e := New(&config.Email{
		SMTPServer: "smtp.example.com",
		Username:   "noreply@example.com",
		SenderName: "Accounts",
	})

	msg := string(e.buildMessage("a@b.com", "Verification code", "Your verification code is: 123-456"))

	assert.Contains(t, msg, "To: a@b.com\r\n")
	assert.Contains(t, msg, "From: Accounts <noreply@example.com>\r\n")
	assert.Contains(t, msg, "Subject: Verification code\r\n")
	assert.Contains(t, msg, "\r\n\r\nYour verification code is: 123-456")
	assert.Contains(t, msg, "Message-ID: <")
}
