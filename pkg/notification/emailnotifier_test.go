package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

func TestEmailNotifier_BuildMessage(t *testing.T) {
	notifier, err := NewEmailNotifier(SMTPConfig{Host: "localhost", Port: 1025, From: "noreply@example.com"})
	require.NoError(t, err)

	template := NoticeTemplate{
		Subject: "Your Alchemist login code",
		Text:    "Your login code is {{.Code}}.",
		Html:    "<p>{{.Code}}</p>",
	}

	t.Run("Success", func(t *testing.T) {
		msg, err := notifier.buildMessage(NotificationData{
			To:   "user@example.com",
			Data: map[string]string{"Code": "004217"},
		}, template)
		require.NoError(t, err)

		recipients, err := msg.GetRecipients()
		require.NoError(t, err)
		assert.Equal(t, []string{"user@example.com"}, recipients)
		assert.Equal(t, []string{"Your Alchemist login code"}, msg.GetGenHeader(mail.HeaderSubject))
	})

	t.Run("MissingRecipient", func(t *testing.T) {
		_, err := notifier.buildMessage(NotificationData{}, template)
		assert.Error(t, err)
	})

	t.Run("BrokenTemplate", func(t *testing.T) {
		_, err := notifier.buildMessage(NotificationData{To: "user@example.com"}, NoticeTemplate{Subject: "x", Text: "{{.Code"})
		assert.Error(t, err)
	})
}
