// Package notification delivers out-of-band notices such as one-time login codes.
//
// A NotificationManager maps notice types to per-system templates and to the
// Notifier registered for each system. EmailNotifier sends over SMTP with
// go-mail; MockNotifier records deliveries for tests.
//
//	nm, err := notification.NewNotificationManagerWithOptions(baseUrl,
//		notification.WithSMTP(smtpConfig),
//		notification.WithDefaultTemplates(),
//	)
//	err = nm.Send(notification.LoginCodeNotice, notification.NotificationData{
//		To:   "user@example.com",
//		Data: map[string]string{"Code": code, "ExpiryMinutes": "10"},
//	})
package notification
