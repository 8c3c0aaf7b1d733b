package notification

import "log/slog"

// LogNotifier records deliveries in the log instead of sending them. The
// notification data is not logged since it may hold credentials.
type LogNotifier struct{}

func (LogNotifier) Send(noticeType NoticeType, notification NotificationData, template NoticeTemplate) error {
	slog.Info("Notification not delivered, email disabled", "notice", noticeType, "to", notification.To)
	return nil
}
