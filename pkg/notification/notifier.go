package notification

// NoticeType identifies a kind of notice, e.g. a login code.
type NoticeType string

const LoginCodeNotice NoticeType = "login_code"

// NoticeTemplate holds the subject and the text/HTML bodies of a notice.
// Bodies are html/template sources rendered against NotificationData.Data.
type NoticeTemplate struct {
	Subject string
	Text    string
	Html    string
}

type NotificationData struct {
	To      string            // Recipient identifier (e.g., email address)
	Subject string            // Optional: overrides the template subject
	Body    string            // Optional: raw content for systems without templates
	Data    map[string]string // Template values
}

type Notifier interface {
	Send(noticeType NoticeType, notification NotificationData, template NoticeTemplate) error
}
