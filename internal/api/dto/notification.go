package dto

// Notification severities.
const (
	SeveritySuccess = "success"
	SeverityError   = "error"
	SeverityInfo    = "info"
)

// Notification is a one-shot user-facing message.
type Notification struct {
	Message  string `json:"message"`
	Severity string `json:"severity"`
}

// Envelope is the body of every successful mutation.
type Envelope struct {
	Data          any            `json:"data,omitempty"`
	Redirect      string         `json:"redirect,omitempty"`
	Notifications []Notification `json:"notifications"`
}

// Success builds an envelope carrying one success notification.
func Success(data any, redirect, message string) Envelope {
	return Envelope{
		Data:          data,
		Redirect:      redirect,
		Notifications: []Notification{{Message: message, Severity: SeveritySuccess}},
	}
}
