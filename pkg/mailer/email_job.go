package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Either set Subject/Text/HTML directly or name a Template with its Data.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // e.g. "otp_code"
	Data     map[string]any `json:"data,omitempty"`
}
