package templates

import (
	"bytes"
	"fmt"
	"html/template"
)

// Template names carried in EmailJob.Template.
const (
	OTPCode = "otp_code"
)

var otpCodeTmpl = template.Must(template.New(OTPCode).Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: Arial, sans-serif; color: #333;">
    <p>Hi {{.Name}},</p>
    <p>Use the code below to reset your password:</p>
    <p style="font-size: 28px; font-weight: bold; letter-spacing: 4px;">{{.Code}}</p>
    <p>The code expires at {{.ExpiresAt}}. If you did not request a reset you can ignore this email.</p>
    <p>Thanks</p>
  </body>
</html>`))

// RenderHTML renders the named template with the given data.
func RenderHTML(name string, data map[string]any) (string, error) {
	switch name {
	case OTPCode:
		var buf bytes.Buffer
		if err := otpCodeTmpl.Execute(&buf, data); err != nil {
			return "", err
		}
		return buf.String(), nil
	default:
		return "", fmt.Errorf("unknown email template %q", name)
	}
}

// SubjectFor returns the subject line for a named template.
func SubjectFor(name string) string {
	switch name {
	case OTPCode:
		return "Your password reset code"
	default:
		return "Notification"
	}
}
