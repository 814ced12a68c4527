package services

import (
	"fmt"
	"log"
	"net/smtp"
	"os"
	"strings"
)

// SendEmail delivers an HTML email via the configured SMTP server.
func SendEmail(to []string, subject string, htmlBody string) error {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	from := os.Getenv("EMAIL_SENDER")
	password := os.Getenv("EMAIL_PASSWORD")

	msg := "MIME-version: 1.0;\nContent-Type: text/html; charset=\"UTF-8\";\n"
	msg += fmt.Sprintf("From: Barnearbeid <%s>\r\n", from)
	msg += fmt.Sprintf("To: %s\r\n", strings.Join(to, ","))
	msg += fmt.Sprintf("Subject: %s\r\n\r\n", subject)
	msg += htmlBody

	auth := smtp.PlainAuth("", from, password, smtpHost)

	if err := smtp.SendMail(smtpHost+":"+smtpPort, auth, from, to, []byte(msg)); err != nil {
		log.Printf("Error sending email to %v: %v", to, err)
		return err
	}
	return nil
}

// SendVerificationEmail sends the registration verification code.
func SendVerificationEmail(email, name, code string) {
	subject := "Bekreft e-postadressen din hos Barnearbeid"
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Bekreft e-post</title></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<h2 style="color: #2563eb;">Velkommen til Barnearbeid!</h2>
		<p>Hei %s,</p>
		<p>Bekreftelseskoden din er:</p>
		<p style="font-size: 28px; font-weight: bold; letter-spacing: 4px;">%s</p>
		<p>Koden er gyldig i 5 minutter.</p>
		<hr style="border: 1px solid #eee; margin: 20px 0;">
		<p style="font-size: 12px; color: #666;">Dette er en automatisk melding fra Barnearbeid.</p>
	</div>
</body>
</html>`, name, code)

	go SendEmail([]string{email}, subject, body)
}

// SendResetPasswordEmail sends the password reset code.
func SendResetPasswordEmail(email, name, code string) {
	subject := "Tilbakestill passordet ditt hos Barnearbeid"
	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Tilbakestill passord</title></head>
<body style="font-family: Arial, sans-serif; line-height: 1.6; color: #333;">
	<div style="max-width: 600px; margin: 0 auto; padding: 20px;">
		<h2 style="color: #2563eb;">Tilbakestill passord</h2>
		<p>Hei %s,</p>
		<p>Bruk denne koden for å sette et nytt passord:</p>
		<p style="font-size: 28px; font-weight: bold; letter-spacing: 4px;">%s</p>
		<p>Hvis du ikke ba om dette, kan du se bort fra e-posten.</p>
		<hr style="border: 1px solid #eee; margin: 20px 0;">
		<p style="font-size: 12px; color: #666;">Dette er en automatisk melding fra Barnearbeid.</p>
	</div>
</body>
</html>`, name, code)

	go SendEmail([]string{email}, subject, body)
}
