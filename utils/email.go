package utils

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strings"

	"gopkg.in/gomail.v2"
)

// ResetLink builds the password-reset URL sent to the user. The token and
// email travel as query parameters so the client can echo them back on
// the reset form.
func ResetLink(email, token string) string {
	base := strings.TrimRight(os.Getenv("APP_URL"), "/")
	return fmt.Sprintf("%s/reset-password?token=%s&email=%s", base, token, url.QueryEscape(email))
}

// SendResetEmail sends the password-reset link to the user's email address
func SendResetEmail(email string, token string) {
	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_SENDER"))
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Reset your password")
	m.SetBody("text/plain",
		"We received a request to reset your password.\n\n"+
			"Follow this link to choose a new one: "+ResetLink(email, token)+"\n\n"+
			"The link expires in 60 minutes. If you did not request a reset, you can ignore this email.")

	d := gomail.NewDialer(
		os.Getenv("SMTP_HOST"),
		465,
		os.Getenv("SMTP_USER"),
		os.Getenv("SMTP_PASS"),
	)

	if err := d.DialAndSend(m); err != nil {
		log.Printf("Failed to send reset email to %s: %v", email, err)
		return
	}

	log.Printf("Reset email successfully sent to %s", email)
}
