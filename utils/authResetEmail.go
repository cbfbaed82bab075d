package utils

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// SendResetCodeEmail mails a password-reset code to the admin address.
func SendResetCodeEmail(email, code string) error {
	fromEmail := os.Getenv("SMTP_USER")

	m := gomail.NewMessage()
	m.SetHeader("From", fromEmail)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "MediCitas Password Reset Code")

	m.SetBody("text/plain", "Your password reset code is: "+code)

	htmlBody := `
	<!DOCTYPE html>
	<html>
	<body style="font-family: Arial, sans-serif; background-color: #f4f4f4; margin: 0; padding: 0;">
		<div style="background-color: #ffffff; margin: 20px auto; padding: 20px; border-radius: 8px; max-width: 600px;">
			<h1 style="color: #333333;">Password Reset Code</h1>
			<p style="color: #666666;">Your password reset code is:</p>
			<p style="font-weight: bold; color: #007bff;">` + code + `</p>
			<p style="color: #666666;">If you did not request a password reset, please ignore this email.</p>
		</div>
	</body>
	</html>
	`
	m.AddAlternative("text/html", htmlBody)

	smtpHost := os.Getenv("SMTP_HOST")
	smtpPortStr := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")

	smtpPort, err := strconv.Atoi(smtpPortStr)
	if err != nil {
		log.Fatalf("Invalid SMTP_PORT value: %v", err)
	}

	d := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPass)
	return d.DialAndSend(m)
}
