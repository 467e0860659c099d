package utils

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

// SendEmail sends an HTML email using the configured SMTP server. When
// SMTP_HOST is not set, sending is a no-op so local environments work
// without a mail server.
func SendEmail(to, subject, body string) error {
	host := os.Getenv("SMTP_HOST")
	if host == "" {
		LogDebug("SMTP not configured, skipping email to %s", to)
		return nil
	}
	port, err := strconv.Atoi(os.Getenv("SMTP_PORT"))
	if err != nil {
		port = 587
	}

	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(host, port, os.Getenv("SMTP_USERNAME"), os.Getenv("SMTP_PASSWORD"))
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %v", err)
	}
	return nil
}

// depositReceiptBody renders the deposit receipt email. An empty
// balance omits the balance line.
func depositReceiptBody(amount, balance string) string {
	body := fmt.Sprintf(`
		<h2>Deposit received</h2>
		<p>Your BundleHub wallet has been credited with GHS %s.</p>
	`, amount)
	if balance != "" {
		body += fmt.Sprintf("<p>New balance: GHS %s</p>\n", balance)
	}
	return body
}

// SendDepositReceipt emails the user after a deposit is credited. Pass
// an empty balance when the current balance is not known.
func SendDepositReceipt(to, amount, balance string) error {
	return SendEmail(to, "BundleHub - Deposit received", depositReceiptBody(amount, balance))
}
