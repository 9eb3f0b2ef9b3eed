package services

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/smtp"
	"time"

	"github.com/sahar-naoui/version2/config"
)

// Notifier delivers alert messages to employees. Implementations report a
// boolean outcome and never panic; the alert engine records the outcome on
// the alert row and moves on.
type Notifier interface {
	SendEmail(to, subject, body string) bool
	SendSMS(to, message string) bool
}

// EmailSMSNotifier sends email over SMTP and SMS through an HTTP gateway.
// Channels without credentials fall back to logging the message, so a dev
// setup without an SMTP account still records alerts as delivered.
type EmailSMSNotifier struct {
	smtpHost string
	smtpPort string
	smtpUser string
	smtpPass string

	smsURL string
	smsKey string
	client *http.Client
}

func NewNotifier(cfg *config.Config) *EmailSMSNotifier {
	return &EmailSMSNotifier{
		smtpHost: cfg.SMTPHost,
		smtpPort: cfg.SMTPPort,
		smtpUser: cfg.SMTPUsername,
		smtpPass: cfg.SMTPPassword,
		smsURL:   cfg.SMSAPIURL,
		smsKey:   cfg.SMSAPIKey,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (n *EmailSMSNotifier) SendEmail(to, subject, body string) bool {
	if n.smtpHost == "" {
		log.Printf("email (no smtp configured) to %s: %s", to, subject)
		return true
	}

	msg := []byte("From: " + n.smtpUser + "\r\n" +
		"To: " + to + "\r\n" +
		"Subject: " + subject + "\r\n" +
		"\r\n" + body + "\r\n")

	auth := smtp.PlainAuth("", n.smtpUser, n.smtpPass, n.smtpHost)
	if err := smtp.SendMail(n.smtpHost+":"+n.smtpPort, auth, n.smtpUser, []string{to}, msg); err != nil {
		log.Printf("send email to %s failed: %v", to, err)
		return false
	}
	return true
}

func (n *EmailSMSNotifier) SendSMS(to, message string) bool {
	if n.smsURL == "" {
		log.Printf("sms (no gateway configured) to %s: %s", to, message)
		return true
	}

	payload, err := json.Marshal(map[string]string{
		"api_key": n.smsKey,
		"to":      to,
		"message": message,
	})
	if err != nil {
		log.Printf("send sms to %s failed: %v", to, err)
		return false
	}

	resp, err := n.client.Post(n.smsURL, "application/json", bytes.NewReader(payload))
	if err != nil {
		log.Printf("send sms to %s failed: %v", to, err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		log.Printf("sms gateway rejected message to %s: %s", to, resp.Status)
		return false
	}
	return true
}
