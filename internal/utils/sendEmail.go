package utils

import (
	"crypto/tls"
	"fmt"
	"log"
	"net/smtp"
	"os"
)

type MailConfig struct {
	SMTPHost string
	SMTPPort string
	Username string
	Password string
	Sender   string
}

func LoadMailConfig() MailConfig {
	return MailConfig{
		SMTPHost: os.Getenv("SMTP_HOST"),
		SMTPPort: os.Getenv("SMTP_PORT"),
		Username: os.Getenv("SMTP_USERNAME"),
		Password: os.Getenv("SMTP_PASSWORD"),
		Sender:   os.Getenv("SMTP_SENDER"),
	}
}

func SendEmail(config MailConfig, recipient, subject, message string) error {
	smtpAddr := config.SMTPHost + ":" + config.SMTPPort

	client, err := smtp.Dial(smtpAddr)
	if err != nil {
		log.Printf("Failed to connect to SMTP server: %v\n", err)
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Close()

	// Upgrade to TLS using STARTTLS
	tlsConfig := &tls.Config{
		ServerName: config.SMTPHost,
		MinVersion: tls.VersionTLS12,
	}
	if err = client.StartTLS(tlsConfig); err != nil {
		log.Printf("Failed to start TLS: %v\n", err)
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	auth := smtp.PlainAuth("", config.Username, config.Password, config.SMTPHost)
	if err = client.Auth(auth); err != nil {
		log.Printf("Failed to authenticate: %v\n", err)
		return fmt.Errorf("failed to authenticate: %w", err)
	}

	if err = client.Mail(config.Sender); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err = client.Rcpt(recipient); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to open message body: %w", err)
	}

	body := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		config.Sender, recipient, subject, message)
	if _, err = writer.Write([]byte(body)); err != nil {
		return fmt.Errorf("failed to write message body: %w", err)
	}
	if err = writer.Close(); err != nil {
		return fmt.Errorf("failed to close message body: %w", err)
	}

	return client.Quit()
}
