package notificator

import (
	"fmt"
	"net/smtp"
	"strconv"

	"cryptoherald/pkg/logger"
)

// EmailNotificator is an optional secondary channel; it is only wired when a
// recipient address is configured.
type EmailNotificator struct {
	logger *logger.Logger

	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string
	SMTPSender   string
	Recipient    string

	SMTPAuth smtp.Auth
}

func NewEmailNotificator(logger *logger.Logger, host string, port int, user, password, sender, recipient string) *EmailNotificator {
	auth := smtp.PlainAuth(
		"",
		user,
		password,
		host,
	)

	return &EmailNotificator{
		logger:       logger,
		SMTPAuth:     auth,
		SMTPHost:     host,
		SMTPPort:     port,
		SMTPUser:     user,
		SMTPPassword: password,
		SMTPSender:   sender,
		Recipient:    recipient,
	}
}

func (e *EmailNotificator) SendNotification(message string) error {
	addr := fmt.Sprintf("%s:%s", e.SMTPHost, strconv.Itoa(e.SMTPPort))
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s",
		e.SMTPSender,
		e.Recipient,
		"Notification crypto",
		message,
	)
	if err := smtp.SendMail(addr, e.SMTPAuth, e.SMTPSender, []string{e.Recipient}, []byte(msg)); err != nil {
		e.logger.Error("Failed to send email: ", err)
		return fmt.Errorf("failed to send email: %s", err)
	}
	return nil
}
