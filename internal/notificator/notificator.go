package notificator

import (
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"cryptoherald/internal/models"
	"cryptoherald/pkg/logger"
)

// Notificator fans a rendered message out to the configured channels and
// records the outcome.
type Notificator struct {
	logger *logger.Logger
	db     models.Repository

	TelegramNotificator *TelegramNotificator
	EmailNotificator    *EmailNotificator
}

func NewNotificator(logger *logger.Logger, db models.Repository, telNotif *TelegramNotificator, emailNotif *EmailNotificator) *Notificator {
	return &Notificator{logger: logger, db: db, TelegramNotificator: telNotif, EmailNotificator: emailNotif}
}

// safeCall runs a function with panic recovery (synchronous, no goroutine spawning)
func (n *Notificator) safeCall(fn func(), context string) {
	defer func() {
		if r := recover(); r != nil {
			n.logger.Error("Function panicked",
				"context", context,
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()
	fn()
}

func (n *Notificator) SendNotification(symbol, message string) {
	if n.TelegramNotificator != nil {
		n.safeCall(func() {
			err := n.TelegramNotificator.SendNotification(message)
			n.record(symbol, message, "telegram", err)
		}, "telegramNotification")
	}
	if n.EmailNotificator != nil {
		n.safeCall(func() {
			err := n.EmailNotificator.SendNotification(message)
			n.record(symbol, message, "email", err)
		}, "emailNotification")
	}
}

func (n *Notificator) record(symbol, message, channel string, sendErr error) {
	if n.db == nil {
		return
	}
	status := "sent"
	if sendErr != nil {
		status = "failed"
	}
	record := &models.NotificationRecord{
		ID:      uuid.NewString(),
		Symbol:  symbol,
		Message: message,
		Channel: channel,
		Status:  status,
		SentAt:  time.Now(),
	}
	if err := n.db.SaveNotification(record); err != nil {
		n.logger.Error("Failed to record notification: ", err)
	}
}
