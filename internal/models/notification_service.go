package models

type NotificationService interface {
	SendNotification(symbol, message string)
}
