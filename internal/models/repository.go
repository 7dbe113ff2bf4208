package models

import "time"

type Repository interface {
	SaveNotification(record *NotificationRecord) error
	ListNotifications(symbol string, limit int) ([]*NotificationRecord, error)

	SaveSnapshot(snapshot *MarketSnapshot) error
	LatestSnapshots(symbol string, limit int) ([]*MarketSnapshot, error)

	PruneNotifications(before time.Time) error
	PruneSnapshots(before time.Time) error

	Close() error
}
