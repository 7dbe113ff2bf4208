package models

import "cryptoherald/internal/notify"

// HeraldI is the application surface consumed by the HTTP API.
type HeraldI interface {
	// Start runs the polling loop until Shutdown is called.
	Start()

	// Shutdown stops the polling loop and releases resources.
	Shutdown()

	// TrackedSymbols returns the symbols evaluated each cycle.
	TrackedSymbols() []string

	// NotificationSettings returns the loaded configuration snapshot.
	NotificationSettings() *notify.Settings

	// PreviewNotification renders the notification a symbol would receive
	// at the given hour and day of week, without sending anything.
	PreviewNotification(symbol string, hour, dayOfWeek int) (string, bool, error)

	// NotificationHistory lists recently sent notifications for a symbol.
	NotificationHistory(symbol string, limit int) ([]*NotificationRecord, error)
}

// APIServer is the HTTP API lifecycle surface.
type APIServer interface {
	Start()
	Shutdown() error
}
