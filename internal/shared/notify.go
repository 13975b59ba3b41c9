package shared

import (
	"fmt"

	"github.com/gen2brain/beeep"
)

// Notifier sends desktop notifications.
type Notifier interface {
	Notify(title, message string) error
}

// DesktopNotifier delivers notifications through the OS notification center.
type DesktopNotifier struct {
	AppName string
}

// Notify shows a desktop notification.
func (n DesktopNotifier) Notify(title, message string) error {
	if n.AppName != "" {
		beeep.AppName = n.AppName
	}
	if err := beeep.Notify(title, message, ""); err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}
