package signal

import (
	"errors"

	"fyne.io/fyne/v2"
)

// Poster delivers a system notification. fyne.App satisfies it.
type Poster interface {
	SendNotification(notification *fyne.Notification)
}

// Notification shows a one-time system notification on completion.
type Notification struct {
	poster  Poster
	title   string
	message string
}

// NewNotification creates a notification channel.
func NewNotification(poster Poster, title, message string) *Notification {
	return &Notification{poster: poster, title: title, message: message}
}

// Name identifies the channel in logs.
func (notification *Notification) Name() string {
	return "notification"
}

// Announce posts the notification. Delivery is best effort; the platform may
// drop it when notifications are denied or unavailable.
func (notification *Notification) Announce() error {
	if notification.poster == nil {
		return errors.New("notification service unavailable")
	}
	notification.poster.SendNotification(fyne.NewNotification(notification.title, notification.message))
	return nil
}
