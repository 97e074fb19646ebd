// Package effects performs the I/O that dispatched commands ask for. Each
// effect is a store listener; outcomes are reported back as commands and
// notifications.
package effects

import (
	"github.com/starford/notebookd/internal/notify"
)

func errorNotification(title string, err error) notify.Notification {
	return notify.Notification{
		Title:       title,
		Message:     notify.Text(err.Error()),
		Dismissible: true,
		Position:    notify.PositionTopRight,
		Level:       notify.LevelError,
	}
}

func successNotification(title, message string) notify.Notification {
	return notify.Notification{
		Title:       title,
		Message:     notify.Text(message),
		Dismissible: true,
		Position:    notify.PositionTopRight,
		Level:       notify.LevelSuccess,
	}
}
