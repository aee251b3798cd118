// Package alert shows the "time is up" popup on countdown completion.
package alert

import (
	"context"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"sandglass/internal/ui/flash"
)

var (
	pulseOnColor  = color.NRGBA{R: 214, G: 96, B: 66, A: 255}
	pulseOffColor = color.NRGBA{R: 38, G: 38, B: 42, A: 255}
	messageColor  = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// Window manages the completion popup.
type Window struct {
	window     fyne.Window
	background *canvas.Rectangle
	message    *canvas.Text
	dismiss    *widget.Button
	pulser     *flash.Engine
	onDismiss  func()
}

// New creates the popup. It stays hidden until the first completion.
func New(app fyne.App, message string) *Window {
	window := app.NewWindow("Sandglass")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}
	window.SetPadded(false)

	background := canvas.NewRectangle(pulseOffColor)

	messageLabel := canvas.NewText(message, messageColor)
	messageLabel.Alignment = fyne.TextAlignCenter
	messageLabel.TextStyle = fyne.TextStyle{Bold: true}
	messageLabel.TextSize = 28

	dismissButton := widget.NewButton("Dismiss", nil)

	content := container.NewVBox(
		container.NewPadded(messageLabel),
		container.NewPadded(dismissButton),
	)
	window.SetContent(container.NewMax(background, container.NewCenter(content)))
	window.Resize(fyne.NewSize(320, 180))
	window.CenterOnScreen()

	alertWindow := &Window{
		window:     window,
		background: background,
		message:    messageLabel,
		dismiss:    dismissButton,
	}
	alertWindow.pulser = flash.New(flash.DefaultConfig(), alertWindow.setPulse)

	dismissButton.OnTapped = alertWindow.handleDismiss
	window.SetCloseIntercept(alertWindow.handleDismiss)

	return alertWindow
}

// SetOnDismiss sets the handler fired when the user closes the popup.
func (alertWindow *Window) SetOnDismiss(handler func()) {
	alertWindow.onDismiss = handler
}

// Show raises the popup and starts the pulse.
func (alertWindow *Window) Show() {
	alertWindow.window.Show()
	alertWindow.window.RequestFocus()
	alertWindow.pulser.Start(context.Background())
}

// Hide stops the pulse and hides the popup.
func (alertWindow *Window) Hide() {
	alertWindow.pulser.Stop()
	alertWindow.window.Hide()
}

func (alertWindow *Window) handleDismiss() {
	alertWindow.Hide()
	if alertWindow.onDismiss != nil {
		alertWindow.onDismiss()
	}
}

func (alertWindow *Window) setPulse(on bool) {
	fyne.Do(func() {
		if on {
			alertWindow.background.FillColor = pulseOnColor
		} else {
			alertWindow.background.FillColor = pulseOffColor
		}
		canvas.Refresh(alertWindow.background)
	})
}
