// Package timerview is the main countdown window.
package timerview

import (
	"image/color"
	"log"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"sandglass/internal/core/countdown"
	"sandglass/internal/core/model"
)

var timeColor = color.NRGBA{R: 25, G: 25, B: 25, A: 255}

// Window handles the main timer UI.
type Window struct {
	window       fyne.Window
	controller   *countdown.Controller
	minuteSelect *widget.Select
	secondSelect *widget.Select
	startButton  *widget.Button
	stopButton   *widget.Button
	timeLabel    *canvas.Text
	progressBar  *widget.ProgressBar
}

// New creates the main window wired to the controller.
func New(app fyne.App, controller *countdown.Controller) *Window {
	window := app.NewWindow("Sandglass")

	view := &Window{
		window:     window,
		controller: controller,
	}

	selection := controller.Selection()

	view.minuteSelect = widget.NewSelect(numberOptions(model.MaxMinutes), view.handleSelectionChanged)
	view.secondSelect = widget.NewSelect(numberOptions(model.MaxSeconds), view.handleSelectionChanged)

	view.timeLabel = canvas.NewText(model.FormatSeconds(selection.TotalSeconds()), timeColor)
	view.timeLabel.TextStyle = fyne.TextStyle{Bold: true}
	view.timeLabel.TextSize = 48
	view.timeLabel.Alignment = fyne.TextAlignCenter

	view.progressBar = widget.NewProgressBar()
	view.progressBar.SetValue(1)

	view.startButton = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), view.handleStart)
	view.startButton.Importance = widget.HighImportance
	view.stopButton = widget.NewButtonWithIcon("Stop", theme.MediaStopIcon(), view.handleStop)
	view.stopButton.Disable()

	picker := container.NewHBox(
		widget.NewLabel("Minutes"), view.minuteSelect,
		widget.NewLabel("Seconds"), view.secondSelect,
	)
	controls := container.NewGridWithColumns(2, view.startButton, view.stopButton)

	content := container.NewVBox(
		container.NewCenter(picker),
		container.NewPadded(view.timeLabel),
		view.progressBar,
		controls,
	)
	window.SetContent(container.NewPadded(content))
	window.Resize(fyne.NewSize(340, 260))
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	// Seed the pickers last: SetSelected fires the change callback, which
	// touches the other widgets.
	view.minuteSelect.SetSelected(strconv.Itoa(selection.Minutes))
	view.secondSelect.SetSelected(strconv.Itoa(selection.Seconds))

	view.refreshStartEnabled()
	return view
}

// Show displays the main window.
func (view *Window) Show() {
	view.window.Show()
	view.window.RequestFocus()
}

// Apply updates the widgets from a controller event. Must run on the Fyne
// goroutine.
func (view *Window) Apply(event countdown.Event) {
	switch event.Type {
	case countdown.EventProgress:
		view.setRemaining(event.Remaining)
		view.progressBar.SetValue(event.Progress / 100)
	case countdown.EventStateChange:
		if event.State == countdown.StateArmed {
			view.setArmed(true)
			view.setRemaining(event.Remaining)
			view.progressBar.SetValue(1)
			return
		}
		view.setArmed(false)
		view.setRemaining(view.controller.Selection().TotalSeconds())
		view.progressBar.SetValue(1)
	case countdown.EventCompleted:
		view.setArmed(false)
		view.setRemaining(0)
		view.progressBar.SetValue(0)
	}
}

func (view *Window) handleStart() {
	if err := view.controller.Start(); err != nil {
		log.Printf("start countdown: %v", err)
	}
}

func (view *Window) handleStop() {
	view.controller.Stop()
}

func (view *Window) handleSelectionChanged(string) {
	minutes := selectedNumber(view.minuteSelect)
	seconds := selectedNumber(view.secondSelect)
	if err := view.controller.SetSelection(minutes, seconds); err != nil {
		log.Printf("set selection: %v", err)
		return
	}
	view.setRemaining(view.controller.Selection().TotalSeconds())
	view.refreshStartEnabled()
}

func (view *Window) setArmed(armed bool) {
	if armed {
		view.minuteSelect.Disable()
		view.secondSelect.Disable()
		view.startButton.Disable()
		view.stopButton.Enable()
		return
	}
	view.minuteSelect.Enable()
	view.secondSelect.Enable()
	view.stopButton.Disable()
	view.refreshStartEnabled()
}

func (view *Window) refreshStartEnabled() {
	if view.controller.Armed() || view.controller.Selection().TotalSeconds() == 0 {
		view.startButton.Disable()
		return
	}
	view.startButton.Enable()
}

func (view *Window) setRemaining(totalSeconds int) {
	view.timeLabel.Text = model.FormatSeconds(totalSeconds)
	view.timeLabel.Refresh()
}

func numberOptions(max int) []string {
	options := make([]string, 0, max+1)
	for value := 0; value <= max; value++ {
		options = append(options, strconv.Itoa(value))
	}
	return options
}

func selectedNumber(sel *widget.Select) int {
	value, err := strconv.Atoi(sel.Selected)
	if err != nil {
		return 0
	}
	return value
}
