package main

import (
	"log"
	"os"
	"time"

	"sandglass/internal/core/countdown"
	"sandglass/internal/core/model"
	"sandglass/internal/platform"
	"sandglass/internal/signal"
	"sandglass/internal/storage"
	"sandglass/internal/ui/alert"
	"sandglass/internal/ui/timerview"
	"sandglass/internal/ui/tray"
	"sandglass/resources"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
)

const appName = "Sandglass"

func main() {
	guard, err := platform.AcquireSingleInstance(appName)
	if err != nil {
		log.Printf("single instance: %v", err)
		return
	}
	defer func() {
		_ = guard.Release()
	}()

	fyneApp := app.NewWithID("com.sandglass.app")
	fyneApp.SetIcon(resources.MustLogo("sandglass.png"))

	var store countdown.Store
	if selectionStore, err := storage.NewSelectionStore(appName); err != nil {
		log.Printf("selection store unavailable: %v", err)
	} else {
		store = selectionStore
	}

	device := fyneApp.Driver().Device()
	channels := signal.NewBroadcaster(
		signal.NewAudio(resources.MustSound("alert.wav")),
		signal.NewNotification(fyneApp, appName, "Time is up!"),
		signal.NewHaptic(platform.NewVibrator(), device.IsMobile),
	)

	controller := countdown.New(store, channels, countdown.Config{TickInterval: time.Second})

	mainView := timerview.New(fyneApp, controller)
	alertWindow := alert.New(fyneApp, "Time is up!")
	alertWindow.SetOnDismiss(func() {
		// Stop doubles as the audio kill switch after completion.
		controller.Stop()
	})

	var trayManager *tray.Manager
	if desktopApp, ok := fyneApp.(desktop.App); ok {
		trayManager = tray.New(desktopApp, tray.Callbacks{
			OnShow: func() {
				mainView.Show()
			},
			OnStart: func() {
				if err := controller.Start(); err != nil {
					log.Printf("start countdown: %v", err)
				}
			},
			OnStop: func() {
				controller.Stop()
			},
			OnLaunchAtLogin: handleLaunchAtLogin,
			OnQuit: func() {
				controller.Close()
				fyneApp.Quit()
			},
		})
		trayManager.SetIcons(
			resources.MustLogo("sandglass.png"),
			resources.MustLogo("sandglass_armed.png"),
		)
	}

	events := controller.Subscribe(8)
	go func() {
		for event := range events {
			handleEvent(event, mainView, alertWindow, trayManager)
		}
	}()

	mainView.Show()
	fyneApp.Run()
}

func handleEvent(event countdown.Event, mainView *timerview.Window, alertWindow *alert.Window, trayManager *tray.Manager) {
	fyne.Do(func() {
		mainView.Apply(event)

		switch event.Type {
		case countdown.EventProgress:
			if trayManager != nil {
				trayManager.SetStatus(model.FormatSeconds(event.Remaining) + " remaining")
			}
		case countdown.EventStateChange:
			if trayManager != nil {
				trayManager.SetArmed(event.State == countdown.StateArmed)
				if event.State == countdown.StateArmed {
					trayManager.SetStatus(model.FormatSeconds(event.Remaining) + " remaining")
				} else {
					trayManager.SetStatus("idle")
				}
			}
			if event.State == countdown.StateArmed {
				alertWindow.Hide()
			}
		case countdown.EventCompleted:
			if trayManager != nil {
				trayManager.SetArmed(false)
				trayManager.SetStatus("idle")
			}
			alertWindow.Show()
		}
	})
}

func handleLaunchAtLogin(enabled bool) {
	execPath, err := os.Executable()
	if err != nil {
		log.Printf("launch at login: resolve executable: %v", err)
		return
	}

	service := platform.NewService()
	if enabled {
		err = service.EnableAutostart(appName, execPath)
	} else {
		err = service.DisableAutostart(appName)
	}
	if err != nil {
		log.Printf("launch at login: %v", err)
	}
}
