package tray

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnShow          func()
	OnStart         func()
	OnStop          func()
	OnLaunchAtLogin func(enabled bool)
	OnQuit          func()
}

// Manager handles system tray state.
type Manager struct {
	app         desktop.App
	statusItem  *fyne.MenuItem
	startItem   *fyne.MenuItem
	stopItem    *fyne.MenuItem
	loginItem   *fyne.MenuItem
	callbacks   Callbacks
	armed       bool
	statusLabel string
	idleIcon    fyne.Resource
	armedIcon   fyne.Resource
}

// New creates a tray manager with the provided callbacks.
func New(app desktop.App, callbacks Callbacks) *Manager {
	manager := &Manager{
		app:         app,
		callbacks:   callbacks,
		statusLabel: "idle",
	}

	manager.statusItem = fyne.NewMenuItem("Status: idle", nil)
	manager.statusItem.Disabled = true

	manager.startItem = fyne.NewMenuItem("Start", func() {
		if manager.callbacks.OnStart != nil {
			manager.callbacks.OnStart()
		}
	})

	manager.stopItem = fyne.NewMenuItem("Stop", func() {
		if manager.callbacks.OnStop != nil {
			manager.callbacks.OnStop()
		}
	})
	manager.stopItem.Disabled = true

	manager.loginItem = fyne.NewMenuItem("Launch at login", nil)
	manager.loginItem.Action = func() {
		manager.loginItem.Checked = !manager.loginItem.Checked
		if manager.callbacks.OnLaunchAtLogin != nil {
			manager.callbacks.OnLaunchAtLogin(manager.loginItem.Checked)
		}
		manager.refreshMenu()
	}

	app.SetSystemTrayMenu(manager.buildMenu())
	return manager
}

// SetStatus updates the status label.
func (manager *Manager) SetStatus(status string) {
	manager.statusLabel = status
	manager.statusItem.Label = fmt.Sprintf("Status: %s", status)
	manager.refreshMenu()
}

// SetIcons provides the tray icons for the idle and armed states.
func (manager *Manager) SetIcons(idle, armed fyne.Resource) {
	manager.idleIcon = idle
	manager.armedIcon = armed
	manager.refreshIcon()
}

// SetArmed toggles the start/stop items for the current run state.
func (manager *Manager) SetArmed(armed bool) {
	manager.armed = armed
	manager.startItem.Disabled = armed
	manager.stopItem.Disabled = !armed
	manager.refreshIcon()
	manager.refreshMenu()
}

func (manager *Manager) buildMenu() *fyne.Menu {
	return fyne.NewMenu("Sandglass",
		manager.statusItem,
		fyne.NewMenuItem("Show timer", func() {
			if manager.callbacks.OnShow != nil {
				manager.callbacks.OnShow()
			}
		}),
		manager.startItem,
		manager.stopItem,
		manager.loginItem,
		fyne.NewMenuItem("Quit", func() {
			if manager.callbacks.OnQuit != nil {
				manager.callbacks.OnQuit()
			}
		}),
	)
}

func (manager *Manager) refreshIcon() {
	if manager.app == nil {
		return
	}
	icon := manager.idleIcon
	if manager.armed {
		icon = manager.armedIcon
	}
	if icon != nil {
		manager.app.SetSystemTrayIcon(icon)
	}
}

func (manager *Manager) refreshMenu() {
	if manager.app != nil {
		manager.app.SetSystemTrayMenu(manager.buildMenu())
	}
}
