// Package notify sends desktop notifications when the host allows it.
package notify

import (
	"os/exec"
	"runtime"

	"github.com/0xAX/notificator"
)

const appName = "MyDay"

type Permission string

const (
	Granted     Permission = "granted"
	Denied      Permission = "denied"
	Unavailable Permission = "unavailable"
)

// Notifier matches reminder.Notifier.
type Notifier interface {
	Notify(title, body string) error
}

// Desktop pushes notifications through the platform notifier.
type Desktop struct {
	n    *notificator.Notificator
	icon string
}

func NewDesktop(icon string) *Desktop {
	return &Desktop{
		n: notificator.New(notificator.Options{
			DefaultIcon: icon,
			AppName:     appName,
		}),
		icon: icon,
	}
}

func (d *Desktop) Notify(title, body string) error {
	return d.n.Push(title, body, d.icon, notificator.UR_NORMAL)
}

// Nop drops notifications. Reminders still fire logically.
type Nop struct{}

func (Nop) Notify(string, string) error { return nil }

// lookPath is swapped in tests.
var lookPath = exec.LookPath

// RequestPermission decides whether visible notifications may be shown.
func RequestPermission(enabled bool) Permission {
	if !enabled {
		return Denied
	}
	if backendAvailable() {
		return Granted
	}
	return Unavailable
}

// New returns a desktop notifier when permission is granted, else Nop.
func New(perm Permission, icon string) Notifier {
	if perm == Granted {
		return NewDesktop(icon)
	}
	return Nop{}
}

func backendAvailable() bool {
	var candidates []string
	switch runtime.GOOS {
	case "darwin":
		candidates = []string{"terminal-notifier", "osascript"}
	case "linux", "freebsd", "openbsd", "netbsd":
		candidates = []string{"notify-send"}
	case "windows":
		candidates = []string{"growlnotify"}
	}
	for _, c := range candidates {
		if _, err := lookPath(c); err == nil {
			return true
		}
	}
	return false
}
