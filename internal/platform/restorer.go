package platform

import (
	"fmt"
	"os"
	"strings"
)

// Restorer hands OS input focus back to the application that had it
// before the overlay took focus.
type Restorer struct {
	focus FocusPrimitive
	combo []string
	self  int
}

// NewRestorer wraps a provider. A nil provider yields a Restorer whose
// calls return ErrUnsupported.
func NewRestorer(p *Provider) *Restorer {
	r := &Restorer{self: os.Getpid()}
	if p != nil {
		r.focus = p.Focus
		r.combo = p.SwitchCombo
	}
	if len(r.combo) == 0 {
		r.combo = SwitchCombo("")
	}
	return r
}

// ActiveApplication returns the frontmost application, or the zero App
// when the overlay itself is frontmost.
func (r *Restorer) ActiveApplication() (App, error) {
	if r.focus == nil {
		return App{}, ErrUnsupported
	}
	app, err := r.focus.ActiveApplication()
	if err != nil {
		return App{}, fmt.Errorf("active application: %w", err)
	}
	if app.PID == r.self {
		return App{}, nil
	}
	return app, nil
}

// Restore activates last if it is still running. Otherwise it sends the
// platform's switch-window combo once.
func (r *Restorer) Restore(last App) error {
	if r.focus == nil {
		return ErrUnsupported
	}
	if !last.IsZero() {
		apps, err := r.focus.RunningApplications()
		if err != nil {
			return fmt.Errorf("list running applications: %w", err)
		}
		for _, a := range apps {
			if sameApp(a, last) {
				if err := r.focus.ActivateApplication(a); err != nil {
					return fmt.Errorf("activate %s: %w", a.Name, err)
				}
				return nil
			}
		}
	}
	if err := r.focus.SendKeyCombo(r.combo); err != nil {
		return fmt.Errorf("send %s: %w", strings.Join(r.combo, "+"), err)
	}
	return nil
}

func sameApp(a, b App) bool {
	if a.PID != 0 && b.PID != 0 {
		return a.PID == b.PID
	}
	return a.Name != "" && a.Name == b.Name
}

// SwitchCombo returns the "switch to previous window" shortcut for goos.
func SwitchCombo(goos string) []string {
	if goos == "darwin" {
		return []string{"cmd", "tab"}
	}
	return []string{"alt", "tab"}
}

// ParseCombo splits "cmd+tab" into its keys.
func ParseCombo(s string) []string {
	var keys []string
	for _, k := range strings.Split(s, "+") {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
