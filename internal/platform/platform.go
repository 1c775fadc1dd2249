package platform

// App identifies a running application.
type App struct {
	Name string `yaml:"name" json:"name"`
	PID  int    `yaml:"pid"  json:"pid"`
}

// IsZero reports whether no app is recorded.
func (a App) IsZero() bool { return a.PID == 0 && a.Name == "" }

// FocusPrimitive is the OS surface the overlay uses to hand input focus
// back to the desktop.
type FocusPrimitive interface {
	// ActiveApplication returns the frontmost application.
	ActiveApplication() (App, error)

	// RunningApplications lists applications that own windows.
	RunningApplications() ([]App, error)

	// ActivateApplication brings app to the foreground.
	ActivateApplication(app App) error

	// SendKeyCombo posts a key combination such as ["cmd", "tab"].
	SendKeyCombo(keys []string) error
}
