//go:build linux

// Package linux provides X11 focus restoration through the xdotool and
// wmctrl command line tools.
package linux

import (
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/mj1618/hud-a11y/internal/platform"
)

// Runner executes a command and returns its stdout.
type Runner func(name string, args ...string) ([]byte, error)

func execRunner(name string, args ...string) ([]byte, error) {
	out, err := exec.Command(name, args...).Output()
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", name, strings.Join(args, " "), err)
	}
	return out, nil
}

// Focus implements platform.FocusPrimitive for X11 desktops.
type Focus struct {
	run Runner
}

// NewFocus returns a Focus that shells out to xdotool and wmctrl.
func NewFocus() *Focus {
	return &Focus{run: execRunner}
}

// NewFocusWithRunner is NewFocus with a custom command runner.
func NewFocusWithRunner(run Runner) *Focus {
	return &Focus{run: run}
}

func (f *Focus) ActiveApplication() (platform.App, error) {
	out, err := f.run("xdotool", "getactivewindow", "getwindowpid")
	if err != nil {
		return platform.App{}, err
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(out)))
	if err != nil {
		return platform.App{}, fmt.Errorf("parse active window pid %q: %w", strings.TrimSpace(string(out)), err)
	}
	name := ""
	if comm, err := f.run("ps", "-p", strconv.Itoa(pid), "-o", "comm="); err == nil {
		name = strings.TrimSpace(string(comm))
	}
	return platform.App{Name: name, PID: pid}, nil
}

func (f *Focus) RunningApplications() ([]platform.App, error) {
	out, err := f.run("wmctrl", "-lp")
	if err != nil {
		return nil, err
	}
	return parseWmctrl(string(out)), nil
}

func (f *Focus) ActivateApplication(app platform.App) error {
	if app.PID == 0 {
		return fmt.Errorf("cannot activate %q without a PID", app.Name)
	}
	_, err := f.run("xdotool", "search", "--onlyvisible", "--pid", strconv.Itoa(app.PID), "windowactivate")
	return err
}

func (f *Focus) SendKeyCombo(keys []string) error {
	if len(keys) == 0 {
		return fmt.Errorf("no key specified in combo")
	}
	names := make([]string, 0, len(keys))
	for _, k := range keys {
		names = append(names, keysym(k))
	}
	_, err := f.run("xdotool", "key", strings.Join(names, "+"))
	return err
}

var keysyms = map[string]string{
	"cmd": "super", "command": "super", "super": "super",
	"alt": "alt", "opt": "alt", "option": "alt",
	"ctrl": "ctrl", "control": "ctrl", "shift": "shift",
	"tab": "Tab", "escape": "Escape", "esc": "Escape",
	"enter": "Return", "return": "Return", "space": "space",
}

func keysym(k string) string {
	k = strings.ToLower(strings.TrimSpace(k))
	if s, ok := keysyms[k]; ok {
		return s
	}
	return k
}

// parseWmctrl turns `wmctrl -lp` output into one App per PID. Columns are
// window id, desktop, pid, host, then the title.
func parseWmctrl(out string) []platform.App {
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		if len(fields) < 4 {
			continue
		}
		title := ""
		if len(fields) > 4 {
			title = strings.Join(fields[4:], " ")
		}
		lines = append(lines, fields[2]+"\t"+title)
	}
	return platform.ParseAppLines(strings.Join(lines, "\n"))
}
