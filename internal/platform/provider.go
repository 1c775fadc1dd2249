package platform

import (
	"fmt"
	"runtime"
)

// Provider bundles the platform backends for the current OS.
type Provider struct {
	Focus FocusPrimitive

	// SwitchCombo is the "switch to previous window" shortcut.
	SwitchCombo []string
}

// ErrUnsupported is returned on unsupported platforms.
var ErrUnsupported = fmt.Errorf("focus restoration is not supported on %s/%s; supported: darwin (cgo), linux (X11)", runtime.GOOS, runtime.GOARCH)

// NewProviderFunc is set by platform-specific packages via init().
// See internal/platform/darwin/init.go and internal/platform/linux/init.go.
var NewProviderFunc func() (*Provider, error)

// NewProvider returns a Provider for the current OS.
func NewProvider() (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc()
}
