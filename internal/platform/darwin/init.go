//go:build darwin && cgo

package darwin

import "github.com/mj1618/hud-a11y/internal/platform"

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		return &platform.Provider{
			Focus:       NewFocus(),
			SwitchCombo: platform.SwitchCombo("darwin"),
		}, nil
	}
}
