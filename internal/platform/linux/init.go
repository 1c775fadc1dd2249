//go:build linux

package linux

import (
	"fmt"
	"os/exec"

	"github.com/mj1618/hud-a11y/internal/platform"
)

func init() {
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		for _, tool := range []string{"xdotool", "wmctrl"} {
			if _, err := exec.LookPath(tool); err != nil {
				return nil, fmt.Errorf("%w (%s not found on PATH)", platform.ErrUnsupported, tool)
			}
		}
		return &platform.Provider{
			Focus:       NewFocus(),
			SwitchCombo: platform.SwitchCombo("linux"),
		}, nil
	}
}
