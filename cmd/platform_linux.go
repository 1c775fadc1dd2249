package cmd

// Registers the X11 focus backend.
import _ "github.com/mj1618/hud-a11y/internal/platform/linux"
