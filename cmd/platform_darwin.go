package cmd

// Registers the macOS focus backend.
import _ "github.com/mj1618/hud-a11y/internal/platform/darwin"
