//go:build darwin

// Package darwin provides macOS focus restoration using AppKit and CoreGraphics.
// All functionality requires CGo (Objective-C frameworks).
// When CGo is disabled, the package compiles as a no-op stub.
package darwin
