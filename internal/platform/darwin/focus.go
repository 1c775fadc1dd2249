//go:build darwin && cgo

package darwin

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework AppKit -framework CoreGraphics -framework ApplicationServices -framework Foundation
#import <AppKit/AppKit.h>
#include <ApplicationServices/ApplicationServices.h>
#include <CoreGraphics/CoreGraphics.h>
#include <stdlib.h>
#include <string.h>

static int ns_frontmost_app(char **name, pid_t *pid) {
    @autoreleasepool {
        NSRunningApplication *app = [[NSWorkspace sharedWorkspace] frontmostApplication];
        if (app == nil) return -1;
        const char *n = [[app localizedName] UTF8String];
        *name = strdup(n ? n : "");
        *pid = [app processIdentifier];
        return 0;
    }
}

// Returns "pid\tname\n" lines for regular (Dock) applications. Caller frees.
static char *ns_running_apps(void) {
    @autoreleasepool {
        NSMutableString *out = [NSMutableString string];
        for (NSRunningApplication *app in [[NSWorkspace sharedWorkspace] runningApplications]) {
            if (app.activationPolicy != NSApplicationActivationPolicyRegular) continue;
            NSString *name = app.localizedName ?: @"";
            [out appendFormat:@"%d\t%@\n", app.processIdentifier, name];
        }
        return strdup([out UTF8String]);
    }
}

static int ns_activate_pid(pid_t pid) {
    @autoreleasepool {
        NSRunningApplication *app = [NSRunningApplication runningApplicationWithProcessIdentifier:pid];
        if (app == nil) return -1;
        return [app activateWithOptions:NSApplicationActivateIgnoringOtherApps] ? 0 : -1;
    }
}

// Press a key combo with modifiers.
static void cg_key_combo(CGKeyCode keyCode, CGEventFlags modifiers) {
    CGEventRef keyDown = CGEventCreateKeyboardEvent(NULL, keyCode, true);
    CGEventRef keyUp = CGEventCreateKeyboardEvent(NULL, keyCode, false);
    CGEventSetFlags(keyDown, modifiers);
    CGEventSetFlags(keyUp, modifiers);
    CGEventPost(kCGHIDEventTap, keyDown);
    CGEventPost(kCGHIDEventTap, keyUp);
    CFRelease(keyDown);
    CFRelease(keyUp);
}

static int is_trusted() {
    return AXIsProcessTrusted();
}
*/
import "C"

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/mj1618/hud-a11y/internal/platform"
)

// Focus implements platform.FocusPrimitive for macOS.
type Focus struct{}

// NewFocus creates a new macOS focus primitive.
func NewFocus() *Focus {
	return &Focus{}
}

func (f *Focus) ActiveApplication() (platform.App, error) {
	var cName *C.char
	var cPid C.pid_t

	if C.ns_frontmost_app(&cName, &cPid) != 0 {
		return platform.App{}, fmt.Errorf("failed to get frontmost app")
	}
	defer C.free(unsafe.Pointer(cName))

	return platform.App{Name: C.GoString(cName), PID: int(cPid)}, nil
}

func (f *Focus) RunningApplications() ([]platform.App, error) {
	cList := C.ns_running_apps()
	if cList == nil {
		return nil, fmt.Errorf("failed to list running applications")
	}
	defer C.free(unsafe.Pointer(cList))
	return platform.ParseAppLines(C.GoString(cList)), nil
}

func (f *Focus) ActivateApplication(app platform.App) error {
	if app.PID == 0 {
		return fmt.Errorf("cannot activate %q without a PID", app.Name)
	}
	if C.ns_activate_pid(C.pid_t(app.PID)) != 0 {
		return fmt.Errorf("failed to activate app with PID %d", app.PID)
	}
	return nil
}

// SendKeyCombo posts synthetic key events. It needs accessibility permission.
func (f *Focus) SendKeyCombo(keys []string) error {
	if C.is_trusted() == 0 {
		return fmt.Errorf(
			"accessibility permission required\n\n" +
				"Grant permission at: System Settings > Privacy & Security > Accessibility\n" +
				"Add your terminal app (e.g. Terminal.app, iTerm2, or the IDE running this command).\n" +
				"Then restart the terminal and try again.")
	}
	keyCode, modifiers, err := parseKeyCombo(keys)
	if err != nil {
		return err
	}
	C.cg_key_combo(C.CGKeyCode(keyCode), C.CGEventFlags(modifiers))
	return nil
}

// macOS virtual key codes from Carbon Events.h.
var keyCodeMap = map[string]uint16{
	"tab": 0x30, "space": 0x31, "return": 0x24, "enter": 0x24,
	"escape": 0x35, "esc": 0x35, "grave": 0x32, "`": 0x32,
	"up": 0x7E, "down": 0x7D, "left": 0x7B, "right": 0x7C,
}

// macOS modifier key flags.
var modifierMap = map[string]uint64{
	"cmd": uint64(C.kCGEventFlagMaskCommand), "command": uint64(C.kCGEventFlagMaskCommand),
	"shift": uint64(C.kCGEventFlagMaskShift),
	"ctrl": uint64(C.kCGEventFlagMaskControl), "control": uint64(C.kCGEventFlagMaskControl),
	"alt": uint64(C.kCGEventFlagMaskAlternate), "opt": uint64(C.kCGEventFlagMaskAlternate), "option": uint64(C.kCGEventFlagMaskAlternate),
}

func parseKeyCombo(keys []string) (C.CGKeyCode, C.CGEventFlags, error) {
	var modifiers uint64
	var keyCode uint16
	found := false

	for _, k := range keys {
		k = strings.ToLower(strings.TrimSpace(k))
		if mod, ok := modifierMap[k]; ok {
			modifiers |= mod
		} else if code, ok := keyCodeMap[k]; ok {
			keyCode = code
			found = true
		} else {
			return 0, 0, fmt.Errorf("unknown key: %q", k)
		}
	}
	if !found {
		return 0, 0, fmt.Errorf("no key specified in combo, only modifiers")
	}
	return C.CGKeyCode(keyCode), C.CGEventFlags(modifiers), nil
}
