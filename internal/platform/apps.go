package platform

import (
	"strconv"
	"strings"
)

// ParseAppLines parses "pid<TAB>name" lines as produced by the platform
// backends. Malformed lines and duplicate PIDs are skipped.
func ParseAppLines(s string) []App {
	var apps []App
	seen := make(map[int]bool)
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimRight(line, "\r")
		if line == "" {
			continue
		}
		pidStr, name, ok := strings.Cut(line, "\t")
		if !ok {
			continue
		}
		pid, err := strconv.Atoi(strings.TrimSpace(pidStr))
		if err != nil || pid <= 0 || seen[pid] {
			continue
		}
		seen[pid] = true
		apps = append(apps, App{Name: strings.TrimSpace(name), PID: pid})
	}
	return apps
}
