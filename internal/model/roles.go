package model

import (
	"fmt"
	"strings"
)

// Role determines how a node is traversed and activated.
type Role int

const (
	RoleRoot Role = iota
	RoleWidget
	RoleContainer
	RoleMenu
	RoleMenuButton
	RoleButton
	RoleRadio
	RoleCheckbox
)

var roleNames = map[Role]string{
	RoleRoot:       "root",
	RoleWidget:     "widget",
	RoleContainer:  "container",
	RoleMenu:       "menu",
	RoleMenuButton: "menuButton",
	RoleButton:     "button",
	RoleRadio:      "radio",
	RoleCheckbox:   "checkbox",
}

// String returns the role name used in paths and output.
func (r Role) String() string {
	if s, ok := roleNames[r]; ok {
		return s
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// ParseRole converts a role name back to a Role. Matching is case-insensitive.
func ParseRole(s string) (Role, error) {
	for r, name := range roleNames {
		if strings.EqualFold(name, s) {
			return r, nil
		}
	}
	return RoleRoot, fmt.Errorf("unknown role: %q", s)
}

// MarshalText lets roles appear by name in YAML and JSON.
func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// UnmarshalText parses a role name.
func (r *Role) UnmarshalText(b []byte) error {
	parsed, err := ParseRole(string(b))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// IsContainer reports grouping roles. Entering one descends to an extreme
// child; they are never activation targets.
func (r Role) IsContainer() bool {
	switch r {
	case RoleContainer, RoleMenu:
		return true
	}
	return false
}

// IsContext reports roles that belong to an on-demand context menu.
func (r Role) IsContext() bool {
	switch r {
	case RoleMenu, RoleMenuButton:
		return true
	}
	return false
}

// IsGrouped reports roles reached with arrow keys inside their group
// rather than with tab.
func (r Role) IsGrouped() bool {
	switch r {
	case RoleRadio, RoleCheckbox:
		return true
	}
	return false
}

// IsActivatable reports roles that perform an action when activated.
func (r Role) IsActivatable() bool {
	switch r {
	case RoleButton, RoleMenuButton, RoleRadio, RoleCheckbox:
		return true
	}
	return false
}
