package model

import (
	"encoding/json"
	"testing"
)

func TestRole_StringRoundTrip(t *testing.T) {
	roles := []Role{RoleRoot, RoleWidget, RoleContainer, RoleMenu, RoleMenuButton, RoleButton, RoleRadio, RoleCheckbox}
	for _, r := range roles {
		t.Run(r.String(), func(t *testing.T) {
			got, err := ParseRole(r.String())
			if err != nil {
				t.Fatal(err)
			}
			if got != r {
				t.Errorf("ParseRole(%q) = %v, want %v", r.String(), got, r)
			}
		})
	}
}

func TestParseRole_CaseInsensitive(t *testing.T) {
	got, err := ParseRole("MENUBUTTON")
	if err != nil {
		t.Fatal(err)
	}
	if got != RoleMenuButton {
		t.Errorf("got %v, want menuButton", got)
	}
}

func TestParseRole_Unknown(t *testing.T) {
	for _, s := range []string{"", "slider", "btn"} {
		if _, err := ParseRole(s); err == nil {
			t.Errorf("ParseRole(%q) should fail", s)
		}
	}
}

func TestRole_Predicates(t *testing.T) {
	tests := []struct {
		role                                     Role
		container, context, grouped, activatable bool
	}{
		{RoleRoot, false, false, false, false},
		{RoleWidget, false, false, false, false},
		{RoleContainer, true, false, false, false},
		{RoleMenu, true, true, false, false},
		{RoleMenuButton, false, true, false, true},
		{RoleButton, false, false, false, true},
		{RoleRadio, false, false, true, true},
		{RoleCheckbox, false, false, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			if got := tt.role.IsContainer(); got != tt.container {
				t.Errorf("IsContainer = %v, want %v", got, tt.container)
			}
			if got := tt.role.IsContext(); got != tt.context {
				t.Errorf("IsContext = %v, want %v", got, tt.context)
			}
			if got := tt.role.IsGrouped(); got != tt.grouped {
				t.Errorf("IsGrouped = %v, want %v", got, tt.grouped)
			}
			if got := tt.role.IsActivatable(); got != tt.activatable {
				t.Errorf("IsActivatable = %v, want %v", got, tt.activatable)
			}
		})
	}
}

func TestRole_JSONByName(t *testing.T) {
	data, err := json.Marshal(struct {
		R Role `json:"r"`
	}{RoleMenuButton})
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != `{"r":"menuButton"}` {
		t.Errorf("got %s", data)
	}
}
