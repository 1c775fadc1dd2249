package model

import "testing"

// buildSample returns widget:0 { button:0, container:1 { radio:0, radio:1 } }.
func buildSample() *Node {
	root := NewRoot()
	w := root.Append(NewNode("widget:0", "Sample", RoleWidget))
	w.Append(NewNode("", "Go", RoleButton))
	group := w.Append(NewNode("", "Choices", RoleContainer))
	group.Append(NewNode("", "A", RoleRadio))
	group.Append(NewNode("", "B", RoleRadio))
	return root
}

func TestNode_AppendAssignsPaths(t *testing.T) {
	root := buildSample()
	want := []Path{
		"widget:0",
		"widget:0.button:0",
		"widget:0.container:1",
		"widget:0.container:1.radio:0",
		"widget:0.container:1.radio:1",
	}
	var got []Path
	root.Walk(func(n *Node) bool {
		if n.Role != RoleRoot {
			got = append(got, n.Path)
		}
		return true
	})
	if len(got) != len(want) {
		t.Fatalf("got %d nodes, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("node %d: path %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNode_AppendDuplicateID(t *testing.T) {
	w := NewNode("list", "List", RoleWidget)
	first := w.Append(NewNode("item", "One", RoleButton))
	second := w.Append(NewNode("item", "Two", RoleButton))
	if first.Path != "list.item" {
		t.Errorf("first: %q", first.Path)
	}
	if second.Path != "list.item:1" {
		t.Errorf("second: %q", second.Path)
	}
}

func TestNode_AppendRepathsDetachedSubtree(t *testing.T) {
	sub := NewNode("panel", "Panel", RoleWidget)
	btn := sub.Append(NewNode("close", "Close", RoleButton))
	if btn.Path != "panel.close" {
		t.Fatalf("detached path: %q", btn.Path)
	}

	root := NewRoot()
	holder := root.Append(NewNode("outer", "Outer", RoleContainer))
	holder.Append(sub)
	if btn.Path != "outer.panel.close" {
		t.Errorf("repathed: %q", btn.Path)
	}
}

func TestNode_Find(t *testing.T) {
	root := buildSample()
	tests := []struct {
		path Path
		name string
	}{
		{"", RootName},
		{"widget:0", "Sample"},
		{"widget:0.container:1.radio:1", "B"},
	}
	for _, tt := range tests {
		n := root.Find(tt.path)
		if n == nil {
			t.Errorf("Find(%q) = nil", tt.path)
			continue
		}
		if n.Name != tt.name {
			t.Errorf("Find(%q).Name = %q, want %q", tt.path, n.Name, tt.name)
		}
	}
}

func TestNode_FindMissing(t *testing.T) {
	root := buildSample()
	for _, p := range []Path{"nope", "widget:0.button:5", "widget:0.container:1.radio:0.deeper"} {
		if n := root.Find(p); n != nil {
			t.Errorf("Find(%q) should be nil, got %q", p, n.Path)
		}
	}
}

func TestNode_FindFromSubtree(t *testing.T) {
	root := buildSample()
	w := root.Find("widget:0")
	if n := w.Find("widget:0.container:1.radio:0"); n == nil || n.Name != "A" {
		t.Errorf("subtree find failed: %v", n)
	}
	if n := w.Find("other.button:0"); n != nil {
		t.Errorf("path outside subtree should be nil")
	}
}

func TestNode_ClearMakesPathsStale(t *testing.T) {
	root := buildSample()
	root.Clear()
	if n := root.Find("widget:0.button:0"); n != nil {
		t.Error("expected stale path after clear")
	}
	if len(root.Children) != 0 {
		t.Errorf("children left: %d", len(root.Children))
	}
}

func TestNode_Replace(t *testing.T) {
	root := buildSample()
	repl := NewNode("widget:0", "Sample v2", RoleWidget)
	repl.Append(NewNode("", "Only", RoleButton))
	root.Replace(0, repl)

	if n := root.Find("widget:0.container:1"); n != nil {
		t.Error("old subtree should be gone")
	}
	n := root.Find("widget:0.button:0")
	if n == nil || n.Name != "Only" {
		t.Errorf("replacement not found: %v", n)
	}

	root.Replace(5, NewNode("x", "X", RoleWidget))
	if len(root.Children) != 1 {
		t.Error("out of range replace must be a no-op")
	}
}

func TestNode_Equals(t *testing.T) {
	w := NewNode("panel", "Panel", RoleWidget)
	closeBtn := w.Append(NewNode("close", "Close", RoleButton))
	other := w.Append(NewNode("", "Other", RoleButton))
	if !closeBtn.Equals("close") {
		t.Error("close button should equal close")
	}
	if other.Equals("close") {
		t.Error("other button should not equal close")
	}
}

func TestNode_LabelAndHeight(t *testing.T) {
	root := buildSample()
	radio := root.Find("widget:0.container:1.radio:0")
	radio.State = "checked"
	if got := radio.Label(); got != "A checked" {
		t.Errorf("Label() = %q", got)
	}
	if got := root.Height(); got != 3 {
		t.Errorf("Height() = %d, want 3", got)
	}
	w := root.Find("widget:0")
	if w.First().Name != "Go" || w.Last().Name != "Choices" {
		t.Error("First/Last mismatch")
	}
	if idx := w.IndexOf("widget:0.container:1"); idx != 1 {
		t.Errorf("IndexOf = %d", idx)
	}
}
