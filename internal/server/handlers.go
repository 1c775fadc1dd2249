package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"gopkg.in/yaml.v3"

	"github.com/mj1618/hud-a11y/internal/focus"
	"github.com/mj1618/hud-a11y/internal/model"
	"github.com/mj1618/hud-a11y/internal/output"
)

// StepResult is the response of every navigation tool.
type StepResult struct {
	OK        bool       `yaml:"ok"                  json:"ok"`
	Action    string     `yaml:"action"              json:"action"`
	Focused   bool       `yaml:"focused"             json:"focused"`
	Path      model.Path `yaml:"path,omitempty"      json:"path,omitempty"`
	Narration []string   `yaml:"narration,omitempty" json:"narration,omitempty"`
	Error     string     `yaml:"error,omitempty"     json:"error,omitempty"`
}

// resultToText serializes a StepResult to YAML for the MCP response.
func resultToText(result StepResult) string {
	b, err := yaml.Marshal(result)
	if err != nil {
		return fmt.Sprintf("ok: %v\naction: %s\nerror: %s", result.OK, result.Action, result.Error)
	}
	return string(b)
}

func textResult(v interface{}) (*mcp.CallToolResult, error) {
	text, err := output.YAMLString(v)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}

// navigate runs fn against the focus manager with exclusive access and
// reports where focus ended up and what was announced.
func (s *Server) navigate(action string, fn func(m *focus.Manager) error) (*mcp.CallToolResult, error) {
	s.takeSpoken()
	var err error
	result := StepResult{Action: action}
	s.session.Do(func() {
		err = fn(s.session.Manager)
		st := s.session.Manager.State()
		result.Focused = st.Focused
		result.Path = st.Path
	})
	result.Narration = s.takeSpoken()
	if err != nil {
		result.Error = err.Error()
		return mcp.NewToolResultError(resultToText(result)), nil
	}
	result.OK = true
	return mcp.NewToolResultText(resultToText(result)), nil
}

func (s *Server) handlePress(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	keys := stringSliceParam(params, "keys")
	if k := stringParam(params, "key", ""); k != "" {
		keys = append([]string{k}, keys...)
	}
	if len(keys) == 0 {
		return mcp.NewToolResultError("key or keys is required"), nil
	}

	steps := make([]output.KeyStep, 0, len(keys))
	for _, k := range keys {
		s.takeSpoken()
		handled, err := s.session.Press(k)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		steps = append(steps, output.KeyStep{
			Key:       k,
			Handled:   handled,
			Path:      s.session.Snapshot(0).State.Path,
			Narration: s.takeSpoken(),
		})
	}
	return textResult(output.KeysResult{Steps: steps, State: s.session.Snapshot(0).State})
}

func (s *Server) handleFocus(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := model.Path(stringParam(request.GetArguments(), "path", ""))
	return s.navigate("focus", func(m *focus.Manager) error {
		if path != "" && m.Root().Find(path) == nil {
			return fmt.Errorf("no element at path %q", path)
		}
		m.FocusPath(path)
		if !m.Focused() {
			return errors.New("nothing to focus")
		}
		return nil
	})
}

func (s *Server) handleNext(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.navigate("next", func(m *focus.Manager) error {
		m.FocusNext()
		return nil
	})
}

func (s *Server) handlePrevious(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.navigate("previous", func(m *focus.Manager) error {
		m.FocusPrevious()
		return nil
	})
}

func (s *Server) handleUp(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.navigate("up", func(m *focus.Manager) error {
		if !m.Focused() {
			return errors.New("overlay is not focused")
		}
		m.FocusUp()
		return nil
	})
}

func (s *Server) handleBlur(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	keep := boolParam(request.GetArguments(), "keep-path", true)
	return s.navigate("blur", func(m *focus.Manager) error {
		m.Blur(keep)
		return nil
	})
}

func (s *Server) handleContext(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := stringParam(request.GetArguments(), "widget", "")
	return s.navigate("context", func(m *focus.Manager) error {
		if id == "" {
			return errors.New("widget is required")
		}
		if !m.FocusContext(id) {
			return fmt.Errorf("widget %q has no context menu", id)
		}
		return nil
	})
}

func (s *Server) handleWidget(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	id := stringParam(params, "id", "")
	enabled := boolParam(params, "enabled", true)
	if err := s.session.SetWidgetEnabled(id, enabled); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return textResult(s.session.Snapshot(0).Widgets)
}

func (s *Server) handleTree(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ts := time.Now().Unix()
	if boolParam(request.GetArguments(), "flat", false) {
		return textResult(output.TreeFlatResult{Root: model.RootName, TS: ts, Nodes: s.session.Tree()})
	}
	var text string
	var err error
	s.session.Do(func() {
		// The tree is rebuilt on widget changes, so encode under the lock.
		text, err = output.YAMLString(output.TreeResult{Root: model.RootName, TS: ts, Widgets: s.session.Manager.Root().Children})
	})
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(text), nil
}

func (s *Server) handleState(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	last := intParam(request.GetArguments(), "last", 5)
	return textResult(s.session.Snapshot(last))
}

func (s *Server) handleNarration(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	params := request.GetArguments()
	last := intParam(params, "last", 0)
	entries := s.session.Narration.Entries()
	if last > 0 && len(entries) > last {
		entries = entries[len(entries)-last:]
	}
	if boolParam(params, "clear", false) {
		s.session.Narration.Reset()
	}
	return textResult(entries)
}
