package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mj1618/hud-a11y/internal/focus"
	"github.com/mj1618/hud-a11y/internal/model"
)

// Format represents the output format.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// OutputFormat is the current output format, set by the root command's --format flag.
var OutputFormat Format = FormatYAML

// PrettyOutput enables pretty-printing for JSON output.
var PrettyOutput bool

// TreeResult is the output of the `tree` command.
type TreeResult struct {
	Root    string        `yaml:"root"    json:"root"`
	TS      int64         `yaml:"ts"      json:"ts"`
	Widgets []*model.Node `yaml:"widgets" json:"widgets"`
}

// TreeFlatResult is the output of `tree --flat`.
type TreeFlatResult struct {
	Root  string           `yaml:"root"  json:"root"`
	TS    int64            `yaml:"ts"    json:"ts"`
	Nodes []model.FlatNode `yaml:"nodes" json:"nodes"`
}

// KeyStep is one key applied by the `keys` command.
type KeyStep struct {
	Key       string     `yaml:"key"                 json:"key"`
	Handled   bool       `yaml:"handled"             json:"handled"`
	Path      model.Path `yaml:"path,omitempty"      json:"path,omitempty"`
	Narration []string   `yaml:"narration,omitempty" json:"narration,omitempty"`
}

// KeysResult is the output of the `keys` command.
type KeysResult struct {
	Steps []KeyStep   `yaml:"steps" json:"steps"`
	State focus.State `yaml:"state" json:"state"`
}

// Print serializes v to stdout in the current output format.
func Print(v interface{}) error {
	return Fprint(os.Stdout, v)
}

// Fprint serializes v to w in the current output format.
func Fprint(w io.Writer, v interface{}) error {
	switch OutputFormat {
	case FormatJSON:
		return WriteJSON(w, v, PrettyOutput)
	case FormatYAML:
		return WriteYAML(w, v)
	default:
		return fmt.Errorf("unsupported output format: %s", OutputFormat)
	}
}

// WriteJSON serializes v as JSON, compact on a single line unless pretty.
func WriteJSON(w io.Writer, v interface{}, pretty bool) error {
	enc := json.NewEncoder(w)
	if pretty {
		enc.SetIndent("", "  ")
	}
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("json encode: %w", err)
	}
	return nil
}

// WriteYAML serializes v as YAML.
func WriteYAML(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("yaml encode: %w", err)
	}
	return enc.Close()
}

// YAMLString renders v as YAML text.
func YAMLString(v interface{}) (string, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("yaml encode: %w", err)
	}
	return string(data), nil
}
