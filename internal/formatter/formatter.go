package formatter

import (
	"fmt"
	"time"

	"github.com/yildizm/rhea/internal/console"
)

// Formatter renders command output outside the dashboard
type Formatter interface {
	FormatAsk(result *AskResult) ([]byte, error)
	FormatPanels(rows []PanelRow) ([]byte, error)
	FormatStatus(status *Status) ([]byte, error)
}

// AskResult is one dispatch made by `rhea ask`
type AskResult struct {
	Panel     console.Panel
	Profile   console.ProfileKind
	Model     string
	RequestID string
	Lines     []console.LogLine
	Outcome   console.Outcome
	Duration  time.Duration
}

// PanelRow describes one panel and the profile it dispatches with
type PanelRow struct {
	Panel   console.Panel
	Profile console.ProfileKind
	Model   string
}

// Status is the snapshot shown by `rhea status`
type Status struct {
	SystemName  string
	Version     string
	Identity    string
	Node        string
	Provider    string
	Endpoint    string
	KeyEnv      []string
	KeyFoundIn  string
	Theme       string
	ConfigFiles []string
	Agents      []console.Agent
	Load        float64
}

// CredentialPresent reports whether an API key variable was set
func (s *Status) CredentialPresent() bool {
	return s.KeyFoundIn != ""
}

// New returns the formatter for format (text or json)
func New(format string, color, emoji bool) (Formatter, error) {
	switch format {
	case "", "text":
		return NewTerminal(color, emoji), nil
	case "json":
		return NewJSON(), nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (must be one of: text, json)", format)
	}
}

// PanelRows builds one row per panel from profiles
func PanelRows(profiles console.ProfileSet) []PanelRow {
	panels := console.Panels()
	rows := make([]PanelRow, 0, len(panels))
	for _, p := range panels {
		profile := profiles.ForPanel(p)
		rows = append(rows, PanelRow{Panel: p, Profile: profile.Kind, Model: profile.Model})
	}
	return rows
}
