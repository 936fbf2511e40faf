package formatter

import (
	"encoding/json"
	"time"
)

// jsonFormatter formats output as JSON
type jsonFormatter struct{}

// NewJSON creates a new JSON formatter
func NewJSON() Formatter {
	return &jsonFormatter{}
}

// AskOutput is the JSON form of an ask result
type AskOutput struct {
	Panel     string   `json:"panel"`
	Profile   string   `json:"profile"`
	Model     string   `json:"model"`
	RequestID string   `json:"request_id,omitempty"`
	Outcome   string   `json:"outcome"`
	Text      string   `json:"text"`
	Lines     []string `json:"lines"`
	Duration  string   `json:"duration"`
}

// PanelOutput is the JSON form of a panel row
type PanelOutput struct {
	Slug    string `json:"slug"`
	Code    string `json:"code"`
	Label   string `json:"label"`
	Profile string `json:"profile"`
	Model   string `json:"model"`
}

// StatusOutput is the JSON form of a status snapshot
type StatusOutput struct {
	System      string        `json:"system"`
	Version     string        `json:"version"`
	Identity    string        `json:"identity"`
	Node        string        `json:"node"`
	Provider    string        `json:"provider"`
	Endpoint    string        `json:"endpoint,omitempty"`
	Credential  bool          `json:"credential_present"`
	KeyFoundIn  string        `json:"key_found_in,omitempty"`
	Theme       string        `json:"theme"`
	ConfigFiles []string      `json:"config_files"`
	Agents      []AgentOutput `json:"agents"`
	Load        float64       `json:"load"`
}

// AgentOutput is the JSON form of an agent
type AgentOutput struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Status string `json:"status"`
}

func (f *jsonFormatter) FormatAsk(result *AskResult) ([]byte, error) {
	lines := make([]string, 0, len(result.Lines))
	for _, line := range result.Lines {
		lines = append(lines, string(line))
	}

	return json.MarshalIndent(&AskOutput{
		Panel:     result.Panel.Code(),
		Profile:   string(result.Profile),
		Model:     result.Model,
		RequestID: result.RequestID,
		Outcome:   result.Outcome.Kind.String(),
		Text:      result.Outcome.Text,
		Lines:     lines,
		Duration:  result.Duration.Round(time.Millisecond).String(),
	}, "", "  ")
}

func (f *jsonFormatter) FormatPanels(rows []PanelRow) ([]byte, error) {
	out := make([]PanelOutput, 0, len(rows))
	for _, row := range rows {
		out = append(out, PanelOutput{
			Slug:    row.Panel.Slug(),
			Code:    row.Panel.Code(),
			Label:   row.Panel.Label(),
			Profile: string(row.Profile),
			Model:   row.Model,
		})
	}
	return json.MarshalIndent(out, "", "  ")
}

func (f *jsonFormatter) FormatStatus(status *Status) ([]byte, error) {
	agents := make([]AgentOutput, 0, len(status.Agents))
	for _, a := range status.Agents {
		agents = append(agents, AgentOutput{ID: a.ID, Name: a.Name, Role: a.Role, Status: string(a.Status)})
	}

	configFiles := status.ConfigFiles
	if configFiles == nil {
		configFiles = []string{}
	}

	return json.MarshalIndent(&StatusOutput{
		System:      status.SystemName,
		Version:     status.Version,
		Identity:    status.Identity,
		Node:        status.Node,
		Provider:    status.Provider,
		Endpoint:    status.Endpoint,
		Credential:  status.CredentialPresent(),
		KeyFoundIn:  status.KeyFoundIn,
		Theme:       status.Theme,
		ConfigFiles: configFiles,
		Agents:      agents,
		Load:        status.Load,
	}, "", "  ")
}
