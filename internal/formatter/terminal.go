package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/go-termfmt"

	"github.com/yildizm/rhea/internal/emoji"
)

// terminalFormatter formats output as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewTerminal creates a new terminal formatter
func NewTerminal(color, useEmoji bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = useEmoji
	return &terminalFormatter{opts: opts}
}

// FormatAsk prints the echo line and the outcome line, nothing else
func (f *terminalFormatter) FormatAsk(result *AskResult) ([]byte, error) {
	var b strings.Builder
	for _, line := range result.Lines {
		b.WriteString(string(line))
		b.WriteString("\n")
	}
	return []byte(b.String()), nil
}

func (f *terminalFormatter) FormatPanels(rows []PanelRow) ([]byte, error) {
	var b strings.Builder
	f.writeHeader(&b, "Panels")

	items := make([]termfmt.TreeItem, 0, len(rows))
	for i, row := range rows {
		items = append(items, termfmt.TreeItem{
			Label: fmt.Sprintf("%s %s", row.Panel.Icon(), row.Panel.Label()),
			Value: row.Panel.Slug(),
			Children: []termfmt.TreeItem{
				{Label: "Code", Value: row.Panel.Code()},
				{Label: "Profile", Value: string(row.Profile)},
				{Label: "Model", Value: row.Model, Last: true},
			},
			Last: i == len(rows)-1,
		})
	}

	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts))
	b.WriteString("\n")
	return []byte(b.String()), nil
}

func (f *terminalFormatter) FormatStatus(status *Status) ([]byte, error) {
	var b strings.Builder
	f.writeHeader(&b, fmt.Sprintf("%s v%s", status.SystemName, status.Version))

	f.writeIdentity(&b, status)
	f.writeProvider(&b, status)
	f.writeAgents(&b, status)
	f.writeLoad(&b, status)

	return []byte(b.String()), nil
}

func (f *terminalFormatter) writeIdentity(b *strings.Builder, status *Status) {
	b.WriteString(emoji.Cpu.String() + " Core\n")

	configFiles := "defaults only"
	if len(status.ConfigFiles) > 0 {
		configFiles = strings.Join(status.ConfigFiles, ", ")
	}

	items := []termfmt.TreeItem{
		{Label: "Identity", Value: status.Identity},
		{Label: "Node", Value: status.Node},
		{Label: "Theme", Value: status.Theme},
		{Label: "Config", Value: configFiles, Last: true},
	}
	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

func (f *terminalFormatter) writeProvider(b *strings.Builder, status *Status) {
	b.WriteString(emoji.Link.String() + " Provider\n")

	endpoint := status.Endpoint
	if endpoint == "" {
		endpoint = "default"
	}

	credential := fmt.Sprintf("%s missing (checked %s)", emoji.Warning, strings.Join(status.KeyEnv, ", "))
	if status.CredentialPresent() {
		credential = fmt.Sprintf("%s present (%s)", emoji.Success, status.KeyFoundIn)
	}

	items := []termfmt.TreeItem{
		{Label: "Name", Value: status.Provider},
		{Label: "Endpoint", Value: endpoint},
		{Label: "Credential", Value: credential, Last: true},
	}
	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

func (f *terminalFormatter) writeAgents(b *strings.Builder, status *Status) {
	b.WriteString(emoji.Agents.String() + " Agents\n")

	items := make([]termfmt.TreeItem, 0, len(status.Agents))
	for i, agent := range status.Agents {
		items = append(items, termfmt.TreeItem{
			Label: fmt.Sprintf("%s (%s)", agent.Name, agent.Role),
			Value: string(agent.Status),
			Last:  i == len(status.Agents)-1,
		})
	}
	b.WriteString(termfmt.TreeViewWithOptions(items, f.opts) + "\n\n")
}

func (f *terminalFormatter) writeLoad(b *strings.Builder, status *Status) {
	symbol := termfmt.GetEmoji("statistics", f.opts)
	bar := termfmt.CreateConfidenceBar(status.Load/100, f.opts)
	fmt.Fprintf(b, "%s Neural Load\n%s %.1f%%\n", symbol, bar, status.Load)
}

// writeHeader writes a boxed title
func (f *terminalFormatter) writeHeader(b *strings.Builder, header string) {
	width := len([]rune(header))

	b.WriteString("╔" + strings.Repeat("═", width+2) + "╗\n")
	b.WriteString("║ " + header + " ║\n")
	b.WriteString("╚" + strings.Repeat("═", width+2) + "╝\n\n")
}
