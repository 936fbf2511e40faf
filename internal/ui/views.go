package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yildizm/rhea/internal/console"
	"github.com/yildizm/rhea/internal/emoji"
)

const (
	builderBanner   = "// RHEA-AI CODE_SYNTHESIS_ENGINE V4.0\n// INITIALIZING COMPILATION PROTOCOLS..."
	builderIdle     = "AWAITING INSTRUCTIONS TO BUILD..."
	protocolsBanner = "Initializing Protocols..."
	encryptionNote  = "Module encryption enabled. Initializing data streams..."
	processingLabel = "SYNTHESIZING_NEURAL_LOGIC"

	builderPreviewLines = 8
)

type retrievalNote struct {
	id   string
	text string
	tag  string
	age  string
}

var retrievalNotes = []retrievalNote{
	{
		id:   "ST-3490",
		text: "Modular API design pattern optimized for ultra low-latency inference cycles. Local state maintained.",
		tag:  "#architecture",
		age:  "2m ago",
	},
	{
		id:   "ST-3488",
		text: "Zero-day threat mitigation strategies applied to Node.js backend. All ports isolated via secure tunneling.",
		tag:  "#security",
		age:  "15m ago",
	},
}

var opticTelemetry = []string{
	"OBJECTS_DETECTED: 12",
	"SPATIAL_SYNC: 98.4%",
	"OCR_BUFFER: SCANNING_PAGES...",
	"THREAT_LEVEL: ZERO",
}

// View renders the dashboard
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "\n  Initializing " + console.SystemName + "..."
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderSidebar(), m.renderMain())

	sections := []string{m.renderHeader(), body, m.renderFooter()}
	if m.showHelp {
		sections = append(sections, m.help.FullHelpView(keys.FullHelp()))
	} else {
		sections = append(sections, m.help.ShortHelpView(keys.ShortHelp()))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *Model) renderHeader() string {
	title := m.styles.Title.Render(console.SystemName + " v" + console.Version)
	identity := m.styles.Muted.Render(console.CoreIdentity)
	node := m.styles.Success.Render(console.NodeID)

	left := title + "  " + identity
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(node) - 2
	if gap < 1 {
		gap = 1
	}

	return m.styles.Header.Width(m.width).Render(left + strings.Repeat(" ", gap) + node)
}

func (m *Model) renderSidebar() string {
	current := m.state.Selector.Current()

	var b strings.Builder
	for _, p := range console.Panels() {
		item := fmt.Sprintf("%s %s", p.Icon(), p.Label())
		if p == current {
			b.WriteString(m.styles.NavSelected.Width(sidebarWidth - 4).Render(item))
		} else {
			b.WriteString(m.styles.NavItem.Render(item))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("Neural Load"))
	b.WriteString("\n")
	b.WriteString(m.renderGauge())

	height := m.height - 6
	if height < 1 {
		height = 1
	}
	return m.styles.Sidebar.Width(sidebarWidth).Height(height).Render(b.String())
}

// renderGauge draws the load as a fixed-width bar
func (m *Model) renderGauge() string {
	filled := int(m.state.Gauge.Fraction()*gaugeCells + 0.5)
	filled = max(0, min(gaugeCells, filled))

	bar := m.styles.Gauge.Render(strings.Repeat("█", filled)) +
		m.styles.Muted.Render(strings.Repeat("░", gaugeCells-filled))
	return fmt.Sprintf("%s %5.1f%%", bar, m.state.Gauge.Value())
}

func (m *Model) renderMain() string {
	width := m.width - sidebarWidth - 2
	if width < 20 {
		width = 20
	}

	parts := []string{m.renderPanelTitle()}
	if section := m.panelSection(); section != "" {
		parts = append(parts, section)
	}
	parts = append(parts, m.renderTerminal())

	return m.styles.Main.Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m *Model) renderPanelTitle() string {
	p := m.state.Selector.Current()
	title := m.styles.Title.Render(fmt.Sprintf("%s %s", p.Icon(), strings.ToUpper(p.Label())))
	return title + "\n" + m.styles.Subtitle.Render(encryptionNote) + "\n"
}

// panelSection is the panel-specific block above the terminal
func (m *Model) panelSection() string {
	switch m.state.Selector.Current() {
	case console.Dashboard:
		return m.renderDashboard()
	case console.Builder:
		return m.renderBuilder()
	case console.Vision:
		return m.renderVision()
	default:
		return m.styles.Muted.Render(protocolsBanner)
	}
}

func (m *Model) panelSectionHeight() int {
	section := m.panelSection()
	if section == "" {
		return 0
	}
	return lipgloss.Height(section)
}

func (m *Model) renderDashboard() string {
	var agents strings.Builder
	agents.WriteString(m.styles.Title.Render(emoji.Agents.String() + " AGENTS"))
	for _, a := range m.state.Agents {
		agents.WriteString("\n")
		agents.WriteString(fmt.Sprintf("%-13s %s ", a.Name, m.styles.Muted.Render(a.Role)))
		agents.WriteString(m.renderAgentStatus(a.Status))
	}

	var notes strings.Builder
	notes.WriteString(m.styles.Title.Render(emoji.Brain.String() + " Synaptic Retrieval"))
	for _, n := range retrievalNotes {
		notes.WriteString("\n")
		notes.WriteString(m.styles.Success.Render("NODE_LOG: " + n.id))
		notes.WriteString(" " + m.styles.Muted.Render(n.age))
		notes.WriteString("\n")
		notes.WriteString(m.styles.Body.Render(truncate(n.text, 60)))
		notes.WriteString(" " + m.styles.Echo.Render(n.tag))
	}

	return lipgloss.JoinVertical(lipgloss.Left, agents.String(), "", notes.String())
}

func (m *Model) renderAgentStatus(status console.AgentStatus) string {
	switch status {
	case console.AgentError:
		return m.styles.Error.Render(string(status))
	case console.AgentDone:
		return m.styles.Success.Render(string(status))
	case console.AgentThinking, console.AgentExecuting:
		return m.styles.Warning.Render(string(status))
	default:
		return m.styles.Muted.Render(string(status))
	}
}

func (m *Model) renderBuilder() string {
	var b strings.Builder
	b.WriteString(m.styles.Muted.Render(builderBanner))
	b.WriteString("\n")

	result, ok := m.state.Logs.LastResult()
	if !ok {
		b.WriteString(m.styles.Body.Render(builderIdle))
		return b.String()
	}

	lines := strings.Split(string(result.Line), "\n")
	if len(lines) > builderPreviewLines {
		lines = append(lines[:builderPreviewLines], "...")
	}
	style := m.styles.Body
	if result.Kind == console.KindFailure {
		style = m.styles.Error
	}
	b.WriteString(style.Render(strings.Join(lines, "\n")))
	return b.String()
}

func (m *Model) renderVision() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(emoji.Eye.String() + " Neural Optics System"))
	b.WriteString("\n")

	if !m.opticLink {
		b.WriteString(m.styles.Muted.Render("[ctrl+o] ESTABLISH OPTIC LINK"))
		return b.String()
	}

	b.WriteString(m.styles.Error.Render("[ctrl+o] TERMINATE LINK"))
	b.WriteString("\n")
	b.WriteString(m.styles.Success.Render("TELEM_STATS: " + strings.Join(opticTelemetry, ", ")))
	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render("COORD_X: 42.093  COORD_Y: -71.439  ALT: 12.4m"))
	return b.String()
}

func (m *Model) renderTerminal() string {
	var prompt string
	if m.processing {
		prompt = m.spinner.View() + " " + m.styles.Title.Render(processingLabel)
	} else {
		prompt = m.input.View()
	}

	return m.styles.Box.Render(m.viewport.View() + "\n" + prompt)
}

func (m *Model) renderLogLine(entry console.Entry) string {
	switch entry.Kind {
	case console.KindEcho:
		return m.styles.Echo.Render(string(entry.Line))
	case console.KindFailure:
		return m.styles.Error.Render(string(entry.Line))
	default:
		return m.styles.Body.Render(string(entry.Line))
	}
}

func (m *Model) renderFooter() string {
	panel := m.state.Selector.Current()
	profile := m.state.Dispatcher.Profiles().ForPanel(panel)

	state := m.styles.Success.Render("IDLE")
	if m.processing {
		state = m.styles.Warning.Render("PROCESSING")
	}

	items := []string{
		"CORE_SHELL: Ready",
		"NEURAL_INF: " + profile.Model,
		fmt.Sprintf("MEM_SYNC: %d/%d", m.state.Logs.Len(), console.MaxLogLines),
		state,
	}
	return m.styles.Footer.Width(m.width).Render(strings.Join(items, "  |  "))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
