package console

import (
	"fmt"
	"strings"

	"github.com/yildizm/rhea/internal/emoji"
)

// Panel identifies one of the console's views
type Panel int

const (
	Dashboard Panel = iota
	Builder
	AgentOrchestrator
	Security
	DataAnalysis
	Vision
	Voice
	Memory
)

type panelInfo struct {
	code  string
	label string
	slug  string
	icon  emoji.Icon
}

var panels = [...]panelInfo{
	Dashboard:         {code: "DASHBOARD", label: "Terminal Core", slug: "dashboard", icon: emoji.Terminal},
	Builder:           {code: "BUILDER", label: "Full-Stack Builder", slug: "builder", icon: emoji.Builder},
	AgentOrchestrator: {code: "AI_ENGINEER", label: "Agent Orchestrator", slug: "agents", icon: emoji.Agents},
	Security:          {code: "SECURITY", label: "Cyber-Defense", slug: "security", icon: emoji.Shield},
	DataAnalysis:      {code: "DATA_ANALYSIS", label: "Logic Synthesis", slug: "data", icon: emoji.Chart},
	Vision:            {code: "VISION", label: "Visual Cortex", slug: "vision", icon: emoji.Eye},
	Voice:             {code: "VOICE", label: "Voice Relay", slug: "voice", icon: emoji.Mic},
	Memory:            {code: "MEMORY", label: "Synaptic Storage", slug: "memory", icon: emoji.Database},
}

// Panels returns every panel in display order
func Panels() []Panel {
	out := make([]Panel, len(panels))
	for i := range panels {
		out[i] = Panel(i)
	}
	return out
}

// Valid reports whether p is one of the known panels
func (p Panel) Valid() bool {
	return p >= 0 && int(p) < len(panels)
}

// Code returns the upper-case identifier used in prompts
func (p Panel) Code() string {
	if !p.Valid() {
		return "UNKNOWN"
	}
	return panels[p].code
}

// Label returns the display name
func (p Panel) Label() string {
	if !p.Valid() {
		return "Unknown"
	}
	return panels[p].label
}

// Slug returns the CLI name
func (p Panel) Slug() string {
	if !p.Valid() {
		return ""
	}
	return panels[p].slug
}

// Icon returns the panel glyph
func (p Panel) Icon() emoji.Icon {
	if !p.Valid() {
		return emoji.Unknown
	}
	return panels[p].icon
}

func (p Panel) String() string {
	return p.Code()
}

// ParsePanel resolves a slug, code or label, ignoring case
func ParsePanel(s string) (Panel, error) {
	needle := strings.TrimSpace(s)
	for i, info := range panels {
		if strings.EqualFold(needle, info.slug) ||
			strings.EqualFold(needle, info.code) ||
			strings.EqualFold(needle, info.label) {
			return Panel(i), nil
		}
	}
	return Dashboard, fmt.Errorf("%w: %q", ErrUnknownPanel, s)
}
