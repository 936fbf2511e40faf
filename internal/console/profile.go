package console

import (
	"fmt"

	"github.com/yildizm/rhea/internal/ai"
)

// ProfileKind names a request profile
type ProfileKind string

const (
	ProfileReasoning ProfileKind = "reasoning"
	ProfileCode      ProfileKind = "code"
	ProfileSecurity  ProfileKind = "security"
)

const (
	reasoningInstruction = "You are RHEA-AI, a fully offline, modular, autonomous AI engineering laboratory. " +
		"Persona: Strategic, precise, visionary, efficient. Your tone is like a sophisticated hacking machine. " +
		"Do not mention you are an LLM."
	codeInstruction = "As RHEA-AI Architect, generate production-ready code. " +
		"Return only the file structure and code in markdown blocks. Output must be modular and scalable."
	securityInstruction = "Analyze the following code for vulnerabilities. Act as RHEA-AI Security Module. " +
		"Provide a risk score (0-100) and specific mitigation steps."
)

// Profile is a fixed request shape: model, sampling parameters, persona and
// prompt template. Temperature is always sent; the optional parameters are
// sent only when set.
type Profile struct {
	Kind              ProfileKind
	Model             string
	SystemInstruction string
	Temperature       float64
	TopP              *float64
	TopK              *int
	ThinkingBudget    *int
}

// Prompt renders the user-visible prompt for command submitted from panel
func (p Profile) Prompt(command string, panel Panel) string {
	switch p.Kind {
	case ProfileCode:
		return "Generate production-ready code for: " + command
	case ProfileSecurity:
		return "Code to analyze:\n" + command
	default:
		return fmt.Sprintf("Current active task context: Active Module: %s\n\nUser Input: %s", panel.Code(), command)
	}
}

// Request builds the completion request for command submitted from panel
func (p Profile) Request(command string, panel Panel) *ai.CompletionRequest {
	return &ai.CompletionRequest{
		Prompt:         p.Prompt(command, panel),
		SystemPrompt:   p.SystemInstruction,
		Model:          p.Model,
		Temperature:    ai.Float64(p.Temperature),
		TopP:           p.TopP,
		TopK:           p.TopK,
		ThinkingBudget: p.ThinkingBudget,
		Metadata: map[string]string{
			"panel":   panel.Code(),
			"profile": string(p.Kind),
		},
	}
}

// ProfileSet holds one profile per kind
type ProfileSet struct {
	Reasoning Profile
	Code      Profile
	Security  Profile
}

// DefaultProfiles returns the built-in profiles
func DefaultProfiles() ProfileSet {
	return ProfileSet{
		Reasoning: Profile{
			Kind:              ProfileReasoning,
			Model:             "gemini-3-pro-preview",
			SystemInstruction: reasoningInstruction,
			Temperature:       0.7,
			TopP:              ai.Float64(0.9),
			TopK:              ai.Int(40),
			ThinkingBudget:    ai.Int(2000),
		},
		Code: Profile{
			Kind:              ProfileCode,
			Model:             "gemini-3-flash-preview",
			SystemInstruction: codeInstruction,
			Temperature:       0.2,
		},
		Security: Profile{
			Kind:              ProfileSecurity,
			Model:             "gemini-3-flash-preview",
			SystemInstruction: securityInstruction,
			Temperature:       0.1,
		},
	}
}

// ForPanel selects the profile for panel. Builder and Security have their
// own; every other panel reasons.
func (s ProfileSet) ForPanel(panel Panel) Profile {
	switch panel {
	case Builder:
		return s.Code
	case Security:
		return s.Security
	default:
		return s.Reasoning
	}
}
