package console

// AgentStatus is the display state of an agent
type AgentStatus string

const (
	AgentIdle      AgentStatus = "IDLE"
	AgentThinking  AgentStatus = "THINKING"
	AgentExecuting AgentStatus = "EXECUTING"
	AgentDone      AgentStatus = "DONE"
	AgentError     AgentStatus = "ERROR"
)

// Agent is a static roster entry shown on the dashboard
type Agent struct {
	ID     string
	Name   string
	Role   string
	Status AgentStatus
	Task   string
}

// DefaultAgents returns the fixed roster
func DefaultAgents() []Agent {
	return []Agent{
		{ID: "1", Name: "Architect-01", Role: "System Architecture", Status: AgentIdle},
		{ID: "2", Name: "Codex-A", Role: "Code Generation", Status: AgentIdle},
		{ID: "3", Name: "Guard-Prime", Role: "Security Review", Status: AgentIdle},
		{ID: "4", Name: "Optimus", Role: "Optimization", Status: AgentIdle},
	}
}
