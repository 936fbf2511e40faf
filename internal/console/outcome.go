package console

// OutcomeKind distinguishes a response from a failure
type OutcomeKind int

const (
	Success OutcomeKind = iota
	Failure
)

func (k OutcomeKind) String() string {
	if k == Failure {
		return "failure"
	}
	return "success"
}

// Outcome is the result of one accepted dispatch
type Outcome struct {
	Kind      OutcomeKind
	Text      string
	RequestID string
}

// Line returns the single log line this outcome produces
func (o Outcome) Line() LogLine {
	if o.Kind == Failure {
		return FailureLine(o.Text)
	}
	return LogLine(o.Text)
}

// Entry returns the log entry this outcome produces
func (o Outcome) Entry() Entry {
	if o.Kind == Failure {
		return Entry{Line: o.Line(), Kind: KindFailure}
	}
	return Entry{Line: o.Line(), Kind: KindOutput}
}
