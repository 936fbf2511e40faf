package console

import (
	"sync"
)

// MaxLogLines caps the log store
const MaxLogLines = 50

const (
	echoPrefix    = "> "
	failurePrefix = "CORE_EXCEPTION: "

	// NoResponseLine is logged when the core returns blank text
	NoResponseLine LogLine = "NO RESPONSE FROM CORE"
)

// BootLines seed a fresh console
var BootLines = []LogLine{
	"SYSTEM BOOT SEQUENCES INITIALIZED",
	"OFFLINE_CORE CONNECTED",
	"READY FOR COMMANDS",
}

// LogLine is one immutable line of console output
type LogLine string

// LineKind records how a line entered the log
type LineKind int

const (
	KindOutput LineKind = iota
	KindEcho
	KindFailure
)

// Entry is a stored line with its kind. The kind is set when the line is
// appended, so a response that happens to start with "> " is still output.
type Entry struct {
	Line LogLine
	Kind LineKind
}

// EchoLine formats a user command as it appears in the log
func EchoLine(command string) LogLine {
	return LogLine(echoPrefix + command)
}

// FailureLine formats an error message as it appears in the log
func FailureLine(message string) LogLine {
	return LogLine(failurePrefix + message)
}

// EchoEntry is the entry recorded for a submitted command
func EchoEntry(command string) Entry {
	return Entry{Line: EchoLine(command), Kind: KindEcho}
}

// LogStore keeps the newest MaxLogLines lines, oldest first
type LogStore struct {
	mu      sync.RWMutex
	entries []Entry
}

// NewLogStore creates a store holding the given initial lines
func NewLogStore(initial ...LogLine) *LogStore {
	s := &LogStore{entries: make([]Entry, 0, MaxLogLines)}
	for _, line := range initial {
		s.Append(line)
	}
	return s
}

// Append adds an output line, evicting the oldest lines past the cap
func (s *LogStore) Append(line LogLine) {
	s.Add(Entry{Line: line, Kind: KindOutput})
}

// Add stores entry, evicting the oldest entries past the cap
func (s *LogStore) Add(entry Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.entries) >= MaxLogLines {
		drop := len(s.entries) - (MaxLogLines - 1)
		copy(s.entries, s.entries[drop:])
		s.entries = s.entries[:len(s.entries)-drop]
	}
	s.entries = append(s.entries, entry)
}

// Lines returns a copy of the stored lines
func (s *LogStore) Lines() []LogLine {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]LogLine, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.Line
	}
	return out
}

// Entries returns a copy of the stored entries
func (s *LogStore) Entries() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, len(s.entries))
	copy(out, s.entries)
	return out
}

// Len returns the number of stored lines
func (s *LogStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// LastResult returns the newest entry that is not an echoed command
func (s *LogStore) LastResult() (Entry, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := len(s.entries) - 1; i >= 0; i-- {
		if s.entries[i].Kind != KindEcho {
			return s.entries[i], true
		}
	}
	return Entry{}, false
}

// Reset empties the store
func (s *LogStore) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = s.entries[:0]
}
