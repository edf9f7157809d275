package logger

// LogEntry is a single session event. Exactly one of the event fields is set.
type LogEntry struct {
	TimestampMicros int64  `json:"timestamp_micros"`
	SessionID       string `json:"session_id"`

	SessionStart *SessionStart `json:"session_start,omitempty"`
	Command      *Command      `json:"command,omitempty"`
	Spawn        *Spawn        `json:"spawn,omitempty"`
	Reap         *Reap         `json:"reap,omitempty"`
	Interrupt    *Interrupt    `json:"interrupt,omitempty"`
	SessionEnd   *SessionEnd   `json:"session_end,omitempty"`
}

// Event is implemented by every event type.
type Event interface {
	setOn(le *LogEntry)
}

type SessionStart struct {
	Pid         int    `json:"pid"`
	Interactive bool   `json:"interactive"`
	User        string `json:"user,omitempty"`
}

func (e *SessionStart) setOn(le *LogEntry) { le.SessionStart = e }

// Command is an input line that was dispatched.
type Command struct {
	Line    string `json:"line"`
	Builtin bool   `json:"builtin"`
}

func (e *Command) setOn(le *LogEntry) { le.Command = e }

// Spawn is a child process that was started.
type Spawn struct {
	Pid  int      `json:"pid"`
	Argv []string `json:"argv"`
}

func (e *Spawn) setOn(le *LogEntry) { le.Spawn = e }

// Reap is a child process that was collected.
type Reap struct {
	Pid      int `json:"pid"`
	ExitCode int `json:"exit_code"`
}

func (e *Reap) setOn(le *LogEntry) { le.Reap = e }

type Interrupt struct{}

func (e *Interrupt) setOn(le *LogEntry) { le.Interrupt = e }

type SessionEnd struct {
	Error string `json:"error,omitempty"`
}

func (e *SessionEnd) setOn(le *LogEntry) { le.SessionEnd = e }

// Type returns the name of the event set on the entry.
func (le *LogEntry) Type() string {
	switch {
	case le.SessionStart != nil:
		return "session_start"
	case le.Command != nil:
		return "command"
	case le.Spawn != nil:
		return "spawn"
	case le.Reap != nil:
		return "reap"
	case le.Interrupt != nil:
		return "interrupt"
	case le.SessionEnd != nil:
		return "session_end"
	default:
		return ""
	}
}
