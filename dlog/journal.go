package dlog

import (
	"github.com/coreos/go-systemd/v22/journal"
)

// JournalFormatter routes log lines to the systemd journal instead of an
// io.Writer, mapping dlog's LogLevel onto journal priorities. It is a no-op
// (falls back silently) when not running under systemd, matching
// journal.Enabled()'s own contract.
type JournalFormatter struct {
	syslogIdentifier string
}

// NewJournalFormatter returns a Formatter that sends entries to the systemd
// journal tagged with identifier, when the journal is reachable.
func NewJournalFormatter(identifier string) *JournalFormatter {
	return &JournalFormatter{syslogIdentifier: identifier}
}

// Available reports whether the local systemd journal can accept messages;
// callers should fall back to NewGlogFormatter(os.Stderr) when false.
func Available() bool {
	return journal.Enabled()
}

func (j *JournalFormatter) Format(name string, level LogLevel, msg string) {
	_ = journal.Send(msg, toPriority(level), map[string]string{
		"SYSLOG_IDENTIFIER": j.syslogIdentifier,
		"DLOG_COMPONENT":    name,
	})
}

func toPriority(level LogLevel) journal.Priority {
	switch level {
	case ERROR:
		return journal.PriErr
	case WARNING:
		return journal.PriWarning
	case INFO:
		return journal.PriInfo
	case DEBUG, TRACE:
		return journal.PriDebug
	default:
		return journal.PriInfo
	}
}
