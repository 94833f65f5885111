package util

import (
	"log"
	"strings"

	"github.com/coreos/go-systemd/v22/journal"
)

// SetupLogging routes the standard logger to journald when withJournald is
// set and a journal socket is available
func SetupLogging(conf *AppConfig) {
	if conf == nil || !conf.Conf.WithJournald {
		return
	}
	if !journal.Enabled() {
		log.Printf("withJournald is set but journald is not available, logging to stderr")
		return
	}
	log.SetFlags(0)
	log.SetOutput(journalWriter{identifier: Name})
	log.Printf("Logging to journald")
}

type journalWriter struct {
	identifier string
}

func (w journalWriter) Write(p []byte) (int, error) {
	msg := strings.TrimRight(string(p), "\n")
	vars := map[string]string{"SYSLOG_IDENTIFIER": w.identifier}
	if err := journal.Send(msg, priorityFor(msg), vars); err != nil {
		return 0, err
	}
	return len(p), nil
}

// priorityFor picks a journal priority from the message text
func priorityFor(msg string) journal.Priority {
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(lower, "error"), strings.Contains(lower, "failed"):
		return journal.PriErr
	case strings.Contains(lower, "warning"):
		return journal.PriWarning
	default:
		return journal.PriInfo
	}
}
