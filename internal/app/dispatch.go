package app

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
)

// Dispatcher runs commands one at a time and logs their outcome.
type Dispatcher struct {
	logger log.FieldLogger
}

func NewDispatcher(logger log.FieldLogger) *Dispatcher {
	if logger == nil {
		logger = log.StandardLogger()
	}
	return &Dispatcher{logger: logger}
}

// Dispatch executes cmd against s. Errors come back untouched so the caller
// can show them; the state stays usable after any failure.
func (d *Dispatcher) Dispatch(s *State, cmd Command) error {
	name := CommandName(cmd)
	fields := log.Fields{"command": name, "mode": s.Mode.String()}
	if t, ok := s.SelectedTask(); ok {
		fields["task"] = t.ID
	}
	entry := d.logger.WithFields(fields)

	err := cmd.Execute(s)
	if err != nil {
		entry.WithField("kind", KindOf(err).String()).WithError(err).Warn("command failed")
		return err
	}
	entry.WithField("tasks", len(s.Tasks)).Debug("command executed")
	return nil
}

func CommandName(cmd Command) string {
	name := fmt.Sprintf("%T", cmd)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return name
}
