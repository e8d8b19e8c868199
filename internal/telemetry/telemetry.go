// Package telemetry records anonymous command usage events. Only the
// command name and tool version are ever captured.
package telemetry

import (
	"crypto/rand"
	"io"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/YoshitsuguKoike/tdd/internal/app"
)

// Environment variables that opt out of telemetry
const (
	EnvTelemetry  = "TDD_TELEMETRY"
	EnvDoNotTrack = "DO_NOT_TRACK"
	EnvCI         = "CI"
)

// Settings is resolved once per process and passed to whoever reports
type Settings struct {
	Enabled bool
	Reason  string // why telemetry is off, empty when enabled
}

// ResolveSettings decides whether telemetry is on. configured is the
// project's config.yaml setting; the environment can only turn it off.
func ResolveSettings(getenv func(string) string, configured bool) Settings {
	for _, key := range []string{EnvTelemetry, EnvDoNotTrack} {
		switch strings.ToLower(strings.TrimSpace(getenv(key))) {
		case "0", "false":
			return Settings{Reason: key}
		}
	}
	if getenv(EnvCI) != "" {
		return Settings{Reason: EnvCI}
	}
	if !configured {
		return Settings{Reason: "config.yaml"}
	}
	return Settings{Enabled: true}
}

// Event is one recorded command invocation
type Event struct {
	ID        string    `json:"id"`
	Command   string    `json:"command"`
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`
}

// Reporter records events when its settings allow it
type Reporter struct {
	settings Settings
	logger   app.Logger
	now      func() time.Time
	entropy  io.Reader
	events   []Event
}

// NewReporter creates a reporter bound to settings
func NewReporter(settings Settings, logger app.Logger) *Reporter {
	if logger == nil {
		logger = app.GetLogger()
	}
	return &Reporter{
		settings: settings,
		logger:   logger,
		now:      time.Now,
		entropy:  ulid.Monotonic(rand.Reader, 0),
	}
}

// Enabled reports whether Track records anything
func (r *Reporter) Enabled() bool {
	return r != nil && r.settings.Enabled
}

// Track records one invocation of command. It returns false when telemetry is off.
func (r *Reporter) Track(command, version string) (Event, bool) {
	if !r.Enabled() {
		return Event{}, false
	}

	ts := r.now()
	ev := Event{
		ID:        ulid.MustNew(ulid.Timestamp(ts), r.entropy).String(),
		Command:   command,
		Version:   version,
		Timestamp: ts.UTC(),
	}
	r.events = append(r.events, ev)
	r.logger.Debug("telemetry: %s command=%s version=%s", ev.ID, ev.Command, ev.Version)
	return ev, true
}

// Events returns the events recorded so far
func (r *Reporter) Events() []Event {
	if r == nil {
		return nil
	}
	return append([]Event(nil), r.events...)
}
