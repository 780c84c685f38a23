package server

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/claude/gymflow/internal/models"
	"github.com/claude/gymflow/internal/timer"
)

const maxRestSeconds = 3600

// handleRestTimer streams a rest countdown as server-sent events. Without a
// seconds parameter the caller's configured rest time is used. Remaining time
// is computed from tick timestamps, so a stalled connection catches up on the
// next tick instead of drifting.
func (s *Server) handleRestTimer(w http.ResponseWriter, r *http.Request) {
	seconds, ok := s.restSeconds(w, r)
	if !ok {
		return
	}

	rc := http.NewResponseController(w)
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	ticks := make(chan time.Time, 1)
	tm := timer.New(s.clock, s.resolution, func(ts time.Time) {
		select {
		case ticks <- ts:
		default:
		}
	})
	defer tm.Close()

	cd := timer.Countdown{Start: s.clock.Now(), Duration: time.Duration(seconds) * time.Second}
	last := seconds
	if err := writeEvent(w, "tick", timerEvent{Remaining: last}); err != nil {
		s.log.Warn("rest timer write failed", "error", err)
		return
	}
	rc.Flush()

	tm.Start()
	for {
		select {
		case <-r.Context().Done():
			return
		case ts := <-ticks:
			if cd.Done(ts) {
				tm.Stop()
				if err := writeEvent(w, "done", timerEvent{Remaining: 0}); err != nil {
					s.log.Warn("rest timer write failed", "error", err)
					return
				}
				rc.Flush()
				return
			}
			if rem := cd.RemainingSeconds(ts); rem != last {
				last = rem
				if err := writeEvent(w, "tick", timerEvent{Remaining: rem}); err != nil {
					s.log.Warn("rest timer write failed", "error", err)
					return
				}
				if err := rc.Flush(); err != nil {
					s.log.Warn("rest timer flush failed", "error", err)
					return
				}
			}
		}
	}
}

func (s *Server) restSeconds(w http.ResponseWriter, r *http.Request) (int, bool) {
	if v := r.URL.Query().Get("seconds"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxRestSeconds {
			writeError(w, http.StatusBadRequest, fmt.Sprintf("seconds must be between 1 and %d", maxRestSeconds))
			return 0, false
		}
		return n, true
	}
	store, ok := s.storeFor(w, r)
	if !ok {
		return 0, false
	}
	settings, err := store.Settings(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return 0, false
	}
	if settings.RestTimerDefault < 1 {
		return models.DefaultSettings.RestTimerDefault, true
	}
	return settings.RestTimerDefault, true
}

// timerEvent is the data payload of tick and done events.
type timerEvent struct {
	Remaining int `json:"remaining"`
}

// writeEvent writes one server-sent event.
func writeEvent(w io.Writer, event string, ev timerEvent) error {
	b, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encoding %s event: %w", event, err)
	}
	if _, err := fmt.Fprintf(w, "event: %s\ndata: %s\n\n", event, b); err != nil {
		return fmt.Errorf("writing %s event: %w", event, err)
	}
	return nil
}
