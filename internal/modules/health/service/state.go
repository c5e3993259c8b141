package service

import (
	"sync/atomic"
	"time"
)

// State: счётчики процесса для /readyz и /healthz. Пишут сессии и запуски.
type State struct {
	ready     atomic.Bool
	startedAt time.Time

	openSessions atomic.Int64
	activeRuns   atomic.Int64
	lastTickUnix atomic.Int64 // unix seconds
}

func NewState() *State {
	s := &State{startedAt: time.Now()}
	s.ready.Store(false)
	return s
}

func (s *State) SetReady(v bool) { s.ready.Store(v) }
func (s *State) Ready() bool     { return s.ready.Load() }

// SessionOpened/SessionClosed: наблюдатель websocket-сессий.
func (s *State) SessionOpened()      { s.openSessions.Add(1) }
func (s *State) SessionClosed()      { s.openSessions.Add(-1) }
func (s *State) OpenSessions() int64 { return s.openSessions.Load() }

func (s *State) RunStarted()       { s.activeRuns.Add(1) }
func (s *State) RunFinished()      { s.activeRuns.Add(-1) }
func (s *State) ActiveRuns() int64 { return s.activeRuns.Load() }

func (s *State) Sampled(t time.Time) { s.lastTickUnix.Store(t.Unix()) }
func (s *State) LastTick() time.Time {
	u := s.lastTickUnix.Load()
	if u == 0 {
		return time.Time{}
	}
	return time.Unix(u, 0)
}

func (s *State) Uptime() time.Duration { return time.Since(s.startedAt) }

// Snapshot: тело /healthz.
type Snapshot struct {
	Ready        bool  `json:"ready"`
	OpenSessions int64 `json:"openSessions"`
	ActiveRuns   int64 `json:"activeRuns"`
	UptimeSec    int64 `json:"uptimeSec"`
	LastTickUnix int64 `json:"lastTickUnix"`
}

func (s *State) Snapshot() Snapshot {
	return Snapshot{
		Ready:        s.Ready(),
		OpenSessions: s.OpenSessions(),
		ActiveRuns:   s.ActiveRuns(),
		UptimeSec:    int64(s.Uptime().Seconds()),
		LastTickUnix: s.lastTickUnix.Load(),
	}
}
