package runner

import (
	"context"
	"sort"
	"sync"
	"time"

	"binary_bot/internal/models"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

var ErrRunNotFound = errors.New("run not found")

type activeRun struct {
	snap   models.RunSnapshot
	cancel context.CancelFunc
}

// Manager держит активные запуски. Торгового состояния в нём нет, только отмена.
type Manager struct {
	runner *Runner
	log    *zap.Logger
	newID  func() string

	mu     sync.Mutex
	runs   map[string]*activeRun
	closed bool // после Shutdown новые запуски не стартуют
	wg     sync.WaitGroup
}

func NewManager(r *Runner, log *zap.Logger) *Manager {
	return &Manager{
		runner: r,
		log:    log,
		newID:  uuid.NewString,
		runs:   make(map[string]*activeRun),
	}
}

// Run запускает новый запуск и ждёт его конца.
func (m *Manager) Run(ctx context.Context, req models.RunRequest) models.RunResult {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	id := m.newID()
	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		now := time.Now()
		return models.RunResult{
			RunID:      id,
			Reason:     models.ReasonCancelled,
			Message:    "manager is shutting down",
			FinalStake: req.InitialStake,
			StartedAt:  now,
			FinishedAt: now,
		}
	}
	m.runs[id] = &activeRun{
		snap: models.RunSnapshot{
			RunID:     id,
			Symbol:    m.runner.cfg.Symbol,
			StartedAt: time.Now(),
		},
		cancel: cancel,
	}
	m.wg.Add(1)
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		delete(m.runs, id)
		m.mu.Unlock()
		m.wg.Done()
	}()

	return m.runner.Run(ctx, id, req)
}

// Cancel останавливает запуск по id. Итог вернёт тот, кто ждёт Run.
func (m *Manager) Cancel(id string) error {
	m.mu.Lock()
	r, ok := m.runs[id]
	m.mu.Unlock()
	if !ok {
		return errors.Wrapf(ErrRunNotFound, "cancel %s", id)
	}
	m.log.Info("[MANAGER] cancel run", zap.String("run_id", id))
	r.cancel()
	return nil
}

// CancelAll: отмена всех активных запусков, возвращает их число.
func (m *Manager) CancelAll() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.runs {
		r.cancel()
	}
	return len(m.runs)
}

// List: активные запуски, старые первыми.
func (m *Manager) List() []models.RunSnapshot {
	m.mu.Lock()
	out := make([]models.RunSnapshot, 0, len(m.runs))
	for _, r := range m.runs {
		out = append(out, r.snap)
	}
	m.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].StartedAt.Before(out[j].StartedAt) })
	return out
}

// Shutdown отменяет всё и ждёт выхода запусков (или ctx).
func (m *Manager) Shutdown(ctx context.Context) error {
	m.mu.Lock()
	m.closed = true
	m.mu.Unlock()

	if n := m.CancelAll(); n > 0 {
		m.log.Info("[MANAGER] stopping runs", zap.Int("count", n))
	}
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "wait runs")
	}
}
