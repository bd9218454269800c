// Package service wires the leaderboard pipeline: fetch the results table,
// normalize it, rank every category, publish the board and emit it to sinks.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/okian/wodboard/internal/adapters/render"
	"github.com/okian/wodboard/internal/adapters/repository"
	"github.com/okian/wodboard/internal/adapters/source"
	"github.com/okian/wodboard/internal/domain/table"
	"github.com/okian/wodboard/internal/domain/types"
	"github.com/okian/wodboard/pkg/logger"
	"github.com/okian/wodboard/pkg/metrics"
)

const defaultRefreshInterval = time.Minute

// RunStats describes the most recent refresh.
type RunStats struct {
	RunID      string        `json:"run_id,omitempty"`
	At         time.Time     `json:"at"`
	Duration   time.Duration `json:"duration_ns"`
	Success    bool          `json:"success"`
	Error      string        `json:"error,omitempty"`
	Categories int           `json:"categories"`
	Teams      int           `json:"teams"`
	Events     int           `json:"events"`
	Ingest     table.Stats   `json:"ingest"`
}

// Service implements the API dependencies for the leaderboard system.
type Service struct {
	mu sync.RWMutex

	// Core components
	src        source.Source
	schema     table.Schema
	normalizer table.Normalizer
	engine     *Engine
	store      repository.Store
	sinks      []render.Sink

	// Configuration
	refreshInterval time.Duration

	// State
	refreshMu  sync.Mutex
	lastRun    RunStats
	runs       int
	failures   int
	started    bool
	stopCh     chan struct{}
	loopDoneCh chan struct{}

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSchema sets the column layout of the results table.
func WithSchema(schema table.Schema) Option {
	return func(s *Service) {
		s.schema = schema
	}
}

// WithNormalizer sets how raw cells are classified and scored.
func WithNormalizer(n table.Normalizer) Option {
	return func(s *Service) {
		if n != nil {
			s.normalizer = n
		}
	}
}

// WithEngine sets the ranking engine.
func WithEngine(e *Engine) Option {
	return func(s *Service) {
		if e != nil {
			s.engine = e
		}
	}
}

// WithStore sets where boards are published.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithSinks adds outputs emitted after every successful computation.
func WithSinks(sinks ...render.Sink) Option {
	return func(s *Service) {
		for _, sink := range sinks {
			if sink != nil {
				s.sinks = append(s.sinks, sink)
			}
		}
	}
}

// WithRefreshInterval sets how often Start recomputes the board.
func WithRefreshInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.refreshInterval = d
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service reading from src.
func New(src source.Source, opts ...Option) *Service {
	s := &Service{
		src:             src,
		schema:          table.DefaultSchema(),
		refreshInterval: defaultRefreshInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.engine == nil {
		s.engine = NewEngine()
	}
	if s.store == nil {
		s.store = repository.NewSnapshotStore()
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	return s
}

// Refresh runs the pipeline once. On failure the previously published board
// stays in place. Sink failures are reported after the board is published.
func (s *Service) Refresh(ctx context.Context) (*types.Board, error) {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	start := time.Now()
	board, stats, err := s.compute(ctx)
	if err == nil {
		err = s.emit(ctx, board)
	}
	elapsed := time.Since(start)
	metrics.RecordRun(err == nil, float64(elapsed.Milliseconds()))

	run := RunStats{At: start.UTC(), Duration: elapsed, Success: err == nil, Ingest: stats}
	if board != nil {
		run.RunID = board.RunID
		run.Categories = len(board.Categories)
		run.Teams = board.TeamCount()
		run.Events = len(board.Events)
	}
	if err != nil {
		run.Error = err.Error()
		s.logger.Error(ctx, "leaderboard refresh failed",
			logger.Error(err),
			logger.Duration("elapsed", elapsed),
		)
	} else {
		s.logger.Info(ctx, "leaderboard refreshed",
			logger.String("runID", run.RunID),
			logger.Int("categories", run.Categories),
			logger.Int("teams", run.Teams),
			logger.Int("events", run.Events),
			logger.Duration("elapsed", elapsed),
		)
	}

	s.mu.Lock()
	s.lastRun = run
	s.runs++
	if err != nil {
		s.failures++
	}
	s.mu.Unlock()

	return board, err
}

func (s *Service) compute(ctx context.Context) (*types.Board, table.Stats, error) {
	var stats table.Stats
	if s.src == nil {
		return nil, stats, ErrNoSource
	}

	fetchStart := time.Now()
	t, err := s.src.Fetch(ctx)
	metrics.RecordFetch(s.src.Name(), float64(time.Since(fetchStart).Milliseconds()), err)
	if err != nil {
		return nil, stats, fmt.Errorf("fetch from %s: %w", s.src.Name(), err)
	}

	comp, stats, err := table.Build(t, s.schema, s.normalizer)
	if err != nil {
		return nil, stats, fmt.Errorf("build competition: %w", err)
	}
	if len(stats.MissingCols) > 0 {
		s.logger.Warn(ctx, "passthrough columns missing from table",
			logger.Strings("columns", stats.MissingCols),
		)
	}
	if len(stats.KeylessRows) > 0 {
		s.logger.Warn(ctx, "rows without category or team skipped",
			logger.Int("count", len(stats.KeylessRows)),
			logger.Any("lines", stats.KeylessRows),
		)
	}
	if stats.Unscorable > 0 {
		s.logger.Debug(ctx, "unscorable results kept for display",
			logger.Int("count", stats.Unscorable),
		)
	}
	metrics.RecordCells(stats.Scored, stats.Absent, stats.Unscorable)

	board, err := s.engine.Run(ctx, comp)
	if err != nil {
		return nil, stats, fmt.Errorf("rank competition: %w", err)
	}
	if err := s.store.Publish(ctx, board); err != nil {
		return nil, stats, fmt.Errorf("publish board: %w", err)
	}

	teams := make(map[string]int, len(board.Categories))
	for _, c := range board.Categories {
		teams[c.Name] = len(c.Rows)
	}
	metrics.UpdateBoard(len(board.Events), teams)
	return board, stats, nil
}

func (s *Service) emit(ctx context.Context, board *types.Board) error {
	var errs []error
	for _, sink := range s.sinks {
		err := sink.Emit(ctx, board)
		metrics.RecordRender(sink.Name(), err)
		if err != nil {
			s.logger.Error(ctx, "failed to emit board",
				logger.String("sink", sink.Name()),
				logger.Error(err),
			)
			errs = append(errs, fmt.Errorf("%s: %w", sink.Name(), err))
			continue
		}
		s.logger.Debug(ctx, "board emitted", logger.String("sink", sink.Name()))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrEmit, errors.Join(errs...))
	}
	return nil
}

// Start performs an initial refresh and then recomputes on every refresh
// interval until Stop or ctx cancellation. A failed initial refresh is
// logged, not returned, so the server can come up before the sheet does.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.started {
		s.mu.Unlock()
		return nil
	}
	s.started = true
	s.stopCh = make(chan struct{})
	s.loopDoneCh = make(chan struct{})
	s.mu.Unlock()

	s.logger.Info(ctx, "starting leaderboard service...",
		logger.Duration("refreshInterval", s.refreshInterval),
		logger.Int("sinks", len(s.sinks)),
	)
	_, _ = s.Refresh(ctx)

	go s.loop(ctx, s.stopCh, s.loopDoneCh)
	return nil
}

func (s *Service) loop(ctx context.Context, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(s.refreshInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-stop:
			return
		case <-ticker.C:
			_, _ = s.Refresh(ctx)
		}
	}
}

// Stop ends the refresh loop and waits for it to exit.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.started = false
	stop, done := s.stopCh, s.loopDoneCh
	s.mu.Unlock()

	s.logger.Info(context.Background(), "stopping leaderboard service...")
	close(stop)
	<-done
	s.logger.Info(context.Background(), "leaderboard service stopped")
}

// Board returns the latest published board.
func (s *Service) Board(ctx context.Context) (*types.Board, error) {
	return s.store.Board(ctx)
}

// Leaderboard returns the top rows of category.
func (s *Service) Leaderboard(ctx context.Context, category string, limit int) ([]types.LeaderboardRow, error) {
	return s.store.Leaderboard(ctx, category, limit)
}

// Rank returns the row of team within category.
func (s *Service) Rank(ctx context.Context, category, team string) (types.LeaderboardRow, error) {
	return s.store.Rank(ctx, category, team)
}

// Categories lists the categories of the latest board.
func (s *Service) Categories(ctx context.Context) []string {
	return s.store.Categories(ctx)
}

// LastRun returns the outcome of the most recent refresh.
func (s *Service) LastRun() RunStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRun
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]any{
		"started":         s.started,
		"source":          "",
		"refreshInterval": s.refreshInterval.String(),
		"runs":            s.runs,
		"failures":        s.failures,
		"totalTeams":      s.store.Count(context.Background()),
		"lastRun":         s.lastRun,
	}
	if s.src != nil {
		stats["source"] = s.src.Name()
	}
	return stats
}
