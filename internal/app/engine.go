package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okian/wodboard/internal/domain/model"
	"github.com/okian/wodboard/internal/domain/ranking"
	"github.com/okian/wodboard/internal/domain/types"
)

// Engine turns a competition into a ranked board. Categories are independent
// and may be aggregated concurrently.
type Engine struct {
	parallelism int
	now         func() time.Time
	newID       func() string
}

// EngineOption applies a configuration option to the Engine.
type EngineOption func(*Engine)

// WithParallelism bounds how many categories are aggregated at once.
func WithParallelism(n int) EngineOption {
	return func(e *Engine) {
		if n > 0 {
			e.parallelism = n
		}
	}
}

// WithClock sets the time source for Board.GeneratedAt.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithRunIDs sets the generator for Board.RunID.
func WithRunIDs(newID func() string) EngineOption {
	return func(e *Engine) {
		if newID != nil {
			e.newID = newID
		}
	}
}

// NewEngine returns a sequential engine unless WithParallelism says otherwise.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		parallelism: 1,
		now:         time.Now,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run ranks every category of comp. The board keeps the competition's
// category and event order.
func (e *Engine) Run(ctx context.Context, comp *model.Competition) (*types.Board, error) {
	if comp == nil {
		return nil, ErrNilCompetition
	}

	categories := make([]types.Category, len(comp.Categories))
	aggregate := func(i int) {
		c := comp.Categories[i]
		categories[i] = types.Category{Name: c.Name, Rows: ranking.Aggregate(c, comp.Events)}
	}

	workers := min(e.parallelism, len(comp.Categories))
	if workers <= 1 {
		for i := range comp.Categories {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			aggregate(i)
		}
	} else {
		jobs := make(chan int)
		var wg sync.WaitGroup
		for range workers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for i := range jobs {
					aggregate(i)
				}
			}()
		}
	feed:
		for i := range comp.Categories {
			select {
			case jobs <- i:
			case <-ctx.Done():
				break feed
			}
		}
		close(jobs)
		wg.Wait()
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	events := make([]types.Event, len(comp.Events))
	for i, ev := range comp.Events {
		events[i] = types.Event{Name: ev.Name, Kind: ev.Kind.String()}
	}
	return &types.Board{
		RunID:       e.newID(),
		GeneratedAt: e.now().UTC(),
		Events:      events,
		Attributes:  append([]string(nil), comp.Attributes...),
		Categories:  categories,
	}, nil
}
