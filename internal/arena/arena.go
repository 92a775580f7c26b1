// Package arena runs series of automated battles between deck pairs and
// aggregates the results. Each match is an independent seeded playout, so a
// series is reproducible from its base seed.
package arena

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/voidbound/battle-server-go/internal/battle"
	"github.com/voidbound/battle-server-go/internal/battle/mutations"
	"github.com/voidbound/battle-server-go/internal/battle/queries"
)

// SeriesState represents the state of a series.
type SeriesState int

const (
	SeriesStateWaiting SeriesState = iota
	SeriesStateInProgress
	SeriesStateFinished
)

func (s SeriesState) String() string {
	switch s {
	case SeriesStateWaiting:
		return "WAITING"
	case SeriesStateInProgress:
		return "IN_PROGRESS"
	case SeriesStateFinished:
		return "FINISHED"
	default:
		return "UNKNOWN"
	}
}

// MatchResult records the outcome of one seeded battle.
type MatchResult struct {
	Seed    uint64
	Decided bool
	Winner  battle.PlayerName
	Turns   int
	Actions int
}

// Series is a scheduled set of matches between two decks.
type Series struct {
	ID       string
	Name     string
	DeckOne  string
	DeckTwo  string
	Matches  int
	BaseSeed uint64

	mu         sync.RWMutex
	state      SeriesState
	results    []MatchResult
	createTime time.Time
	startTime  *time.Time
	endTime    *time.Time
}

// SeriesSnapshot captures a consistent view of a series.
type SeriesSnapshot struct {
	ID         string
	Name       string
	DeckOne    string
	DeckTwo    string
	Matches    int
	BaseSeed   uint64
	State      SeriesState
	Results    []MatchResult
	WinsOne    int
	WinsTwo    int
	Undecided  int
	CreateTime time.Time
	StartTime  *time.Time
	EndTime    *time.Time
}

func (s *Series) setState(state SeriesState) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = state
	now := time.Now()
	if state == SeriesStateInProgress && s.startTime == nil {
		s.startTime = &now
	} else if state == SeriesStateFinished {
		s.endTime = &now
	}
}

// State returns the current series state.
func (s *Series) State() SeriesState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Series) recordResult(result MatchResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.results = append(s.results, result)
}

// Snapshot returns a consistent copy of the series results and standings.
func (s *Series) Snapshot() SeriesSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := SeriesSnapshot{
		ID:         s.ID,
		Name:       s.Name,
		DeckOne:    s.DeckOne,
		DeckTwo:    s.DeckTwo,
		Matches:    s.Matches,
		BaseSeed:   s.BaseSeed,
		State:      s.state,
		Results:    append([]MatchResult(nil), s.results...),
		CreateTime: s.createTime,
		StartTime:  cloneTime(s.startTime),
		EndTime:    cloneTime(s.endTime),
	}
	for _, result := range s.results {
		switch {
		case !result.Decided:
			snapshot.Undecided++
		case result.Winner == battle.PlayerOne:
			snapshot.WinsOne++
		default:
			snapshot.WinsTwo++
		}
	}
	return snapshot
}

func cloneTime(src *time.Time) *time.Time {
	if src == nil {
		return nil
	}
	cp := *src
	return &cp
}

// Manager creates and runs series.
type Manager struct {
	logger *zap.Logger

	mu     sync.RWMutex
	series map[string]*Series
}

// NewManager creates a new series manager.
func NewManager(logger *zap.Logger) *Manager {
	return &Manager{
		logger: logger,
		series: make(map[string]*Series),
	}
}

// CreateSeries registers a new series of matches between two named decks.
func (m *Manager) CreateSeries(name, deckOne, deckTwo string, matches int, baseSeed uint64) *Series {
	m.mu.Lock()
	defer m.mu.Unlock()

	series := &Series{
		ID:         uuid.New().String(),
		Name:       name,
		DeckOne:    deckOne,
		DeckTwo:    deckTwo,
		Matches:    matches,
		BaseSeed:   baseSeed,
		state:      SeriesStateWaiting,
		createTime: time.Now(),
	}
	m.series[series.ID] = series

	m.logger.Info("series created",
		zap.String("series_id", series.ID),
		zap.String("name", name),
		zap.String("deck_one", deckOne),
		zap.String("deck_two", deckTwo),
		zap.Int("matches", matches),
	)
	return series
}

// GetSeries retrieves a series by ID.
func (m *Manager) GetSeries(seriesID string) (*Series, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	series, ok := m.series[seriesID]
	return series, ok
}

// RemoveSeries removes a series.
func (m *Manager) RemoveSeries(seriesID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.series, seriesID)
}

// ActiveSeriesCount returns the count of unfinished series.
func (m *Manager) ActiveSeriesCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	count := 0
	for _, series := range m.series {
		if series.State() != SeriesStateFinished {
			count++
		}
	}
	return count
}

// RunOptions bounds a series run.
type RunOptions struct {
	// Workers is the number of matches played concurrently. Values below
	// one run matches sequentially.
	Workers int
	// MaxActions bounds each match's playout length.
	MaxActions int
}

// Run plays every match of a series, distributing seeds baseSeed+1 through
// baseSeed+matches across a bounded worker pool. Deck definitions are
// resolved by the caller once; each match instantiates its own battle from
// them. Run blocks until all matches finish or the context is cancelled.
func (m *Manager) Run(ctx context.Context, series *Series, deckOne, deckTwo []*battle.CardDefinition, opts RunOptions) error {
	if series.State() != SeriesStateWaiting {
		return fmt.Errorf("series %s already started", series.ID)
	}
	workers := opts.Workers
	if workers < 1 {
		workers = 1
	}
	maxActions := opts.MaxActions
	if maxActions <= 0 {
		maxActions = 2000
	}

	series.setState(SeriesStateInProgress)

	seeds := make(chan uint64)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for seed := range seeds {
				result := playMatch(seed, deckOne, deckTwo, maxActions)
				series.recordResult(result)
				m.logger.Debug("match finished",
					zap.String("series_id", series.ID),
					zap.Uint64("seed", seed),
					zap.Bool("decided", result.Decided),
					zap.Int("turns", result.Turns),
				)
			}
		}()
	}

	var err error
	for i := 0; i < series.Matches; i++ {
		select {
		case seeds <- series.BaseSeed + uint64(i) + 1:
		case <-ctx.Done():
			err = ctx.Err()
		}
		if err != nil {
			break
		}
	}
	close(seeds)
	wg.Wait()

	series.setState(SeriesStateFinished)

	snapshot := series.Snapshot()
	m.logger.Info("series finished",
		zap.String("series_id", series.ID),
		zap.Int("matches_played", len(snapshot.Results)),
		zap.Int("wins_one", snapshot.WinsOne),
		zap.Int("wins_two", snapshot.WinsTwo),
		zap.Int("undecided", snapshot.Undecided),
	)
	return err
}

// playMatch runs one seeded random playout to completion or the action
// bound.
func playMatch(seed uint64, deckOne, deckTwo []*battle.CardDefinition, maxActions int) MatchResult {
	state := battle.New(deckOne, deckTwo, seed)
	mutations.StartBattle(state)
	driver := battle.NewRNG(seed ^ 0x2545f4914f6cdd1d)

	actions := 0
	for actions < maxActions && !state.Status.GameOver {
		acted := false
		for _, player := range []battle.PlayerName{battle.PlayerOne, battle.PlayerTwo} {
			if action, ok := queries.RandomAction(state, player, driver); ok {
				mutations.Apply(state, player, action)
				acted = true
				break
			}
		}
		if !acted {
			break
		}
		actions++
	}

	result := MatchResult{
		Seed:    seed,
		Turns:   state.Turn.ID,
		Actions: actions,
	}
	if state.Status.GameOver {
		result.Decided = true
		result.Winner = state.Status.Winner
	}
	return result
}
