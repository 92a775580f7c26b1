// Package replay records battles as seed-plus-action logs and rebuilds them
// deterministically. Because all randomness flows through the battle's own
// generator, replaying the recorded actions against the recorded seed
// reproduces every intermediate state exactly. A state fingerprint stored at
// the end of each log guards against engine changes silently diverging from
// old recordings.
package replay

import (
	"compress/gzip"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/voidbound/battle-server-go/internal/battle"
	"github.com/voidbound/battle-server-go/internal/battle/mutations"
)

// Step is one recorded player action.
type Step struct {
	Player battle.PlayerName
	Action battle.Action
}

// Log is a complete recording of a battle: everything needed to rebuild it
// from scratch. Deck contents travel by name; callers resolve names back to
// definitions when rebuilding.
type Log struct {
	BattleID    uuid.UUID
	Seed        uint64
	DeckOne     string
	DeckTwo     string
	Steps       []Step
	Fingerprint string
}

type logMetadata struct {
	BattleID  uuid.UUID
	Timestamp time.Time
	Version   int
	StepCount int
}

const logVersion = 1

// Rebuild replays a log against fresh deck definitions and returns the final
// state. When the log carries a fingerprint, the rebuilt state is verified
// against it.
func Rebuild(log *Log, deckOne, deckTwo []*battle.CardDefinition) (*battle.BattleState, error) {
	state := battle.New(deckOne, deckTwo, log.Seed)
	state.ID = log.BattleID
	mutations.StartBattle(state)

	for i, step := range log.Steps {
		if state.Status.GameOver {
			return nil, fmt.Errorf("step %d recorded after battle end", i)
		}
		mutations.Apply(state, step.Player, step.Action)
	}

	if log.Fingerprint != "" {
		if got := battle.Fingerprint(state); got != log.Fingerprint {
			return nil, fmt.Errorf("replay diverged: fingerprint %s, recorded %s", got, log.Fingerprint)
		}
	}
	return state, nil
}

// Session steps through a rebuilt battle state by state.
type Session struct {
	log    *Log
	states []*battle.BattleState
	index  int
}

// NewSession rebuilds every intermediate state of a log for playback. The
// first state is the position after the opening hands are dealt; each later
// state follows one recorded action.
func NewSession(log *Log, deckOne, deckTwo []*battle.CardDefinition) (*Session, error) {
	state := battle.New(deckOne, deckTwo, log.Seed)
	state.ID = log.BattleID
	mutations.StartBattle(state)

	states := make([]*battle.BattleState, 0, len(log.Steps)+1)
	states = append(states, state.Clone())
	for i, step := range log.Steps {
		if state.Status.GameOver {
			return nil, fmt.Errorf("step %d recorded after battle end", i)
		}
		mutations.Apply(state, step.Player, step.Action)
		states = append(states, state.Clone())
	}

	if log.Fingerprint != "" {
		if got := battle.Fingerprint(state); got != log.Fingerprint {
			return nil, fmt.Errorf("replay diverged: fingerprint %s, recorded %s", got, log.Fingerprint)
		}
	}
	return &Session{log: log, states: states}, nil
}

// Size returns the number of playback positions.
func (s *Session) Size() int {
	return len(s.states)
}

// Start resets playback to the opening position.
func (s *Session) Start() {
	s.index = 0
}

// Current returns the state at the playback position.
func (s *Session) Current() *battle.BattleState {
	return s.states[s.index]
}

// Next advances playback and returns the new state, or nil at the end.
func (s *Session) Next() *battle.BattleState {
	if s.index+1 >= len(s.states) {
		return nil
	}
	s.index++
	return s.states[s.index]
}

// Previous rewinds playback and returns the new state, or nil at the start.
func (s *Session) Previous() *battle.BattleState {
	if s.index == 0 {
		return nil
	}
	s.index--
	return s.states[s.index]
}

// Skip moves the position by count in either direction, clamping to the
// recording bounds.
func (s *Session) Skip(count int) *battle.BattleState {
	s.index += count
	if s.index < 0 {
		s.index = 0
	}
	if s.index >= len(s.states) {
		s.index = len(s.states) - 1
	}
	return s.states[s.index]
}

// StepAt returns the action that produced playback position index, or false
// for the opening position.
func (s *Session) StepAt(index int) (Step, bool) {
	if index <= 0 || index > len(s.log.Steps) {
		return Step{}, false
	}
	return s.log.Steps[index-1], true
}

// Recorder accumulates logs for running battles and saves finished ones to
// disk as gzipped gob files.
type Recorder struct {
	logger  *zap.Logger
	saveDir string

	mu   sync.RWMutex
	logs map[uuid.UUID]*Log
}

// NewRecorder creates a recorder that writes finished logs under saveDir.
func NewRecorder(logger *zap.Logger, saveDir string) *Recorder {
	return &Recorder{
		logger:  logger,
		saveDir: saveDir,
		logs:    make(map[uuid.UUID]*Log),
	}
}

// StartRecording begins a log for a battle.
func (r *Recorder) StartRecording(state *battle.BattleState, deckOne, deckTwo string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.logs[state.ID] = &Log{
		BattleID: state.ID,
		Seed:     state.RNG.Seed(),
		DeckOne:  deckOne,
		DeckTwo:  deckTwo,
	}

	if r.logger != nil {
		r.logger.Info("started battle recording",
			zap.String("battle_id", state.ID.String()),
			zap.Uint64("seed", state.RNG.Seed()),
		)
	}
}

// RecordAction appends an action to a battle's log. Unknown battles are
// ignored so recording stays opt-in per battle.
func (r *Recorder) RecordAction(battleID uuid.UUID, player battle.PlayerName, action battle.Action) {
	r.mu.Lock()
	defer r.mu.Unlock()

	log, ok := r.logs[battleID]
	if !ok {
		return
	}
	log.Steps = append(log.Steps, Step{Player: player, Action: action})
}

// IsRecording reports whether a battle has an open log.
func (r *Recorder) IsRecording(battleID uuid.UUID) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.logs[battleID]
	return ok
}

// Finish seals a battle's log with the final state fingerprint and returns
// it. The log stays in memory until saved or cleared.
func (r *Recorder) Finish(state *battle.BattleState) (*Log, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	log, ok := r.logs[state.ID]
	if !ok {
		return nil, fmt.Errorf("no recording for battle %s", state.ID)
	}
	log.Fingerprint = battle.Fingerprint(state)
	return log, nil
}

// Save writes a battle's log to disk and drops it from memory.
func (r *Recorder) Save(battleID uuid.UUID) error {
	r.mu.Lock()
	log, ok := r.logs[battleID]
	if !ok {
		r.mu.Unlock()
		return fmt.Errorf("no recording for battle %s", battleID)
	}
	delete(r.logs, battleID)
	r.mu.Unlock()

	if err := SaveToFile(log, r.saveDir); err != nil {
		return fmt.Errorf("failed to save recording: %w", err)
	}

	if r.logger != nil {
		r.logger.Info("saved battle recording",
			zap.String("battle_id", battleID.String()),
			zap.Int("step_count", len(log.Steps)),
			zap.String("directory", r.saveDir),
		)
	}
	return nil
}

// Clear drops a battle's log without saving.
func (r *Recorder) Clear(battleID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.logs, battleID)
}

// SaveToFile writes a log as a gzipped gob file named <battle id>.replay.
func SaveToFile(log *Log, directory string) error {
	if err := os.MkdirAll(directory, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	filename := filepath.Join(directory, fmt.Sprintf("%s.replay", log.BattleID))
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	encoder := gob.NewEncoder(gzipWriter)
	metadata := logMetadata{
		BattleID:  log.BattleID,
		Timestamp: time.Now(),
		Version:   logVersion,
		StepCount: len(log.Steps),
	}
	if err := encoder.Encode(&metadata); err != nil {
		return fmt.Errorf("failed to encode metadata: %w", err)
	}
	if err := encoder.Encode(log); err != nil {
		return fmt.Errorf("failed to encode log: %w", err)
	}
	return nil
}

// LoadFromFile reads a log saved by SaveToFile.
func LoadFromFile(directory string, battleID uuid.UUID) (*Log, error) {
	filename := filepath.Join(directory, fmt.Sprintf("%s.replay", battleID))
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	gzipReader, err := gzip.NewReader(file)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gzipReader.Close()

	decoder := gob.NewDecoder(gzipReader)
	var metadata logMetadata
	if err := decoder.Decode(&metadata); err != nil {
		return nil, fmt.Errorf("failed to decode metadata: %w", err)
	}
	if metadata.Version != logVersion {
		return nil, fmt.Errorf("unsupported recording version: %d", metadata.Version)
	}

	var log Log
	if err := decoder.Decode(&log); err != nil {
		return nil, fmt.Errorf("failed to decode log: %w", err)
	}
	if len(log.Steps) != metadata.StepCount {
		return nil, fmt.Errorf("recording truncated: %d steps, expected %d",
			len(log.Steps), metadata.StepCount)
	}
	return &log, nil
}
