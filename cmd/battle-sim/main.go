// Command battle-sim runs a seeded automated battle playout and reports the
// result. It is the CLI harness around the rules engine; the same engine
// drives the remote rendering client through the animation step record.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/voidbound/battle-server-go/internal/arena"
	"github.com/voidbound/battle-server-go/internal/battle"
	"github.com/voidbound/battle-server-go/internal/battle/mutations"
	"github.com/voidbound/battle-server-go/internal/battle/queries"
	"github.com/voidbound/battle-server-go/internal/config"
	"github.com/voidbound/battle-server-go/internal/decks"
	"github.com/voidbound/battle-server-go/internal/replay"
	"github.com/voidbound/battle-server-go/internal/trace"
)

var (
	configPath = flag.String("config", "config/config.yaml", "path to configuration file")
	seedFlag   = flag.Uint64("seed", 0, "battle seed override (0 uses configuration)")
	matches    = flag.Int("matches", 1, "number of matches to play (above 1 runs a series)")
	workers    = flag.Int("workers", 4, "concurrent matches in series mode")
)

func main() {
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := initLogger(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	seed := cfg.Battle.Seed
	if *seedFlag != 0 {
		seed = *seedFlag
	}
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}

	deckOne, err := decks.DeckByName(cfg.Battle.DeckFile, cfg.Battle.PlayerOneDeck)
	if err != nil {
		logger.Fatal("failed to load player one deck", zap.Error(err))
	}
	deckTwo, err := decks.DeckByName(cfg.Battle.DeckFile, cfg.Battle.PlayerTwoDeck)
	if err != nil {
		logger.Fatal("failed to load player two deck", zap.Error(err))
	}

	if *matches > 1 {
		runSeries(logger, cfg, deckOne, deckTwo, seed)
		return
	}

	state := battle.New(deckOne, deckTwo, seed)
	state.Trace = trace.NewRecorder(logger, cfg.Battle.TraceEvents)
	if cfg.Battle.RecordAnimations {
		state.Animations = battle.NewAnimationRecorder()
	}

	logger.Info("battle starting",
		zap.String("battle_id", state.ID.String()),
		zap.Uint64("seed", seed),
		zap.Int("deck_one_size", len(deckOne)),
		zap.Int("deck_two_size", len(deckTwo)))

	var recorder *replay.Recorder
	if cfg.Battle.ReplayDir != "" {
		recorder = replay.NewRecorder(logger, cfg.Battle.ReplayDir)
		recorder.StartRecording(state, cfg.Battle.PlayerOneDeck, cfg.Battle.PlayerTwoDeck)
	}

	mutations.StartBattle(state)

	// Action choice gets its own generator so the recorded action log
	// replays cleanly against the battle seed.
	driver := battle.NewRNG(seed ^ 0xb5297a4d)

	actions := 0
	for actions < cfg.Battle.MaxActions && !state.Status.GameOver {
		action, player, ok := nextAction(state, driver)
		if !ok {
			logger.Error("no legal actions for either player",
				zap.Int("turn", state.Turn.ID))
			break
		}
		if recorder != nil {
			recorder.RecordAction(state.ID, player, action)
		}
		mutations.Apply(state, player, action)
		actions++
	}

	if recorder != nil {
		if _, err := recorder.Finish(state); err != nil {
			logger.Error("failed to seal replay", zap.Error(err))
		} else if err := recorder.Save(state.ID); err != nil {
			logger.Error("failed to save replay", zap.Error(err))
		}
	}

	report(logger, state, actions)
}

// runSeries plays a multi-match series between the configured decks and
// logs the standings.
func runSeries(logger *zap.Logger, cfg *config.Config, deckOne, deckTwo []*battle.CardDefinition, seed uint64) {
	manager := arena.NewManager(logger)
	series := manager.CreateSeries("battle-sim series",
		cfg.Battle.PlayerOneDeck, cfg.Battle.PlayerTwoDeck, *matches, seed)

	err := manager.Run(context.Background(), series, deckOne, deckTwo, arena.RunOptions{
		Workers:    *workers,
		MaxActions: cfg.Battle.MaxActions,
	})
	if err != nil {
		logger.Error("series run interrupted", zap.Error(err))
	}

	snapshot := series.Snapshot()
	logger.Info("series standings",
		zap.String("series_id", snapshot.ID),
		zap.Int("matches", len(snapshot.Results)),
		zap.Int("player_one_wins", snapshot.WinsOne),
		zap.Int("player_two_wins", snapshot.WinsTwo),
		zap.Int("undecided", snapshot.Undecided))
}

// nextAction finds the player with a decision to make and picks one of
// their legal actions at random.
func nextAction(state *battle.BattleState, driver *battle.RNG) (battle.Action, battle.PlayerName, bool) {
	for _, player := range []battle.PlayerName{battle.PlayerOne, battle.PlayerTwo} {
		if action, ok := queries.RandomAction(state, player, driver); ok {
			return action, player, true
		}
	}
	return battle.Action{}, 0, false
}

func report(logger *zap.Logger, state *battle.BattleState, actions int) {
	fields := []zap.Field{
		zap.String("battle_id", state.ID.String()),
		zap.Int("turns", state.Turn.ID),
		zap.Int("actions", actions),
		zap.Int("player_one_points", int(state.Player(battle.PlayerOne).Points)),
		zap.Int("player_two_points", int(state.Player(battle.PlayerTwo).Points)),
	}
	if state.Animations != nil {
		fields = append(fields, zap.Int("final_turn_animation_steps", len(state.Animations.Steps)))
	}
	if state.Status.GameOver {
		fields = append(fields, zap.String("winner", state.Status.Winner.String()))
		logger.Info("battle finished", fields...)
		return
	}
	logger.Info("battle stopped before a winner", fields...)
}

// initLogger initializes the zap logger based on configuration
func initLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	switch cfg.Level {
	case "debug":
		level = zapcore.DebugLevel
	case "info":
		level = zapcore.InfoLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	default:
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
