package integration

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/voidbound/battle-server-go/internal/battle"
	"github.com/voidbound/battle-server-go/internal/battle/mutations"
	"github.com/voidbound/battle-server-go/internal/battle/queries"
	"github.com/voidbound/battle-server-go/internal/decks"
	"github.com/voidbound/battle-server-go/internal/replay"
)

// TestRecordedBattleSurvivesDiskRoundtrip drives a battle to completion,
// saves the recording, reloads it and checks the rebuilt battle is the same
// one bit for bit.
func TestRecordedBattleSurvivesDiskRoundtrip(t *testing.T) {
	dir := t.TempDir()
	state := battle.New(decks.DefaultDeck(), decks.DefaultDeck(), 50)
	recorder := replay.NewRecorder(zap.NewNop(), dir)
	recorder.StartRecording(state, "default", "default")
	mutations.StartBattle(state)

	driver := battle.NewRNG(51)
	for i := 0; i < 2000 && !state.Status.GameOver; i++ {
		acted := false
		for _, player := range []battle.PlayerName{battle.PlayerOne, battle.PlayerTwo} {
			if action, ok := queries.RandomAction(state, player, driver); ok {
				recorder.RecordAction(state.ID, player, action)
				mutations.Apply(state, player, action)
				acted = true
				break
			}
		}
		require.True(t, acted)
	}

	_, err := recorder.Finish(state)
	require.NoError(t, err)
	require.NoError(t, recorder.Save(state.ID))

	loaded, err := replay.LoadFromFile(dir, state.ID)
	require.NoError(t, err)
	assert.Equal(t, "default", loaded.DeckOne)

	rebuilt, err := replay.Rebuild(loaded, decks.DefaultDeck(), decks.DefaultDeck())
	require.NoError(t, err)

	assert.Equal(t, battle.Fingerprint(state), battle.Fingerprint(rebuilt))
	assert.Equal(t, state.Status.GameOver, rebuilt.Status.GameOver)
	assert.Equal(t, state.Turn.ID, rebuilt.Turn.ID)
	for _, player := range []battle.PlayerName{battle.PlayerOne, battle.PlayerTwo} {
		assert.Equal(t, state.Player(player).Points, rebuilt.Player(player).Points)
		assert.Equal(t, state.Cards.Hand(player).All(), rebuilt.Cards.Hand(player).All())
	}
}

// TestSessionStepsMatchLiveHistory replays a short recording step by step
// and checks each playback position against the live battle's own undo
// snapshots.
func TestSessionStepsMatchLiveHistory(t *testing.T) {
	state := battle.New(decks.DefaultDeck(), decks.DefaultDeck(), 4)
	recorder := replay.NewRecorder(zap.NewNop(), t.TempDir())
	recorder.StartRecording(state, "", "")
	mutations.StartBattle(state)

	driver := battle.NewRNG(5)
	var fingerprints []string
	fingerprints = append(fingerprints, battle.Fingerprint(state))
	for i := 0; i < 30 && !state.Status.GameOver; i++ {
		for _, player := range []battle.PlayerName{battle.PlayerOne, battle.PlayerTwo} {
			if action, ok := queries.RandomAction(state, player, driver); ok {
				recorder.RecordAction(state.ID, player, action)
				mutations.Apply(state, player, action)
				break
			}
		}
		fingerprints = append(fingerprints, battle.Fingerprint(state))
	}

	log, err := recorder.Finish(state)
	require.NoError(t, err)

	session, err := replay.NewSession(log, decks.DefaultDeck(), decks.DefaultDeck())
	require.NoError(t, err)
	require.Equal(t, len(fingerprints), session.Size())

	for i := 0; i < session.Size(); i++ {
		session.Start()
		session.Skip(i)
		assert.Equal(t, fingerprints[i], battle.Fingerprint(session.Current()), "position %d", i)
	}
}
