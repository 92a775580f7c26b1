package battle

import (
	"testing"
)

func fingerprintFixture(seed uint64) *BattleState {
	defs := []*CardDefinition{
		{Name: "Scout", Type: TypeCharacter, Cost: 1, Spark: 1},
		{Name: "Bolt", Type: TypeEvent, Cost: 2, Fast: true},
	}
	deck := []*CardDefinition{defs[0], defs[0], defs[1]}
	return New(deck, deck, seed)
}

func TestFingerprintStableAcrossClones(t *testing.T) {
	state := fingerprintFixture(7)
	clone := state.Clone()

	if got, want := Fingerprint(clone), Fingerprint(state); got != want {
		t.Fatalf("clone fingerprint %s != original %s", got, want)
	}
}

func TestFingerprintMatchesForEqualSeeds(t *testing.T) {
	a := fingerprintFixture(11)
	b := fingerprintFixture(11)

	if Fingerprint(a) != Fingerprint(b) {
		t.Fatal("same-seed battles should fingerprint identically")
	}
}

func TestFingerprintSeesStateChanges(t *testing.T) {
	state := fingerprintFixture(3)
	before := Fingerprint(state)

	state.Player(PlayerOne).Energy = 5
	if Fingerprint(state) == before {
		t.Fatal("energy change not reflected in fingerprint")
	}
}

func TestFingerprintLeavesCardOrderIntact(t *testing.T) {
	state := fingerprintFixture(5)
	state.Cards.CreateCard(PlayerTwo, ZoneHand, CreatedCard{
		Definition: state.Player(PlayerTwo).Deck[0],
	})
	before := make([]CardID, 0)
	for _, card := range state.Cards.AllCards() {
		before = append(before, card.ID)
	}

	Fingerprint(state)

	after := state.Cards.AllCards()
	if len(after) != len(before) {
		t.Fatalf("card count changed: %d != %d", len(after), len(before))
	}
	for i, card := range after {
		if card.ID != before[i] {
			t.Fatalf("card store reordered at %d: %d != %d", i, card.ID, before[i])
		}
	}
}

func TestFingerprintSeesGeneratorPosition(t *testing.T) {
	state := fingerprintFixture(3)
	before := Fingerprint(state)

	state.RNG.IntN(10)
	if Fingerprint(state) == before {
		t.Fatal("generator advance not reflected in fingerprint")
	}
}
