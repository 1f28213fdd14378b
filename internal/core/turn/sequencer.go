// Package turn resolves dice rolls and runs payday settlement steps in order.
package turn

import (
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/Garvkhullar/cashflow4.0-official/internal/apperrors"
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/domain"
	"github.com/Garvkhullar/cashflow4.0-official/internal/core/ledger"
)

// Source supplies uniform integers in [0, n). *rand.Rand satisfies it.
type Source interface {
	IntN(n int) int
}

// lockedSource makes a *rand.Rand safe for concurrent requests.
type lockedSource struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (s *lockedSource) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}

// NewSeededSource returns a deterministic Source for replays and tests.
func NewSeededSource(seed uint64) Source {
	return &lockedSource{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NewRandomSource returns a Source seeded from the runtime's entropy.
func NewRandomSource() Source {
	return NewSeededSource(rand.Uint64())
}

// rollEvents maps die faces 1..6 to board squares.
var rollEvents = [6]domain.RollEvent{
	domain.EventChance,
	domain.EventSmallDeal,
	domain.EventBigDeal,
	domain.EventStock,
	domain.EventCrypto,
	domain.EventPayday,
}

// EventFor returns the event for a die face.
func EventFor(face int) (domain.RollEvent, error) {
	if face < 1 || face > len(rollEvents) {
		return "", fmt.Errorf("%w: die face %d out of range", apperrors.ErrValidation, face)
	}
	return rollEvents[face-1], nil
}

// Roll is one die throw and the square it lands on.
type Roll struct {
	Value int
	Event domain.RollEvent
}

// paydaySteps is the settlement order.
var paydaySteps = []func(*ledger.Settlement){
	(*ledger.Settlement).TickCounters,
	(*ledger.Settlement).ResetExpenses,
	(*ledger.Settlement).ApplyVacation,
	(*ledger.Settlement).ResolveMultiplier,
	(*ledger.Settlement).AmortizeEMIs,
	(*ledger.Settlement).AccrueExpenses,
	(*ledger.Settlement).ComputeNet,
	(*ledger.Settlement).ApplyTax,
	(*ledger.Settlement).SettleCash,
}

// Sequencer owns the randomness of the game and the ordering of a payday.
type Sequencer struct {
	engine *ledger.Engine
	src    Source
}

// NewSequencer builds a Sequencer around an engine and a random source.
func NewSequencer(engine *ledger.Engine, src Source) *Sequencer {
	if src == nil {
		src = NewRandomSource()
	}
	return &Sequencer{engine: engine, src: src}
}

// Roll throws the die. It does not touch any team.
func (s *Sequencer) Roll(t *domain.Team, trail *ledger.Trail) Roll {
	face := s.src.IntN(len(rollEvents)) + 1
	r := Roll{Value: face, Event: rollEvents[face-1]}
	trail.Addf("Team %s rolled a %d. Landing on: %s.", t.TeamName, r.Value, r.Event)
	return r
}

// Pick returns a uniform index into a deck of n cards.
func (s *Sequencer) Pick(n int) (int, error) {
	if n <= 0 {
		return 0, fmt.Errorf("%w: deck is empty", apperrors.ErrNotFound)
	}
	return s.src.IntN(n), nil
}

// Payday settles one payday for t.
func (s *Sequencer) Payday(t *domain.Team, trail *ledger.Trail) ledger.PaydaySummary {
	st := s.engine.BeginPayday(t, trail)
	for _, step := range paydaySteps {
		step(st)
	}
	return st.Finish()
}
