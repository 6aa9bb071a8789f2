package game

import "github.com/google/uuid"

// SidePot is opened the moment a player goes all-in. Its eligible set is the
// players who contributed to the pot's band; players who folded earlier keep
// their chips in whichever pot they fed but never become eligible.
type SidePot struct {
	Amount          float64     `json:"amount"`
	EligiblePlayers []uuid.UUID `json:"eligible_players"`
}

func (sp *SidePot) isEligible(id uuid.UUID) bool {
	for _, e := range sp.EligiblePlayers {
		if e == id {
			return true
		}
	}
	return false
}

func (sp *SidePot) addEligible(id uuid.UUID) {
	if !sp.isEligible(id) {
		sp.EligiblePlayers = append(sp.EligiblePlayers, id)
	}
}

// PotLedger accumulates contributions during a hand. The invariant held at
// every point: MainPot plus the side pot amounts equals the sum of all chips
// taken from players this hand, until Distribute pays them out.
type PotLedger struct {
	MainPot  float64    `json:"main_pot"`
	SidePots []*SidePot `json:"side_pots"`
}

// RecordContribution routes chips into the right pot. Contributions land in
// the main pot until the first all-in opens a side pot; from then on the
// newest side pot collects the band and every contributor to it becomes
// eligible for it.
func (l *PotLedger) RecordContribution(playerID uuid.UUID, amount float64, allIn bool) {
	if amount <= 0 {
		return
	}
	if allIn {
		l.SidePots = append(l.SidePots, &SidePot{
			Amount:          amount,
			EligiblePlayers: []uuid.UUID{playerID},
		})
		return
	}
	if n := len(l.SidePots); n > 0 {
		sp := l.SidePots[n-1]
		sp.Amount += amount
		sp.addEligible(playerID)
		return
	}
	l.MainPot += amount
}

// Total is the amount currently sitting on the table.
func (l *PotLedger) Total() float64 {
	total := l.MainPot
	for _, sp := range l.SidePots {
		total += sp.Amount
	}
	return total
}

// Distribute fans the pots out to the winners and resets the ledger. The
// main pot splits equally among all winners; each side pot splits among the
// intersection of its eligible set and the winners. When no winner is
// eligible for a side pot it falls back to all winners, so chips are never
// destroyed. Shares are equal float divisions; sub-cent drift is accepted
// rather than silently truncated.
func (l *PotLedger) Distribute(winners []uuid.UUID, credit func(uuid.UUID, float64)) {
	if len(winners) == 0 {
		return
	}
	if l.MainPot > 0 {
		share := l.MainPot / float64(len(winners))
		for _, w := range winners {
			credit(w, share)
		}
	}
	for _, sp := range l.SidePots {
		if sp.Amount <= 0 {
			continue
		}
		eligible := make([]uuid.UUID, 0, len(winners))
		for _, w := range winners {
			if sp.isEligible(w) {
				eligible = append(eligible, w)
			}
		}
		if len(eligible) == 0 {
			eligible = winners
		}
		share := sp.Amount / float64(len(eligible))
		for _, w := range eligible {
			credit(w, share)
		}
	}
	l.ResetPots()
}

// ResetPots clears the ledger for the next hand.
func (l *PotLedger) ResetPots() {
	l.MainPot = 0
	l.SidePots = []*SidePot{}
}
