package engine

// IsTrap reports whether the player's hit box overlaps any active trap
func (gs *GameState) IsTrap() bool {
	for _, trap := range gs.Traps {
		if trap.Active() && trap.Bounds.Intersects(gs.HitBox) {
			return true
		}
	}
	return false
}

// SpringTrap springs the first active trap under the player, in list
// order, and returns the penalty. Other overlapping traps stay armed.
func (gs *GameState) SpringTrap(config *GameConfig) int {
	for i := range gs.Traps {
		trap := &gs.Traps[i]
		if trap.Active() && trap.Bounds.Intersects(gs.HitBox) {
			trap.Sprung = true
			gs.Message = config.Messages.TrapSprung
			return -config.Scoring.TrapPenalty
		}
	}
	return 0
}

// PickupPrize collects the first active prize under the player. Asking for
// a prize where there is none costs as much as a prize is worth.
func (gs *GameState) PickupPrize(config *GameConfig) (int, string) {
	for i := range gs.Prizes {
		prize := &gs.Prizes[i]
		if prize.Active() && prize.Bounds.Intersects(gs.HitBox) {
			prize.Collected = true
			gs.PrizesLeft = gs.CountActivePrizes()
			gs.Message = config.Messages.PrizeCollected
			return config.Scoring.PrizeReward, ResultPrizeCollected
		}
	}
	gs.Message = config.Messages.NoPrize
	return -config.Scoring.PrizeReward, ResultNoPrize
}

// CountActivePrizes returns the number of prizes still on the board
func (gs *GameState) CountActivePrizes() int {
	count := 0
	for _, prize := range gs.Prizes {
		if prize.Active() {
			count++
		}
	}
	return count
}

// CountActiveTraps returns the number of traps that have not been sprung
func (gs *GameState) CountActiveTraps() int {
	count := 0
	for _, trap := range gs.Traps {
		if trap.Active() {
			count++
		}
	}
	return count
}

// DidWin reports whether every prize has been collected
func (gs *GameState) DidWin() bool {
	return gs.CountActivePrizes() == 0
}
