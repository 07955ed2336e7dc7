package domain

import "math"

// Level is a cosmetic display tier derived from a point balance. It has no
// access-control effect; authorization is the role's job.
type Level struct {
	Name  string `json:"name"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

// levelRange maps an inclusive [Min, Max] balance range to a tier.
type levelRange struct {
	Level Level
	Min   float64
	Max   float64
}

// levelTable covers [0, +inf) with contiguous, non-overlapping ranges.
var levelTable = []levelRange{
	{Level: Level{Name: "새싹멤버", Icon: "🌱", Color: "#8BC34A"}, Min: 0, Max: 9.99},
	{Level: Level{Name: "일반멤버", Icon: "🌿", Color: "#4CAF50"}, Min: 10, Max: 49.99},
	{Level: Level{Name: "성실멤버", Icon: "🌳", Color: "#009688"}, Min: 50, Max: 99.99},
	{Level: Level{Name: "우수멤버", Icon: "⭐", Color: "#FF9800"}, Min: 100, Max: 499.99},
	{Level: Level{Name: "최고멤버", Icon: "👑", Color: "#F44336"}, Min: 500, Max: math.Inf(1)},
}

// honoraryLevel overrides range lookup for honorary members.
var honoraryLevel = Level{Name: "감사멤버", Icon: "💎", Color: "#9C27B0"}

// LevelOf maps a balance to its display tier. Honorary status wins
// unconditionally. Balances below zero (possible after punitive admin
// deductions) clamp to the lowest tier rather than erroring.
func LevelOf(balance float64, isHonorary bool) Level {
	if isHonorary {
		return honoraryLevel
	}
	if balance < 0 {
		return levelTable[0].Level
	}
	for _, lr := range levelTable {
		if balance <= lr.Max {
			return lr.Level
		}
	}
	return levelTable[len(levelTable)-1].Level
}

// Levels returns the full level table for display (name, icon, color and
// bounds), honorary tier excluded. The top tier has no upper bound, so
// MaxPoints stays nil there (JSON cannot carry +Inf).
func Levels() []LevelInfo {
	infos := make([]LevelInfo, len(levelTable))
	for i, lr := range levelTable {
		infos[i] = LevelInfo{Level: lr.Level, MinPoints: lr.Min}
		if !math.IsInf(lr.Max, 1) {
			max := lr.Max
			infos[i].MaxPoints = &max
		}
	}
	return infos
}

// LevelInfo is the API shape for a level table entry.
type LevelInfo struct {
	Level
	MinPoints float64  `json:"min_points"`
	MaxPoints *float64 `json:"max_points,omitempty"`
}
