// Package scoring holds the fixed fantasy-point formula. It is the single
// source of truth for scoring on the server; the draft engine takes it as an
// injected capability rather than importing it directly.
package scoring

import (
	"math"
	"sort"

	"github.com/mcdev12/draftroom/internal/models"
)

// ERA and WHIP award a clamped bonus below these baselines.
const (
	eraBaseline  = 4.0
	whipBaseline = 1.3
)

// ScoreStats computes fantasy points for a single stat bag, rounded to two
// decimals. Absent rate stats contribute nothing.
func ScoreStats(stats models.Stats) float64 {
	pts := 0.0

	pts += float64(stats.HR) * 4
	pts += float64(stats.RBI)
	pts += float64(stats.R)
	pts += float64(stats.SB) * 2
	if stats.AVG != nil {
		pts += *stats.AVG * 10
	}

	pts += float64(stats.W) * 5
	pts += float64(stats.SV) * 5
	pts += float64(stats.K)
	if stats.ERA != nil {
		pts += math.Max(0, eraBaseline-*stats.ERA) * 2
	}
	if stats.WHIP != nil {
		pts += math.Max(0, whipBaseline-*stats.WHIP) * 5
	}

	return Round2(pts)
}

// TeamPoints sums points over a set of stat bags, rounded to two decimals.
func TeamPoints(stats []models.Stats) float64 {
	sum := 0.0
	for _, s := range stats {
		sum += ScoreStats(s)
	}
	return Round2(sum)
}

// ScoredPlayer pairs a player with its computed points.
type ScoredPlayer struct {
	models.Player
	Points float64 `json:"points"`
}

// TopPlayers returns the n highest-scoring players, ties broken by input
// order so the result is deterministic for a fixed catalog.
func TopPlayers(players []models.Player, n int) []ScoredPlayer {
	scored := make([]ScoredPlayer, 0, len(players))
	for _, p := range players {
		scored = append(scored, ScoredPlayer{Player: p, Points: ScoreStats(p.Stats)})
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Points > scored[j].Points
	})
	if n < 0 {
		n = 0
	}
	if n > len(scored) {
		n = len(scored)
	}
	return scored[:n]
}

// Round2 rounds to two decimal places, matching the wire precision of team
// totals everywhere in the API.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
