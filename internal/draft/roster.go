package draft

import (
	"sort"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/draftroom/internal/models"
	"github.com/mcdev12/draftroom/internal/scoring"
)

// ensureTeamLocked returns the team for userID, creating it (and an empty
// queue) on first reference.
func (e *Engine) ensureTeamLocked(userID, name string) *models.Team {
	if team, ok := e.teams[userID]; ok {
		return team
	}
	if name == "" {
		name = "Team " + userID
	}
	team := &models.Team{UserID: userID, Name: name}
	e.teams[userID] = team
	if _, ok := e.queues[userID]; !ok {
		e.queues[userID] = nil
	}
	return team
}

// recalcPointsLocked recomputes the team's derived point total from its
// current picks. Picks missing from the catalog contribute nothing.
func (e *Engine) recalcPointsLocked(team *models.Team) {
	total := 0.0
	for _, pid := range team.Picks {
		p, ok := e.catalog.Lookup(pid)
		if !ok {
			continue
		}
		total += e.score(p.Stats)
	}
	team.Points = scoring.Round2(total)
}

// Pick performs a direct, turn-enforced pick for userID.
func (e *Engine) Pick(userID, playerID string) (*models.Team, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	player, ok := e.catalog.Lookup(playerID)
	if !ok {
		return nil, ErrPlayerNotFound
	}
	if err := e.commitPickLocked(userID, player.Summary(), true, models.DraftEventPick); err != nil {
		return nil, err
	}
	return cloneTeam(e.teams[userID]), nil
}

// commitPickLocked is the single transactional commit path for every pick,
// direct or automatic. Preconditions are checked in order and abort with no
// mutation; on success the roster, registry, queues, last event and turn
// state all change together. Callers hold e.mu.
func (e *Engine) commitPickLocked(userID string, player models.PlayerSummary, enforceTurn bool, evType models.DraftEventType) error {
	if enforceTurn {
		if !e.active || e.onClock == "" || userID != e.onClock {
			return ErrNotYourTurn
		}
	}
	if _, taken := e.drafted[player.ID]; taken {
		return ErrAlreadyDrafted
	}
	team := e.ensureTeamLocked(userID, "")
	for _, pid := range team.Picks {
		if pid == player.ID {
			// Unreachable while the registry invariant holds; guarded
			// independently as a consistency check.
			return ErrDuplicatePick
		}
	}
	if err := e.checkPositionLimitLocked(team, player.Position); err != nil {
		return err
	}

	team.Picks = append(team.Picks, player.ID)
	e.drafted[player.ID] = struct{}{}
	e.recalcPointsLocked(team)
	e.removeFromAllQueuesLocked(player.ID)

	ev := models.DraftEvent{Type: evType, UserID: userID, Player: &player}
	e.lastEvent = &ev

	log.Info().
		Str("user_id", userID).
		Str("player_id", player.ID).
		Str("position", string(player.Position)).
		Str("event", string(evType)).
		Int("round", e.round).
		Msg("pick committed")

	e.publish(string(evType), userID, ev)

	e.advanceLocked()

	if e.humanUserID != "" && !e.inFastForward {
		e.fastForwardLocked()
	}
	return nil
}

// Remove takes a player off a team and frees it in the drafted registry.
// Queues are not re-populated. When removal is restricted to a team's own
// turn, callers off the clock are rejected.
func (e *Engine) Remove(userID, playerID string) (*models.Team, models.DraftSnapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.allowRemoveAnytime {
		if e.onClock == "" || e.onClock != userID {
			return nil, models.DraftSnapshot{}, ErrRemoveNotAllowed
		}
	}
	team, ok := e.teams[userID]
	if !ok {
		return nil, models.DraftSnapshot{}, ErrTeamNotFound
	}
	idx := -1
	for i, pid := range team.Picks {
		if pid == playerID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, models.DraftSnapshot{}, ErrPlayerNotOnTeam
	}

	team.Picks = append(team.Picks[:idx], team.Picks[idx+1:]...)
	delete(e.drafted, playerID)
	e.recalcPointsLocked(team)
	e.lastEvent = nil

	log.Info().Str("user_id", userID).Str("player_id", playerID).Msg("pick removed")

	return cloneTeam(team), e.snapshotLocked(), nil
}

// Team returns the full roster detail for a team, with per-pick points.
// Picks that no longer resolve in the catalog render as a placeholder entry
// with zero points.
func (e *Engine) Team(userID string) (models.TeamDetail, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	team, ok := e.teams[userID]
	if !ok {
		return models.TeamDetail{}, ErrTeamNotFound
	}

	detail := models.TeamDetail{
		UserID:   userID,
		TeamName: team.Name,
		Players:  make([]models.RosterEntry, 0, len(team.Picks)),
	}
	total := 0.0
	for _, pid := range team.Picks {
		p, ok := e.catalog.Lookup(pid)
		if !ok {
			detail.Players = append(detail.Players, models.RosterEntry{
				ID:       pid,
				Name:     "(Traded/Unknown Player)",
				Position: models.PositionUtility,
				Team:     "—",
				Status:   models.RosterEntryUnknown,
			})
			continue
		}
		points := e.score(p.Stats)
		total += points
		detail.Players = append(detail.Players, models.RosterEntry{
			ID:       p.ID,
			Name:     p.Name,
			Position: p.Position,
			Team:     p.Team,
			Stats:    p.Stats,
			Points:   points,
			Status:   models.RosterEntryOK,
		})
	}
	detail.TotalPoints = scoring.Round2(total)
	return detail, nil
}

// TeamsSorted returns the leaderboard: every team, points descending.
func (e *Engine) TeamsSorted() []models.TeamStanding {
	e.mu.Lock()
	defer e.mu.Unlock()

	standings := make([]models.TeamStanding, 0, len(e.teams))
	for _, team := range e.teams {
		standings = append(standings, models.TeamStanding{
			UserID: team.UserID,
			Name:   team.Name,
			Points: team.Points,
		})
	}
	sort.SliceStable(standings, func(i, j int) bool {
		if standings[i].Points != standings[j].Points {
			return standings[i].Points > standings[j].Points
		}
		return standings[i].UserID < standings[j].UserID
	})
	return standings
}
