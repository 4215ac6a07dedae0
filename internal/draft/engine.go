// Package draft implements the draft orchestration engine: snake turn
// sequencing, timer-driven pick resolution, queue and best-available
// auto-picks, position-cap enforcement, and fast-forward simulation of
// non-human seats. All state lives in a single mutex-guarded aggregate; the
// engine owns no timers of its own and expects Tick to be driven externally.
package draft

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/draftroom/internal/catalog"
	"github.com/mcdev12/draftroom/internal/models"
)

// Engine defaults.
const (
	defaultPickSeconds         = 20
	defaultRounds              = 15
	defaultBootUser            = "u1"
	DefaultMaxFastForwardSteps = 500

	minPickSeconds = 5
	maxPickSeconds = 600
	maxQueueLength = 200
	maxPositionCap = 20
)

var zeroTime time.Time

// DefaultPositionLimits is the cap table applied when init supplies none.
func DefaultPositionLimits() map[models.Position]int {
	return map[models.Position]int{
		models.PositionCatcher:    1,
		models.PositionFirstBase:  1,
		models.PositionSecondBase: 1,
		models.PositionThirdBase:  1,
		models.PositionShortstop:  1,
		models.PositionOutfield:   3,
		models.PositionStarter:    2,
		models.PositionReliever:   1,
		models.PositionUtility:    2,
	}
}

// ScoreFunc maps a stat bag to fantasy points. The engine treats it as an
// opaque capability.
type ScoreFunc func(models.Stats) float64

// Engine is the composition root for one in-process draft.
type Engine struct {
	mu sync.Mutex

	clock     clockwork.Clock
	catalog   catalog.Catalog
	score     ScoreFunc
	publisher EventPublisher

	maxFastForwardSteps int

	teams   map[string]*models.Team
	drafted map[string]struct{}
	queues  map[string][]string

	active      bool
	onClock     string
	deadline    time.Time
	pickSeconds int
	order       []string
	autoPick    bool

	round       int
	pickIndex   int
	dir         int
	totalRounds int

	humanUserID   string
	lastEvent     *models.DraftEvent
	inFastForward bool

	enforceLimits  bool
	positionLimits map[models.Position]int

	allowRemoveAnytime bool
}

// Option configures an Engine at construction time.
type Option func(*Engine)

// WithClock replaces the real clock, used by tests to drive deadlines.
func WithClock(c clockwork.Clock) Option {
	return func(e *Engine) { e.clock = c }
}

// WithPublisher attaches an event publisher. Nil is valid and means no
// external fan-out.
func WithPublisher(p EventPublisher) Option {
	return func(e *Engine) { e.publisher = p }
}

// WithMaxFastForwardSteps overrides the fast-forward safety bound.
func WithMaxFastForwardSteps(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxFastForwardSteps = n
		}
	}
}

// NewEngine builds an engine over the given catalog and scoring function and
// boots it into the default single-seat draft, so the server is usable before
// any league is initialized.
func NewEngine(cat catalog.Catalog, score ScoreFunc, opts ...Option) *Engine {
	e := &Engine{
		clock:               clockwork.NewRealClock(),
		catalog:             cat,
		score:               score,
		maxFastForwardSteps: DefaultMaxFastForwardSteps,
		teams:               make(map[string]*models.Team),
		drafted:             make(map[string]struct{}),
		queues:              make(map[string][]string),
		pickSeconds:         defaultPickSeconds,
		order:               []string{defaultBootUser},
		autoPick:            true,
		round:               1,
		pickIndex:           0,
		dir:                 1,
		totalRounds:         defaultRounds,
		enforceLimits:       true,
		positionLimits:      DefaultPositionLimits(),
		allowRemoveAnytime:  true,
	}
	for _, opt := range opts {
		opt(e)
	}
	e.active = true
	e.onClock = e.order[0]
	e.deadline = e.clock.Now().Add(e.pickDuration())
	return e
}

func (e *Engine) pickDuration() time.Duration {
	return time.Duration(e.pickSeconds) * time.Second
}

// TeamSeat names one seat in the draft order at init time.
type TeamSeat struct {
	UserID string
	Name   string
}

// InitRequest carries league initialization parameters. Optional fields are
// pointers; nil keeps the documented default.
type InitRequest struct {
	Teams              []TeamSeat
	Rounds             *int
	PickSeconds        *int
	AutoPick           *bool
	EnforceLimits      *bool
	PositionLimits     map[models.Position]int
	AllowRemoveAnytime *bool
}

// Init clears all rosters, the drafted registry and all queues, applies the
// supplied settings and starts the draft at round 1 with the first seat on
// the clock.
func (e *Engine) Init(req InitRequest) (models.DraftSnapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if len(req.Teams) < 2 {
		return models.DraftSnapshot{}, ErrInvalidInput
	}
	if req.Rounds != nil && (*req.Rounds < minRounds || *req.Rounds > maxRounds) {
		return models.DraftSnapshot{}, ErrInvalidInput
	}
	if req.PickSeconds != nil && (*req.PickSeconds < minPickSeconds || *req.PickSeconds > maxPickSeconds) {
		return models.DraftSnapshot{}, ErrInvalidInput
	}
	for _, limit := range req.PositionLimits {
		if limit < 0 || limit > maxPositionCap {
			return models.DraftSnapshot{}, ErrInvalidInput
		}
	}

	e.teams = make(map[string]*models.Team)
	e.drafted = make(map[string]struct{})
	e.queues = make(map[string][]string)

	order := make([]string, 0, len(req.Teams))
	for _, seat := range req.Teams {
		e.ensureTeamLocked(seat.UserID, seat.Name)
		order = append(order, seat.UserID)
	}
	e.order = order

	if req.Rounds != nil {
		e.totalRounds = *req.Rounds
	} else {
		e.totalRounds = DeriveRounds(len(e.catalog.All()), len(order))
	}
	if req.PickSeconds != nil {
		e.pickSeconds = *req.PickSeconds
	} else {
		e.pickSeconds = defaultPickSeconds
	}
	if req.AutoPick != nil {
		e.autoPick = *req.AutoPick
	} else {
		e.autoPick = true
	}
	if req.EnforceLimits != nil {
		e.enforceLimits = *req.EnforceLimits
	} else {
		e.enforceLimits = true
	}
	e.positionLimits = DefaultPositionLimits()
	for pos, limit := range req.PositionLimits {
		e.positionLimits[pos] = limit
	}
	if req.AllowRemoveAnytime != nil {
		e.allowRemoveAnytime = *req.AllowRemoveAnytime
	} else {
		e.allowRemoveAnytime = true
	}

	e.active = true
	e.round = 1
	e.dir = 1
	e.pickIndex = 0
	e.onClock = e.order[0]
	e.deadline = e.clock.Now().Add(e.pickDuration())
	e.humanUserID = ""
	e.lastEvent = nil

	log.Info().
		Int("teams", len(order)).
		Int("rounds", e.totalRounds).
		Int("pick_seconds", e.pickSeconds).
		Msg("league initialized")

	e.publish(EventDraftInitialized, "", DraftInitializedPayload{
		Order:       append([]string(nil), order...),
		TotalRounds: e.totalRounds,
		PickSeconds: e.pickSeconds,
	})

	return e.snapshotLocked(), nil
}

// State returns a consistent snapshot of the draft aggregate.
func (e *Engine) State() models.DraftSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

// SetHuman designates the seat driven by a real user; every other seat is
// auto-played. An empty userID clears the designation. Setting a human while
// the draft is active immediately fast-forwards to their turn.
func (e *Engine) SetHuman(userID string) (models.DraftSnapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if userID == "" {
		e.humanUserID = ""
		return e.snapshotLocked(), nil
	}
	if !e.inOrder(userID) {
		return models.DraftSnapshot{}, ErrUserNotInOrder
	}
	e.humanUserID = userID
	if e.active {
		e.fastForwardLocked()
	}
	return e.snapshotLocked(), nil
}

// Tick resolves elapsed turns. It is a no-op before the deadline; afterwards
// it auto-picks for the on-the-clock seat (or skips when auto-pick is off).
// When a human seat is designated and someone else is on the clock it
// fast-forwards regardless of the deadline.
func (e *Engine) Tick() models.DraftSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.active || e.onClock == "" {
		return e.snapshotLocked()
	}

	if e.humanUserID != "" && e.onClock != e.humanUserID {
		e.fastForwardLocked()
		return e.snapshotLocked()
	}

	if !e.deadline.IsZero() && !e.clock.Now().Before(e.deadline) {
		uid := e.onClock
		if e.autoPick {
			e.autoPickForLocked(uid)
		} else {
			e.skipTurnLocked(uid)
		}
	}
	return e.snapshotLocked()
}

// skipTurnLocked records a SKIPPED event and advances without a pick.
func (e *Engine) skipTurnLocked(userID string) {
	log.Info().Str("user_id", userID).Msg("turn skipped")
	e.lastEvent = &models.DraftEvent{Type: models.DraftEventSkipped, UserID: userID}
	e.publish(string(models.DraftEventSkipped), userID, *e.lastEvent)
	e.advanceLocked()
}

// SettingsUpdate carries a partial settings change. Nil fields are untouched;
// PositionLimits merges into the existing cap table.
type SettingsUpdate struct {
	PickSeconds        *int
	AutoPick           *bool
	EnforceLimits      *bool
	PositionLimits     map[models.Position]int
	AllowRemoveAnytime *bool
}

// UpdateSettings applies a partial settings change. Changing the pick
// duration while someone is on the clock resets their remaining time to the
// new duration.
func (e *Engine) UpdateSettings(upd SettingsUpdate) (models.DraftSnapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if upd.PickSeconds != nil && (*upd.PickSeconds < minPickSeconds || *upd.PickSeconds > maxPickSeconds) {
		return models.DraftSnapshot{}, ErrInvalidInput
	}
	for _, limit := range upd.PositionLimits {
		if limit < 0 || limit > maxPositionCap {
			return models.DraftSnapshot{}, ErrInvalidInput
		}
	}

	if upd.PickSeconds != nil {
		e.pickSeconds = *upd.PickSeconds
		if e.onClock != "" {
			e.deadline = e.clock.Now().Add(e.pickDuration())
		}
	}
	if upd.AutoPick != nil {
		e.autoPick = *upd.AutoPick
	}
	if upd.EnforceLimits != nil {
		e.enforceLimits = *upd.EnforceLimits
	}
	for pos, limit := range upd.PositionLimits {
		e.positionLimits[pos] = limit
	}
	if upd.AllowRemoveAnytime != nil {
		e.allowRemoveAnytime = *upd.AllowRemoveAnytime
	}

	log.Info().Msg("draft settings updated")
	e.publish(EventSettingsUpdated, "", e.settingsPayloadLocked())

	return e.snapshotLocked(), nil
}

// ResetDraft clears picks and the drafted registry but keeps team
// identities, order and settings, restarting the clock at round 1. Queues are
// kept: nothing in them is drafted once the registry is cleared.
func (e *Engine) ResetDraft() models.DraftSnapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.drafted = make(map[string]struct{})
	for _, team := range e.teams {
		team.Picks = nil
		e.recalcPointsLocked(team)
	}

	e.active = true
	e.round = 1
	e.dir = 1
	e.pickIndex = 0
	e.onClock = e.order[0]
	e.deadline = e.clock.Now().Add(e.pickDuration())
	e.lastEvent = nil

	log.Info().Msg("draft reset")
	e.publish(EventDraftReset, "", nil)

	return e.snapshotLocked()
}

// ResetTeam clears a single team's picks and frees those players in the
// drafted registry. Turn state is untouched.
func (e *Engine) ResetTeam(userID string) (*models.Team, models.DraftSnapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	team, ok := e.teams[userID]
	if !ok {
		return nil, models.DraftSnapshot{}, ErrTeamNotFound
	}
	for _, pid := range team.Picks {
		delete(e.drafted, pid)
	}
	team.Picks = nil
	e.recalcPointsLocked(team)
	e.lastEvent = nil

	log.Info().Str("user_id", userID).Msg("team reset")

	return cloneTeam(team), e.snapshotLocked(), nil
}

func (e *Engine) inOrder(userID string) bool {
	for _, uid := range e.order {
		if uid == userID {
			return true
		}
	}
	return false
}

func (e *Engine) snapshotLocked() models.DraftSnapshot {
	snap := models.DraftSnapshot{
		IsActive:           e.active,
		OnTheClockUserID:   e.onClock,
		PickSeconds:        e.pickSeconds,
		Order:              append([]string(nil), e.order...),
		AutoPick:           e.autoPick,
		Round:              e.round,
		PickIndex:          e.pickIndex,
		Dir:                e.dir,
		TotalRounds:        e.totalRounds,
		HumanUserID:        e.humanUserID,
		EnforceLimits:      e.enforceLimits,
		PositionLimits:     make(map[models.Position]int, len(e.positionLimits)),
		AllowRemoveAnytime: e.allowRemoveAnytime,
		DraftedIDs:         make([]string, 0, len(e.drafted)),
	}
	for pos, limit := range e.positionLimits {
		snap.PositionLimits[pos] = limit
	}
	// Catalog order keeps the drafted list deterministic.
	for _, p := range e.catalog.All() {
		if _, ok := e.drafted[p.ID]; ok {
			snap.DraftedIDs = append(snap.DraftedIDs, p.ID)
		}
	}
	if e.active && !e.deadline.IsZero() {
		ms := e.deadline.UnixMilli()
		snap.PickEndsAt = &ms
	}
	if e.lastEvent != nil {
		ev := *e.lastEvent
		snap.LastEvent = &ev
	}
	return snap
}

func (e *Engine) settingsPayloadLocked() SettingsUpdatedPayload {
	limits := make(map[models.Position]int, len(e.positionLimits))
	for pos, limit := range e.positionLimits {
		limits[pos] = limit
	}
	return SettingsUpdatedPayload{
		PickSeconds:        e.pickSeconds,
		AutoPick:           e.autoPick,
		EnforceLimits:      e.enforceLimits,
		PositionLimits:     limits,
		AllowRemoveAnytime: e.allowRemoveAnytime,
	}
}

func cloneTeam(t *models.Team) *models.Team {
	cp := *t
	cp.Picks = append([]string(nil), t.Picks...)
	return &cp
}
