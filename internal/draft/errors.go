package draft

import "errors"

// Business-rule failures returned by engine operations. All are terminal for
// the single operation; no partial state is left behind.
var (
	ErrNotYourTurn      = errors.New("not your turn")
	ErrAlreadyDrafted   = errors.New("player already drafted")
	ErrDuplicatePick    = errors.New("cannot draft same player twice")
	ErrPositionLimit    = errors.New("position limit reached")
	ErrTeamNotFound     = errors.New("team not found")
	ErrPlayerNotFound   = errors.New("player not found")
	ErrPlayerNotOnTeam  = errors.New("player not on team")
	ErrUserNotInOrder   = errors.New("user not in draft order")
	ErrRemoveNotAllowed = errors.New("removal allowed only on your turn")
	ErrInvalidInput     = errors.New("invalid input")
)
