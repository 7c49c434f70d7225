package domain

import "errors"

var (
	ErrDuplicateSubmission = errors.New("duplicate submission")
	ErrNoSubmission        = errors.New("no submission")
	ErrInvalidAction       = errors.New("invalid action")
	ErrModeratorReused     = errors.New("moderator already ran its round")
	ErrInvalidRounds       = errors.New("rounds per match must be positive")
	ErrDuplicateTally      = errors.New("opponent already recorded")
	ErrNilAgent            = errors.New("agent is nil")
	ErrRosterNotFound      = errors.New("roster not found")
)
