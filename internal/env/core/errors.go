package core

import "errors"

var (
	ErrEpisodeNotStarted = errors.New("no active episode: call Reset before Step")
	ErrInvalidAction     = errors.New("invalid action")
	ErrInconsistentCarry = errors.New("inconsistent carry state")
	ErrNoCandidateCells  = errors.New("no candidate cells available for placement")
	ErrInvalidConfig     = errors.New("invalid environment configuration")
)
