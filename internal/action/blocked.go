package action

import (
	"errors"
	"fmt"
)

// ErrBlocked matches every BlockedError with errors.Is.
var ErrBlocked = errors.New("action blocked")

// Reason says why an intent was refused.
type Reason uint8

const (
	MovePending Reason = iota
	Unaffordable
	InvalidTarget
	InvalidPlacement
	NothingToRemove
	NoMovePending
	NothingToMove
)

var reasonNames = [...]string{
	"move in progress",
	"not enough budget",
	"invalid move target",
	"invalid placement",
	"nothing to remove",
	"no move in progress",
	"nothing to move",
}

func (r Reason) String() string {
	if int(r) < len(reasonNames) {
		return reasonNames[r]
	}
	return fmt.Sprintf("Reason(%d)", r)
}

// BlockedError is an expected, user-facing refusal. The editor state is
// unchanged when one is returned.
type BlockedError struct {
	Reason Reason
	Detail string
}

// Blocked creates a BlockedError.
func Blocked(reason Reason, detail string) *BlockedError {
	return &BlockedError{Reason: reason, Detail: detail}
}

func (e *BlockedError) Error() string {
	if e.Detail == "" {
		return "blocked: " + e.Reason.String()
	}
	return "blocked: " + e.Reason.String() + ": " + e.Detail
}

// Is makes errors.Is(err, ErrBlocked) true.
func (e *BlockedError) Is(target error) bool {
	return target == ErrBlocked
}

// ReasonOf extracts the block reason from err.
func ReasonOf(err error) (Reason, bool) {
	var be *BlockedError
	if errors.As(err, &be) {
		return be.Reason, true
	}
	return 0, false
}
