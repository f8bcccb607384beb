package workflow

import "fmt"

// The workflow surfaces typed errors only; the HTTP layer translates
// them to status codes. Nothing here is retried internally.

type NotFoundError struct {
	Entity string
	ID     uint
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %d not found", e.Entity, e.ID)
}

type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string {
	return "forbidden: " + e.Reason
}

// InvalidTransitionError names the current state and the requested
// action so the caller can see exactly which edge was refused.
type InvalidTransitionError struct {
	Current string
	Action  string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("cannot %s from state %s", e.Action, e.Current)
}

type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return "invalid input: " + e.Reason
}

// ConcurrentModificationError means the guarded update lost against a
// concurrent writer; the caller should re-read and retry.
type ConcurrentModificationError struct {
	Entity string
	ID     uint
}

func (e *ConcurrentModificationError) Error() string {
	return fmt.Sprintf("%s %d was modified concurrently", e.Entity, e.ID)
}

// AlreadyFinalizedError guards completed registrations against
// after-the-fact tampering.
type AlreadyFinalizedError struct {
	RegistrationID uint
}

func (e *AlreadyFinalizedError) Error() string {
	return fmt.Sprintf("registration %d is already complete", e.RegistrationID)
}
