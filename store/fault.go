package store

import "fmt"

// FaultKind tells where a fault was raised.
type FaultKind string

const (
	FaultDispatch   FaultKind = "dispatch"
	FaultSubscriber FaultKind = "subscriber"
)

// Fault describes a failure inside a unit of work. Dispatch callers never see
// faults directly; they reach the observer and the fault handler.
//
// For FaultDispatch the state was left untouched. For FaultSubscriber the
// state had already been committed and only that subscriber's delivery failed.
type Fault struct {
	Kind   FaultKind
	Store  string
	UnitID string
	Action any
	Err    error
}

func (f *Fault) Error() string {
	return fmt.Sprintf("store %s: %s fault in unit %s: %v", f.Store, f.Kind, f.UnitID, f.Err)
}

func (f *Fault) Unwrap() error {
	return f.Err
}
