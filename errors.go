package butterfly

import (
	"errors"
	"fmt"
)

// Sentinel errors for adjacency queries.
var (
	// ErrBoundaryReached is returned when a query has no answer because the
	// edge lies on the mesh boundary. It is an expected condition that
	// callers use to pick a boundary formula.
	ErrBoundaryReached = errors.New("butterfly: boundary reached")

	// ErrIndexOutOfRange is returned when an ID does not name an element of
	// the mesh.
	ErrIndexOutOfRange = errors.New("butterfly: index out of range")

	// ErrTopology is matched by every *TopologyError.
	ErrTopology = errors.New("butterfly: topology invariant violated")
)

// TopologyError reports a traversal that the algorithm relies on to succeed
// but that failed, which means the input mesh is malformed. It aborts the
// whole subdivision pass; no partial result is produced.
type TopologyError struct {
	// Op is the operation that detected the violation.
	Op string
	// Face is the offending face, or -1.
	Face FaceID
	// Edge is the offending edge, or -1.
	Edge EdgeID
	// Reason describes the violation.
	Reason string
}

func (e *TopologyError) Error() string {
	msg := "butterfly: " + e.Op + ": " + e.Reason
	if e.Face >= 0 {
		msg += fmt.Sprintf(" (face %d", e.Face)
		if e.Edge >= 0 {
			msg += fmt.Sprintf(", edge %d", e.Edge)
		}
		msg += ")"
	} else if e.Edge >= 0 {
		msg += fmt.Sprintf(" (edge %d)", e.Edge)
	}
	return msg
}

// Unwrap makes errors.Is(err, ErrTopology) hold for every TopologyError.
func (e *TopologyError) Unwrap() error {
	return ErrTopology
}

func topologyError(op string, f FaceID, e EdgeID, format string, args ...any) *TopologyError {
	return &TopologyError{Op: op, Face: f, Edge: e, Reason: fmt.Sprintf(format, args...)}
}
