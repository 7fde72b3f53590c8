// Package sync holds the pure cross-system pieces of the CRM/Dev
// synchronization layer: the status mapping state machine, mutation
// provenance, and the wire-level event kinds.
package sync

import (
	"github.com/loopdesk/loopdesk/internal/domain/task"
	"github.com/loopdesk/loopdesk/internal/domain/ticket"
)

// MapTaskStatus maps a Dev-side task status to the CRM-side ticket status.
// The second return value reports whether a mapping exists; unmapped task
// statuses (BACKLOG, TODO) leave the ticket untouched.
//
// The reverse direction is intentionally absent: ticket status changes are
// propagated to the Dev platform only as informational events, and the peer
// decides locally whether to reflect them. This asymmetry is what keeps the
// bidirectional propagation from looping and must not be "fixed".
func MapTaskStatus(s task.Status) (ticket.Status, bool) {
	switch s {
	case task.StatusInProgress:
		return ticket.StatusInProgress, true
	case task.StatusReview:
		return ticket.StatusInProgress, true
	case task.StatusDone:
		return ticket.StatusResolved, true
	default:
		return "", false
	}
}
