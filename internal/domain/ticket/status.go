package ticket

// Status is the CRM-side ticket lifecycle. RESOLVED and CLOSED are terminal
// for sync purposes: once a ticket reaches RESOLVED via the peer, the
// resolved timestamp is stamped exactly once.
type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusResolved   Status = "RESOLVED"
	StatusClosed     Status = "CLOSED"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusResolved, StatusClosed:
		return true
	}
	return false
}

func (s Status) IsTerminal() bool {
	return s == StatusResolved || s == StatusClosed
}

func (s Status) String() string {
	return string(s)
}
