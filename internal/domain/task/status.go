package task

// Status is the Dev-side Kanban lifecycle. DONE is terminal for sync
// purposes.
type Status string

const (
	StatusBacklog    Status = "BACKLOG"
	StatusTodo       Status = "TODO"
	StatusInProgress Status = "IN_PROGRESS"
	StatusReview     Status = "REVIEW"
	StatusDone       Status = "DONE"
)

func (s Status) IsValid() bool {
	switch s {
	case StatusBacklog, StatusTodo, StatusInProgress, StatusReview, StatusDone:
		return true
	}
	return false
}

func (s Status) IsTerminal() bool {
	return s == StatusDone
}

func (s Status) String() string {
	return string(s)
}
