package task

import (
	"fmt"
	"time"

	"github.com/loopdesk/loopdesk/internal/shared/biztime"
	"github.com/loopdesk/loopdesk/internal/shared/id"
)

// Comment belongs to a task. Like ticket comments, the author is nullable
// for entries mirrored from the CRM.
type Comment struct {
	id        uint
	sid       string
	taskID    uint
	authorID  *uint
	content   string
	fromPeer  bool
	createdAt time.Time
	updatedAt time.Time
}

func NewComment(taskID uint, authorID *uint, content string, fromPeer bool) (*Comment, error) {
	if taskID == 0 {
		return nil, fmt.Errorf("task ID is required")
	}
	if len(content) == 0 {
		return nil, fmt.Errorf("content cannot be empty")
	}
	if len(content) > 5000 {
		return nil, fmt.Errorf("content exceeds maximum length of 5000 characters")
	}
	if authorID != nil && *authorID == 0 {
		return nil, fmt.Errorf("author ID cannot be zero")
	}

	now := biztime.NowUTC()
	return &Comment{
		sid:       id.MustGenerateWithPrefix(id.PrefixComment, id.DefaultLength),
		taskID:    taskID,
		authorID:  authorID,
		content:   content,
		fromPeer:  fromPeer,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructComment(
	commentID uint,
	sid string,
	taskID uint,
	authorID *uint,
	content string,
	fromPeer bool,
	createdAt, updatedAt time.Time,
) (*Comment, error) {
	if commentID == 0 {
		return nil, fmt.Errorf("comment ID cannot be zero")
	}
	if taskID == 0 {
		return nil, fmt.Errorf("task ID is required")
	}

	return &Comment{
		id:        commentID,
		sid:       sid,
		taskID:    taskID,
		authorID:  authorID,
		content:   content,
		fromPeer:  fromPeer,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (c *Comment) ID() uint             { return c.id }
func (c *Comment) SID() string          { return c.sid }
func (c *Comment) TaskID() uint         { return c.taskID }
func (c *Comment) AuthorID() *uint      { return c.authorID }
func (c *Comment) Content() string      { return c.content }
func (c *Comment) FromPeer() bool       { return c.fromPeer }
func (c *Comment) CreatedAt() time.Time { return c.createdAt }
func (c *Comment) UpdatedAt() time.Time { return c.updatedAt }

func (c *Comment) SetID(commentID uint) error {
	if c.id != 0 {
		return fmt.Errorf("comment ID is already set")
	}
	if commentID == 0 {
		return fmt.Errorf("comment ID cannot be zero")
	}
	c.id = commentID
	return nil
}
