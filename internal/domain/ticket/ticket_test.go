package ticket

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTicket(t *testing.T) {
	tests := []struct {
		name        string
		orgID       uint
		title       string
		description string
		creatorID   uint
		wantErr     bool
		errMsg      string
	}{
		{
			name:        "valid ticket",
			orgID:       1,
			title:       "Printer on fire",
			description: "It is very much on fire",
			creatorID:   2,
		},
		{
			name:      "zero organization",
			title:     "Test",
			creatorID: 2,
			wantErr:   true,
			errMsg:    "organization ID is required",
		},
		{
			name:      "empty title",
			orgID:     1,
			creatorID: 2,
			wantErr:   true,
			errMsg:    "title is required",
		},
		{
			name:      "title too long",
			orgID:     1,
			title:     strings.Repeat("a", 201),
			creatorID: 2,
			wantErr:   true,
			errMsg:    "title exceeds maximum length",
		},
		{
			name:    "zero creator",
			orgID:   1,
			title:   "Test",
			wantErr: true,
			errMsg:  "creator ID is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tk, err := NewTicket(tt.orgID, tt.title, tt.description, tt.creatorID)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, StatusOpen, tk.Status())
			assert.True(t, strings.HasPrefix(tk.SID(), "tkt_"))
			assert.Nil(t, tk.LinkedTaskSID())
			assert.Nil(t, tk.ResolvedAt())
		})
	}
}

func TestTicket_ChangeStatus_StampsResolvedOnce(t *testing.T) {
	tk, err := NewTicket(1, "Test", "desc", 2)
	require.NoError(t, err)

	require.NoError(t, tk.ChangeStatus(StatusResolved))
	require.NotNil(t, tk.ResolvedAt())
	first := *tk.ResolvedAt()

	// Bouncing out of and back into RESOLVED must not re-stamp.
	require.NoError(t, tk.ChangeStatus(StatusInProgress))
	require.NoError(t, tk.ChangeStatus(StatusResolved))
	require.NotNil(t, tk.ResolvedAt())
	assert.Equal(t, first, *tk.ResolvedAt())
}

func TestTicket_ChangeStatus_SameStatusIsNoop(t *testing.T) {
	tk, err := NewTicket(1, "Test", "desc", 2)
	require.NoError(t, err)
	before := tk.UpdatedAt()

	require.NoError(t, tk.ChangeStatus(StatusOpen))
	assert.Equal(t, before, tk.UpdatedAt())
}

func TestTicket_ChangeStatus_Invalid(t *testing.T) {
	tk, err := NewTicket(1, "Test", "desc", 2)
	require.NoError(t, err)

	err = tk.ChangeStatus(Status("ARCHIVED"))
	assert.Error(t, err)
	assert.Equal(t, StatusOpen, tk.Status())
}

func TestTicket_LinkTask(t *testing.T) {
	tk, err := NewTicket(1, "Test", "desc", 2)
	require.NoError(t, err)

	require.NoError(t, tk.LinkTask("tsk_abc123"))
	require.NotNil(t, tk.LinkedTaskSID())
	assert.Equal(t, "tsk_abc123", *tk.LinkedTaskSID())

	// Relinking to the same task is idempotent.
	require.NoError(t, tk.LinkTask("tsk_abc123"))

	// Relinking to a different task is rejected.
	err = tk.LinkTask("tsk_other")
	assert.Error(t, err)
	assert.Equal(t, "tsk_abc123", *tk.LinkedTaskSID())
}

func TestStatus(t *testing.T) {
	assert.True(t, StatusOpen.IsValid())
	assert.True(t, StatusClosed.IsValid())
	assert.False(t, Status("NEW").IsValid())

	assert.True(t, StatusResolved.IsTerminal())
	assert.True(t, StatusClosed.IsTerminal())
	assert.False(t, StatusInProgress.IsTerminal())
}

func TestNewComment_NullableAuthor(t *testing.T) {
	c, err := NewComment(1, nil, "[Dev - Ana]: looks fixed", true)
	require.NoError(t, err)
	assert.Nil(t, c.AuthorID())
	assert.True(t, c.FromPeer())

	authorID := uint(7)
	c, err = NewComment(1, &authorID, "local note", false)
	require.NoError(t, err)
	require.NotNil(t, c.AuthorID())
	assert.Equal(t, uint(7), *c.AuthorID())

	zero := uint(0)
	_, err = NewComment(1, &zero, "bad", false)
	assert.Error(t, err)
}
