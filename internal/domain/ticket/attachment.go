package ticket

import (
	"fmt"
	"time"

	"github.com/loopdesk/loopdesk/internal/shared/biztime"
	"github.com/loopdesk/loopdesk/internal/shared/id"
)

// Attachment is a file reference on a ticket. Storage itself lives elsewhere;
// only the URL and metadata are synchronized.
type Attachment struct {
	id         uint
	sid        string
	ticketID   uint
	uploaderID *uint
	name       string
	url        string
	mimeType   string
	size       int64
	fromPeer   bool
	createdAt  time.Time
}

func NewAttachment(
	ticketID uint,
	uploaderID *uint,
	name, url, mimeType string,
	size int64,
	fromPeer bool,
) (*Attachment, error) {
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}
	if len(name) == 0 {
		return nil, fmt.Errorf("attachment name is required")
	}
	if len(url) == 0 {
		return nil, fmt.Errorf("attachment URL is required")
	}
	if size < 0 {
		return nil, fmt.Errorf("attachment size cannot be negative")
	}
	if uploaderID != nil && *uploaderID == 0 {
		return nil, fmt.Errorf("uploader ID cannot be zero")
	}

	return &Attachment{
		sid:        id.MustGenerateWithPrefix(id.PrefixAttachment, id.DefaultLength),
		ticketID:   ticketID,
		uploaderID: uploaderID,
		name:       name,
		url:        url,
		mimeType:   mimeType,
		size:       size,
		fromPeer:   fromPeer,
		createdAt:  biztime.NowUTC(),
	}, nil
}

func ReconstructAttachment(
	attachmentID uint,
	sid string,
	ticketID uint,
	uploaderID *uint,
	name, url, mimeType string,
	size int64,
	fromPeer bool,
	createdAt time.Time,
) (*Attachment, error) {
	if attachmentID == 0 {
		return nil, fmt.Errorf("attachment ID cannot be zero")
	}
	if ticketID == 0 {
		return nil, fmt.Errorf("ticket ID is required")
	}

	return &Attachment{
		id:         attachmentID,
		sid:        sid,
		ticketID:   ticketID,
		uploaderID: uploaderID,
		name:       name,
		url:        url,
		mimeType:   mimeType,
		size:       size,
		fromPeer:   fromPeer,
		createdAt:  createdAt,
	}, nil
}

func (a *Attachment) ID() uint             { return a.id }
func (a *Attachment) SID() string          { return a.sid }
func (a *Attachment) TicketID() uint       { return a.ticketID }
func (a *Attachment) UploaderID() *uint    { return a.uploaderID }
func (a *Attachment) Name() string         { return a.name }
func (a *Attachment) URL() string          { return a.url }
func (a *Attachment) MimeType() string     { return a.mimeType }
func (a *Attachment) Size() int64          { return a.size }
func (a *Attachment) FromPeer() bool       { return a.fromPeer }
func (a *Attachment) CreatedAt() time.Time { return a.createdAt }

func (a *Attachment) SetID(attachmentID uint) error {
	if a.id != 0 {
		return fmt.Errorf("attachment ID is already set")
	}
	if attachmentID == 0 {
		return fmt.Errorf("attachment ID cannot be zero")
	}
	a.id = attachmentID
	return nil
}
