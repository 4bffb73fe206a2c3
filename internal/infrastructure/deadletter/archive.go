// Package deadletter keeps a copy of outbox records the relay gave up on.
package deadletter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/Jaaccob/SagaApp/internal/domain/event"
	"github.com/Jaaccob/SagaApp/internal/domain/repository"
)

type Uploader interface {
	Upload(ctx context.Context, objectPath, contentType string, r io.Reader) error
}

type record struct {
	ID            string         `json:"id"`
	AggregateType string         `json:"aggregateType"`
	Attempts      int            `json:"attempts"`
	LastError     string         `json:"lastError"`
	CreatedAt     time.Time      `json:"createdAt"`
	ArchivedAt    time.Time      `json:"archivedAt"`
	Envelope      event.Envelope `json:"envelope"`
}

// Archive writes each dead record as <prefix>/<type tag>/<id>.json. The id is
// stable, so archiving the same record twice overwrites one object.
type Archive struct {
	uploader Uploader
	prefix   string
	now      func() time.Time
}

func NewArchive(u Uploader, prefix string) *Archive {
	return &Archive{uploader: u, prefix: prefix, now: time.Now}
}

func (a *Archive) Archive(ctx context.Context, rec repository.OutboxRecord) error {
	body, err := json.Marshal(record{
		ID:            rec.ID.String(),
		AggregateType: rec.AggregateType,
		Attempts:      rec.Attempts,
		LastError:     rec.LastError,
		CreatedAt:     rec.CreatedAt,
		ArchivedAt:    a.now().UTC(),
		Envelope:      rec.Envelope,
	})
	if err != nil {
		return err
	}

	objectPath := a.ObjectPath(rec)
	if err := a.uploader.Upload(ctx, objectPath, "application/json", bytes.NewReader(body)); err != nil {
		return fmt.Errorf("upload %s: %w", objectPath, err)
	}
	return nil
}

func (a *Archive) ObjectPath(rec repository.OutboxRecord) string {
	return path.Join(a.prefix, rec.Envelope.TypeTag, rec.ID.String()+".json")
}
