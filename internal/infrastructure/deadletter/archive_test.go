package deadletter

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jaaccob/SagaApp/internal/domain/event"
	"github.com/Jaaccob/SagaApp/internal/domain/repository"
)

type fakeUploader struct {
	objects     map[string][]byte
	contentType string
	err         error
}

func (f *fakeUploader) Upload(_ context.Context, objectPath, contentType string, r io.Reader) error {
	if f.err != nil {
		return f.err
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	if f.objects == nil {
		f.objects = map[string][]byte{}
	}
	f.objects[objectPath] = b
	f.contentType = contentType
	return nil
}

func deadRecord() repository.OutboxRecord {
	id := uuid.New()
	return repository.OutboxRecord{
		ID:            id,
		AggregateType: "product",
		Status:        repository.OutboxPending,
		Attempts:      10,
		LastError:     "broker down",
		CreatedAt:     time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
		Envelope: event.Envelope{
			SubjectID:     uuid.NewString(),
			TypeTag:       event.TypeProductCreated,
			Payload:       json.RawMessage(`{"code":"SKU-1"}`),
			CorrelationID: id.String(),
		},
	}
}

func TestArchive_WritesRecord(t *testing.T) {
	up := &fakeUploader{}
	a := NewArchive(up, "dead-letters")
	a.now = func() time.Time { return time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC) }
	rec := deadRecord()

	require.NoError(t, a.Archive(t.Context(), rec))

	objectPath := "dead-letters/product.created/" + rec.ID.String() + ".json"
	require.Contains(t, up.objects, objectPath)
	assert.Equal(t, "application/json", up.contentType)

	var got map[string]any
	require.NoError(t, json.Unmarshal(up.objects[objectPath], &got))
	assert.Equal(t, rec.ID.String(), got["id"])
	assert.Equal(t, "broker down", got["lastError"])
	assert.EqualValues(t, 10, got["attempts"])
	assert.Equal(t, "2026-02-01T00:00:00Z", got["archivedAt"])
	assert.Equal(t, map[string]any{"code": "SKU-1"}, got["envelope"].(map[string]any)["payload"])
}

func TestArchive_UploadError(t *testing.T) {
	a := NewArchive(&fakeUploader{err: errors.New("403 forbidden")}, "dl")
	rec := deadRecord()

	err := a.Archive(t.Context(), rec)

	require.EqualError(t, err, "upload dl/product.created/"+rec.ID.String()+".json: 403 forbidden")
}
