package event

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Envelope is the serialized form consumers receive.
type Envelope struct {
	SubjectID     string          `json:"subjectId"`
	OccurredAt    time.Time       `json:"occurredAt"`
	TypeTag       string          `json:"typeTag"`
	Payload       json.RawMessage `json:"payload"`
	CorrelationID string          `json:"correlationId"`
}

func Wrap(e Event, correlationID string) (Envelope, error) {
	payload, err := json.Marshal(e.Payload())
	if err != nil {
		return Envelope{}, fmt.Errorf("marshal %s payload: %w", e.TypeTag(), err)
	}
	return Envelope{
		SubjectID:     e.SubjectID(),
		OccurredAt:    e.OccurredAt().UTC(),
		TypeTag:       e.TypeTag(),
		Payload:       payload,
		CorrelationID: correlationID,
	}, nil
}

// NewCorrelationID is used for direct publishing: a new value per attempt.
func NewCorrelationID() string { return uuid.NewString() }

// DerivedCorrelationID is stable for a given aggregate and event type, which
// lets consumers drop redeliveries from the outbox relay.
func DerivedCorrelationID(e Event) string {
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(e.TypeTag()+":"+e.SubjectID())).String()
}
