package buffer

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

const (
	EntityCompletion = "completion"
	EntityCredit     = "credit"
)

// Item is a learner-progress write that could not reach primary storage and
// should be replayed once it is back.
type Item struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Entity    string          `json:"entity"`
	Data      json.RawMessage `json:"data"`
	Retries   int             `json:"retries"`
	Timestamp time.Time       `json:"timestamp"`

	bucketKey []byte
}

func (i *Item) normalize() {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Timestamp.IsZero() {
		i.Timestamp = time.Now()
	}
}
