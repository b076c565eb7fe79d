// Package outbox persists classifications off the response path.
//
// Callers hand a Record to a Sink and move on. Submit never blocks and
// never reports write failures: persistence is advisory, so a full buffer
// or a failing database loses the record and logs it.
package outbox

import (
	"context"
	"encoding/json"
	"time"
)

// timeNow is a package-level var to allow test injection.
var timeNow = time.Now

// Record is one persisted classification.
type Record struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id,omitempty"`
	Locale         string          `json:"locale"`
	HintBand       string          `json:"hint_band"`
	HintIntensity  float64         `json:"hint_intensity"`
	PrimaryPattern string          `json:"primary_pattern,omitempty"`
	Artifact       json.RawMessage `json:"artifact"`
	Result         json.RawMessage `json:"result"`
	CreatedAt      string          `json:"created_at"`
}

// Sink accepts records without acknowledging the write. Submit reports
// only whether the record was accepted for delivery.
type Sink interface {
	Submit(r Record) bool
}

// Writer stores a single record synchronously.
type Writer interface {
	Save(ctx context.Context, r Record) error
}

// Discard is a Sink that drops every record.
var Discard Sink = discard{}

type discard struct{}

func (discard) Submit(Record) bool { return false }
