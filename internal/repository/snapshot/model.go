package snapshot

import "time"

// SnapshotEntity is the mongo document. The state itself travels as the
// canonical JSON encoding, so file and mongo backends stay byte-compatible.
type SnapshotEntity struct {
	Name      string    `bson:"_id"`
	Document  []byte    `bson:"document"`
	UpdatedAt time.Time `bson:"updated_at"`
}
