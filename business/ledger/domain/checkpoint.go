package domain

import "time"

// Checkpoint is a finalized batch of transactions on the ledger. The stream
// of checkpoints is used as a coarse "state changed" signal for re-quoting.
type Checkpoint struct {
	Sequence    uint64
	Digest      string
	TimestampMs int64
}

// Time returns the checkpoint timestamp as a time.Time.
func (c Checkpoint) Time() time.Time {
	return time.UnixMilli(c.TimestampMs)
}
