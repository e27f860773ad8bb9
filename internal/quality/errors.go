package quality

import "errors"

// ErrSnapshotMissing is returned by Load when no baseline snapshot file
// exists yet at the configured path. Callers decide what that means for
// their mode (e.g. warn tolerates it, ratchet/strict may not).
var ErrSnapshotMissing = errors.New("quality: baseline snapshot missing")
