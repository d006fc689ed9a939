package domain

import "errors"

// ErrSourceUnavailable wraps a collaborator fetch that itself failed
// (network, auth, bad response). It is the only failure the pipeline
// surfaces to the user as an error; every "nothing found" condition is a
// valid empty result instead.
var ErrSourceUnavailable = errors.New("source unavailable")
