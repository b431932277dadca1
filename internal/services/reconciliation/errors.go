package reconciliation

import "errors"

// Error taxonomy surfaced to callers. Handlers map these onto HTTP statuses;
// ConflictError is kept distinct from NotFound so a UI can say "already
// matched" rather than "missing".
var (
	ErrValidation       = errors.New("validation failed")
	ErrNotFound         = errors.New("not found")
	ErrConflict         = errors.New("conflict")
	ErrStoreUnavailable = errors.New("store unavailable")
)
