package bot

import (
	"fmt"

	"inkbook/database"
)

// BotError carries a stable code the HTTP layer maps to a status.
type BotError struct {
	Code    string
	Message string
	Err     error
}

func (e *BotError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BotError) Unwrap() error {
	return e.Err
}

// Is matches any BotError with the same code, so errors.Is(err, ErrPersistence)
// holds for wrapped instances.
func (e *BotError) Is(target error) bool {
	t, ok := target.(*BotError)
	return ok && t.Code == e.Code
}

var (
	ErrInvalidIdentity    = &BotError{Code: "invalid_identity", Message: "user_id required"}
	ErrStorageUnavailable = &BotError{Code: "storage_unavailable", Message: "storage is not available"}
	ErrPersistence        = &BotError{Code: "persistence_error", Message: "failed to save booking progress"}
)

func wrap(kind *BotError, err error) error {
	return &BotError{Code: kind.Code, Message: kind.Message, Err: err}
}

// readError classifies a failed session lookup. Reads that fail for any reason leave
// nothing to retry against, so they all surface as the store being unavailable.
func readError(err error) error {
	return wrap(ErrStorageUnavailable, err)
}

// writeError classifies a failed write; an unreachable store is still reported as such.
func writeError(err error) error {
	if database.IsUnavailable(err) {
		return wrap(ErrStorageUnavailable, err)
	}
	return wrap(ErrPersistence, err)
}
