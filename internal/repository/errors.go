package repository

import (
	"errors"
	"fmt"
	"net"

	"dispute-reconciliation-backend/internal/services/reconciliation"

	"gorm.io/gorm"
)

// translate maps persistence-layer errors onto the service-level taxonomy so
// callers can use errors.Is without knowing the storage engine. Connection
// failures become ErrStoreUnavailable; missing rows become ErrNotFound.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return reconciliation.ErrNotFound
	}
	var netErr net.Error
	if errors.As(err, &netErr) || errors.Is(err, gorm.ErrInvalidDB) {
		return fmt.Errorf("%w: %v", reconciliation.ErrStoreUnavailable, err)
	}
	return err
}
