package storage

import (
	"context"
)

// Store is the transmission journal. Every generated transmission is
// recorded with the sensor values it carried and the files it was written to.
type Store interface {
	// RecordTransmission stores a journal entry and returns its ID.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeouts
	//   - rec: Record to store; rec.ID is ignored
	//
	// Returns:
	//   - id: Unique identifier of the stored record
	//   - error: If storage fails or context is cancelled
	RecordTransmission(ctx context.Context, rec *TransmissionRecord) (id int64, err error)

	// Transmission retrieves a single journal entry by its ID.
	Transmission(ctx context.Context, id int64) (*TransmissionRecord, error)

	// Transmissions returns all journal entries ordered by ID.
	Transmissions(ctx context.Context) ([]*TransmissionRecord, error)

	// Close releases all database connections. It is safe to call Close
	// multiple times.
	Close() error
}
