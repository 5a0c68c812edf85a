package categorizer

import (
	"context"

	"ledgerchat/internal/models"
)

// Classifier defines the interface for the external classification
// capability. This abstraction lets the batch orchestrator be tested
// without real API calls and keeps the AI provider swappable.
type Classifier interface {
	// ClassifyBatch sends one batch of transaction refs and returns the
	// {id, category} assignments the service produced. Implementations
	// return a *TransportError when the call itself failed and a
	// *MalformedResponseError when the response shape was wrong.
	ClassifyBatch(ctx context.Context, refs []models.TxRef) ([]models.CategoryAssignment, error)
}
