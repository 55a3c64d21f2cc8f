package driving

import (
	"context"

	"github.com/teabag-labs/teabag-snap/internal/core/domain"
)

// InsightService builds the content shown next to a pending transaction.
type InsightService interface {
	// OnTransaction returns labels for tx, or a connect prompt when no
	// account is connected.
	OnTransaction(ctx context.Context, tx domain.Transaction) (*domain.Component, error)

	// LabelsForTx fetches the raw labels for tx.
	LabelsForTx(ctx context.Context, tx domain.Transaction) (*domain.TxLabels, error)
}
