package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/teabag-labs/teabag-snap/internal/core/domain"
	"github.com/teabag-labs/teabag-snap/internal/core/ports/driven"
	"github.com/teabag-labs/teabag-snap/internal/core/ports/driving"
	"github.com/teabag-labs/teabag-snap/internal/logger"
)

// Ensure InsightService implements the interface.
var _ driving.InsightService = (*InsightService)(nil)

var insightLog = logger.New("[onTransaction]")

// InsightHeading titles every insight panel.
const InsightHeading = "0xTeabag"

// InsightService builds the transaction-insight panel.
type InsightService struct {
	store    driven.CredentialStore
	api      driving.APIClient
	snapHome string
	validate func(domain.Transaction) error
}

// InsightOption configures an InsightService.
type InsightOption func(*InsightService)

// WithTxValidator checks each transaction before its labels are requested.
// It is not consulted when no account is connected.
func WithTxValidator(validate func(domain.Transaction) error) InsightOption {
	return func(s *InsightService) {
		s.validate = validate
	}
}

// NewInsightService creates an insight service. snapHome is the page
// users are sent to when no account is connected.
func NewInsightService(
	store driven.CredentialStore,
	api driving.APIClient,
	snapHome string,
	opts ...InsightOption,
) *InsightService {
	s := &InsightService{
		store:    store,
		api:      api,
		snapHome: snapHome,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// OnTransaction returns the labels panel for tx, or a connect prompt
// when no credential is stored.
func (s *InsightService) OnTransaction(ctx context.Context, tx domain.Transaction) (*domain.Component, error) {
	auth, err := s.store.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get auth: %w", err)
	}
	if auth == nil {
		insightLog.Debug("Not connected, showing auth prompt")
		return s.authPrompt(), nil
	}

	labels, err := s.LabelsForTx(ctx, tx)
	if err != nil {
		return nil, err
	}

	panel := domain.Panel(
		domain.Heading(InsightHeading),
		domain.Text(FormatLabels(tx, labels)),
		domain.Divider(),
		domain.Text(fmt.Sprintf("_Connected as **%s**_", auth.Email)),
	)
	return &panel, nil
}

// LabelsForTx asks the label service about every party of tx.
func (s *InsightService) LabelsForTx(ctx context.Context, tx domain.Transaction) (*domain.TxLabels, error) {
	if s.validate != nil {
		if err := s.validate(tx); err != nil {
			return nil, err
		}
	}

	encoded, err := tx.Payload()
	if err != nil {
		return nil, fmt.Errorf("encode transaction: %w", err)
	}

	resp, err := s.api.Query(ctx, driving.QueryParams{
		OperationName: opGetLabelsForTx,
		Query:         labelsForTxQuery,
		Variables:     map[string]any{"tx": string(encoded)},
	})
	if err != nil {
		return nil, err
	}

	var payload struct {
		LabelsForTx *domain.TxLabels `json:"labelsForTx"`
	}
	if err := resp.Decode(&payload); err != nil {
		return nil, fmt.Errorf("labels for tx: %w", err)
	}
	if payload.LabelsForTx == nil {
		return nil, fmt.Errorf("labels for tx: %w", domain.ErrNotFound)
	}
	return payload.LabelsForTx, nil
}

func (s *InsightService) authPrompt() *domain.Component {
	panel := domain.Panel(
		domain.Heading(InsightHeading),
		domain.Text(fmt.Sprintf(
			"You are not connected to 0xTeabag.\n\nGo to **%s** and connect your 0xTeabag account.",
			s.snapHome,
		)),
	)
	return &panel
}

// FormatLabels renders the From, To and Data sections as markdown.
func FormatLabels(tx domain.Transaction, labels *domain.TxLabels) string {
	var b strings.Builder

	fmt.Fprintf(&b, "_**From**_ (%s): ", domain.ShortAddr(tx.From))
	writeParty(&b, labels.From, "🔸")

	fmt.Fprintf(&b, "_**To**_ (%s): ", domain.ShortAddr(tx.To))
	writeParty(&b, labels.To, "🔹")

	b.WriteString("_**Data:**_ ")
	switch len(labels.Data) {
	case 0:
		b.WriteString("_No labels_")
	case 1:
		l := labels.Data[0]
		fmt.Fprintf(&b, "%s - %s", domain.ShortAddr(l.Hash), labelText(l))
	default:
		b.WriteString("\n")
		for _, g := range domain.GroupByHash(labels.Data) {
			if len(g.Labels) == 1 {
				fmt.Fprintf(&b, "🔹%s - %s\n", domain.ShortAddr(g.Hash), labelText(g.Labels[0]))
				continue
			}
			fmt.Fprintf(&b, "🔹%s:\n", domain.ShortAddr(g.Hash))
			for _, l := range g.Labels {
				fmt.Fprintf(&b, "  🔸%s\n", labelText(l))
			}
		}
	}

	return strings.TrimRight(b.String(), "\n")
}

func writeParty(b *strings.Builder, labels []domain.Label, bullet string) {
	switch len(labels) {
	case 0:
		b.WriteString("_No labels_\n\n")
	case 1:
		b.WriteString(labelText(labels[0]))
		b.WriteString("\n\n")
	default:
		b.WriteString("\n")
		for _, l := range labels {
			fmt.Fprintf(b, "%s%s\n", bullet, labelText(l))
		}
		b.WriteString("\n")
	}
}

func labelText(l domain.Label) string {
	return fmt.Sprintf("**%s** _(%s Team)_", l.Label, l.OrgName)
}
