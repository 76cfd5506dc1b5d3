package queries

import (
	"context"

	"hbot-booking/internal/domain/credit"
	"hbot-booking/internal/pkg/clock"

	"github.com/google/uuid"
)

type CreditReadStore interface {
	FindByUser(ctx context.Context, userID uuid.UUID) ([]credit.Package, error)
}

type CreditLedgerView struct {
	Packages []credit.Package    `json:"packages"`
	Balances []CreditBalanceView `json:"balances"`
}

type CreditQueries interface {
	Ledger(ctx context.Context, userID uuid.UUID) (*CreditLedgerView, error)
}

type creditQueriesImpl struct {
	store CreditReadStore
	clock clock.Clock
}

func NewCreditQueries(store CreditReadStore, clock clock.Clock) CreditQueries {
	return &creditQueriesImpl{store: store, clock: clock}
}

// Ledger returns the raw packages plus per-type active balances. Balances
// are derived on every read; expiry is never stored.
func (q *creditQueriesImpl) Ledger(ctx context.Context, userID uuid.UUID) (*CreditLedgerView, error) {
	packages, err := q.store.FindByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := q.clock.Now()
	seen := make(map[string]bool)
	var balances []CreditBalanceView
	for _, p := range packages {
		if seen[p.Type] {
			continue
		}
		seen[p.Type] = true
		balances = append(balances, CreditBalanceView{
			Type:          p.Type,
			ActiveBalance: credit.ActiveBalance(packages, p.Type, now),
		})
	}

	return &CreditLedgerView{Packages: packages, Balances: balances}, nil
}
