package response

import (
	"log/slog"
	"time"

	"hbot-booking/internal/usecase/queries"

	"github.com/jinzhu/copier"
)

type CreditPackageResponse struct {
	Type            string     `json:"type"`
	Balance         int        `json:"balance"`
	OriginalBalance int        `json:"originalBalance"`
	PackageName     string     `json:"packageName"`
	ExpiresAt       *time.Time `json:"expiresAt,omitempty"`
	PurchasedAt     time.Time  `json:"purchasedAt"`
}

type CreditBalanceResponse struct {
	Type          string `json:"type"`
	ActiveBalance int    `json:"activeBalance"`
}

type CreditLedgerResponse struct {
	Packages []CreditPackageResponse `json:"packages"`
	Balances []CreditBalanceResponse `json:"balances"`
}

func FromCreditLedgerView(rm *queries.CreditLedgerView) *CreditLedgerResponse {
	resp := CreditLedgerResponse{
		Packages: make([]CreditPackageResponse, 0, len(rm.Packages)),
		Balances: make([]CreditBalanceResponse, 0, len(rm.Balances)),
	}
	if err := copier.Copy(&resp.Packages, rm.Packages); err != nil {
		slog.Error("failed to map credit packages", "error", err)
	}
	if err := copier.Copy(&resp.Balances, rm.Balances); err != nil {
		slog.Error("failed to map credit balances", "error", err)
	}
	return &resp
}
