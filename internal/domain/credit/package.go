package credit

import (
	"errors"
	"time"
)

var (
	ErrNegativeBalance = errors.New("balance cannot be negative")
	ErrBalanceExceeded = errors.New("balance cannot exceed original balance")
)

// Package is one prepaid bundle of sessions. Once appended to a user's
// ledger its type, original balance and expiry never change; only the
// remaining balance is decremented by session consumption. Expiry is derived
// at read time, never stored as state.
type Package struct {
	Type            string     `json:"type"`
	Balance         int        `json:"balance"`
	OriginalBalance int        `json:"original_balance"`
	PackageName     string     `json:"package_name"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
	PurchasedAt     time.Time  `json:"purchased_at"`
}

func NewPackage(creditType, packageName string, sessions int, expiresAt *time.Time, purchasedAt time.Time) (Package, error) {
	if sessions < 0 {
		return Package{}, ErrNegativeBalance
	}
	return Package{
		Type:            creditType,
		Balance:         sessions,
		OriginalBalance: sessions,
		PackageName:     packageName,
		ExpiresAt:       expiresAt,
		PurchasedAt:     purchasedAt,
	}, nil
}

func (p Package) Validate() error {
	if p.Balance < 0 {
		return ErrNegativeBalance
	}
	if p.Balance > p.OriginalBalance {
		return ErrBalanceExceeded
	}
	return nil
}

func (p Package) IsExpired(now time.Time) bool {
	return p.ExpiresAt != nil && now.After(*p.ExpiresAt)
}

// ActiveBalance sums remaining sessions of one credit type over non-expired
// packages. Recomputed on every read: expiration is time-relative.
func ActiveBalance(packages []Package, creditType string, now time.Time) int {
	total := 0
	for _, p := range packages {
		if p.Type != creditType || p.IsExpired(now) {
			continue
		}
		total += p.Balance
	}
	return total
}
