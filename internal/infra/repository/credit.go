package repository

import (
	"context"
	"time"

	"hbot-booking/internal/domain/credit"
	"hbot-booking/internal/infra"
	"hbot-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type CreditRepository struct {
	db infra.DBTX
}

func NewCreditRepository(db infra.DBTX) *CreditRepository {
	return &CreditRepository{db: db}
}

// Append adds one package to the user's ledger. A single INSERT is the whole
// append: no read-modify-write of the user's package list, so concurrent
// grants cannot lose each other. booking_id records which booking granted
// the package and backs the unreconciled sweep.
func (r *CreditRepository) Append(ctx context.Context, db infra.DBTX, userID, bookingID uuid.UUID, pkg credit.Package) error {
	if err := pkg.Validate(); err != nil {
		return infra.WrapRepoErr("invalid credit package", err, infra.KindConflict)
	}

	const query = `
		INSERT INTO credit_packages (
			id, user_id, booking_id, credit_type, balance, original_balance,
			package_name, expires_at, purchased_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := db.Exec(ctx, query,
		uuid.New(),
		userID,
		bookingID,
		pkg.Type,
		pkg.Balance,
		pkg.OriginalBalance,
		pkg.PackageName,
		pgconv.TimePtrToPgtype(pkg.ExpiresAt),
		pkg.PurchasedAt,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to append credit package", err)
	}
	return nil
}

// FindByUser returns the user's packages in purchase order, consumed and
// expired ones included. Expiry is applied at read time.
func (r *CreditRepository) FindByUser(ctx context.Context, userID uuid.UUID) ([]credit.Package, error) {
	const query = `
		SELECT credit_type, balance, original_balance, package_name, expires_at, purchased_at
		FROM credit_packages
		WHERE user_id = $1
		ORDER BY purchased_at`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to query credit packages", err)
	}
	defer rows.Close()

	var packages []credit.Package
	for rows.Next() {
		var (
			p           credit.Package
			expiresAt   pgtype.Timestamptz
			purchasedAt time.Time
		)
		if err := rows.Scan(&p.Type, &p.Balance, &p.OriginalBalance, &p.PackageName, &expiresAt, &purchasedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan credit package", err)
		}
		p.ExpiresAt = pgconv.TimePtrFromPgtype(expiresAt)
		p.PurchasedAt = purchasedAt
		packages = append(packages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read credit packages", err)
	}
	return packages, nil
}
