//go:build unit

package credit_test

import (
	"testing"
	"time"

	"hbot-booking/internal/domain/credit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPackage(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	expiry := now.AddDate(0, 0, 84)

	t.Run("balance starts at original", func(t *testing.T) {
		pkg, err := credit.NewPackage("challenge", "Morris 12 Week Challenge", 12, &expiry, now)
		require.NoError(t, err)

		assert.Equal(t, 12, pkg.Balance)
		assert.Equal(t, 12, pkg.OriginalBalance)
		assert.Equal(t, "challenge", pkg.Type)
		require.NotNil(t, pkg.ExpiresAt)
		assert.Equal(t, expiry, *pkg.ExpiresAt)
	})

	t.Run("negative sessions rejected", func(t *testing.T) {
		_, err := credit.NewPackage("standard", "Bad", -1, nil, now)
		assert.ErrorIs(t, err, credit.ErrNegativeBalance)
	})
}

func TestValidate(t *testing.T) {
	now := time.Now()
	pkg, err := credit.NewPackage("standard", "Intro 5 Pack", 5, nil, now)
	require.NoError(t, err)

	require.NoError(t, pkg.Validate())

	pkg.Balance = -1
	assert.ErrorIs(t, pkg.Validate(), credit.ErrNegativeBalance)

	pkg.Balance = 6
	assert.ErrorIs(t, pkg.Validate(), credit.ErrBalanceExceeded)
}

func TestIsExpired(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	expiry := now.Add(24 * time.Hour)

	pkg, err := credit.NewPackage("standard", "Intro 5 Pack", 5, &expiry, now)
	require.NoError(t, err)

	assert.False(t, pkg.IsExpired(now))
	assert.False(t, pkg.IsExpired(expiry)) // boundary is still valid
	assert.True(t, pkg.IsExpired(expiry.Add(time.Second)))

	noExpiry, err := credit.NewPackage("standard", "Evergreen", 5, nil, now)
	require.NoError(t, err)
	assert.False(t, noExpiry.IsExpired(now.AddDate(10, 0, 0)))
}

func TestActiveBalance(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.AddDate(0, 0, 30)

	mustPackage := func(creditType string, sessions int, expiresAt *time.Time) credit.Package {
		pkg, err := credit.NewPackage(creditType, "pkg", sessions, expiresAt, now.AddDate(0, 0, -1))
		require.NoError(t, err)
		return pkg
	}

	packages := []credit.Package{
		mustPackage("challenge", 12, &future),
		mustPackage("challenge", 3, &past), // expired, excluded
		mustPackage("standard", 5, &future),
		mustPackage("standard", 10, nil), // no expiry, always counts
	}

	assert.Equal(t, 12, credit.ActiveBalance(packages, "challenge", now))
	assert.Equal(t, 15, credit.ActiveBalance(packages, "standard", now))
	assert.Equal(t, 0, credit.ActiveBalance(packages, "vip", now))
	assert.Equal(t, 0, credit.ActiveBalance(nil, "standard", now))
}

func TestRuleFor(t *testing.T) {
	t.Run("twelve week challenge", func(t *testing.T) {
		rule, ok := credit.RuleFor("morris-12-week")
		require.True(t, ok)
		assert.Equal(t, "challenge", rule.CreditType)
		assert.Equal(t, 12, rule.Sessions)
		assert.Equal(t, 84, rule.ExpirationDays)
	})

	t.Run("intro pack", func(t *testing.T) {
		rule, ok := credit.RuleFor("intro-5-pack")
		require.True(t, ok)
		assert.Equal(t, "standard", rule.CreditType)
		assert.Equal(t, 5, rule.Sessions)
		assert.Equal(t, 180, rule.ExpirationDays)
	})

	t.Run("plain session grants nothing", func(t *testing.T) {
		_, ok := credit.RuleFor("single-session")
		assert.False(t, ok)
	})
}
