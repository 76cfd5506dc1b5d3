//go:build e2e

package booking_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"hbot-booking/internal/domain/credit"
	"hbot-booking/internal/infra"
	"hbot-booking/internal/infra/repository"
	"hbot-booking/tests/common/authtest"
	"hbot-booking/tests/common/dbtest"
	"hbot-booking/tests/e2e"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	slotsURL   = "/api/slots"
	quoteURL   = "/api/quote"
	creditsURL = "/api/credits"
	webhookURL = "/api/webhooks/stripe"
	adminURL   = "/api/admin/unreconciled"
)

type bookingSuite struct {
	e2e.SharedSuite
}

func TestBookingSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(bookingSuite))
}

func (s *bookingSuite) request(method, url, body, token string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, url, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.Router.ServeHTTP(w, req)
	return w
}

func (s *bookingSuite) TestHealth() {
	s.Run("service is healthy", func() {
		w := s.request(http.MethodGet, "/health", "", "")
		assert.Equal(s.T(), http.StatusOK, w.Code)
	})
}

func (s *bookingSuite) TestSlots() {
	s.Run("lists only open times", func() {
		date := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
		require.NoError(s.T(), dbtest.SeedSlot(s.DB, date, "09:00", 60, 2))
		require.NoError(s.T(), dbtest.SeedSlot(s.DB, date, "10:00", 60, 1))

		// Exhaust the 10:00 slot.
		repo := repository.NewSlotRepository(s.DB)
		_, err := repo.Reserve(s.T().Context(), s.DB, date, "10:00")
		require.NoError(s.T(), err)

		w := s.request(http.MethodGet, slotsURL+"?date=2026-04-01", "", "")
		require.Equal(s.T(), http.StatusOK, w.Code)

		var resp struct {
			Date  string   `json:"date"`
			Times []string `json:"times"`
		}
		require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(s.T(), []string{"09:00"}, resp.Times)
	})

	s.Run("rejects malformed dates", func() {
		w := s.request(http.MethodGet, slotsURL+"?date=01-04-2026", "", "")
		assert.Equal(s.T(), http.StatusBadRequest, w.Code)
	})
}

func (s *bookingSuite) TestConcurrentReserve() {
	s.Run("last seat goes to exactly one caller", func() {
		date := time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC)
		require.NoError(s.T(), dbtest.SeedSlot(s.DB, date, "10:00", 60, 1))

		repo := repository.NewSlotRepository(s.DB)
		const callers = 8

		var wg sync.WaitGroup
		results := make([]error, callers)
		for i := range callers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, results[i] = repo.Reserve(s.T().Context(), s.DB, date, "10:00")
			}()
		}
		wg.Wait()

		var successes, conflicts int
		for _, err := range results {
			switch {
			case err == nil:
				successes++
			case infra.IsKind(err, infra.KindConflict):
				conflicts++
			default:
				s.T().Fatalf("unexpected error: %v", err)
			}
		}
		assert.Equal(s.T(), 1, successes)
		assert.Equal(s.T(), callers-1, conflicts)
	})
}

func (s *bookingSuite) TestQuote() {
	s.Run("group of three pays the exact multiplier", func() {
		body := `{"slotDate":"2026-04-01","durationMin":60,"groupSize":"3","location":"downtown"}`
		w := s.request(http.MethodPost, quoteURL, body, "")
		require.Equal(s.T(), http.StatusOK, w.Code)

		var resp struct {
			AmountCents int64  `json:"amountCents"`
			Currency    string `json:"currency"`
		}
		require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(s.T(), int64(38250), resp.AmountCents)
		assert.Equal(s.T(), "usd", resp.Currency)
	})
}

func (s *bookingSuite) TestWebhook() {
	s.Run("forged signature is rejected", func() {
		w := s.request(http.MethodPost, webhookURL, `{"id":"evt_1"}`, "")
		assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
	})
}

func (s *bookingSuite) TestCredits() {
	s.Run("requires a token", func() {
		w := s.request(http.MethodGet, creditsURL, "", "")
		assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
	})

	s.Run("returns the user's packages and balances", func() {
		userID := uuid.New()
		expiry := time.Now().AddDate(0, 0, 84)
		_, err := s.DB.Exec(s.T().Context(), `
			INSERT INTO credit_packages (id, user_id, credit_type, balance, original_balance, package_name, expires_at, purchased_at)
			VALUES ($1, $2, 'challenge', 12, 12, 'Morris 12 Week Challenge', $3, now())`,
			uuid.New(), userID, expiry)
		require.NoError(s.T(), err)

		token, err := authtest.IssueToken(s.Config.JWT.Secret, userID, "member")
		require.NoError(s.T(), err)

		w := s.request(http.MethodGet, creditsURL, "", token)
		require.Equal(s.T(), http.StatusOK, w.Code)

		var resp struct {
			Balances []struct {
				Type          string `json:"type"`
				ActiveBalance int    `json:"activeBalance"`
			} `json:"balances"`
		}
		require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(s.T(), resp.Balances, 1)
		assert.Equal(s.T(), "challenge", resp.Balances[0].Type)
		assert.Equal(s.T(), 12, resp.Balances[0].ActiveBalance)
	})
}

func (s *bookingSuite) seedBookingRow(status, intentID string) (uuid.UUID, uuid.UUID) {
	bookingID := uuid.New()
	userID := uuid.New()
	_, err := s.DB.Exec(s.T().Context(), `
		INSERT INTO bookings (id, name, email, slot_date, slot_time, duration_min, location,
			group_size, service_id, user_id, amount_cents, payment_intent_id, payment_status)
		VALUES ($1, 'Dana', 'dana@example.com', '2026-04-01', '10:00', 60, 'downtown',
			'1', 'morris-12-week', $2, 15000, $3, $4)`,
		bookingID, userID, intentID, status)
	require.NoError(s.T(), err)
	return bookingID, userID
}

func (s *bookingSuite) TestTerminalTransitions() {
	s.Run("completion lands exactly once per intent", func() {
		s.seedBookingRow("pending", "pi_once")
		repo := repository.NewBookingRepository(s.DB)

		changed, err := repo.MarkCompletedByIntent(s.T().Context(), s.DB, "pi_once")
		require.NoError(s.T(), err)
		assert.True(s.T(), changed)

		changed, err = repo.MarkCompletedByIntent(s.T().Context(), s.DB, "pi_once")
		require.NoError(s.T(), err)
		assert.False(s.T(), changed)
	})

	s.Run("failed booking never completes", func() {
		bookingID, _ := s.seedBookingRow("failed", "pi_lost")
		repo := repository.NewBookingRepository(s.DB)

		changed, err := repo.MarkCompletedByIntent(s.T().Context(), s.DB, "pi_lost")
		require.NoError(s.T(), err)
		assert.False(s.T(), changed)

		var status string
		require.NoError(s.T(), s.DB.QueryRow(s.T().Context(), `SELECT payment_status FROM bookings WHERE id = $1`, bookingID).Scan(&status))
		assert.Equal(s.T(), "failed", status)
	})

	s.Run("no-op check inside a transaction sees its own row", func() {
		ctx := context.Background()
		tx, err := s.DB.Begin(ctx)
		require.NoError(s.T(), err)
		defer func() { _ = tx.Rollback(ctx) }()

		bookingID := uuid.New()
		_, err = tx.Exec(ctx, `
			INSERT INTO bookings (id, name, email, slot_date, slot_time, duration_min, location,
				group_size, amount_cents, payment_intent_id, payment_status)
			VALUES ($1, 'Dana', 'dana@example.com', '2026-04-01', '11:00', 60, 'downtown',
				'1', 15000, 'pi_tx', 'completed')`, bookingID)
		require.NoError(s.T(), err)

		repo := repository.NewBookingRepository(s.DB)
		changed, err := repo.MarkFailedByID(ctx, tx, bookingID)
		require.NoError(s.T(), err)
		assert.False(s.T(), changed)
	})
}

func (s *bookingSuite) TestCreditGrantConstraint() {
	s.Run("second package for one booking is rejected by the store", func() {
		bookingID, userID := s.seedBookingRow("completed", "pi_grant")
		creditRepo := repository.NewCreditRepository(s.DB)

		expiry := time.Now().AddDate(0, 0, 84)
		pkg, err := credit.NewPackage("challenge", "Morris 12 Week Challenge", 12, &expiry, time.Now())
		require.NoError(s.T(), err)

		require.NoError(s.T(), creditRepo.Append(s.T().Context(), s.DB, userID, bookingID, pkg))
		assert.Error(s.T(), creditRepo.Append(s.T().Context(), s.DB, userID, bookingID, pkg))

		var count int
		require.NoError(s.T(), s.DB.QueryRow(s.T().Context(), `SELECT count(*) FROM credit_packages WHERE booking_id = $1`, bookingID).Scan(&count))
		assert.Equal(s.T(), 1, count)
	})
}

func (s *bookingSuite) TestAdminCreateSlot() {
	s.Run("creates a slot then rejects the duplicate", func() {
		token, err := authtest.IssueToken(s.Config.JWT.Secret, uuid.New(), "admin")
		require.NoError(s.T(), err)

		body := `{"slotDate":"2026-04-03","slotTime":"10:00","durationMin":60,"seatsTotal":2}`
		w := s.request(http.MethodPost, "/api/admin/slots", body, token)
		require.Equal(s.T(), http.StatusCreated, w.Code)

		w = s.request(http.MethodPost, "/api/admin/slots", body, token)
		assert.Equal(s.T(), http.StatusConflict, w.Code)

		w = s.request(http.MethodGet, slotsURL+"?date=2026-04-03", "", "")
		require.Equal(s.T(), http.StatusOK, w.Code)

		var resp struct {
			Times []string `json:"times"`
		}
		require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(s.T(), []string{"10:00"}, resp.Times)
	})
}

func (s *bookingSuite) TestAdminUnreconciled() {
	seedCompletedBooking := func(withCredit bool) uuid.UUID {
		bookingID := uuid.New()
		userID := uuid.New()
		_, err := s.DB.Exec(s.T().Context(), `
			INSERT INTO bookings (id, name, email, slot_date, slot_time, duration_min, location,
				group_size, service_id, user_id, amount_cents, payment_intent_id, payment_status)
			VALUES ($1, 'Dana', 'dana@example.com', '2026-04-01', '10:00', 60, 'downtown',
				'1', 'morris-12-week', $2, 15000, $3, 'completed')`,
			bookingID, userID, "pi_"+bookingID.String())
		require.NoError(s.T(), err)

		if withCredit {
			_, err := s.DB.Exec(s.T().Context(), `
				INSERT INTO credit_packages (id, user_id, booking_id, credit_type, balance, original_balance, package_name, purchased_at)
				VALUES ($1, $2, $3, 'challenge', 12, 12, 'Morris 12 Week Challenge', now())`,
				uuid.New(), userID, bookingID)
			require.NoError(s.T(), err)
		}
		return bookingID
	}

	s.Run("member role is forbidden", func() {
		token, err := authtest.IssueToken(s.Config.JWT.Secret, uuid.New(), "member")
		require.NoError(s.T(), err)

		w := s.request(http.MethodGet, adminURL, "", token)
		assert.Equal(s.T(), http.StatusForbidden, w.Code)
	})

	s.Run("lists only bookings missing their grant", func() {
		missing := seedCompletedBooking(false)
		seedCompletedBooking(true)

		token, err := authtest.IssueToken(s.Config.JWT.Secret, uuid.New(), "admin")
		require.NoError(s.T(), err)

		w := s.request(http.MethodGet, adminURL, "", token)
		require.Equal(s.T(), http.StatusOK, w.Code)

		var resp []struct {
			BookingID uuid.UUID `json:"bookingId"`
		}
		require.NoError(s.T(), json.Unmarshal(w.Body.Bytes(), &resp))
		require.Len(s.T(), resp, 1)
		assert.Equal(s.T(), missing, resp[0].BookingID)
	})
}
