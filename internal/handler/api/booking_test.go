//go:build unit

package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hbot-booking/internal/handler/api"
	resdto "hbot-booking/internal/handler/dto/response"
	"hbot-booking/internal/pkg/config"
	"hbot-booking/internal/pkg/errs"
	"hbot-booking/internal/usecase/commands"
	"hbot-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCheckoutCommands struct {
	mock.Mock
}

func (m *MockCheckoutCommands) Quote(durationMin int, groupSize, location string, day time.Time) int64 {
	args := m.Called(durationMin, groupSize, location, day)
	return args.Get(0).(int64)
}

func (m *MockCheckoutCommands) CreateBooking(ctx context.Context, input commands.CreateBookingInput) (*commands.CheckoutResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commands.CheckoutResult), args.Error(1)
}

func (m *MockCheckoutCommands) CancelBooking(ctx context.Context, bookingID uuid.UUID) error {
	args := m.Called(ctx, bookingID)
	return args.Error(0)
}

type MockBookingQueries struct {
	mock.Mock
}

func (m *MockBookingQueries) GetByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*queries.BookingView), args.Error(1)
}

func (m *MockBookingQueries) Unreconciled(ctx context.Context) ([]*queries.UnreconciledBookingView, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*queries.UnreconciledBookingView), args.Error(1)
}

func newBookingRouter(checkout *MockCheckoutCommands, bookingQueries *MockBookingQueries) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	handler := api.NewBookingHandler(checkout, bookingQueries, config.NewTestConfig())
	router.POST("/api/quote", handler.Quote)
	router.POST("/api/bookings", handler.CreateBooking)
	router.GET("/api/bookings/:id", handler.GetBooking)
	router.POST("/api/bookings/:id/cancel", handler.CancelBooking)
	return router
}

func TestQuoteEndpoint(t *testing.T) {
	t.Run("returns the engine amount with currency", func(t *testing.T) {
		checkout := &MockCheckoutCommands{}
		checkout.On("Quote", 60, "3", "downtown", mock.Anything).Return(int64(38250))
		router := newBookingRouter(checkout, &MockBookingQueries{})

		body := `{"slotDate":"2026-03-10","durationMin":60,"groupSize":"3","location":"downtown"}`
		req := httptest.NewRequest(http.MethodPost, "/api/quote", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var got resdto.QuoteResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))

		want := resdto.QuoteResponse{AmountCents: 38250, Currency: "usd"}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("quote response mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("rejects a malformed date", func(t *testing.T) {
		router := newBookingRouter(&MockCheckoutCommands{}, &MockBookingQueries{})

		body := `{"slotDate":"03/10/2026","durationMin":60,"groupSize":"1","location":"downtown"}`
		req := httptest.NewRequest(http.MethodPost, "/api/quote", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestCreateBookingEndpoint(t *testing.T) {
	validBody := `{
		"name": "Dana Reed",
		"email": "dana@example.com",
		"slotDate": "2026-03-10",
		"slotTime": "10:00",
		"durationMin": 60,
		"location": "downtown",
		"groupSize": "1"
	}`

	post := func(router *gin.Engine, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	t.Run("created with client secret", func(t *testing.T) {
		checkout := &MockCheckoutCommands{}
		intentID := "pi_1"
		checkout.On("CreateBooking", mock.Anything, mock.Anything).Return(&commands.CheckoutResult{
			Booking: &queries.BookingView{
				ID:              uuid.New(),
				Name:            "Dana Reed",
				Email:           "dana@example.com",
				SlotTime:        "10:00",
				DurationMin:     60,
				Location:        "downtown",
				GroupSize:       "1",
				AmountCents:     15000,
				PaymentIntentID: &intentID,
				PaymentStatus:   "pending",
			},
			ClientSecret: "pi_1_secret",
		}, nil)
		router := newBookingRouter(checkout, &MockBookingQueries{})

		w := post(router, validBody)

		require.Equal(t, http.StatusCreated, w.Code)

		var got resdto.CheckoutResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, "pi_1_secret", got.ClientSecret)
		assert.Equal(t, "pending", got.Booking.PaymentStatus)
	})

	t.Run("exhausted slot maps to conflict", func(t *testing.T) {
		checkout := &MockCheckoutCommands{}
		checkout.On("CreateBooking", mock.Anything, mock.Anything).
			Return(nil, errs.Mark(errs.New("no seats"), errs.ErrSlotExhausted))
		router := newBookingRouter(checkout, &MockBookingQueries{})

		assert.Equal(t, http.StatusConflict, post(router, validBody).Code)
	})

	t.Run("unknown slot maps to not found", func(t *testing.T) {
		checkout := &MockCheckoutCommands{}
		checkout.On("CreateBooking", mock.Anything, mock.Anything).
			Return(nil, errs.Mark(errs.New("missing"), errs.ErrSlotNotFound))
		router := newBookingRouter(checkout, &MockBookingQueries{})

		assert.Equal(t, http.StatusNotFound, post(router, validBody).Code)
	})

	t.Run("gateway outage maps to bad gateway", func(t *testing.T) {
		checkout := &MockCheckoutCommands{}
		checkout.On("CreateBooking", mock.Anything, mock.Anything).
			Return(nil, errs.Mark(errs.New("stripe down"), errs.ErrUpstreamFailure))
		router := newBookingRouter(checkout, &MockBookingQueries{})

		assert.Equal(t, http.StatusBadGateway, post(router, validBody).Code)
	})

	t.Run("missing required fields rejected before the use case", func(t *testing.T) {
		checkout := &MockCheckoutCommands{}
		router := newBookingRouter(checkout, &MockBookingQueries{})

		w := post(router, `{"name":"Dana"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		checkout.AssertNotCalled(t, "CreateBooking")
	})
}

func TestCancelBookingEndpoint(t *testing.T) {
	t.Run("cancels", func(t *testing.T) {
		checkout := &MockCheckoutCommands{}
		id := uuid.New()
		checkout.On("CancelBooking", mock.Anything, id).Return(nil)
		router := newBookingRouter(checkout, &MockBookingQueries{})

		req := httptest.NewRequest(http.MethodPost, "/api/bookings/"+id.String()+"/cancel", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("invalid id", func(t *testing.T) {
		router := newBookingRouter(&MockCheckoutCommands{}, &MockBookingQueries{})

		req := httptest.NewRequest(http.MethodPost, "/api/bookings/not-a-uuid/cancel", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
