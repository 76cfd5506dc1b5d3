package api

import (
	"errors"
	"net/http"

	"hbot-booking/internal/domain/booking"
	reqdto "hbot-booking/internal/handler/dto/request"
	resdto "hbot-booking/internal/handler/dto/response"
	"hbot-booking/internal/handler/httperr"
	"hbot-booking/internal/handler/middleware"
	"hbot-booking/internal/infra"
	"hbot-booking/internal/pkg/config"
	"hbot-booking/internal/pkg/errs"
	"hbot-booking/internal/usecase/commands"
	"hbot-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BookingHandler struct {
	checkout       commands.CheckoutCommands
	bookingQueries queries.BookingQueries
	currency       string
}

func NewBookingHandler(checkout commands.CheckoutCommands, bookingQueries queries.BookingQueries, cfg config.Config) *BookingHandler {
	return &BookingHandler{
		checkout:       checkout,
		bookingQueries: bookingQueries,
		currency:       cfg.Stripe.Currency,
	}
}

// @Summary Quote a booking
// @Description Price a prospective booking without reserving anything
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body request.QuoteRequest true "Quote request"
// @Success 200 {object} response.QuoteResponse
// @Failure 400 {object} map[string]string
// @Router /quote [post]
func (h *BookingHandler) Quote(c *gin.Context) {
	var req reqdto.QuoteRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	amount := h.checkout.Quote(req.DurationMin, req.GroupSize, req.Location, reqdto.ParseSlotDate(req.SlotDate))
	c.JSON(http.StatusOK, resdto.QuoteResponse{
		AmountCents: amount,
		Currency:    h.currency,
	})
}

// @Summary Create booking
// @Description Reserve a slot, create the booking and open a payment intent
// @Tags bookings
// @Accept json
// @Produce json
// @Param request body request.CreateBookingRequest true "Booking request"
// @Success 201 {object} response.CheckoutResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 502 {object} map[string]string
// @Router /bookings [post]
func (h *BookingHandler) CreateBooking(c *gin.Context) {
	var req reqdto.CreateBookingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	input := commands.CreateBookingInput{
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		SlotDate:    reqdto.ParseSlotDate(req.SlotDate),
		SlotTime:    req.SlotTime,
		DurationMin: req.DurationMin,
		Location:    req.Location,
		GroupSize:   req.GroupSize,
		ServiceID:   req.ServiceID,
	}
	if userID, ok := middleware.GetUserID(c); ok {
		input.UserID = &userID
	}

	result, err := h.checkout.CreateBooking(c.Request.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrSlotNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Slot not found", nil)
		case errors.Is(err, errs.ErrSlotExhausted):
			httperr.AbortWithError(c, http.StatusConflict, err, "Slot is fully booked", nil)
		case errors.Is(err, errs.ErrIntentAlreadyAttached):
			httperr.AbortWithError(c, http.StatusConflict, err, "Booking already has a payment intent", nil)
		case errors.Is(err, errs.ErrUpstreamFailure):
			httperr.AbortWithError(c, http.StatusBadGateway, err, "Payment gateway unavailable", nil)
		case errors.Is(err, booking.ErrEmptyName), errors.Is(err, booking.ErrInvalidEmail):
			httperr.AbortWithError(c, http.StatusUnprocessableEntity, err, err.Error(), nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.CheckoutResponse{
		Booking:      resdto.FromBookingView(result.Booking),
		ClientSecret: result.ClientSecret,
	})
}

// @Summary Get booking
// @Description Get booking by ID
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} response.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id} [get]
func (h *BookingHandler) GetBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	view, err := h.bookingQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrBookingNotFound), isNotFound(err):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromBookingView(view))
}

// @Summary Cancel booking
// @Description Cancel a pending booking and release its slot
// @Tags bookings
// @Produce json
// @Param id path string true "Booking ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id}/cancel [post]
func (h *BookingHandler) CancelBooking(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid booking ID format", nil)
		return
	}

	if err := h.checkout.CancelBooking(c.Request.Context(), id); err != nil {
		switch {
		case errors.Is(err, errs.ErrBookingNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Booking not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "cancelled"})
}

func isNotFound(err error) bool {
	return infra.IsKind(err, infra.KindNotFound)
}
