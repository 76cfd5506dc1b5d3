package api

import (
	"errors"
	"net/http"

	"hbot-booking/internal/domain/slot"
	reqdto "hbot-booking/internal/handler/dto/request"
	resdto "hbot-booking/internal/handler/dto/response"
	"hbot-booking/internal/handler/httperr"
	"hbot-booking/internal/usecase/commands"
	"hbot-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	bookingQueries queries.BookingQueries
	schedule       commands.ScheduleCommands
}

func NewAdminHandler(bookingQueries queries.BookingQueries, schedule commands.ScheduleCommands) *AdminHandler {
	return &AdminHandler{
		bookingQueries: bookingQueries,
		schedule:       schedule,
	}
}

// @Summary List unreconciled bookings
// @Description List completed credit-granting bookings with no credit package
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Success 200 {array} response.UnreconciledBookingResponse
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /admin/unreconciled [get]
func (h *AdminHandler) GetUnreconciled(c *gin.Context) {
	views, err := h.bookingQueries.Unreconciled(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	response := make([]*resdto.UnreconciledBookingResponse, len(views))
	for i, v := range views {
		response[i] = resdto.FromUnreconciledView(v)
	}

	c.JSON(http.StatusOK, response)
}

// @Summary Create schedule slot
// @Description Publish a bookable slot for a date and time
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body request.CreateSlotRequest true "Slot definition"
// @Success 201 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/slots [post]
func (h *AdminHandler) CreateSlot(c *gin.Context) {
	var req reqdto.CreateSlotRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, bindErr, "Invalid request format", nil)
		return
	}

	err := h.schedule.CreateSlot(c.Request.Context(), reqdto.ParseSlotDate(req.SlotDate), req.SlotTime, req.DurationMin, req.SeatsTotal)
	if err != nil {
		switch {
		case errors.Is(err, slot.ErrInvalidCapacity):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid slot capacity", nil)
		case errors.Is(err, commands.ErrSlotAlreadyExists):
			httperr.AbortWithError(c, http.StatusConflict, err, "Slot already exists", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "created"})
}
