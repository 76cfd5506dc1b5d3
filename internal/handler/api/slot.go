package api

import (
	"net/http"
	"time"

	resdto "hbot-booking/internal/handler/dto/response"
	"hbot-booking/internal/handler/httperr"
	"hbot-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type SlotHandler struct {
	slotQueries queries.SlotQueries
}

func NewSlotHandler(slotQueries queries.SlotQueries) *SlotHandler {
	return &SlotHandler{
		slotQueries: slotQueries,
	}
}

// @Summary List available slot times
// @Description List open time labels for a date
// @Tags slots
// @Produce json
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} response.SlotTimesResponse
// @Failure 400 {object} map[string]string
// @Router /slots [get]
func (h *SlotHandler) GetAvailableTimes(c *gin.Context) {
	dateStr := c.Query("date")
	date, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid date format, expected YYYY-MM-DD", nil)
		return
	}

	seq, err := h.slotQueries.AvailableTimes(c.Request.Context(), date)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	times := make([]string, 0, 8)
	for label := range seq {
		times = append(times, label)
	}

	c.JSON(http.StatusOK, resdto.SlotTimesResponse{
		Date:  dateStr,
		Times: times,
	})
}
