package api

import (
	"net/http"

	resdto "hbot-booking/internal/handler/dto/response"
	"hbot-booking/internal/handler/httperr"
	"hbot-booking/internal/handler/middleware"
	"hbot-booking/internal/pkg/errs"
	"hbot-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CreditHandler struct {
	creditQueries queries.CreditQueries
}

func NewCreditHandler(creditQueries queries.CreditQueries) *CreditHandler {
	return &CreditHandler{
		creditQueries: creditQueries,
	}
}

// @Summary Get credit ledger
// @Description Get the current user's credit packages and active balances
// @Tags credits
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.CreditLedgerResponse
// @Failure 401 {object} map[string]string
// @Router /credits [get]
func (h *CreditHandler) GetLedger(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errs.New("user id missing from context"), "Internal server error", nil)
		return
	}

	ledger, err := h.creditQueries.Ledger(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromCreditLedgerView(ledger))
}
