package api

import (
	"net/http"

	"gst-lifecycle/internal/domain/document"
	reqdto "gst-lifecycle/internal/handler/dto/request"
	resdto "gst-lifecycle/internal/handler/dto/response"
	"gst-lifecycle/internal/handler/httperr"

	"github.com/gin-gonic/gin"
)

type TaxHandler struct{}

func NewTaxHandler() *TaxHandler {
	return &TaxHandler{}
}

// @Summary Compute taxes
// @Description Price invoice lines and compute totals without contacting the gateway
// @Tags tax
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.TaxComputeRequest true "Invoice lines"
// @Success 200 {object} resdto.TaxComputeResponse
// @Failure 400 {object} httperr.Response
// @Router /tax/compute [post]
func (h *TaxHandler) Compute(c *gin.Context) {
	var req reqdto.TaxComputeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	items, adj, err := req.ToDomain()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	priced, totals := document.PriceLines(items, adj)
	c.JSON(http.StatusOK, resdto.TaxComputeResponse{Items: priced, Totals: totals})
}
