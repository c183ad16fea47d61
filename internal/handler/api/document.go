package api

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strconv"

	reqdto "gst-lifecycle/internal/handler/dto/request"
	resdto "gst-lifecycle/internal/handler/dto/response"
	"gst-lifecycle/internal/handler/httperr"
	"gst-lifecycle/internal/handler/middleware"
	"gst-lifecycle/internal/usecase/commands"
	"gst-lifecycle/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type DocumentHandler struct {
	cmds commands.LifecycleCommands
	q    queries.DocumentQueries
}

func NewDocumentHandler(cmds commands.LifecycleCommands, q queries.DocumentQueries) *DocumentHandler {
	return &DocumentHandler{cmds: cmds, q: q}
}

// @Summary Generate document
// @Description Compute taxes, submit a new E-Way Bill or E-Invoice to the compliance gateway and store it
// @Tags documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.GenerateDocumentRequest true "Generate request"
// @Success 201 {object} resdto.TransitionResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} resdto.TransitionResponse
// @Failure 502 {object} httperr.Response
// @Failure 504 {object} httperr.Response
// @Router /documents [post]
func (h *DocumentHandler) Generate(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthorized, "Unauthorized", nil)
		return
	}
	var req reqdto.GenerateDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	cmd, err := req.ToCommand(actor)
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.Generate(c.Request.Context(), cmd)
	if err != nil {
		abortWithEngineError(c, err)
		return
	}
	respondResult(c, http.StatusCreated, result)
}

// @Summary Register received E-Way Bill
// @Description Fetch an E-Way Bill raised against our GSTIN from the gateway and start its acceptance window
// @Tags documents
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ReceiveDocumentRequest true "Receive request"
// @Success 201 {object} resdto.TransitionResponse
// @Failure 400 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} resdto.TransitionResponse
// @Failure 502 {object} httperr.Response
// @Router /documents/received [post]
func (h *DocumentHandler) Receive(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthorized, "Unauthorized", nil)
		return
	}
	var req reqdto.ReceiveDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	result, err := h.cmds.Receive(c.Request.Context(), commands.ReceiveRequest{
		DocumentNumber: req.DocumentNumber,
		Actor:          actor,
	})
	if err != nil {
		abortWithEngineError(c, err)
		return
	}
	respondResult(c, http.StatusCreated, result)
}

// @Summary Get document
// @Description Get the current snapshot of a document
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Param number path string true "Document number"
// @Success 200 {object} resdto.DocumentResponse
// @Failure 404 {object} httperr.Response
// @Router /documents/{number} [get]
func (h *DocumentHandler) Get(c *gin.Context) {
	doc, err := h.q.GetDocument(c.Request.Context(), c.Param("number"))
	if err != nil {
		abortWithEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromDocument(doc))
}

// @Summary List audit trail
// @Description List transition attempts for a document, oldest first, with keyset pagination
// @Tags documents
// @Produce json
// @Security BearerAuth
// @Param number path string true "Document number"
// @Param limit query int false "Max items (default 50, max 200)"
// @Param after query string false "Cursor for keyset pagination"
// @Success 200 {object} resdto.AuditTrailResponse
// @Failure 400 {object} httperr.Response
// @Router /documents/{number}/audit [get]
func (h *DocumentHandler) ListAudit(c *gin.Context) {
	limit := queries.DefaultListLimit
	if v := c.Query("limit"); v != "" {
		iv, err := strconv.Atoi(v)
		if err != nil {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid limit", nil)
			return
		}
		limit = queries.ValidateLimit(iv)
	}
	var cursor *queries.Cursor
	if after := c.Query("after"); after != "" {
		cursor = &queries.Cursor{After: after}
	}

	page, err := h.q.ListAudit(c.Request.Context(), c.Param("number"), cursor, limit)
	if err != nil {
		abortWithEngineError(c, err)
		return
	}
	c.JSON(http.StatusOK, resdto.FromAuditTrailPage(page))
}

// @Summary Export audit trail
// @Description Download the full audit trail of a document as a spreadsheet
// @Tags documents
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param number path string true "Document number"
// @Success 200 {file} file
// @Failure 404 {object} httperr.Response
// @Router /documents/{number}/audit/export [get]
func (h *DocumentHandler) ExportAudit(c *gin.Context) {
	number := c.Param("number")
	var buf bytes.Buffer
	if err := h.q.ExportAudit(c.Request.Context(), number, &buf); err != nil {
		abortWithEngineError(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.q.ExportFileName(number)))
	c.Data(http.StatusOK, h.q.ExportContentType(), buf.Bytes())
}

// @Summary Accept E-Way Bill
// @Description Accept a received E-Way Bill within 72 hours of receipt
// @Tags transitions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param number path string true "Document number"
// @Param request body reqdto.AcceptRequest false "Accept request"
// @Success 200 {object} resdto.TransitionResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} resdto.TransitionResponse
// @Failure 502 {object} httperr.Response
// @Failure 504 {object} httperr.Response
// @Router /documents/{number}/accept [post]
func (h *DocumentHandler) Accept(c *gin.Context) {
	var req reqdto.AcceptRequest
	tr, ok := h.transitionRequest(c, &req, &req.ObservedRequest)
	if !ok {
		return
	}
	h.run(c, h.cmds.Accept, tr)
}

// @Summary Reject E-Way Bill
// @Description Reject a received E-Way Bill within 72 hours of receipt, giving a reason of at least 10 characters
// @Tags transitions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param number path string true "Document number"
// @Param request body reqdto.RejectRequest true "Reject request"
// @Success 200 {object} resdto.TransitionResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} resdto.TransitionResponse
// @Failure 502 {object} httperr.Response
// @Failure 504 {object} httperr.Response
// @Router /documents/{number}/reject [post]
func (h *DocumentHandler) Reject(c *gin.Context) {
	var req reqdto.RejectRequest
	tr, ok := h.transitionRequest(c, &req, &req.ObservedRequest)
	if !ok {
		return
	}
	tr.Reason = req.Reason
	h.run(c, h.cmds.Reject, tr)
}

// @Summary Update vehicle
// @Description Update Part-B transport details of an active E-Way Bill
// @Tags transitions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param number path string true "Document number"
// @Param request body reqdto.UpdateVehicleRequest true "Vehicle update"
// @Success 200 {object} resdto.TransitionResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} resdto.TransitionResponse
// @Failure 502 {object} httperr.Response
// @Failure 504 {object} httperr.Response
// @Router /documents/{number}/vehicle [post]
func (h *DocumentHandler) UpdateVehicle(c *gin.Context) {
	var req reqdto.UpdateVehicleRequest
	tr, ok := h.transitionRequest(c, &req, &req.ObservedRequest)
	if !ok {
		return
	}
	vehicle, err := req.ToInput()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}
	tr.Vehicle = vehicle
	h.run(c, h.cmds.UpdateVehicle, tr)
}

// @Summary Cancel document
// @Description Cancel an active E-Way Bill or a generated E-Invoice within 24 hours of generation
// @Tags transitions
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param number path string true "Document number"
// @Param request body reqdto.CancelRequest true "Cancel request"
// @Success 200 {object} resdto.TransitionResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} resdto.TransitionResponse
// @Failure 502 {object} httperr.Response
// @Failure 504 {object} httperr.Response
// @Router /documents/{number}/cancel [post]
func (h *DocumentHandler) Cancel(c *gin.Context) {
	var req reqdto.CancelRequest
	tr, ok := h.transitionRequest(c, &req, &req.ObservedRequest)
	if !ok {
		return
	}
	tr.Cancel = req.ToInput()
	h.run(c, h.cmds.Cancel, tr)
}

// @Summary Expire E-Way Bill
// @Description Mark an active E-Way Bill whose validity has lapsed as expired
// @Tags transitions
// @Produce json
// @Security BearerAuth
// @Param number path string true "Document number"
// @Success 200 {object} resdto.TransitionResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Failure 422 {object} resdto.TransitionResponse
// @Router /documents/{number}/expire [post]
func (h *DocumentHandler) Expire(c *gin.Context) {
	var req reqdto.AcceptRequest
	tr, ok := h.transitionRequest(c, &req, &req.ObservedRequest)
	if !ok {
		return
	}
	h.run(c, h.cmds.Expire, tr)
}

type transitionFunc func(ctx context.Context, req commands.TransitionRequest) (*commands.Result, error)

// transitionRequest binds the body into req and fills the fields every transition shares.
func (h *DocumentHandler) transitionRequest(c *gin.Context, req any, observed *reqdto.ObservedRequest) (commands.TransitionRequest, bool) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errUnauthorized, "Unauthorized", nil)
		return commands.TransitionRequest{}, false
	}
	if err := bindOptionalJSON(c, req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return commands.TransitionRequest{}, false
	}
	return commands.TransitionRequest{
		DocumentNumber: c.Param("number"),
		Actor:          actor,
		ObservedAt:     observed.ObservedAt,
	}, true
}

func (h *DocumentHandler) run(c *gin.Context, fn transitionFunc, req commands.TransitionRequest) {
	result, err := fn(c.Request.Context(), req)
	if err != nil {
		abortWithEngineError(c, err)
		return
	}
	respondResult(c, http.StatusOK, result)
}

func respondResult(c *gin.Context, appliedStatus int, result *commands.Result) {
	status := appliedStatus
	if !result.Applied {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, resdto.FromResult(result))
}
