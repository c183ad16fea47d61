package api

import (
	"errors"
	"io"
	"net/http"

	"gst-lifecycle/internal/handler/httperr"
	"gst-lifecycle/internal/pkg/errs"
	"gst-lifecycle/internal/usecase/commands"
	"gst-lifecycle/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

var errUnauthorized = errs.New("missing authenticated actor")

type errorDetail struct {
	Retryable bool `json:"retryable"`
}

// abortWithEngineError maps engine and query faults onto HTTP statuses.
func abortWithEngineError(c *gin.Context, err error) {
	status, msg := http.StatusInternalServerError, "Internal server error"
	switch {
	case errs.Is(err, commands.ErrValidation), errs.Is(err, queries.ErrInvalidCursor):
		status, msg = http.StatusBadRequest, "Invalid request"
	case errs.Is(err, commands.ErrDocumentNotFound), errs.Is(err, queries.ErrDocumentNotFound):
		status, msg = http.StatusNotFound, "Document not found"
	case errs.Is(err, commands.ErrVersionConflict):
		status, msg = http.StatusConflict, "Document was modified concurrently"
	case errs.Is(err, commands.ErrGatewayTimeout):
		status, msg = http.StatusGatewayTimeout, "Compliance gateway timed out"
	case errs.Is(err, commands.ErrGatewayAuth):
		status, msg = http.StatusBadGateway, "Compliance gateway rejected our credentials"
	case errs.Is(err, commands.ErrGatewayFault):
		status, msg = http.StatusBadGateway, "Compliance gateway call failed"
	}
	httperr.AbortWithError(c, status, err, msg, errorDetail{Retryable: commands.IsRetryable(err)})
}

// bindOptionalJSON accepts an empty body.
func bindOptionalJSON(c *gin.Context, obj any) error {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}
