package response

import (
	"gst-lifecycle/internal/domain/document"
)

type TaxComputeResponse struct {
	Items  []document.LineItem `json:"items"`
	Totals document.Totals     `json:"totals"`
}
