package request

import (
	"time"

	"gst-lifecycle/internal/domain/document"
	"gst-lifecycle/internal/domain/tax"
	"gst-lifecycle/internal/pkg/errs"
	"gst-lifecycle/internal/usecase/commands"

	"github.com/jinzhu/copier"
)

type PartyRequest struct {
	GSTIN     string `json:"gstin"`
	Name      string `json:"name"`
	Address   string `json:"address"`
	StateCode string `json:"state_code"`
	Pincode   string `json:"pincode"`
}

type LineItemRequest struct {
	ProductName  string `json:"product_name"`
	HSNCode      string `json:"hsn_code"`
	Quantity     string `json:"quantity"`
	Unit         string `json:"unit"`
	TaxableValue string `json:"taxable_value" binding:"required"`
	CGSTRate     string `json:"cgst_rate"`
	SGSTRate     string `json:"sgst_rate"`
	IGSTRate     string `json:"igst_rate"`
}

type AdjustmentsRequest struct {
	RoundOff     string `json:"round_off"`
	Cess         string `json:"cess"`
	OtherCharges string `json:"other_charges"`
}

// VehicleRequest carries Part-B details. Completeness is judged by the transition rules so that
// an incomplete request is audited as a denial rather than dropped at the door.
type VehicleRequest struct {
	VehicleNumber string `json:"vehicle_number"`
	TransportMode string `json:"transport_mode"`
	DistanceKm    *int   `json:"distance_km" binding:"omitempty,min=0"`
	TransporterID string `json:"transporter_id"`
	FromPlace     string `json:"from_place"`
	FromState     string `json:"from_state"`
	ReasonCode    string `json:"reason_code"`
	Remarks       string `json:"remarks"`
}

type GenerateDocumentRequest struct {
	Kind         string             `json:"kind" binding:"required,oneof=EWAY_BILL E_INVOICE"`
	SourceRef    string             `json:"source_ref" binding:"required,max=64"`
	DocumentDate string             `json:"document_date"`
	Seller       PartyRequest       `json:"seller"`
	Buyer        PartyRequest       `json:"buyer"`
	Items        []LineItemRequest  `json:"items" binding:"dive"`
	Transport    *VehicleRequest    `json:"transport"`
	Adjustments  AdjustmentsRequest `json:"adjustments"`
}

func (r *GenerateDocumentRequest) ToCommand(actor string) (commands.GenerateRequest, error) {
	var cmd commands.GenerateRequest
	if err := copier.Copy(&cmd, r); err != nil {
		return commands.GenerateRequest{}, errs.Wrap(err, "map generate request")
	}
	cmd.Kind = document.Kind(r.Kind)
	cmd.Actor = actor
	return cmd, nil
}

type ReceiveDocumentRequest struct {
	DocumentNumber string `json:"document_number" binding:"required,max=64"`
}

// ObservedRequest is embedded by every transition on an existing document.
type ObservedRequest struct {
	ObservedAt *time.Time `json:"observed_at"`
}

type AcceptRequest struct {
	ObservedRequest
}

type RejectRequest struct {
	ObservedRequest
	Reason string `json:"reason"`
}

type UpdateVehicleRequest struct {
	ObservedRequest
	VehicleRequest
}

type CancelRequest struct {
	ObservedRequest
	ReasonCode string `json:"reason_code"`
	Remarks    string `json:"remarks"`
}

func (r *UpdateVehicleRequest) ToInput() (*commands.VehicleInput, error) {
	var in commands.VehicleInput
	if err := copier.Copy(&in, &r.VehicleRequest); err != nil {
		return nil, errs.Wrap(err, "map vehicle request")
	}
	return &in, nil
}

func (r *CancelRequest) ToInput() *commands.CancelInput {
	return &commands.CancelInput{ReasonCode: r.ReasonCode, Remarks: r.Remarks}
}

type TaxComputeRequest struct {
	Items       []LineItemRequest  `json:"items" binding:"required,min=1,dive"`
	Adjustments AdjustmentsRequest `json:"adjustments"`
}

func (r *TaxComputeRequest) ToDomain() ([]document.LineItem, tax.Adjustments, error) {
	var items []document.LineItem
	if err := copier.Copy(&items, &r.Items); err != nil {
		return nil, tax.Adjustments{}, errs.Wrap(err, "map line items")
	}
	var adj tax.Adjustments
	if err := copier.Copy(&adj, &r.Adjustments); err != nil {
		return nil, tax.Adjustments{}, errs.Wrap(err, "map adjustments")
	}
	return items, adj, nil
}
