package document

import (
	"time"

	"gst-lifecycle/internal/domain/tax"
)

type Party struct {
	GSTIN     string `json:"gstin"`
	Name      string `json:"name"`
	Address   string `json:"address,omitempty"`
	StateCode string `json:"state_code,omitempty"`
	Pincode   string `json:"pincode,omitempty"`
}

// LineItem keeps the submitted inputs verbatim next to the computed amounts.
type LineItem struct {
	ProductName  string      `json:"product_name"`
	HSNCode      string      `json:"hsn_code"`
	Quantity     string      `json:"quantity"`
	Unit         string      `json:"unit,omitempty"`
	TaxableValue string      `json:"taxable_value"`
	CGSTRate     string      `json:"cgst_rate,omitempty"`
	SGSTRate     string      `json:"sgst_rate,omitempty"`
	IGSTRate     string      `json:"igst_rate,omitempty"`
	UnitPrice    string      `json:"unit_price"`
	Tax          tax.ItemTax `json:"tax"`
}

func (li LineItem) TaxInput() tax.ItemInput {
	return tax.ItemInput{
		TaxableValue: li.TaxableValue,
		CGSTRate:     li.CGSTRate,
		SGSTRate:     li.SGSTRate,
		IGSTRate:     li.IGSTRate,
	}
}

// Priced returns a copy of li with its tax and unit price computed.
func (li LineItem) Priced() LineItem {
	li.Tax = tax.ComputeItemTax(li.TaxInput())
	li.UnitPrice = tax.ComputeUnitPrice(li.TaxableValue, li.Quantity)
	return li
}

type Totals struct {
	tax.Totals
	RoundOff          string `json:"round_off"`
	Cess              string `json:"cess"`
	OtherCharges      string `json:"other_charges"`
	FinalInvoiceValue string `json:"final_invoice_value"`
}

// Transport is the Part-B detail of an E-Way Bill.
type Transport struct {
	Mode          TransportMode `json:"mode"`
	VehicleNumber string        `json:"vehicle_number,omitempty"`
	TransporterID string        `json:"transporter_id,omitempty"`
	DistanceKm    int           `json:"distance_km"`
}

// VehicleUpdate is one entry of the append-only Part-B history.
type VehicleUpdate struct {
	VehicleNumber string        `json:"vehicle_number"`
	TransportMode TransportMode `json:"transport_mode"`
	DistanceKm    int           `json:"distance_km"`
	TransporterID string        `json:"transporter_id,omitempty"`
	FromPlace     string        `json:"from_place,omitempty"`
	FromState     string        `json:"from_state,omitempty"`
	ReasonCode    string        `json:"reason_code,omitempty"`
	Remarks       string        `json:"remarks,omitempty"`
	UpdatedAt     time.Time     `json:"updated_at"`
	UpdatedBy     string        `json:"updated_by,omitempty"`
}

type Cancellation struct {
	ReasonCode  string    `json:"reason_code"`
	Remarks     string    `json:"remarks,omitempty"`
	CancelledAt time.Time `json:"cancelled_at"`
}

type Payload struct {
	SourceRef      string          `json:"source_ref"`
	DocumentDate   string          `json:"document_date,omitempty"`
	Seller         Party           `json:"seller"`
	Buyer          Party           `json:"buyer"`
	Items          []LineItem      `json:"items"`
	Totals         Totals          `json:"totals"`
	Transport      *Transport      `json:"transport,omitempty"`
	VehicleHistory []VehicleUpdate `json:"vehicle_history,omitempty"`
	RejectReason   string          `json:"reject_reason,omitempty"`
	Cancellation   *Cancellation   `json:"cancellation,omitempty"`
	AckNumber      string          `json:"ack_number,omitempty"`
}

// Clone returns a deep copy so that a derived snapshot never shares slices or pointers with its origin.
func (p Payload) Clone() Payload {
	out := p
	if p.Items != nil {
		out.Items = append([]LineItem(nil), p.Items...)
	}
	if p.VehicleHistory != nil {
		out.VehicleHistory = append([]VehicleUpdate(nil), p.VehicleHistory...)
	}
	if p.Transport != nil {
		t := *p.Transport
		out.Transport = &t
	}
	if p.Cancellation != nil {
		c := *p.Cancellation
		out.Cancellation = &c
	}
	return out
}

// PriceLines computes every line and the invoice totals, including the final value after adjustments.
func PriceLines(items []LineItem, adj tax.Adjustments) ([]LineItem, Totals) {
	priced := make([]LineItem, len(items))
	inputs := make([]tax.ItemInput, len(items))
	for i, li := range items {
		priced[i] = li.Priced()
		inputs[i] = li.TaxInput()
	}

	base := tax.ComputeTotals(inputs)
	return priced, Totals{
		Totals:            base,
		RoundOff:          tax.Normalize(adj.RoundOff),
		Cess:              tax.Normalize(adj.Cess),
		OtherCharges:      tax.Normalize(adj.OtherCharges),
		FinalInvoiceValue: tax.ComputeFinalInvoiceValue(base.TotalInvoiceValue, adj),
	}
}
