//go:build unit || e2e

package builder

import (
	reqdto "gst-lifecycle/internal/handler/dto/request"
)

// NewGenerateRequestDTO mirrors DefaultPayload as an API request for an E-Way Bill.
func NewGenerateRequestDTO() reqdto.GenerateDocumentRequest {
	p := DefaultPayload()
	distance := p.Transport.DistanceKm
	return reqdto.GenerateDocumentRequest{
		Kind:         "EWAY_BILL",
		SourceRef:    p.SourceRef,
		DocumentDate: p.DocumentDate,
		Seller: reqdto.PartyRequest{
			GSTIN:     p.Seller.GSTIN,
			Name:      p.Seller.Name,
			StateCode: p.Seller.StateCode,
			Pincode:   p.Seller.Pincode,
		},
		Buyer: reqdto.PartyRequest{
			GSTIN:     p.Buyer.GSTIN,
			Name:      p.Buyer.Name,
			StateCode: p.Buyer.StateCode,
			Pincode:   p.Buyer.Pincode,
		},
		Items: []reqdto.LineItemRequest{{
			ProductName:  "Steel Rods",
			HSNCode:      "7214",
			Quantity:     "10",
			Unit:         "NOS",
			TaxableValue: "1000.00",
			CGSTRate:     "9",
			SGSTRate:     "9",
		}},
		Transport: &reqdto.VehicleRequest{
			VehicleNumber: p.Transport.VehicleNumber,
			TransportMode: string(p.Transport.Mode),
			DistanceKm:    &distance,
		},
	}
}

func NewVehicleRequestDTO() reqdto.UpdateVehicleRequest {
	distance := 0
	return reqdto.UpdateVehicleRequest{
		VehicleRequest: reqdto.VehicleRequest{
			VehicleNumber: "ka05mn6789",
			TransportMode: "ROAD",
			DistanceKm:    &distance,
			FromPlace:     "Bengaluru",
			FromState:     "29",
			ReasonCode:    "2",
			Remarks:       "Breakdown",
		},
	}
}
