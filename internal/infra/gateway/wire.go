package gateway

import (
	"bytes"
	"encoding/json"
	"strings"
	"time"

	"gst-lifecycle/internal/domain/document"
	"gst-lifecycle/internal/pkg/errs"
	"gst-lifecycle/internal/usecase/shared"
)

// flexString accepts both "1" and 1; the portal is inconsistent across endpoints.
type flexString string

func (c *flexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*c = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*c = flexString(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return errs.Wrapf(err, "status code %s", data)
	}
	*c = flexString(n.String())
	return nil
}

// portalTimeLayouts covers the layouts the portal has been seen to emit. Zone-less layouts are
// read as Indian Standard Time.
var portalTimeLayouts = []string{
	time.RFC3339Nano,
	"02/01/2006 03:04:05 PM",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04:05",
}

var ist = time.FixedZone("IST", 5*60*60+30*60)

type portalTime struct {
	t *time.Time
}

func (p *portalTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
			return nil
		}
		return errs.Wrapf(err, "timestamp %s", data)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range portalTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, ist); err == nil {
			u := t.UTC()
			p.t = &u
			return nil
		}
	}
	return errs.Newf("unrecognised timestamp %q", s)
}

type envelope struct {
	StatusCode     flexString       `json:"status_code"`
	Description    string           `json:"description"`
	CorrelationID  string           `json:"correlation_id"`
	DocumentNumber string           `json:"document_number"`
	AckNumber      flexString       `json:"ack_number"`
	ValidUntil     portalTime       `json:"valid_until"`
	Document       *fetchedDocument `json:"document,omitempty"`
}

type fetchedDocument struct {
	Kind    document.Kind    `json:"kind"`
	Payload document.Payload `json:"payload"`
}

func (e envelope) response(headerCorrelationID string) shared.GatewayResponse {
	correlationID := e.CorrelationID
	if correlationID == "" {
		correlationID = headerCorrelationID
	}
	return shared.GatewayResponse{
		StatusCode:     string(e.StatusCode),
		Description:    strings.TrimSpace(e.Description),
		CorrelationID:  correlationID,
		DocumentNumber: strings.TrimSpace(e.DocumentNumber),
		AckNumber:      string(e.AckNumber),
		ValidUntil:     e.ValidUntil.t,
	}
}

type authRequest struct {
	Username     string `json:"username"`
	Password     string `json:"password"`
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	GSTIN        string `json:"gstin"`
}

type authResponse struct {
	StatusCode  flexString `json:"status_code"`
	Description string     `json:"description"`
	Token       string     `json:"token"`
	ExpiresIn   int64      `json:"expires_in"`
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

type vehicleRequest struct {
	VehicleNumber string `json:"vehicle_number"`
	TransportMode string `json:"transport_mode"`
	DistanceKm    int    `json:"distance_km"`
	TransporterID string `json:"transporter_id,omitempty"`
	FromPlace     string `json:"from_place,omitempty"`
	FromState     string `json:"from_state,omitempty"`
	ReasonCode    string `json:"reason_code,omitempty"`
	Remarks       string `json:"remarks,omitempty"`
}

func newVehicleRequest(v shared.VehiclePayload) vehicleRequest {
	return vehicleRequest{
		VehicleNumber: v.VehicleNumber,
		TransportMode: string(v.TransportMode),
		DistanceKm:    v.DistanceKm,
		TransporterID: v.TransporterID,
		FromPlace:     v.FromPlace,
		FromState:     v.FromState,
		ReasonCode:    v.ReasonCode,
		Remarks:       v.Remarks,
	}
}

type cancelRequest struct {
	Kind       string `json:"kind"`
	ReasonCode string `json:"reason_code"`
	Remarks    string `json:"remarks,omitempty"`
}

type generateRequest struct {
	Kind    string           `json:"kind"`
	Payload document.Payload `json:"payload"`
}

func tokenExpiry(now time.Time, expiresIn int64) time.Time {
	if expiresIn <= 0 {
		return time.Time{}
	}
	return now.Add(time.Duration(expiresIn) * time.Second)
}
