package commands

import (
	"context"
	"strings"
	"time"

	"gst-lifecycle/internal/domain/audit"
	"gst-lifecycle/internal/domain/document"
	"gst-lifecycle/internal/domain/rules"
	"gst-lifecycle/internal/domain/tax"
	"gst-lifecycle/internal/pkg/clock"
	"gst-lifecycle/internal/pkg/errs"
	"gst-lifecycle/internal/usecase/shared"
)

var (
	ErrValidation       = errs.New("invalid transition request")
	ErrDocumentNotFound = errs.New("transition target document not found")
	ErrGatewayAuth      = errs.New("gateway refused engine credentials")
	ErrGatewayTimeout   = errs.New("gateway call timed out")
	ErrGatewayFault     = errs.New("gateway call failed")
	ErrVersionConflict  = errs.New("document was modified concurrently")
	ErrStoreFailure     = errs.New("document store failure")
)

// IsRetryable reports whether the caller may retry after reloading the document.
// Rule denials and gateway rejections are never retryable; they are not errors.
func IsRetryable(err error) bool {
	return errs.Is(err, ErrGatewayTimeout) ||
		errs.Is(err, ErrGatewayFault) ||
		errs.Is(err, ErrVersionConflict)
}

// ReasonGatewayRejected is the Result reason when the authority declines a submission.
const ReasonGatewayRejected = "gateway-rejected"

// Result of an attempt that reached a verdict. Applied=false covers rule denials and
// gateway rejections; faults are returned as errors instead.
type Result struct {
	Applied  bool
	Document *document.Document
	Audit    *audit.Record
	Reason   string
	Message  string
}

type VehicleInput struct {
	VehicleNumber string
	TransportMode string
	// nil means not supplied; 0 is a valid distance.
	DistanceKm    *int
	TransporterID string
	FromPlace     string
	FromState     string
	ReasonCode    string
	Remarks       string
}

type CancelInput struct {
	ReasonCode string
	Remarks    string
}

// TransitionRequest targets an existing document. The engine operation invoked decides the
// transition kind; only the matching payload field is read.
type TransitionRequest struct {
	DocumentNumber string
	Actor          string
	Reason         string
	Vehicle        *VehicleInput
	Cancel         *CancelInput
	// ObservedAt is the caller's view of when the current status began. It is logged when it
	// disagrees with the stored anchor and never used to decide.
	ObservedAt *time.Time
}

type GenerateRequest struct {
	Kind         document.Kind
	SourceRef    string
	DocumentDate string
	Seller       document.Party
	Buyer        document.Party
	Items        []document.LineItem
	Transport    *VehicleInput
	Adjustments  tax.Adjustments
	Actor        string
}

type ReceiveRequest struct {
	DocumentNumber string
	Actor          string
}

type LifecycleCommands interface {
	Accept(ctx context.Context, req TransitionRequest) (*Result, error)
	Reject(ctx context.Context, req TransitionRequest) (*Result, error)
	UpdateVehicle(ctx context.Context, req TransitionRequest) (*Result, error)
	Cancel(ctx context.Context, req TransitionRequest) (*Result, error)
	Expire(ctx context.Context, req TransitionRequest) (*Result, error)
	Generate(ctx context.Context, req GenerateRequest) (*Result, error)
	Receive(ctx context.Context, req ReceiveRequest) (*Result, error)
}

type EngineOptions struct {
	GatewayTimeout time.Duration
	SuccessCodes   []string
}

type lifecycleEngineImpl struct {
	store        shared.DocumentStore
	audits       shared.AuditLog
	gateway      shared.ComplianceGateway
	credentials  shared.CredentialsProvider
	clock        clock.Clock
	timeout      time.Duration
	successCodes map[string]struct{}
}

func NewLifecycleEngine(
	store shared.DocumentStore,
	audits shared.AuditLog,
	gateway shared.ComplianceGateway,
	credentials shared.CredentialsProvider,
	clock clock.Clock,
	opts EngineOptions,
) LifecycleCommands {
	codes := make(map[string]struct{}, len(opts.SuccessCodes))
	for _, c := range opts.SuccessCodes {
		if c = strings.TrimSpace(c); c != "" {
			codes[c] = struct{}{}
		}
	}
	if len(codes) == 0 {
		codes["1"] = struct{}{}
	}
	timeout := opts.GatewayTimeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &lifecycleEngineImpl{
		store:        store,
		audits:       audits,
		gateway:      gateway,
		credentials:  credentials,
		clock:        clock,
		timeout:      timeout,
		successCodes: codes,
	}
}

func (e *lifecycleEngineImpl) Accept(ctx context.Context, req TransitionRequest) (*Result, error) {
	return e.transition(ctx, req, transitionPlan{
		kind:  document.TransitionAccept,
		check: rules.CanAccept,
		submit: func(ctx context.Context, doc *document.Document, token shared.Token) (shared.GatewayResponse, error) {
			return e.gateway.AcceptDocument(ctx, doc.Number(), token)
		},
		apply: func(doc *document.Document, _ shared.GatewayResponse, now time.Time) *document.Document {
			return doc.Accepted(now)
		},
	})
}

func (e *lifecycleEngineImpl) Reject(ctx context.Context, req TransitionRequest) (*Result, error) {
	reason := strings.TrimSpace(req.Reason)
	return e.transition(ctx, req, transitionPlan{
		kind: document.TransitionReject,
		check: func(f rules.Facts) rules.Decision {
			return rules.CanReject(f, reason)
		},
		submit: func(ctx context.Context, doc *document.Document, token shared.Token) (shared.GatewayResponse, error) {
			return e.gateway.RejectDocument(ctx, doc.Number(), reason, token)
		},
		apply: func(doc *document.Document, _ shared.GatewayResponse, now time.Time) *document.Document {
			return doc.Rejected(reason, now)
		},
	})
}

func (e *lifecycleEngineImpl) UpdateVehicle(ctx context.Context, req TransitionRequest) (*Result, error) {
	if req.Vehicle == nil {
		return nil, errs.Wrap(ErrValidation, "vehicle details are required")
	}
	v := *req.Vehicle
	return e.transition(ctx, req, transitionPlan{
		kind: document.TransitionUpdateVehicle,
		check: func(f rules.Facts) rules.Decision {
			return rules.CanUpdateVehicle(f, rules.VehicleInput{
				VehicleNumber: v.VehicleNumber,
				TransportMode: v.TransportMode,
				DistanceKm:    v.DistanceKm,
			})
		},
		submit: func(ctx context.Context, doc *document.Document, token shared.Token) (shared.GatewayResponse, error) {
			return e.gateway.UpdateVehicle(ctx, doc.Number(), toVehiclePayload(v), token)
		},
		apply: func(doc *document.Document, _ shared.GatewayResponse, now time.Time) *document.Document {
			p := toVehiclePayload(v)
			return doc.VehicleUpdated(document.VehicleUpdate{
				VehicleNumber: p.VehicleNumber,
				TransportMode: p.TransportMode,
				DistanceKm:    p.DistanceKm,
				TransporterID: p.TransporterID,
				FromPlace:     p.FromPlace,
				FromState:     p.FromState,
				ReasonCode:    p.ReasonCode,
				Remarks:       p.Remarks,
				UpdatedBy:     req.Actor,
			}, now)
		},
	})
}

func (e *lifecycleEngineImpl) Cancel(ctx context.Context, req TransitionRequest) (*Result, error) {
	if req.Cancel == nil {
		return nil, errs.Wrap(ErrValidation, "cancellation details are required")
	}
	c := *req.Cancel
	return e.transition(ctx, req, transitionPlan{
		kind: document.TransitionCancel,
		check: func(f rules.Facts) rules.Decision {
			return rules.CanCancel(f, rules.CancelInput{ReasonCode: c.ReasonCode, Remarks: c.Remarks})
		},
		submit: func(ctx context.Context, doc *document.Document, token shared.Token) (shared.GatewayResponse, error) {
			return e.gateway.CancelDocument(ctx, doc.Kind(), doc.Number(), shared.CancelPayload{
				ReasonCode: strings.TrimSpace(c.ReasonCode),
				Remarks:    strings.TrimSpace(c.Remarks),
			}, token)
		},
		apply: func(doc *document.Document, _ shared.GatewayResponse, now time.Time) *document.Document {
			return doc.Cancelled(strings.TrimSpace(c.ReasonCode), c.Remarks, now)
		},
	})
}

// Expire is a local fact: the validity lapse needs no confirmation from the gateway.
func (e *lifecycleEngineImpl) Expire(ctx context.Context, req TransitionRequest) (*Result, error) {
	return e.transition(ctx, req, transitionPlan{
		kind:  document.TransitionExpire,
		check: rules.CanExpire,
		apply: func(doc *document.Document, _ shared.GatewayResponse, now time.Time) *document.Document {
			return doc.Expired(now)
		},
	})
}

func (e *lifecycleEngineImpl) Generate(ctx context.Context, req GenerateRequest) (*Result, error) {
	sourceRef := strings.TrimSpace(req.SourceRef)
	if sourceRef == "" {
		return nil, errs.Wrap(ErrValidation, "source reference is required")
	}
	now := e.clock.Now()
	// Until the gateway assigns a number, the attempt is traced under its source reference.
	tr := newTrace(document.TransitionGenerate, sourceRef, req.Actor)

	decision := rules.CanGenerate(toGenerateInput(req))
	if !decision.Allowed {
		return e.deny(ctx, tr, nil, decision, now), nil
	}

	items, totals := document.PriceLines(req.Items, req.Adjustments)
	payload := document.Payload{
		SourceRef:    sourceRef,
		DocumentDate: req.DocumentDate,
		Seller:       req.Seller,
		Buyer:        req.Buyer,
		Items:        items,
		Totals:       totals,
	}
	if req.Transport != nil {
		payload.Transport = toTransport(*req.Transport)
	}

	resp, res, err := e.submit(ctx, tr, nil, now, func(ctx context.Context, token shared.Token) (shared.GatewayResponse, error) {
		return e.gateway.GenerateDocument(ctx, shared.GeneratePayload{Kind: req.Kind, Payload: payload}, token)
	})
	if res != nil || err != nil {
		return res, err
	}
	if strings.TrimSpace(resp.DocumentNumber) == "" {
		return nil, e.fail(ctx, tr, audit.FailureGateway, resp, errs.Mark(errs.New("gateway accepted generation without a document number"), ErrGatewayFault), now)
	}

	payload.AckNumber = resp.AckNumber
	doc, err := document.NewGeneratedDocument(resp.DocumentNumber, req.Kind, payload, resp.ValidUntil, now)
	if err != nil {
		return nil, e.fail(ctx, tr, audit.FailureGateway, resp, errs.Mark(err, ErrGatewayFault), now)
	}
	tr.number = doc.Number()

	return e.insert(ctx, tr, doc, resp, now)
}

// Receive registers an E-Way Bill raised against us. The receipt time recorded here, not any
// time reported by the counterparty, anchors the acceptance window.
func (e *lifecycleEngineImpl) Receive(ctx context.Context, req ReceiveRequest) (*Result, error) {
	number := strings.TrimSpace(req.DocumentNumber)
	if number == "" {
		return nil, errs.Wrap(ErrValidation, "document number is required")
	}
	now := e.clock.Now()
	tr := newTrace(document.TransitionReceive, number, req.Actor)

	var fetched *shared.FetchedDocument
	resp, res, err := e.submit(ctx, tr, nil, now, func(ctx context.Context, token shared.Token) (shared.GatewayResponse, error) {
		f, err := e.gateway.FetchDocument(ctx, number, token)
		if err != nil {
			return shared.GatewayResponse{}, err
		}
		fetched = f
		return f.Response, nil
	})
	if res != nil || err != nil {
		return res, err
	}

	if fetched == nil {
		return nil, e.fail(ctx, tr, audit.FailureGateway, resp, errs.Mark(errs.New("gateway returned no document"), ErrGatewayFault), now)
	}
	kind := fetched.Kind
	if kind == "" {
		kind = document.KindEWayBill
	}
	// The kind is only known from the fetched copy, so the rule runs after the round trip.
	if decision := rules.CanReceive(kind); !decision.Allowed {
		return e.deny(ctx, tr, nil, decision, now), nil
	}

	doc, err := document.NewReceivedDocument(number, fetched.Payload, fetched.ValidUntil, now)
	if err != nil {
		return nil, errs.Wrap(ErrValidation, err.Error())
	}
	return e.insert(ctx, tr, doc, resp, now)
}
