package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"gst-lifecycle/internal/domain/audit"
	"gst-lifecycle/internal/domain/document"
	"gst-lifecycle/internal/domain/rules"
	"gst-lifecycle/internal/domain/tax"
	"gst-lifecycle/internal/infra"
	"gst-lifecycle/internal/pkg/errs"
	"gst-lifecycle/internal/pkg/patch"
	"gst-lifecycle/internal/usecase/shared"
)

type gatewayCall func(ctx context.Context, token shared.Token) (shared.GatewayResponse, error)

// transitionPlan describes one transition on an existing document. A nil submit means the
// transition is applied locally without a gateway round trip.
type transitionPlan struct {
	kind   document.Transition
	check  func(rules.Facts) rules.Decision
	submit func(ctx context.Context, doc *document.Document, token shared.Token) (shared.GatewayResponse, error)
	apply  func(doc *document.Document, resp shared.GatewayResponse, now time.Time) *document.Document
}

type trace struct {
	transition document.Transition
	number     string
	actor      string
}

func newTrace(transition document.Transition, number, actor string) *trace {
	return &trace{transition: transition, number: number, actor: actor}
}

func (t *trace) attrs() []any {
	return []any{
		slog.String("document_number", t.number),
		slog.String("transition", t.transition.String()),
		slog.String("actor", t.actor),
	}
}

func (e *lifecycleEngineImpl) transition(ctx context.Context, req TransitionRequest, plan transitionPlan) (*Result, error) {
	number := strings.TrimSpace(req.DocumentNumber)
	if number == "" {
		return nil, errs.Wrap(ErrValidation, "document number is required")
	}
	now := e.clock.Now()
	tr := newTrace(plan.kind, number, req.Actor)

	doc, err := e.store.Get(ctx, number)
	if err != nil {
		return nil, e.storeFailure(ctx, tr, shared.GatewayResponse{}, err, now)
	}
	e.checkObservedAt(ctx, tr, doc, req.ObservedAt)

	decision := plan.check(rules.FactsOf(doc, now))
	if !decision.Allowed {
		return e.deny(ctx, tr, doc, decision, now), nil
	}

	var resp shared.GatewayResponse
	if plan.submit != nil {
		r, res, err := e.submit(ctx, tr, doc, now, func(ctx context.Context, token shared.Token) (shared.GatewayResponse, error) {
			return plan.submit(ctx, doc, token)
		})
		if res != nil || err != nil {
			return res, err
		}
		resp = r
	}

	next := plan.apply(doc, resp, now)
	stored, err := e.store.ConditionalReplace(ctx, number, doc.Version(), next)
	if err != nil {
		if plan.submit != nil {
			slog.ErrorContext(ctx, "gateway applied the transition but the local snapshot was not updated",
				append(tr.attrs(),
					slog.String("correlation_id", resp.CorrelationID),
					slog.Int64("expected_version", doc.Version()),
					slog.Any("error", err))...)
		}
		return nil, e.storeFailure(ctx, tr, resp, err, now)
	}

	return e.applied(ctx, tr, stored, resp, now), nil
}

// submit authenticates and performs call under the gateway timeout. Exactly one of the three
// results is meaningful: a success response, a rejection Result, or a fault.
func (e *lifecycleEngineImpl) submit(
	ctx context.Context,
	tr *trace,
	doc *document.Document,
	now time.Time,
	call gatewayCall,
) (shared.GatewayResponse, *Result, error) {
	token, err := e.authenticate(ctx)
	if err != nil {
		if isTimeout(err) {
			return shared.GatewayResponse{}, nil, e.fail(ctx, tr, audit.FailureTimeout, shared.GatewayResponse{}, errs.Mark(err, ErrGatewayTimeout), now)
		}
		if errs.Is(err, shared.ErrAuthFailed) {
			return shared.GatewayResponse{}, nil, e.fail(ctx, tr, audit.FailureAuth, shared.GatewayResponse{}, errs.Mark(err, ErrGatewayAuth), now)
		}
		// 5xx or transport trouble on /auth says nothing about the credentials.
		return shared.GatewayResponse{}, nil, e.fail(ctx, tr, audit.FailureGateway, shared.GatewayResponse{}, errs.Mark(err, ErrGatewayFault), now)
	}

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := call(callCtx, token)
	if err != nil {
		if isTimeout(err) || errors.Is(callCtx.Err(), context.DeadlineExceeded) {
			return shared.GatewayResponse{}, nil, e.fail(ctx, tr, audit.FailureTimeout, resp, errs.Mark(err, ErrGatewayTimeout), now)
		}
		return shared.GatewayResponse{}, nil, e.fail(ctx, tr, audit.FailureGateway, resp, errs.Mark(err, ErrGatewayFault), now)
	}

	if !e.isSuccess(resp.StatusCode) {
		return resp, e.gatewayRejected(ctx, tr, doc, resp, now), nil
	}
	return resp, nil, nil
}

func (e *lifecycleEngineImpl) authenticate(ctx context.Context) (shared.Token, error) {
	creds, err := e.credentials.Credentials(ctx)
	if err != nil {
		return shared.Token{}, errs.Mark(errs.Wrap(err, "load gateway credentials"), shared.ErrAuthFailed)
	}

	authCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	token, err := e.gateway.Authenticate(authCtx, creds)
	if err != nil {
		return shared.Token{}, errs.Wrap(err, "authenticate with gateway")
	}
	return token, nil
}

func (e *lifecycleEngineImpl) isSuccess(code string) bool {
	_, ok := e.successCodes[strings.TrimSpace(code)]
	return ok
}

func isTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

func (e *lifecycleEngineImpl) insert(ctx context.Context, tr *trace, doc *document.Document, resp shared.GatewayResponse, now time.Time) (*Result, error) {
	stored, err := e.store.Insert(ctx, doc)
	if err != nil {
		return nil, e.storeFailure(ctx, tr, resp, err, now)
	}
	return e.applied(ctx, tr, stored, resp, now), nil
}

func (e *lifecycleEngineImpl) storeFailure(ctx context.Context, tr *trace, resp shared.GatewayResponse, err error, now time.Time) error {
	switch {
	case infra.IsKind(err, infra.KindNotFound):
		return e.fail(ctx, tr, audit.FailureNotFound, resp, errs.Mark(err, ErrDocumentNotFound), now)
	case infra.IsKind(err, infra.KindVersionConflict), infra.IsKind(err, infra.KindDuplicateKey):
		return e.fail(ctx, tr, audit.FailureConflict, resp, errs.Mark(err, ErrVersionConflict), now)
	default:
		return e.fail(ctx, tr, audit.FailureStore, resp, errs.Mark(err, ErrStoreFailure), now)
	}
}

func (e *lifecycleEngineImpl) checkObservedAt(ctx context.Context, tr *trace, doc *document.Document, observed *time.Time) {
	if observed == nil || observed.Equal(doc.StatusSince()) {
		return
	}
	slog.WarnContext(ctx, "client-observed status time differs from the stored record; using the stored time",
		append(tr.attrs(),
			slog.Time("observed_at", *observed),
			slog.Time("stored_at", doc.StatusSince()),
			slog.Duration("drift", doc.StatusSince().Sub(*observed)))...)
}

func (e *lifecycleEngineImpl) deny(ctx context.Context, tr *trace, doc *document.Document, d rules.Decision, now time.Time) *Result {
	rec := audit.NewRecord(tr.number, tr.transition, audit.OutcomeRejectedByRule, tr.actor, now)
	rec.Rule = string(d.Code)
	rec.Message = d.Message
	e.appendAudit(ctx, rec)

	slog.InfoContext(ctx, "transition denied by rule",
		append(tr.attrs(), slog.String("rule", rec.Rule), slog.String("message", d.Message))...)

	return &Result{Document: doc, Audit: rec, Reason: rec.Rule, Message: d.Message}
}

func (e *lifecycleEngineImpl) gatewayRejected(ctx context.Context, tr *trace, doc *document.Document, resp shared.GatewayResponse, now time.Time) *Result {
	rec := audit.NewRecord(tr.number, tr.transition, audit.OutcomeRejectedByGateway, tr.actor, now)
	rec.Rule = ReasonGatewayRejected
	rec.Message = resp.Description
	rec.GatewayStatusCode = resp.StatusCode
	rec.GatewayCorrelationID = resp.CorrelationID
	e.appendAudit(ctx, rec)

	slog.InfoContext(ctx, "transition rejected by gateway",
		append(tr.attrs(),
			slog.String("status_code", resp.StatusCode),
			slog.String("correlation_id", resp.CorrelationID),
			slog.String("description", resp.Description))...)

	return &Result{Document: doc, Audit: rec, Reason: ReasonGatewayRejected, Message: resp.Description}
}

func (e *lifecycleEngineImpl) fail(ctx context.Context, tr *trace, reason string, resp shared.GatewayResponse, err error, now time.Time) error {
	rec := audit.NewRecord(tr.number, tr.transition, audit.OutcomeFailed, tr.actor, now)
	rec.Rule = reason
	rec.Message = err.Error()
	rec.GatewayStatusCode = resp.StatusCode
	rec.GatewayCorrelationID = resp.CorrelationID
	e.appendAudit(ctx, rec)

	attrs := append(tr.attrs(),
		slog.String("reason", reason),
		slog.String("correlation_id", resp.CorrelationID),
		slog.Any("error", err))
	switch reason {
	case audit.FailureNotFound, audit.FailureConflict:
		slog.WarnContext(ctx, "transition failed", attrs...)
	default:
		slog.ErrorContext(ctx, "transition failed", attrs...)
	}
	return err
}

func (e *lifecycleEngineImpl) applied(ctx context.Context, tr *trace, stored *document.Document, resp shared.GatewayResponse, now time.Time) *Result {
	rec := audit.NewRecord(tr.number, tr.transition, audit.OutcomeApplied, tr.actor, now)
	rec.GatewayStatusCode = resp.StatusCode
	rec.GatewayCorrelationID = resp.CorrelationID
	e.appendAudit(ctx, rec)

	slog.InfoContext(ctx, "transition applied",
		append(tr.attrs(),
			slog.String("status", stored.Status().String()),
			slog.Int64("version", stored.Version()),
			slog.String("correlation_id", resp.CorrelationID))...)

	return &Result{Applied: true, Document: stored, Audit: rec}
}

// appendAudit never fails the attempt; a lost audit record is logged with its full content.
func (e *lifecycleEngineImpl) appendAudit(ctx context.Context, rec *audit.Record) {
	if err := e.audits.Append(ctx, rec); err != nil {
		slog.ErrorContext(ctx, "failed to append audit record",
			slog.Any("record", rec),
			slog.Any("error", err))
	}
}

func toVehiclePayload(v VehicleInput) shared.VehiclePayload {
	return shared.VehiclePayload{
		VehicleNumber: strings.ToUpper(strings.TrimSpace(v.VehicleNumber)),
		TransportMode: document.ParseTransportMode(v.TransportMode),
		DistanceKm:    patch.Coalesce(v.DistanceKm, 0),
		TransporterID: strings.TrimSpace(v.TransporterID),
		FromPlace:     strings.TrimSpace(v.FromPlace),
		FromState:     strings.TrimSpace(v.FromState),
		ReasonCode:    strings.TrimSpace(v.ReasonCode),
		Remarks:       strings.TrimSpace(v.Remarks),
	}
}

func toTransport(v VehicleInput) *document.Transport {
	p := toVehiclePayload(v)
	return &document.Transport{
		Mode:          p.TransportMode,
		VehicleNumber: p.VehicleNumber,
		TransporterID: p.TransporterID,
		DistanceKm:    p.DistanceKm,
	}
}

func toGenerateInput(req GenerateRequest) rules.GenerateInput {
	items := make([]tax.ItemInput, len(req.Items))
	for i, li := range req.Items {
		items[i] = li.TaxInput()
	}
	in := rules.GenerateInput{
		Kind:      req.Kind,
		SourceRef: req.SourceRef,
		Seller:    req.Seller,
		Buyer:     req.Buyer,
		Items:     items,
	}
	if req.Transport != nil {
		in.Transport = &rules.VehicleInput{
			VehicleNumber: req.Transport.VehicleNumber,
			TransportMode: req.Transport.TransportMode,
			DistanceKm:    req.Transport.DistanceKm,
		}
	}
	return in
}
