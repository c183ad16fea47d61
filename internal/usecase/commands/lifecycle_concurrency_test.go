//go:build unit

package commands_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"gst-lifecycle/internal/domain/audit"
	"gst-lifecycle/internal/domain/document"
	"gst-lifecycle/internal/infra/memstore"
	"gst-lifecycle/internal/pkg/clock"
	"gst-lifecycle/internal/pkg/errs"
	"gst-lifecycle/internal/usecase/commands"
	"gst-lifecycle/internal/usecase/shared"
	"gst-lifecycle/tests/common/builder"
	sharedmock "gst-lifecycle/tests/mock/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestConcurrentTransitionsOnOneDocument(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	b := builder.NewDocumentBuilder()
	store := memstore.NewDocumentStore()
	_, err := store.Insert(ctx, b.MustBuildDomain())
	require.NoError(t, err)
	audits := memstore.NewAuditLog()

	// Both callers must read version 1 before either writes.
	var reads sync.WaitGroup
	reads.Add(2)
	gateway := sharedmock.NewMockComplianceGateway(ctrl)
	gateway.EXPECT().Authenticate(gomock.Any(), gomock.Any()).Return(shared.Token{Value: "t"}, nil).Times(2)
	gateway.EXPECT().AcceptDocument(gomock.Any(), "EWB001", gomock.Any()).
		DoAndReturn(func(context.Context, string, shared.Token) (shared.GatewayResponse, error) {
			reads.Done()
			reads.Wait()
			return shared.GatewayResponse{StatusCode: "1"}, nil
		})
	gateway.EXPECT().RejectDocument(gomock.Any(), "EWB001", gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, string, string, shared.Token) (shared.GatewayResponse, error) {
			reads.Done()
			reads.Wait()
			return shared.GatewayResponse{StatusCode: "1"}, nil
		})
	creds := sharedmock.NewMockCredentialsProvider(ctrl)
	creds.EXPECT().Credentials(gomock.Any()).Return(shared.Credentials{}, nil).Times(2)

	engine := commands.NewLifecycleEngine(store, audits, gateway, creds, clock.NewMockClock(b.Now),
		commands.EngineOptions{GatewayTimeout: 5 * time.Second})

	type outcome struct {
		res *commands.Result
		err error
	}
	results := make(chan outcome, 2)
	go func() {
		res, err := engine.Accept(ctx, commands.TransitionRequest{DocumentNumber: "EWB001"})
		results <- outcome{res, err}
	}()
	go func() {
		res, err := engine.Reject(ctx, commands.TransitionRequest{DocumentNumber: "EWB001", Reason: "goods arrived damaged"})
		results <- outcome{res, err}
	}()

	var applied, conflicted int
	for i := 0; i < 2; i++ {
		o := <-results
		switch {
		case o.err == nil && o.res.Applied:
			applied++
			assert.Equal(t, int64(2), o.res.Document.Version())
		case errs.Is(o.err, commands.ErrVersionConflict):
			conflicted++
			assert.True(t, commands.IsRetryable(o.err))
		default:
			t.Fatalf("unexpected outcome: %+v / %v", o.res, o.err)
		}
	}
	assert.Equal(t, 1, applied)
	assert.Equal(t, 1, conflicted)

	final, err := store.Get(ctx, "EWB001")
	require.NoError(t, err)
	assert.True(t, final.Status() == document.StatusAccepted || final.Status() == document.StatusRejected)
	assert.Equal(t, int64(2), final.Version())

	trail, err := audits.ListByDocument(ctx, "EWB001", shared.AuditPage{})
	require.NoError(t, err)
	require.Len(t, trail, 2)
	outcomes := []audit.Outcome{trail[0].Outcome, trail[1].Outcome}
	assert.ElementsMatch(t, []audit.Outcome{audit.OutcomeApplied, audit.OutcomeFailed}, outcomes)
}
