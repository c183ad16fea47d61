//go:build e2e

package documents

import (
	"net/http"
	nethttptest "net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	resdto "gst-lifecycle/internal/handler/dto/response"
	"gst-lifecycle/internal/pkg/jwt"
	"gst-lifecycle/tests/common/authtest"
	"gst-lifecycle/tests/common/builder"
	"gst-lifecycle/tests/common/dbtest"
	"gst-lifecycle/tests/common/httptest"
	"gst-lifecycle/tests/common/testutil"
	"gst-lifecycle/tests/e2e"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const incomingNumber = "331000000042"

type DocumentsTestSuite struct {
	e2e.SharedSuite
	operatorToken string
	viewerToken   string
}

func TestDocumentsSuite(t *testing.T) {
	suite.Run(t, new(DocumentsTestSuite))
}

func (s *DocumentsTestSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	helper := authtest.NewJWTHelper(s.Config.JWT)
	s.operatorToken = helper.GenerateToken(s.T(), "ops@example.com", jwt.RoleOperator)
	s.viewerToken = helper.GenerateToken(s.T(), "auditor@example.com", jwt.RoleViewer)
}

func (s *DocumentsTestSuite) post(path string, body any) *nethttptest.ResponseRecorder {
	return httptest.PerformRequest(s.T(), s.Router, http.MethodPost, path, body, s.operatorToken)
}

func (s *DocumentsTestSuite) receive() {
	s.Gateway.AddIncoming(incomingNumber, builder.DefaultPayload())
	w := s.post("/api/documents/received", map[string]string{"document_number": incomingNumber})
	require.Equal(s.T(), http.StatusCreated, w.Code, w.Body.String())
}

func (s *DocumentsTestSuite) TestGenerate() {
	s.Run("E-Way Bill is stored active with an applied audit record", func() {
		var got resdto.TransitionResponse
		w := s.post("/api/documents", builder.NewGenerateRequestDTO())
		httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &got)

		require.True(s.T(), got.Applied)
		require.NotNil(s.T(), got.Document)
		assert.Equal(s.T(), "ACTIVE", got.Document.Status)
		assert.EqualValues(s.T(), 1, got.Document.Version)
		assert.Equal(s.T(), "1180.00", got.Document.Payload.Totals.TotalInvoiceValue)

		status, version := dbtest.DocumentVersion(s.T(), s.DB, got.Document.Number)
		assert.Equal(s.T(), "ACTIVE", status)
		assert.EqualValues(s.T(), 1, version)
		assert.Equal(s.T(), 1, dbtest.CountAuditRecords(s.T(), s.DB, got.Document.Number, "APPLIED"))
	})

	s.Run("gateway refusal stores nothing and is audited under the source reference", func() {
		s.Gateway.RespondWith("generate", "2")
		req := builder.NewGenerateRequestDTO()

		var got resdto.TransitionResponse
		w := s.post("/api/documents", req)
		require.Equal(s.T(), http.StatusUnprocessableEntity, w.Code, w.Body.String())
		require.NoError(s.T(), httptest.DecodeResponseBody(s.T(), w.Body, &got))
		assert.False(s.T(), got.Applied)
		assert.Equal(s.T(), "gateway-rejected", got.Reason)
		assert.Equal(s.T(), 1, dbtest.CountAuditRecords(s.T(), s.DB, req.SourceRef, "REJECTED_BY_GATEWAY"))
	})

	s.Run("invalid payload is rejected before any gateway call", func() {
		body := testutil.DtoMap(s.T(), builder.NewGenerateRequestDTO(), testutil.Field("kind", "CREDIT_NOTE"))
		w := s.post("/api/documents", body)
		httptest.AssertErrorResponse(s.T(), w, http.StatusBadRequest, "")
		assert.Zero(s.T(), s.Gateway.Calls("generate"))
	})
}

func (s *DocumentsTestSuite) TestAcceptLifecycle() {
	s.Run("accept within the window", func() {
		s.receive()

		var got resdto.TransitionResponse
		w := s.post("/api/documents/"+incomingNumber+"/accept", nil)
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &got)
		assert.Equal(s.T(), "ACCEPTED", got.Document.Status)
		assert.EqualValues(s.T(), 2, got.Document.Version)

		w = s.post("/api/documents/"+incomingNumber+"/accept", nil)
		require.Equal(s.T(), http.StatusUnprocessableEntity, w.Code)
		require.NoError(s.T(), httptest.DecodeResponseBody(s.T(), w.Body, &got))
		assert.Equal(s.T(), "invalid-status", got.Reason)
		assert.Equal(s.T(), 1, s.Gateway.Calls("accept"))
	})

	s.Run("accept after 72 hours never reaches the gateway", func() {
		s.receive()
		dbtest.BackdateDocument(s.T(), s.DB, incomingNumber, 73*time.Hour)

		var got resdto.TransitionResponse
		w := s.post("/api/documents/"+incomingNumber+"/accept", nil)
		require.Equal(s.T(), http.StatusUnprocessableEntity, w.Code)
		require.NoError(s.T(), httptest.DecodeResponseBody(s.T(), w.Body, &got))
		assert.Equal(s.T(), "window-expired", got.Reason)
		assert.Zero(s.T(), s.Gateway.Calls("accept"))
		assert.Equal(s.T(), 1, dbtest.CountAuditRecords(s.T(), s.DB, incomingNumber, "REJECTED_BY_RULE"))

		status, version := dbtest.DocumentVersion(s.T(), s.DB, incomingNumber)
		assert.Equal(s.T(), "RECEIVED", status)
		assert.EqualValues(s.T(), 1, version)
	})

	s.Run("reject with a short reason is refused by rule", func() {
		s.receive()
		w := s.post("/api/documents/"+incomingNumber+"/reject", map[string]string{"reason": "bad"})
		require.Equal(s.T(), http.StatusUnprocessableEntity, w.Code)
		assert.Zero(s.T(), s.Gateway.Calls("reject"))
	})

	s.Run("gateway refusal leaves the document untouched", func() {
		s.receive()
		s.Gateway.RespondWith("reject", "2")

		w := s.post("/api/documents/"+incomingNumber+"/reject", map[string]string{"reason": "Goods not as ordered"})
		require.Equal(s.T(), http.StatusUnprocessableEntity, w.Code)

		status, version := dbtest.DocumentVersion(s.T(), s.DB, incomingNumber)
		assert.Equal(s.T(), "RECEIVED", status)
		assert.EqualValues(s.T(), 1, version)
		assert.Equal(s.T(), 1, dbtest.CountAuditRecords(s.T(), s.DB, incomingNumber, "REJECTED_BY_GATEWAY"))
	})
}

func (s *DocumentsTestSuite) TestGatewayFault() {
	var created resdto.TransitionResponse
	w := s.post("/api/documents", builder.NewGenerateRequestDTO())
	httptest.AssertSuccessResponse(s.T(), w, http.StatusCreated, &created)
	number := created.Document.Number

	s.Gateway.FailWith500("cancel")
	w = s.post("/api/documents/"+number+"/cancel", map[string]string{"reason_code": "2", "remarks": "Order cancelled"})
	httptest.AssertErrorResponse(s.T(), w, http.StatusBadGateway, "Compliance gateway call failed")
	assert.Contains(s.T(), w.Body.String(), `"retryable":true`)

	status, version := dbtest.DocumentVersion(s.T(), s.DB, number)
	assert.Equal(s.T(), "ACTIVE", status)
	assert.EqualValues(s.T(), 1, version)
	assert.Equal(s.T(), 1, dbtest.CountAuditRecords(s.T(), s.DB, number, "FAILED"))
}

func (s *DocumentsTestSuite) TestConcurrentAcceptAppliesOnce() {
	s.receive()

	const workers = 8
	codes := make([]int, workers)
	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := range workers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/documents/"+incomingNumber+"/accept", nil, s.operatorToken)
			codes[i] = w.Code
		}(i)
	}
	close(start)
	wg.Wait()

	applied := 0
	for _, code := range codes {
		switch code {
		case http.StatusOK:
			applied++
		case http.StatusConflict, http.StatusUnprocessableEntity:
		default:
			s.T().Errorf("unexpected status %d", code)
		}
	}
	assert.Equal(s.T(), 1, applied)

	status, version := dbtest.DocumentVersion(s.T(), s.DB, incomingNumber)
	assert.Equal(s.T(), "ACCEPTED", status)
	assert.EqualValues(s.T(), 2, version)
	// receive plus exactly one accept
	assert.Equal(s.T(), 2, dbtest.CountAuditRecords(s.T(), s.DB, incomingNumber, "APPLIED"))
}

// Subtests would reset the database between steps, so the trail is checked in one pass.
func (s *DocumentsTestSuite) TestAuditTrail() {
	s.receive()
	w := s.post("/api/documents/"+incomingNumber+"/reject", map[string]string{"reason": "bad"})
	require.Equal(s.T(), http.StatusUnprocessableEntity, w.Code)
	w = s.post("/api/documents/"+incomingNumber+"/accept", nil)
	require.Equal(s.T(), http.StatusOK, w.Code)

	var page resdto.AuditTrailResponse
	w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/documents/"+incomingNumber+"/audit?limit=2", nil, s.viewerToken)
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &page)
	require.Len(s.T(), page.Records, 2)
	assert.Equal(s.T(), "receive", page.Records[0].Transition)
	assert.Equal(s.T(), "REJECTED_BY_RULE", page.Records[1].Outcome)
	require.NotEmpty(s.T(), page.NextCursor)

	cursor := page.NextCursor
	page = resdto.AuditTrailResponse{}
	w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/documents/"+incomingNumber+"/audit?limit=2&after="+url.QueryEscape(cursor), nil, s.viewerToken)
	httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &page)
	require.Len(s.T(), page.Records, 1)
	assert.Equal(s.T(), "accept", page.Records[0].Transition)
	assert.Empty(s.T(), page.NextCursor)

	w = httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/documents/"+incomingNumber+"/audit/export", nil, s.viewerToken)
	require.Equal(s.T(), http.StatusOK, w.Code)
	httptest.AssertHeaders(s.T(), w, map[string]string{
		"Content-Type":        "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		"Content-Disposition": `attachment; filename="audit-` + incomingNumber + `.xlsx"`,
	})
	assert.NotZero(s.T(), w.Body.Len())
}

func (s *DocumentsTestSuite) TestAuthorization() {
	s.Run("missing token", func() {
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/documents/"+incomingNumber, nil, "")
		assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
	})

	s.Run("expired token", func() {
		token := authtest.NewJWTHelper(s.Config.JWT).CreateExpiredToken(s.T(), "ops@example.com", jwt.RoleOperator)
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/documents/"+incomingNumber, nil, token)
		assert.Equal(s.T(), http.StatusUnauthorized, w.Code)
	})

	s.Run("viewer cannot transition", func() {
		s.receive()
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodPost, "/api/documents/"+incomingNumber+"/accept", nil, s.viewerToken)
		assert.Equal(s.T(), http.StatusForbidden, w.Code)
		assert.Zero(s.T(), s.Gateway.Calls("accept"))
	})

	s.Run("viewer can read", func() {
		s.receive()
		var got resdto.DocumentResponse
		w := httptest.PerformRequest(s.T(), s.Router, http.MethodGet, "/api/documents/"+incomingNumber, nil, s.viewerToken)
		httptest.AssertSuccessResponse(s.T(), w, http.StatusOK, &got)
		assert.Equal(s.T(), "RECEIVED", got.Status)
	})
}
