package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	auction "sealed-auction/internal/auctionService"
	"sealed-auction/internal/clock"
	"sealed-auction/internal/crypto/pedersen"
	"sealed-auction/internal/engine"
	"sealed-auction/internal/events"
	"sealed-auction/internal/repository"
	"sealed-auction/internal/server"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2031, 3, 1, 10, 0, 0, 0, time.UTC)

// testEnv is a full stack behind the real router with a controllable clock
type testEnv struct {
	router *gin.Engine
	clock  *clock.Fake
	scheme *pedersen.Scheme
}

// SetupTestEnv initializes the router over an in-memory registry, the
// Pedersen verifier and a fake clock set to baseTime
func SetupTestEnv(t *testing.T, policy engine.LateRevealPolicy) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	scheme, err := pedersen.New(pedersen.DefaultDomain)
	require.NoError(t, err)

	clk := clock.NewFake(baseTime)
	feed := events.NewFeed(0)
	svc := auction.NewAuctionService(repository.NewMemoryRepo(), scheme, clk, events.NewBus(feed),
		auction.WithLateRevealPolicy(policy))

	return &testEnv{
		router: server.SetupRouter(svc, feed),
		clock:  clk,
		scheme: scheme,
	}
}

// ExecuteRequestAndParse executes an HTTP request as caller and parses the envelope
func (e *testEnv) ExecuteRequestAndParse(t *testing.T, caller, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	default:
		var err error
		reqBody, err = json.Marshal(v)
		require.NoError(t, err, "failed to marshal body")
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if caller != "" {
		req.Header.Set(server.CallerIDHeader, caller)
	}
	e.router.ServeHTTP(w, req)

	var resp map[string]any
	if w.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "failed to unmarshal response")
	}
	return resp, w
}

// Seal produces a ciphertext, commitment proof and opening for amount
func (e *testEnv) Seal(t *testing.T, amount uint64) *pedersen.Sealed {
	t.Helper()
	sealed, err := e.scheme.Seal(amount)
	require.NoError(t, err)
	return sealed
}
