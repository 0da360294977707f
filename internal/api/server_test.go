package api

import (
	"bytes"
	"context"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blinkbot/internal/config"
	"blinkbot/internal/session"
	"blinkbot/pkg"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	manager, err := session.NewManager(context.Background(), session.PersonaReturning, session.ManagerOptions{
		Assistant: config.AssistantConfig{
			TypingDelayMS:        1,
			SearchDelayMS:        1,
			ConfirmDelayMS:       1,
			ImageAnalysisDelayMS: 1,
			CouponProbability:    0.001,
			WalletAddress:        "0xtestwallet",
		},
		Logger:  zerolog.Nop(),
		NewRand: func() *rand.Rand { return rand.New(rand.NewSource(42)) },
	})
	require.NoError(t, err)

	srv := NewServer(manager, zerolog.Nop())
	ts := httptest.NewServer(srv.Routes())
	t.Cleanup(ts.Close)
	return ts
}

func postJSON(t *testing.T, ts *httptest.Server, path string, body any) *http.Response {
	t.Helper()
	data, err := sonic.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(ts.URL+path, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	return resp
}

func decodeMessages(t *testing.T, resp *http.Response) []pkg.Message {
	t.Helper()
	defer resp.Body.Close()
	var out messagesResponse
	require.NoError(t, sonic.ConfigDefault.NewDecoder(resp.Body).Decode(&out))
	return out.Messages
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetMessagesReturnsWelcome(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/messages")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	msgs := decodeMessages(t, resp)
	require.Len(t, msgs, 1)
	assert.Equal(t, pkg.SenderAssistant, msgs[0].Sender)
	assert.Contains(t, msgs[0].Text, "Hey Karim!")
}

func TestPostMessage(t *testing.T) {
	ts := newTestServer(t)
	resp := postJSON(t, ts, "/api/messages", messageRequest{Text: "I need a monitor"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	msgs := decodeMessages(t, resp)
	require.Len(t, msgs, 3)
	assert.Equal(t, pkg.SenderUser, msgs[0].Sender)
	assert.Equal(t, "I need a monitor", msgs[0].Text)
	assert.Equal(t, pkg.KindSearchResults, msgs[2].Kind)
}

func TestPostMessageEmpty(t *testing.T) {
	ts := newTestServer(t)
	resp := postJSON(t, ts, "/api/messages", messageRequest{})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSetPersona(t *testing.T) {
	ts := newTestServer(t)

	resp := postJSON(t, ts, "/api/persona", personaRequest{Persona: "new"})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	msgs := decodeMessages(t, resp)
	require.Len(t, msgs, 1)
	assert.Contains(t, msgs[0].Text, "Welcome to Blink")

	// Reset replaced the transcript.
	listResp, err := http.Get(ts.URL + "/api/messages")
	require.NoError(t, err)
	assert.Len(t, decodeMessages(t, listResp), 1)

	bad := postJSON(t, ts, "/api/persona", personaRequest{Persona: "admin"})
	defer bad.Body.Close()
	assert.Equal(t, http.StatusBadRequest, bad.StatusCode)
}

func TestPurchaseFlowOverHTTP(t *testing.T) {
	ts := newTestServer(t)

	item := pkg.Item{Title: "Air Jordan 14", Price: 200, Shipping: 10, DeliveryDate: "Tomorrow"}
	resp := postJSON(t, ts, "/api/purchase-intent", item)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	msgs := decodeMessages(t, resp)
	require.Len(t, msgs, 1)
	assert.Equal(t, pkg.KindFundingRequired, msgs[0].Kind)

	resp = postJSON(t, ts, "/api/funding", fundingRequest{Amount: 210})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	msgs = decodeMessages(t, resp)
	require.Len(t, msgs, 2)
	assert.Equal(t, pkg.KindPurchaseSuccess, msgs[0].Kind)
	assert.Equal(t, pkg.KindOptionalFunding, msgs[1].Kind)
}

func TestOptionalFundingDoesNotCompletePurchase(t *testing.T) {
	ts := newTestServer(t)

	item := pkg.Item{Title: "Air Jordan 14", Price: 200, Shipping: 10, DeliveryDate: "Tomorrow"}
	resp := postJSON(t, ts, "/api/purchase-intent", item)
	msgs := decodeMessages(t, resp)
	require.Len(t, msgs, 1)
	require.Equal(t, pkg.KindFundingRequired, msgs[0].Kind)

	// A voluntary top-up is only acknowledged; the parked order stays parked.
	resp = postJSON(t, ts, "/api/funding", fundingRequest{Amount: 5, Optional: true})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	msgs = decodeMessages(t, resp)
	require.Len(t, msgs, 1)
	assert.Empty(t, msgs[0].Kind)
	assert.Contains(t, msgs[0].Text, "Added $5 to your account")

	resp = postJSON(t, ts, "/api/funding", fundingRequest{Amount: 210})
	msgs = decodeMessages(t, resp)
	require.Len(t, msgs, 2)
	assert.Equal(t, pkg.KindPurchaseSuccess, msgs[0].Kind)
}

func TestPurchaseIntentMissingItem(t *testing.T) {
	ts := newTestServer(t)
	resp := postJSON(t, ts, "/api/purchase-intent", pkg.Item{})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestFundingRejectsNonPositiveAmount(t *testing.T) {
	ts := newTestServer(t)
	resp := postJSON(t, ts, "/api/funding", fundingRequest{Amount: 0})
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetProfile(t *testing.T) {
	ts := newTestServer(t)
	resp, err := http.Get(ts.URL + "/api/profile")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var out profileResponse
	require.NoError(t, sonic.ConfigDefault.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "returning", out.Persona)
	assert.Equal(t, 150, out.Balance)
	assert.Equal(t, "Karim", out.Profile.Name)
}
