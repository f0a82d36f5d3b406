package strategy_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GittyRyan/compass/pkg/httpclient"
	"github.com/GittyRyan/compass/pkg/planlib"
	"github.com/GittyRyan/compass/pkg/strategy"
)

func getTestLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func newTestClient(baseURL string) *strategy.Client {
	httpClient := httpclient.NewClient(httpclient.DefaultConfig(), getTestLogger())
	return strategy.NewClient(httpClient, baseURL, "compass-api", getTestLogger())
}

func activePlan() planlib.Plan {
	return planlib.Plan{ID: "plan-1", Status: planlib.StatusActive, Name: "ABM push"}
}

func TestGenerateSuccess(t *testing.T) {
	var gotContentType string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "tenant-1", r.Header.Get("X-Tenant-ID"))
		gotContentType = r.Header.Get("Content-Type")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success":true,"plan_id":"plan-1","sections":[{"id":"s1","title":"Positioning","bullets":["a","b"]}]}`))
	}))
	defer server.Close()

	result := newTestClient(server.URL).Generate(context.Background(), strategy.Request{
		Plan:     activePlan(),
		TenantID: "tenant-1",
	})

	assert.True(t, result.Success)
	assert.Equal(t, "plan-1", result.PlanID)
	require.Len(t, result.Sections, 1)
	assert.Equal(t, "Positioning", result.Sections[0].Title)
	assert.Equal(t, "application/json", gotContentType)
}

func TestGenerateRejectsInactivePlan(t *testing.T) {
	// No server: the pre-flight check must fail before any request is made.
	client := newTestClient("http://127.0.0.1:1")

	plan := activePlan()
	plan.Status = planlib.StatusDraft
	result := client.Generate(context.Background(), strategy.Request{Plan: plan, TenantID: "tenant-1"})

	assert.False(t, result.Success)
	assert.Equal(t, "plan-1", result.PlanID)
	assert.Contains(t, result.Message, "active")
}

func TestGenerateRejectsMissingPlanID(t *testing.T) {
	client := newTestClient("http://127.0.0.1:1")

	plan := activePlan()
	plan.ID = ""
	result := client.Generate(context.Background(), strategy.Request{Plan: plan, TenantID: "tenant-1"})

	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Message)
}

func TestGenerateTransportErrorIsFailureResult(t *testing.T) {
	// Unroutable address; the transport error must not surface as a Go error.
	client := newTestClient("http://127.0.0.1:1")

	result := client.Generate(context.Background(), strategy.Request{Plan: activePlan(), TenantID: "tenant-1"})

	assert.False(t, result.Success)
	assert.Equal(t, "plan-1", result.PlanID)
	assert.NotEmpty(t, result.Message)
}

func TestGenerateNon2xxIsFailureResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"message":"model backend unavailable"}`))
	}))
	defer server.Close()

	result := newTestClient(server.URL).Generate(context.Background(), strategy.Request{Plan: activePlan(), TenantID: "tenant-1"})

	assert.False(t, result.Success)
	assert.Equal(t, "model backend unavailable", result.Message)
}

func TestGenerateMalformedBodyIsFailureResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"success":`))
	}))
	defer server.Close()

	result := newTestClient(server.URL).Generate(context.Background(), strategy.Request{Plan: activePlan(), TenantID: "tenant-1"})

	assert.False(t, result.Success)
	assert.Equal(t, "plan-1", result.PlanID)
}
