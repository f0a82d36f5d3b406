//go:build integration

// Package integration contains end-to-end integration tests for the Compass API.
// Run with: go test -v ./test/integration/... -tags=integration
package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	baseURL  = getEnv("TEST_BASE_URL", "http://localhost:3000/api/v1")
	tenantID = getEnv("TEST_TENANT_ID", "11111111-1111-1111-1111-111111111111")
)

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

// TestClient wraps http.Client with common headers
type TestClient struct {
	*http.Client
	baseURL  string
	tenantID string
}

func NewTestClient() *TestClient {
	return &TestClient{
		Client:   &http.Client{Timeout: 30 * time.Second},
		baseURL:  baseURL,
		tenantID: tenantID,
	}
}

func (c *TestClient) Do(req *http.Request) (*http.Response, error) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Tenant-ID", c.tenantID)
	return c.Client.Do(req)
}

func (c *TestClient) Get(path string) (*http.Response, error) {
	req, err := http.NewRequest("GET", c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	return c.Do(req)
}

func (c *TestClient) Post(path string, body any) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest("POST", c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return c.Do(req)
}

func (c *TestClient) Patch(path string, body any) (*http.Response, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequest("PATCH", c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return c.Do(req)
}

func (c *TestClient) Delete(path string) (*http.Response, error) {
	req, err := http.NewRequest("DELETE", c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	return c.Do(req)
}

func parseResponse(t *testing.T, resp *http.Response, target any) {
	t.Helper()
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")
	if target != nil {
		require.NoError(t, json.Unmarshal(body, target), "failed to parse response: %s", string(body))
	}
}

// TestHealthCheck verifies the API is running
func TestHealthCheck(t *testing.T) {
	client := NewTestClient()

	resp, err := client.Get("/health")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var result map[string]any
	parseResponse(t, resp, &result)
	assert.Equal(t, "healthy", result["status"])
}

// TestMotionScoring verifies the catalog and the ranked scoring endpoint
func TestMotionScoring(t *testing.T) {
	client := NewTestClient()

	resp, err := client.Get("/motions")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var catalog []map[string]any
	parseResponse(t, resp, &catalog)
	require.NotEmpty(t, catalog)

	score := map[string]any{
		"company_size":        "enterprise",
		"primary_objective":   "pipeline",
		"acv_band":            "high",
		"personas":            []string{"VP Sales", "CRO"},
		"time_horizon_months": 9,
		"include_rationale":   true,
	}
	resp, err = client.Post("/motions/score", score)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var scoreResp struct {
		Results []map[string]any `json:"results"`
	}
	parseResponse(t, resp, &scoreResp)
	require.Len(t, scoreResp.Results, len(catalog))

	top := scoreResp.Results[0]
	assert.NotEmpty(t, top["motion_id"])
	assert.NotNil(t, top["match_percent"])
	assert.NotEmpty(t, top["rationale"])
	t.Logf("Top motion: %v at %v%%", top["motion_id"], top["match_percent"])
}

// TestMotionPreview verifies the phased preview endpoint
func TestMotionPreview(t *testing.T) {
	client := NewTestClient()

	resp, err := client.Post("/motions/outbound_abm/preview", map[string]any{
		"company_size":        "enterprise",
		"primary_objective":   "pipeline",
		"time_horizon_months": 6,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var preview map[string]any
	parseResponse(t, resp, &preview)
	phases, ok := preview["phases"].([]any)
	require.True(t, ok, "preview should carry phases")
	assert.Len(t, phases, 3)
	assert.NotEmpty(t, preview["theme"])
}

// TestPlanLifecycleE2E walks a plan through create, save, activate and archive
func TestPlanLifecycleE2E(t *testing.T) {
	client := NewTestClient()
	uniqueName := fmt.Sprintf("E2E Plan %d", time.Now().UnixNano())

	// Create
	createReq := map[string]any{
		"name":              uniqueName,
		"motion_id":         "outbound_abm",
		"company_size":      "enterprise",
		"primary_objective": "pipeline",
		"acv_band":          "high",
	}
	resp, err := client.Post("/plans", createReq)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created map[string]any
	parseResponse(t, resp, &created)
	planID := created["id"].(string)
	assert.NotEmpty(t, planID)
	assert.Equal(t, uniqueName, created["name"])
	assert.Equal(t, "draft", created["status"])

	t.Cleanup(func() {
		resp, _ := client.Delete("/plans/" + planID)
		if resp != nil {
			resp.Body.Close()
		}
	})

	// Read
	resp, err = client.Get("/plans/" + planID)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var fetched map[string]any
	parseResponse(t, resp, &fetched)
	assert.Equal(t, planID, fetched["id"])

	// Draft cannot activate directly
	resp, err = client.Patch("/plans/"+planID+"/status", map[string]any{"status": "active"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()

	// Save, then activate
	resp, err = client.Patch("/plans/"+planID+"/status", map[string]any{"status": "saved"})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = client.Patch("/plans/"+planID+"/status", map[string]any{"status": "active"})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var activated map[string]any
	parseResponse(t, resp, &activated)
	assert.Equal(t, "active", activated["status"])
	assert.NotEmpty(t, activated["activated_at"])

	// Archive
	resp, err = client.Patch("/plans/"+planID+"/status", map[string]any{"status": "archived"})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	// Delete and verify gone
	resp, err = client.Delete("/plans/" + planID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp.Body.Close()

	resp, err = client.Get("/plans/" + planID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

// TestStrategyGeneration submits an active plan to the strategy backend
func TestStrategyGeneration(t *testing.T) {
	client := NewTestClient()
	suffix := time.Now().UnixNano()

	plan := map[string]any{
		"name":              fmt.Sprintf("Strategy Plan %d", suffix),
		"motion_id":         "outbound_abm",
		"company_size":      "enterprise",
		"primary_objective": "pipeline",
		"status":            "saved",
	}
	resp, err := client.Post("/plans", plan)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created map[string]any
	parseResponse(t, resp, &created)
	planID := created["id"].(string)

	t.Cleanup(func() {
		resp, _ := client.Delete("/plans/" + planID)
		if resp != nil {
			resp.Body.Close()
		}
	})

	resp, err = client.Patch("/plans/"+planID+"/status", map[string]any{"status": "active"})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp, err = client.Post("/plans/"+planID+"/strategy", map[string]any{
		"include_preview": true,
	})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Generation failures still come back as a result payload.
	var result map[string]any
	parseResponse(t, resp, &result)
	require.Contains(t, result, "success")
	if result["success"] != true {
		t.Skipf("strategy backend not available: %v", result["message"])
	}
	assert.Equal(t, planID, result["plan_id"])
}

// TestKafkaPlanEvents verifies that plan mutations are published to Kafka
func TestKafkaPlanEvents(t *testing.T) {
	kafkaBroker := getEnv("KAFKA_BROKER", "localhost:9092")
	kafkaTopic := getEnv("KAFKA_TOPIC", "plan-events")

	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:        []string{kafkaBroker},
		Topic:          kafkaTopic,
		GroupID:        fmt.Sprintf("test-consumer-%s", uuid.New().String()),
		MinBytes:       1,
		MaxBytes:       10e6,
		MaxWait:        500 * time.Millisecond,
		StartOffset:    kafka.LastOffset,
		CommitInterval: time.Second,
	})
	defer reader.Close()

	client := NewTestClient()
	suffix := time.Now().UnixNano()

	plan := map[string]any{
		"name":         fmt.Sprintf("Kafka Plan %d", suffix),
		"motion_id":    "product_led_growth",
		"company_size": "smb",
	}
	resp, err := client.Post("/plans", plan)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created map[string]any
	parseResponse(t, resp, &created)
	planID := created["id"].(string)

	t.Cleanup(func() {
		resp, _ := client.Delete("/plans/" + planID)
		if resp != nil {
			resp.Body.Close()
		}
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	msg, err := reader.ReadMessage(ctx)
	if err != nil {
		t.Skipf("Kafka read timed out (Kafka may not be configured): %v", err)
	}

	// Verify the message structure (concurrent tests may publish too, so no
	// specific id checks).
	var event map[string]any
	require.NoError(t, json.Unmarshal(msg.Value, &event))
	assert.NotEmpty(t, event["type"], "type should be present")
	assert.NotEmpty(t, event["tenant_id"], "tenant_id should be present")
	assert.NotEmpty(t, event["plan_id"], "plan_id should be present")

	t.Logf("Received Kafka event: type=%s, tenant=%s, plan=%s",
		event["type"], event["tenant_id"], event["plan_id"])
}
