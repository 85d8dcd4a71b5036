package inspect

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/anthanhphan/go-sharded-kv-client/internal/client"
	"github.com/anthanhphan/go-sharded-kv-client/internal/client/config"
)

func testServer(t *testing.T) *Server {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Shards = []config.ShardConfig{
		{Name: "a", Addr: "a:6379", Weight: 1},
		{Name: "b", Addr: "b:6379", Weight: 2},
	}

	kv, err := client.New(cfg)
	require.NoError(t, err)
	t.Cleanup(kv.Close)

	return NewServer(cfg, kv)
}

func getJSON(t *testing.T, s *Server, path string) (int, map[string]any) {
	t.Helper()
	resp, err := s.app.Test(httptest.NewRequest(http.MethodGet, path, nil))
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(body, &out))
	return resp.StatusCode, out
}

func TestHandleShards(t *testing.T) {
	s := testServer(t)

	status, body := getJSON(t, s, "/shards")
	require.Equal(t, http.StatusOK, status)

	shards := body["shards"].([]any)
	require.Len(t, shards, 2)
	assert.Equal(t, "a", shards[0].(map[string]any)["name"])
	assert.Equal(t, float64(2), shards[1].(map[string]any)["weight"])
	// 160 points per weight unit, 3 weight units total.
	assert.Equal(t, float64(480), body["virtual_points"].(float64)+body["collisions"].(float64))
}

func TestHandlePools(t *testing.T) {
	s := testServer(t)

	status, body := getJSON(t, s, "/pools")
	require.Equal(t, http.StatusOK, status)

	pools := body["pools"].([]any)
	require.Len(t, pools, 2)
	stats := pools[0].(map[string]any)["stats"].(map[string]any)
	assert.Equal(t, float64(0), stats["active"])
	assert.Equal(t, float64(8), stats["max_active"])
}

func TestHandleLocate(t *testing.T) {
	s := testServer(t)

	status, body := getJSON(t, s, "/ring/locate?key=hello")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "hello", body["key"])
	assert.Equal(t, s.kv.Router().Lookup("hello").Name, body["shard"])

	status, body = getJSON(t, s, "/ring/locate")
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body["error"], "key")
}

func TestHandleDistribution(t *testing.T) {
	s := testServer(t)

	status, body := getJSON(t, s, "/ring/distribution?samples=200")
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(200), body["samples"])

	total := 0.0
	for _, n := range body["distribution"].(map[string]any) {
		total += n.(float64)
	}
	assert.Equal(t, 200.0, total)

	status, _ = getJSON(t, s, "/ring/distribution?samples=-1")
	assert.Equal(t, http.StatusBadRequest, status)
}
