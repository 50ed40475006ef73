package provisioner

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProvision_Success(t *testing.T) {
	t.Parallel()
	var gotPath, gotAuth string
	var gotPayload Payload

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotPayload))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":          true,
			"status_code": 200,
			"body":        map[string]string{"message": "provisioned"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "secret-token", 5*time.Second)
	err := client.Provision(context.Background(), Payload{Hostname: "host1", Address: "192.0.2.1"})

	require.NoError(t, err)
	assert.Equal(t, "/v1/provision", gotPath)
	assert.Equal(t, "Bearer secret-token", gotAuth)
	assert.Equal(t, Payload{Hostname: "host1", Address: "192.0.2.1"}, gotPayload)
}

func TestProvision_Rejected(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{
			"ok":          false,
			"status_code": 400,
			"body":        map[string]string{"message": "unknown image"},
		})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", 0)
	err := client.Provision(context.Background(), Payload{Hostname: "host1", Address: "192.0.2.1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "provisioning rejected")
	assert.Contains(t, err.Error(), "unknown image")
}

func TestProvision_ServerError(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", 0)
	err := client.Provision(context.Background(), Payload{Hostname: "host1", Address: "192.0.2.1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 503")
}

func TestProvision_Timeout(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", 20*time.Millisecond)
	err := client.Provision(context.Background(), Payload{Hostname: "host1", Address: "192.0.2.1"})

	require.Error(t, err)
	assert.Contains(t, err.Error(), "call provisioning API")
}

func TestProvision_NoAuthHeaderWithoutToken(t *testing.T) {
	t.Parallel()
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]any{"ok": true, "status_code": 200})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", 0)
	require.NoError(t, client.Provision(context.Background(), Payload{Hostname: "h", Address: "192.0.2.1"}))
	assert.Empty(t, gotAuth)
}
