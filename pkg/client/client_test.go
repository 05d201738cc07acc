package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/driftapp/drift-server/pkg/client"
)

func TestListDrifts_ConcurrentRequestsCollapse(t *testing.T) {
	var calls atomic.Int64
	release := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		<-release // hold the call in flight until every caller has joined
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))
	defer server.Close()

	c := client.New(server.URL)

	const callers = 5
	var wg sync.WaitGroup
	errs := make([]error, callers)
	for n := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[n] = c.ListDrifts(context.Background(), "", "")
		}()
	}

	// Give every goroutine time to join the in-flight call.
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	require.Equal(t, int64(1), calls.Load())

	// The key is gone once the call settles: the next request goes out fresh.
	_, err := c.ListDrifts(context.Background(), "", "")
	require.NoError(t, err)
	require.Equal(t, int64(2), calls.Load())
}

func TestDedup_FailuresAreNotCached(t *testing.T) {
	var calls atomic.Int64

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":"boom"}`))
			return
		}
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))
	defer server.Close()

	c := client.New(server.URL)

	_, err := c.ListDrifts(context.Background(), "", "")
	require.Error(t, err)

	// The failed call's key was dropped, so the retry hits the network.
	_, err = c.ListDrifts(context.Background(), "", "")
	require.NoError(t, err)
	require.Equal(t, int64(2), calls.Load())
}

func TestDedup_DistinctURLsDoNotCollapse(t *testing.T) {
	var calls atomic.Int64
	release := make(chan struct{})

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		<-release
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))
	defer server.Close()

	c := client.New(server.URL)

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		_, _ = c.ListDrifts(context.Background(), "", "")
	}()
	go func() {
		defer wg.Done()
		_, _ = c.ListDrifts(context.Background(), "fire", "")
	}()

	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	require.Equal(t, int64(2), calls.Load())
}

func TestAPIError_CarriesServerMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Drift not found"}`))
	}))
	defer server.Close()

	c := client.New(server.URL)

	_, err := c.GetDrift(context.Background(), "drift_missing")
	require.Error(t, err)

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusNotFound, apiErr.Status)
	require.Equal(t, "Drift not found", apiErr.Message)
}

func TestClient_SendsBearerToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer secret", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))
	defer server.Close()

	c := client.New(server.URL, client.WithToken("secret"))

	_, err := c.ListDrifts(context.Background(), "", "")
	require.NoError(t, err)
}

func TestCollect_RoundTrip(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/library/collect", r.URL.Path)
		_, _ = w.Write([]byte(`{"item":{"id":"item_1","refId":"ashtanga-hridaya","refType":"Book"}}`))
	}))
	defer server.Close()

	c := client.New(server.URL)

	title := "Ashtanga Hridaya"
	item, err := c.Collect(context.Background(), "ashtanga-hridaya", client.CollectParams{Title: &title})
	require.NoError(t, err)
	require.Equal(t, "ashtanga-hridaya", item.RefID)
	require.Equal(t, "Book", item.RefType)
}
