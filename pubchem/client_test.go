package pubchem

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"chem-hand/config"
)

func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		PubChemBaseURL: srv.URL,
		RequestTimeout: 5 * time.Second,
		PollInterval:   time.Millisecond,
	}
	client, err := NewClient(cfg, zap.NewNop())
	require.NoError(t, err)
	return client
}

func TestGetResolvesAsyncSearch(t *testing.T) {
	var requests int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&requests, 1) {
		case 1:
			// Erstanfrage: Operation fehlt, Output ist JSON erzwungen.
			assert.Equal(t, "/compound/similarity/cid/2244/JSON", r.URL.Path)
			w.Write([]byte(`{"Waiting":{"ListKey":"K1"}}`))
		case 2:
			// Poll: listkey-Namespace, ursprüngliche Operation, kein Suchtyp.
			assert.Equal(t, "/compound/listkey/K1/cids/JSON", r.URL.Path)
			w.Write([]byte(`{"IdentifierList":{"CID":[2244,5090]}}`))
		default:
			t.Errorf("unerwartete Anfrage %s", r.URL.Path)
		}
	})
	client := newTestClient(t, handler)

	body, err := client.Get(context.Background(), RequestSpec{
		Identifier: "2244",
		Namespace:  "cid",
		SearchType: "similarity",
		Operation:  "cids",
		Output:     "JSON",
	})
	require.NoError(t, err)
	assert.Contains(t, string(body), "5090")
	assert.Equal(t, int32(2), atomic.LoadInt32(&requests))
}

func TestGetAsyncFinalNonJSONRequest(t *testing.T) {
	var requests int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&requests, 1) {
		case 1:
			w.Write([]byte(`{"Waiting":{"ListKey":"K7"}}`))
		case 2:
			assert.Equal(t, "/compound/listkey/K7/JSON", r.URL.Path)
			w.Write([]byte(`{"PC_Compounds":[]}`))
		case 3:
			// Abschlussanfrage mit aufgelöstem Token im Originalformat.
			assert.Equal(t, "/compound/substructure/listkey/K7/SDF", r.URL.Path)
			w.Write([]byte("SDF DATA"))
		default:
			t.Errorf("unerwartete Anfrage %s", r.URL.Path)
		}
	})
	client := newTestClient(t, handler)

	body, err := client.Get(context.Background(), RequestSpec{
		Identifier: "C1=CC=CC=C1",
		Namespace:  "smiles",
		SearchType: "substructure",
		Output:     "SDF",
	})
	require.NoError(t, err)
	assert.Equal(t, "SDF DATA", string(body))
	assert.Equal(t, int32(3), atomic.LoadInt32(&requests))
}

func TestGetResolvesWaitingOnPlainRequest(t *testing.T) {
	// Auch ohne asynchrone Operationsfamilie wird eine Waiting-Envelope in
	// einer JSON-Antwort aufgelöst.
	var requests int32
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch atomic.AddInt32(&requests, 1) {
		case 1:
			assert.Equal(t, "/compound/cid/cids/JSON", r.URL.Path)
			w.Write([]byte(`{"Waiting":{"ListKey":"K2"}}`))
		default:
			assert.Equal(t, "/compound/listkey/K2/cids/JSON", r.URL.Path)
			w.Write([]byte(`{"IdentifierList":{"CID":[962]}}`))
		}
	})
	client := newTestClient(t, handler)

	body, err := client.Get(context.Background(), RequestSpec{
		Identifier: "962",
		Namespace:  "cid",
		Operation:  "cids",
	})
	require.NoError(t, err)
	assert.Contains(t, string(body), "962")
}

func TestGetPollLimit(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Waiting":{"ListKey":"K3"}}`))
	})
	client := newTestClient(t, handler)
	client.Config.MaxPollAttempts = 3

	_, err := client.Get(context.Background(), RequestSpec{
		Identifier: "C6H6",
		Namespace:  "formula",
	})
	require.ErrorIs(t, err, ErrPollLimit)
}

func TestGetPollRespectsContextCancel(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Waiting":{"ListKey":"K4"}}`))
	})
	client := newTestClient(t, handler)
	client.Config.PollInterval = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := client.Get(ctx, RequestSpec{
		Identifier: "C6H6",
		Namespace:  "formula",
	})
	require.ErrorIs(t, err, context.Canceled)
}

func TestRequestClassifiesFailure(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"Fault":{"Code":"PUGREST.NotFound","Message":"No CID found"}}`))
	})
	client := newTestClient(t, handler)

	_, err := client.Request(context.Background(), RequestSpec{
		Identifier: "99999999",
		Namespace:  "cid",
		Domain:     "compound",
		Output:     "JSON",
	})
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "PUGREST.NotFound")
}

func TestRequestSendsPOSTBodyAndHeaders(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "aspirin", r.PostForm.Get("name"))
		w.Write([]byte(`{}`))
	})
	client := newTestClient(t, handler)

	_, err := client.Request(context.Background(), RequestSpec{
		Identifier: "aspirin",
		Namespace:  "name",
		Domain:     "compound",
		Output:     "JSON",
	})
	require.NoError(t, err)
}

func TestGetSDFSwallowsNotFound(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"Fault":{"Code":"PUGREST.NotFound"}}`))
	})
	client := newTestClient(t, handler)

	sdf, err := client.GetSDF(context.Background(), RequestSpec{
		Identifier: "99999999",
		Namespace:  "cid",
		Domain:     "compound",
	})
	require.NoError(t, err)
	assert.Empty(t, sdf)
}
