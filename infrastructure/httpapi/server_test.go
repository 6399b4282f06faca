package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	monero "github.com/0-don/monero-ts"
	"github.com/0-don/monero-ts/application/wallet"
	"github.com/0-don/monero-ts/hostfuncs"
	"github.com/0-don/monero-ts/internal/metrics"
	"github.com/0-don/monero-ts/internal/testutil"
	"github.com/0-don/monero-ts/wireformat"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newModule(t *testing.T, init bool) *monero.Module {
	t.Helper()
	return testutil.NewModule(t, testutil.NewWalletService(), init)
}

func newTestServer(t *testing.T, mod *monero.Module, opts ...Option) *httptest.Server {
	t.Helper()
	opts = append([]Option{WithLogger(zerolog.Nop())}, opts...)
	srv := httptest.NewServer(NewServer(mod, opts...).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, srv *httptest.Server, name, body string) (*http.Response, []byte) {
	t.Helper()
	resp, err := http.Post(srv.URL+"/exports/"+name, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, data
}

func TestServer_Health(t *testing.T) {
	mod := newModule(t, false)
	srv := newTestServer(t, mod)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	require.NoError(t, mod.Init())
	resp, err = http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_Manifest(t *testing.T) {
	srv := newTestServer(t, newModule(t, true), WithHostModule("xmr"))

	resp, err := http.Get(srv.URL + "/exports")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var m wireformat.Manifest
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&m))
	assert.Equal(t, "xmr", m.Module)
	assert.Equal(t, wireformat.ManifestVersion, m.Version)

	names := make([]string, len(m.Exports))
	for i, e := range m.Exports {
		names[i] = e.Name
	}
	assert.Subset(t, names, []string{"utils_dummy_method", "create_wallet_random", "create_wallet_dummy", "dummy_method"})
}

func TestServer_ManifestNotInitialized(t *testing.T) {
	srv := newTestServer(t, newModule(t, false))

	resp, err := http.Get(srv.URL + "/exports")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestServer_Describe(t *testing.T) {
	srv := newTestServer(t, newModule(t, true))

	resp, err := http.Get(srv.URL + "/exports/get_mnemonic")
	require.NoError(t, err)
	defer resp.Body.Close()

	var d wireformat.ExportDescriptor
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&d))
	assert.Equal(t, "wallet", d.Module)
	assert.Equal(t, []string{"handle"}, d.Params)
	assert.Equal(t, "string", d.Result)
}

func TestServer_InvokeWalletFlow(t *testing.T) {
	srv := newTestServer(t, newModule(t, true))

	resp, body := post(t, srv, "create_wallet_dummy", "")
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))

	var created wireformat.InvokeResponse
	require.NoError(t, json.Unmarshal(body, &created))
	assert.Equal(t, "handle", created.Kind)
	handle, ok := created.Result.(float64)
	require.True(t, ok)
	assert.NotZero(t, handle)

	resp, body = post(t, srv, "get_mnemonic", `{"args":[`+jsonNumber(handle)+`]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.JSONEq(t, `{"result":"`+wallet.DummyMnemonic+`","kind":"string"}`, string(body))

	resp, body = post(t, srv, "close_wallet", `{"args":[`+jsonNumber(handle)+`]}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.JSONEq(t, `{"kind":"void"}`, string(body))
}

func jsonNumber(f float64) string {
	b, _ := json.Marshal(f)
	return string(b)
}

func TestServer_InvokeErrors(t *testing.T) {
	srv := newTestServer(t, newModule(t, true), WithMaxRequestSize(64))

	tests := []struct {
		name     string
		export   string
		body     string
		wantCode int
		wantType string
	}{
		{"unknown export", "create_wallet_from_seed", "", http.StatusNotFound, "NOT_FOUND"},
		{"wrong arity", "dummy_method", `{"args":[1]}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"wrong kind", "get_mnemonic", `{"args":["one"]}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"null string", "utils_validate_mnemonic", `{"args":[null]}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"null handle", "get_mnemonic", `{"args":[null]}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"unknown handle", "get_mnemonic", `{"args":[424242]}`, http.StatusBadRequest, "VALIDATION_ERROR"},
		{"body too large", "utils_validate_mnemonic", `{"args":["` + strings.Repeat("a", 128) + `"]}`, http.StatusBadRequest, "VALIDATION_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, body := post(t, srv, tt.export, tt.body)
			assert.Equal(t, tt.wantCode, resp.StatusCode)

			var e hostfuncs.ErrorResponse
			require.NoError(t, json.Unmarshal(body, &e))
			assert.Equal(t, tt.wantType, e.Error)
		})
	}
}

func TestServer_Metrics(t *testing.T) {
	m := metrics.New()
	srv := newTestServer(t, newModule(t, true), WithMetrics(m))

	resp, _ := post(t, srv, "dummy_method", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(data), `monero_bridge_http_requests_total{method="POST",path="/exports/:name",status="200"} 1`)
}
