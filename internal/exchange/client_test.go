package exchange_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/MikelBai/Bank-management-application/internal/domain"
	"github.com/MikelBai/Bank-management-application/internal/exchange"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/pair/USD/CAD", r.URL.Path)
		fmt.Fprint(w, `{"from":"USD","to":"CAD","rate":"1.35"}`)
	}))
	defer server.Close()

	client := exchange.New(server.URL + "/pair")

	converted, err := client.Convert(decimal.NewFromInt(100), "USD", "CAD")
	require.NoError(t, err)
	assert.True(t, converted.Equal(decimal.RequireFromString("135")))
}

func TestConvertProviderError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := exchange.New(server.URL)

	_, err := client.Convert(decimal.NewFromInt(100), "USD", "CAD")
	assert.ErrorIs(t, err, domain.ErrRateUnavailable)
}

func TestConvertBadResponseBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `not json`)
	}))
	defer server.Close()

	client := exchange.New(server.URL)

	_, err := client.Convert(decimal.NewFromInt(100), "USD", "CAD")
	assert.ErrorIs(t, err, domain.ErrRateUnavailable)
}

func TestConvertProviderUnreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := exchange.New(server.URL)

	_, err := client.Convert(decimal.NewFromInt(100), "USD", "CAD")
	assert.ErrorIs(t, err, domain.ErrRateUnavailable)
}

func TestSupportedCurrencies(t *testing.T) {
	client := exchange.New("http://localhost")

	supported := client.SupportedCurrencies()
	assert.Equal(t, []string{"USD", "EUR", "JPY", "GBP", "AUD", "CNH", "CAD"}, supported)

	supported[0] = "XBT"
	assert.Equal(t, "USD", client.SupportedCurrencies()[0], "callers cannot mutate the supported list")
}
