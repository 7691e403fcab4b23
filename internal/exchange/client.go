package exchange

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/MikelBai/Bank-management-application/internal/domain"
	"github.com/shopspring/decimal"
)

// Client fetches pair conversion rates from the exchange-rate provider. The
// provider is a synchronous black box: a call either yields a rate or a
// definite failure, and the core never substitutes a rate of its own.
type Client struct {
	baseURL string
	margin  decimal.Decimal
	client  *http.Client

	supported []string
}

type rateResponse struct {
	From string          `json:"from"`
	To   string          `json:"to"`
	Rate decimal.Decimal `json:"rate"`
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		margin:  decimal.Zero,
		client: &http.Client{
			Timeout: 5 * time.Second,
		},
		supported: []string{"USD", "EUR", "JPY", "GBP", "AUD", "CNH", "CAD"},
	}
}

func (c *Client) SupportedCurrencies() []string {
	out := make([]string, len(c.supported))
	copy(out, c.supported)
	return out
}

// Convert returns amount expressed in the target currency, net of the
// provider margin. Any transport or decoding problem surfaces as
// domain.ErrRateUnavailable.
func (c *Client) Convert(amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	rate, err := c.rate(from, to)
	if err != nil {
		return decimal.Zero, err
	}

	afterMargin := amount.Mul(decimal.NewFromInt(1).Sub(c.margin))
	return afterMargin.Mul(rate), nil
}

func (c *Client) rate(from, to string) (decimal.Decimal, error) {
	pairURL, err := url.JoinPath(c.baseURL, from, to)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: building pair URL: %v", domain.ErrRateUnavailable, err)
	}

	resp, err := c.client.Get(pairURL)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %v", domain.ErrRateUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return decimal.Zero, fmt.Errorf("%w: provider returned status %d", domain.ErrRateUnavailable, resp.StatusCode)
	}

	var body rateResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return decimal.Zero, fmt.Errorf("%w: decoding provider response: %v", domain.ErrRateUnavailable, err)
	}
	return body.Rate, nil
}
