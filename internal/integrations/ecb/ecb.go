package ecb

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/avetrov/finance-service/internal/config"
	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Client fetches the ECB daily reference rates (EUR-based) and converts
// amounts between currencies. Rates are cached for the calendar day
// they were fetched on.
type Client struct {
	url    string
	client *http.Client
	log    *logrus.Logger

	mu        sync.Mutex
	rates     map[string]decimal.Decimal
	fetchedAt time.Time
}

// NewClient initializes a new ECB rates client
func NewClient(cfg *config.Config, log *logrus.Logger) *Client {
	return &Client{
		url: cfg.ECBURL,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		log: log,
	}
}

func (c *Client) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}

	c.log.Debugf("ECB XML response: %d bytes", len(body))
	return body, nil
}

// parseRates extracts the currency/rate pairs from the eurofxref feed.
// EUR itself is the reference and is added with rate 1.
func parseRates(rawBody []byte) (map[string]decimal.Decimal, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(rawBody); err != nil {
		return nil, fmt.Errorf("failed to parse XML: %v", err)
	}

	cubes := doc.FindElements("//Cube[@currency]")
	if len(cubes) == 0 {
		return nil, fmt.Errorf("no rate data found in XML")
	}

	rates := map[string]decimal.Decimal{"EUR": decimal.NewFromInt(1)}
	for _, cube := range cubes {
		currency := cube.SelectAttrValue("currency", "")
		rateText := cube.SelectAttrValue("rate", "")
		if currency == "" || rateText == "" {
			continue
		}
		rate, err := decimal.NewFromString(rateText)
		if err != nil {
			return nil, fmt.Errorf("failed to parse rate for %s: %v", currency, err)
		}
		rates[currency] = rate
	}
	return rates, nil
}

// getRates returns the cached table or fetches a fresh one.
func (c *Client) getRates(ctx context.Context) (map[string]decimal.Decimal, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if c.rates != nil && c.fetchedAt.Year() == now.Year() && c.fetchedAt.YearDay() == now.YearDay() {
		return c.rates, nil
	}

	body, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}
	rates, err := parseRates(body)
	if err != nil {
		return nil, err
	}

	c.rates = rates
	c.fetchedAt = now
	c.log.Infof("Fetched %d ECB reference rates", len(rates))
	return rates, nil
}

// Convert restates amount from one currency into another using the
// EUR-based reference table.
func (c *Client) Convert(ctx context.Context, amount decimal.Decimal, from, to string) (decimal.Decimal, error) {
	if from == to {
		return amount, nil
	}
	rates, err := c.getRates(ctx)
	if err != nil {
		return decimal.Zero, err
	}

	fromRate, ok := rates[from]
	if !ok || fromRate.IsZero() {
		return decimal.Zero, fmt.Errorf("unknown currency: %s", from)
	}
	toRate, ok := rates[to]
	if !ok {
		return decimal.Zero, fmt.Errorf("unknown currency: %s", to)
	}

	return amount.Div(fromRate).Mul(toRate), nil
}
