package ecb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avetrov/finance-service/internal/config"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

const sampleFeed = `<?xml version="1.0" encoding="UTF-8"?>
<gesmes:Envelope xmlns:gesmes="http://www.gesmes.org/xml/2002-08-01" xmlns="http://www.ecb.int/vocabulary/2002-08-01/eurofxref">
	<gesmes:subject>Reference rates</gesmes:subject>
	<Cube>
		<Cube time="2024-03-15">
			<Cube currency="USD" rate="1.0892"/>
			<Cube currency="GBP" rate="0.8541"/>
			<Cube currency="JPY" rate="161.95"/>
		</Cube>
	</Cube>
</gesmes:Envelope>`

func TestParseRates(t *testing.T) {
	rates, err := parseRates([]byte(sampleFeed))
	require.NoError(t, err)

	require.True(t, rates["EUR"].Equal(decimal.NewFromInt(1)))
	require.True(t, rates["USD"].Equal(decimal.RequireFromString("1.0892")))
	require.True(t, rates["GBP"].Equal(decimal.RequireFromString("0.8541")))
}

func TestParseRatesEmpty(t *testing.T) {
	_, err := parseRates([]byte(`<Envelope></Envelope>`))
	require.Error(t, err)
}

func TestConvert(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(sampleFeed))
	}))
	defer srv.Close()

	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	c := NewClient(&config.Config{ECBURL: srv.URL}, log)

	// USD to EUR divides by the USD rate
	got, err := c.Convert(context.Background(), decimal.NewFromInt(1000), "USD", "EUR")
	require.NoError(t, err)
	want := decimal.NewFromInt(1000).Div(decimal.RequireFromString("1.0892"))
	require.True(t, got.Equal(want))

	// same currency is the identity
	got, err = c.Convert(context.Background(), decimal.NewFromInt(42), "USD", "USD")
	require.NoError(t, err)
	require.True(t, got.Equal(decimal.NewFromInt(42)))

	_, err = c.Convert(context.Background(), decimal.NewFromInt(1), "XXX", "EUR")
	require.Error(t, err)
}
