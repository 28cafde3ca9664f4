/*
client_test.go - Tests for the market-data client

Tests run against httptest upstreams speaking the Alpha Vantage wire
shapes, covering the happy-path mappings, the rate-limit demo fallback,
and the missing-key error.
*/
package market_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/financegpt/finance-engine/market"
)

func TestStockQuote_MapsUpstreamFields(t *testing.T) {
	// GIVEN: An upstream answering the numbered GLOBAL_QUOTE shape
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "GLOBAL_QUOTE", r.URL.Query().Get("function"))
		require.Equal(t, "MSFT", r.URL.Query().Get("symbol"))
		require.Equal(t, "demo-key", r.URL.Query().Get("apikey"))
		fmt.Fprint(w, `{"Global Quote": {
			"01. symbol": "MSFT",
			"05. price": "420.5500",
			"09. change": "3.2100",
			"10. change percent": "0.7694%"
		}}`)
	}))
	defer srv.Close()

	// WHEN: Fetching a quote
	c := market.NewClient(srv.URL, "demo-key")
	quote, err := c.StockQuote(context.Background(), "MSFT")

	// THEN: The numbered fields map to the typed result
	require.NoError(t, err)
	assert.Equal(t, "MSFT", quote.Symbol)
	assert.InDelta(t, 420.55, quote.Price, 0.001)
	assert.InDelta(t, 3.21, quote.Change, 0.001)
	assert.InDelta(t, 0.7694, quote.ChangePercent, 0.0001)
}

func TestStockQuote_RateLimitFallsBackToDemo(t *testing.T) {
	// GIVEN: An upstream answering with its rate-limit Note envelope
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Note": "Thank you for using Alpha Vantage! Our standard API rate limit is 25 requests per day."}`)
	}))
	defer srv.Close()

	// WHEN: Fetching a quote
	c := market.NewClient(srv.URL, "demo-key")
	quote, err := c.StockQuote(context.Background(), "AAPL")

	// THEN: Demo data instead of an error, consistent internally
	require.NoError(t, err)
	assert.Equal(t, "AAPL", quote.Symbol)
	assert.Greater(t, quote.Price, 0.0)
	assert.InDelta(t, quote.Change/quote.Price*100, quote.ChangePercent, 0.0001)
}

func TestTopMovers_PassesThroughUpstreamShape(t *testing.T) {
	// GIVEN: An upstream answering the TOP_GAINERS_LOSERS shape
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{
			"top_gainers": [{"ticker": "ABC", "price": "10.00", "change_amount": "1.00", "change_percentage": "11.11%"}],
			"top_losers":  [{"ticker": "XYZ", "price": "20.00", "change_amount": "-2.00", "change_percentage": "-9.09%"}]
		}`)
	}))
	defer srv.Close()

	// WHEN: Fetching movers
	c := market.NewClient(srv.URL, "demo-key")
	movers, err := c.TopMovers(context.Background())

	// THEN: Both lists come through
	require.NoError(t, err)
	require.Len(t, movers.TopGainers, 1)
	require.Len(t, movers.TopLosers, 1)
	assert.Equal(t, "ABC", movers.TopGainers[0].Ticker)
	assert.Equal(t, "-9.09%", movers.TopLosers[0].ChangePercentage)
}

func TestNews_MapsSentimentFeed(t *testing.T) {
	// GIVEN: An upstream answering the NEWS_SENTIMENT feed shape
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "financial_markets", r.URL.Query().Get("topics"))
		fmt.Fprint(w, `{"feed": [{
			"title": "Markets Edge Higher",
			"url": "https://example.com/a",
			"summary": "Stocks rose modestly.",
			"source": "Example Wire",
			"overall_sentiment_label": "Somewhat-Bullish",
			"topics": [{"topic": "financial_markets", "relevance_score": "0.92"}]
		}]}`)
	}))
	defer srv.Close()

	// WHEN: Fetching news
	c := market.NewClient(srv.URL, "demo-key")
	items, err := c.News(context.Background())

	// THEN: Feed entries map to typed items with lowercased sentiment
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Markets Edge Higher", items[0].Title)
	assert.Equal(t, "somewhat-bullish", items[0].Sentiment)
	assert.Equal(t, "financial_markets", items[0].Category)
	assert.InDelta(t, 0.92, items[0].RelevanceScore, 0.0001)
}

func TestSectors_MapsRankedPerformance(t *testing.T) {
	// GIVEN: An upstream answering the SECTOR shape
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Rank A: Real-Time Performance": {"Energy": "-0.50%", "Financials": "1.10%"}}`)
	}))
	defer srv.Close()

	// WHEN: Fetching sector performance
	c := market.NewClient(srv.URL, "demo-key")
	sectors, err := c.Sectors(context.Background())

	// THEN: One entry per sector
	require.NoError(t, err)
	require.Len(t, sectors, 2)
	byName := map[string]string{}
	for _, s := range sectors {
		byName[s.Sector] = s.ChangePercent
	}
	assert.Equal(t, "-0.50%", byName["Energy"])
	assert.Equal(t, "1.10%", byName["Financials"])
}

func TestEconomicIndicators_ServedLocally(t *testing.T) {
	// GIVEN: A client with no reachable upstream at all
	c := market.NewClient("http://127.0.0.1:0", "demo-key")

	// WHEN: Fetching indicators
	indicators, err := c.EconomicIndicators(context.Background())

	// THEN: The fixed headline set, no network involved
	require.NoError(t, err)
	require.Len(t, indicators, 4)
	assert.Equal(t, "GDP Growth Rate", indicators[0].Name)
}

func TestFetches_RequireAPIKey(t *testing.T) {
	// GIVEN: A client without an API key
	c := market.NewClient("", "")

	// WHEN/THEN: Every networked fetch refuses up front
	_, err := c.StockQuote(context.Background(), "AAPL")
	assert.ErrorIs(t, err, market.ErrNoAPIKey)
	_, err = c.TopMovers(context.Background())
	assert.ErrorIs(t, err, market.ErrNoAPIKey)
	_, err = c.Overview(context.Background())
	assert.ErrorIs(t, err, market.ErrNoAPIKey)
}

func TestOverview_DegradesPerWidget(t *testing.T) {
	// GIVEN: An upstream that rate-limits everything
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"Note": "rate limited"}`)
	}))
	defer srv.Close()

	// WHEN: Assembling the overview
	c := market.NewClient(srv.URL, "demo-key")
	overview, err := c.Overview(context.Background())

	// THEN: Every widget carries the demo dataset
	require.NoError(t, err)
	assert.NotEmpty(t, overview.Timestamp)
	assert.Equal(t, "Open", overview.MarketStatus)
	assert.NotEmpty(t, overview.Movers.TopGainers)
	assert.NotEmpty(t, overview.Sectors)
	assert.NotEmpty(t, overview.News)
}

func TestStockQuote_SurfacesUpstreamStatusErrors(t *testing.T) {
	// GIVEN: An upstream answering 503
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "maintenance window", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	// WHEN: Fetching a quote
	c := market.NewClient(srv.URL, "demo-key")
	_, err := c.StockQuote(context.Background(), "AAPL")

	// THEN: The status and body detail surface in the error
	require.Error(t, err)
	assert.Contains(t, err.Error(), "503")
	assert.Contains(t, err.Error(), "maintenance window")
}
