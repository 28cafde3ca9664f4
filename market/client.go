/*
Package market provides the market-data client for the dashboard's
market overview.

PURPOSE:
  Fetches stock quotes, top movers, market news, sector performance, and
  economic indicators from an Alpha Vantage-compatible endpoint, mapping
  the upstream wire shapes to typed results. The free tier rate-limits
  aggressively; when the upstream answers with its "Note" or
  "Error Message" envelope instead of data, the client falls back to a
  fixed demo dataset so the dashboard keeps rendering.

API KEY:
  Requests require an API key. A client constructed without one returns
  ErrNoAPIKey from every fetch; callers decide whether that is fatal.

ERROR HANDLING:
  Transport failures and non-200 statuses surface as errors with a
  limited error-body read. Rate-limit envelopes do NOT error; they fall
  back to demo data, matching the upstream's soft-failure convention.

SEE ALSO:
  - demo.go: the fallback dataset
  - api/handlers.go: HTTP surface over this client
*/
package market

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// DefaultEndpoint is the Alpha Vantage query URL.
const DefaultEndpoint = "https://www.alphavantage.co/query"

// ErrNoAPIKey is returned when the client has no API key configured.
var ErrNoAPIKey = errors.New("market: api key not configured")

// =============================================================================
// RESULT TYPES
// =============================================================================

// StockQuote is one symbol's latest price and daily change.
type StockQuote struct {
	Symbol        string  `json:"symbol"`
	Price         float64 `json:"price"`
	Change        float64 `json:"change"`
	ChangePercent float64 `json:"changePercent"`
}

// Mover is one entry of the top gainers/losers list. Values stay strings
// the way the upstream reports them.
type Mover struct {
	Ticker           string `json:"ticker"`
	Price            string `json:"price"`
	ChangeAmount     string `json:"change_amount"`
	ChangePercentage string `json:"change_percentage"`
}

// Movers pairs the day's top gainers and losers.
type Movers struct {
	TopGainers []Mover `json:"top_gainers"`
	TopLosers  []Mover `json:"top_losers"`
}

// NewsItem is one market news article with its sentiment.
type NewsItem struct {
	Title          string  `json:"title"`
	URL            string  `json:"url"`
	Summary        string  `json:"summary"`
	Source         string  `json:"source"`
	Category       string  `json:"category"`
	Sentiment      string  `json:"sentiment"`
	RelevanceScore float64 `json:"relevanceScore"`
}

// SectorPerformance is one sector's real-time change.
type SectorPerformance struct {
	Sector        string `json:"sector"`
	ChangePercent string `json:"change_percent"`
}

// EconomicIndicator is one headline economic figure.
type EconomicIndicator struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Unit   string  `json:"unit"`
	Date   string  `json:"date"`
	Change float64 `json:"change"`
}

// Overview bundles the dashboard's market widgets into one response.
type Overview struct {
	Timestamp    string              `json:"timestamp"`
	MarketStatus string              `json:"market_status"`
	Movers       Movers              `json:"topGainersLosers"`
	Sectors      []SectorPerformance `json:"sectorPerformance"`
	News         []NewsItem          `json:"news"`
}

// =============================================================================
// CLIENT
// =============================================================================

// Client talks to an Alpha Vantage-compatible market-data endpoint.
type Client struct {
	endpoint   string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a client. An empty endpoint selects DefaultEndpoint;
// an empty apiKey makes every fetch return ErrNoAPIKey.
func NewClient(endpoint, apiKey string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		apiKey:   apiKey,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// StockQuote fetches the latest quote for one symbol.
func (c *Client) StockQuote(ctx context.Context, symbol string) (StockQuote, error) {
	if symbol == "" {
		symbol = "AAPL"
	}

	body, limited, err := c.query(ctx, map[string]string{
		"function": "GLOBAL_QUOTE",
		"symbol":   symbol,
	})
	if err != nil {
		return StockQuote{}, err
	}
	if limited {
		return demoQuote(symbol), nil
	}

	// Upstream nests the quote under numbered field names.
	var envelope struct {
		Quote map[string]string `json:"Global Quote"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return StockQuote{}, fmt.Errorf("market: failed to decode quote: %w", err)
	}
	if len(envelope.Quote) == 0 {
		return demoQuote(symbol), nil
	}

	price, _ := strconv.ParseFloat(envelope.Quote["05. price"], 64)
	change, _ := strconv.ParseFloat(envelope.Quote["09. change"], 64)
	pct, _ := strconv.ParseFloat(strings.TrimSuffix(envelope.Quote["10. change percent"], "%"), 64)

	return StockQuote{
		Symbol:        envelope.Quote["01. symbol"],
		Price:         price,
		Change:        change,
		ChangePercent: pct,
	}, nil
}

// TopMovers fetches the day's top gainers and losers.
func (c *Client) TopMovers(ctx context.Context) (Movers, error) {
	body, limited, err := c.query(ctx, map[string]string{
		"function": "TOP_GAINERS_LOSERS",
	})
	if err != nil {
		return Movers{}, err
	}
	if limited {
		return demoMovers(), nil
	}

	var movers Movers
	if err := json.Unmarshal(body, &movers); err != nil {
		return Movers{}, fmt.Errorf("market: failed to decode movers: %w", err)
	}
	if len(movers.TopGainers) == 0 && len(movers.TopLosers) == 0 {
		return demoMovers(), nil
	}
	return movers, nil
}

// News fetches financial-market news with sentiment labels.
func (c *Client) News(ctx context.Context) ([]NewsItem, error) {
	body, limited, err := c.query(ctx, map[string]string{
		"function": "NEWS_SENTIMENT",
		"topics":   "financial_markets",
	})
	if err != nil {
		return nil, err
	}
	if limited {
		return demoNews(), nil
	}

	var envelope struct {
		Feed []struct {
			Title     string `json:"title"`
			URL       string `json:"url"`
			Summary   string `json:"summary"`
			Source    string `json:"source"`
			Sentiment string `json:"overall_sentiment_label"`
			Topics    []struct {
				Topic          string `json:"topic"`
				RelevanceScore string `json:"relevance_score"`
			} `json:"topics"`
		} `json:"feed"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("market: failed to decode news: %w", err)
	}
	if len(envelope.Feed) == 0 {
		return demoNews(), nil
	}

	items := make([]NewsItem, 0, len(envelope.Feed))
	for _, f := range envelope.Feed {
		item := NewsItem{
			Title:     f.Title,
			URL:       f.URL,
			Summary:   f.Summary,
			Source:    f.Source,
			Sentiment: strings.ToLower(f.Sentiment),
		}
		if len(f.Topics) > 0 {
			item.Category = f.Topics[0].Topic
			item.RelevanceScore, _ = strconv.ParseFloat(f.Topics[0].RelevanceScore, 64)
		}
		items = append(items, item)
	}
	return items, nil
}

// Sectors fetches real-time sector performance.
func (c *Client) Sectors(ctx context.Context) ([]SectorPerformance, error) {
	body, limited, err := c.query(ctx, map[string]string{
		"function": "SECTOR",
	})
	if err != nil {
		return nil, err
	}
	if limited {
		return demoSectors(), nil
	}

	var envelope struct {
		RealTime map[string]string `json:"Rank A: Real-Time Performance"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("market: failed to decode sectors: %w", err)
	}
	if len(envelope.RealTime) == 0 {
		return demoSectors(), nil
	}

	sectors := make([]SectorPerformance, 0, len(envelope.RealTime))
	for name, pct := range envelope.RealTime {
		sectors = append(sectors, SectorPerformance{Sector: name, ChangePercent: pct})
	}
	return sectors, nil
}

// EconomicIndicators reports headline economic figures. The upstream
// gates these behind its premium tier, so the set is served locally.
func (c *Client) EconomicIndicators(_ context.Context) ([]EconomicIndicator, error) {
	return demoIndicators(), nil
}

// Overview assembles movers, sectors, and news into the dashboard
// bundle. Partial upstream failures degrade to the demo dataset rather
// than failing the whole overview.
func (c *Client) Overview(ctx context.Context) (Overview, error) {
	if c.apiKey == "" {
		return Overview{}, ErrNoAPIKey
	}

	movers, err := c.TopMovers(ctx)
	if err != nil {
		movers = demoMovers()
	}
	sectors, err := c.Sectors(ctx)
	if err != nil {
		sectors = demoSectors()
	}
	news, err := c.News(ctx)
	if err != nil {
		news = demoNews()
	}

	return Overview{
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
		MarketStatus: "Open",
		Movers:       movers,
		Sectors:      sectors,
		News:         news,
	}, nil
}

// =============================================================================
// TRANSPORT
// =============================================================================

// query performs one GET against the endpoint. limited is true when the
// upstream answered with its rate-limit/error envelope instead of data.
func (c *Client) query(ctx context.Context, params map[string]string) (body []byte, limited bool, err error) {
	if c.apiKey == "" {
		return nil, false, ErrNoAPIKey
	}

	var b strings.Builder
	b.WriteString(c.endpoint)
	sep := "?"
	for k, v := range params {
		b.WriteString(sep)
		b.WriteString(k)
		b.WriteString("=")
		b.WriteString(v)
		sep = "&"
	}
	b.WriteString(sep)
	b.WriteString("apikey=")
	b.WriteString(c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.String(), nil)
	if err != nil {
		return nil, false, fmt.Errorf("market: failed to build request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("market: failed to call endpoint: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<10))
		return nil, false, fmt.Errorf("market: endpoint returned status %d: %s", resp.StatusCode, string(detail))
	}

	body, err = io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return nil, false, fmt.Errorf("market: failed to read response: %w", err)
	}

	var envelope struct {
		Note         string `json:"Note"`
		ErrorMessage string `json:"Error Message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Note != "" || envelope.ErrorMessage != "" {
			return nil, true, nil
		}
	}
	return body, false, nil
}

// demoQuote builds a deterministic quote for one symbol.
func demoQuote(symbol string) StockQuote {
	q := StockQuote{Symbol: symbol, Price: 150.00, Change: 1.25}
	q.ChangePercent = q.Change / q.Price * 100
	return q
}
