/*
market.go - Market-data endpoints over the market client

PURPOSE:
  GET endpoints backing the dashboard's market overview widgets. The
  client already degrades to demo data on upstream rate limits, so these
  handlers only translate hard failures: a missing API key is a server
  misconfiguration (500), anything else upstream is a 502.

ENDPOINTS:
  GET /api/market                      Full overview bundle
  GET /api/market/quote?symbol=AAPL    One stock quote
  GET /api/market/movers               Top gainers and losers
  GET /api/market/news                 Market news with sentiment
  GET /api/market/sectors              Sector performance
  GET /api/market/indicators           Economic indicators

SEE ALSO:
  - market/client.go: fetch and fallback behavior
  - handlers.go: response helpers
*/
package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/financegpt/finance-engine/market"
)

// GetMarketOverview handles GET /api/market.
func (h *Handler) GetMarketOverview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.Market.Overview(r.Context())
	if err != nil {
		writeMarketError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, overview)
}

// GetStockQuote handles GET /api/market/quote.
func (h *Handler) GetStockQuote(w http.ResponseWriter, r *http.Request) {
	quote, err := h.Market.StockQuote(r.Context(), r.URL.Query().Get("symbol"))
	if err != nil {
		writeMarketError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, quote)
}

// GetTopMovers handles GET /api/market/movers.
func (h *Handler) GetTopMovers(w http.ResponseWriter, r *http.Request) {
	movers, err := h.Market.TopMovers(r.Context())
	if err != nil {
		writeMarketError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, movers)
}

// GetMarketNews handles GET /api/market/news.
func (h *Handler) GetMarketNews(w http.ResponseWriter, r *http.Request) {
	news, err := h.Market.News(r.Context())
	if err != nil {
		writeMarketError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, news)
}

// GetSectorPerformance handles GET /api/market/sectors.
func (h *Handler) GetSectorPerformance(w http.ResponseWriter, r *http.Request) {
	sectors, err := h.Market.Sectors(r.Context())
	if err != nil {
		writeMarketError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sectors)
}

// GetEconomicIndicators handles GET /api/market/indicators.
func (h *Handler) GetEconomicIndicators(w http.ResponseWriter, r *http.Request) {
	indicators, err := h.Market.EconomicIndicators(r.Context())
	if err != nil {
		writeMarketError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, indicators)
}

func writeMarketError(w http.ResponseWriter, err error) {
	if errors.Is(err, market.ErrNoAPIKey) {
		writeError(w, http.StatusInternalServerError, "Market data API key not configured", nil)
		return
	}
	log.Printf("api: market fetch failed: %v", err)
	writeError(w, http.StatusBadGateway, "Failed to fetch market data", nil)
}
