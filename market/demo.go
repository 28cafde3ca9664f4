/*
demo.go - Fallback market dataset

PURPOSE:
  Fixed demo data served when the upstream rate-limits (its free tier
  allows a handful of calls per day) or when it returns its error
  envelope. Values are deterministic so the dashboard and tests see
  stable output.
*/
package market

func demoMovers() Movers {
	return Movers{
		TopGainers: []Mover{
			{Ticker: "NVDA", Price: "875.00", ChangeAmount: "45.23", ChangePercentage: "5.45%"},
			{Ticker: "TSLA", Price: "185.50", ChangeAmount: "8.75", ChangePercentage: "4.95%"},
			{Ticker: "AMZN", Price: "145.30", ChangeAmount: "6.20", ChangePercentage: "4.46%"},
		},
		TopLosers: []Mover{
			{Ticker: "META", Price: "485.20", ChangeAmount: "-12.45", ChangePercentage: "-2.50%"},
			{Ticker: "GOOGL", Price: "142.15", ChangeAmount: "-5.85", ChangePercentage: "-3.95%"},
			{Ticker: "AAPL", Price: "195.75", ChangeAmount: "-4.25", ChangePercentage: "-2.13%"},
		},
	}
}

func demoNews() []NewsItem {
	return []NewsItem{
		{
			Title:          "Federal Reserve Signals Potential Rate Cuts",
			URL:            "#",
			Summary:        "The Federal Reserve indicated potential interest rate adjustments in response to economic indicators.",
			Source:         "Financial Times",
			Category:       "monetary_policy",
			Sentiment:      "positive",
			RelevanceScore: 0.85,
		},
		{
			Title:          "Tech Stocks Rally on AI Developments",
			URL:            "#",
			Summary:        "Major technology companies see significant gains as AI adoption accelerates across industries.",
			Source:         "Bloomberg",
			Category:       "technology",
			Sentiment:      "positive",
			RelevanceScore: 0.78,
		},
		{
			Title:          "Energy Sector Faces Volatility",
			URL:            "#",
			Summary:        "Oil prices fluctuate amid geopolitical tensions and changing demand patterns.",
			Source:         "Reuters",
			Category:       "energy",
			Sentiment:      "neutral",
			RelevanceScore: 0.65,
		},
	}
}

func demoSectors() []SectorPerformance {
	return []SectorPerformance{
		{Sector: "Information Technology", ChangePercent: "2.45%"},
		{Sector: "Health Care", ChangePercent: "1.87%"},
		{Sector: "Financials", ChangePercent: "0.95%"},
		{Sector: "Consumer Discretionary", ChangePercent: "0.73%"},
		{Sector: "Communication Services", ChangePercent: "0.42%"},
		{Sector: "Industrials", ChangePercent: "0.31%"},
		{Sector: "Materials", ChangePercent: "-0.15%"},
		{Sector: "Energy", ChangePercent: "-0.67%"},
		{Sector: "Utilities", ChangePercent: "-0.89%"},
		{Sector: "Real Estate", ChangePercent: "-1.23%"},
		{Sector: "Consumer Staples", ChangePercent: "-1.45%"},
	}
}

func demoIndicators() []EconomicIndicator {
	return []EconomicIndicator{
		{Name: "GDP Growth Rate", Value: 2.4, Unit: "%", Date: "2024-Q3", Change: 0.3},
		{Name: "Unemployment Rate", Value: 3.7, Unit: "%", Date: "2024-12", Change: -0.1},
		{Name: "Inflation Rate", Value: 3.2, Unit: "%", Date: "2024-12", Change: -0.2},
		{Name: "Federal Funds Rate", Value: 5.25, Unit: "%", Date: "2024-12", Change: 0.0},
	}
}
