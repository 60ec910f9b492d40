package config

import "SignalSentinel/internal/model"

// defaultUniverse is a large-cap slice of the S&P 500 used when the config
// lists no stocks.
var defaultUniverse = []model.Ticker{
	{Symbol: "AAPL", Sector: "Technology"},
	{Symbol: "MSFT", Sector: "Technology"},
	{Symbol: "NVDA", Sector: "Technology"},
	{Symbol: "AMD", Sector: "Technology"},
	{Symbol: "AVGO", Sector: "Technology"},
	{Symbol: "GOOGL", Sector: "Communication Services"},
	{Symbol: "META", Sector: "Communication Services"},
	{Symbol: "NFLX", Sector: "Communication Services"},
	{Symbol: "AMZN", Sector: "Consumer Cyclical"},
	{Symbol: "TSLA", Sector: "Consumer Cyclical"},
	{Symbol: "JPM", Sector: "Financial Services"},
	{Symbol: "BAC", Sector: "Financial Services"},
	{Symbol: "V", Sector: "Financial Services"},
	{Symbol: "UNH", Sector: "Healthcare"},
	{Symbol: "LLY", Sector: "Healthcare"},
	{Symbol: "PFE", Sector: "Healthcare"},
	{Symbol: "XOM", Sector: "Energy"},
	{Symbol: "CVX", Sector: "Energy"},
	{Symbol: "CAT", Sector: "Industrials"},
	{Symbol: "BA", Sector: "Industrials"},
	{Symbol: "WMT", Sector: "Consumer Defensive"},
	{Symbol: "KO", Sector: "Consumer Defensive"},
}
