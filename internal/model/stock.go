package model

// Ticker is one entry of the stock scanner universe.
type Ticker struct {
	Symbol string `yaml:"symbol"`
	Sector string `yaml:"sector"`
}

// HotStock is a ticker flagged by the scanner for an abnormal daily move on
// unusual volume. Price levels are rounded to cents.
type HotStock struct {
	Ticker      string
	Sector      string
	Entry       float64
	Stop        float64
	Targets     [3]float64
	ChangePct   float64
	Volume      float64
	VolumeRatio float64
	Strict      bool
}
