package finance

import "time"

// yahooChartResp mirrors Yahoo v8 chart response (trimmed to needed fields)
type yahooChartResp struct {
	Chart struct {
		Result []struct {
			Meta       chartMeta `json:"meta"`
			Timestamp  []int64   `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *yahooError `json:"error"`
	} `json:"chart"`
}

type chartMeta struct {
	Symbol             string  `json:"symbol"`
	GmtOffset          int     `json:"gmtoffset"`
	Timezone           string  `json:"timezone"`
	RegularMarketPrice float64 `json:"regularMarketPrice"`
	ChartPreviousClose float64 `json:"chartPreviousClose"`
}

type yahooError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// series is the cleaned daily close history of one symbol.
type series struct {
	symbol string
	days   []time.Time
	closes []float64
	meta   chartMeta
}
