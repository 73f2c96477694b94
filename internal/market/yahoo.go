package market

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"EquitySim/internal/model"
)

// YahooProvider implements Provider using the Yahoo Finance v8 chart API.
type YahooProvider struct {
	Client  *http.Client
	BaseURL string
}

// NewYahooProvider creates a Yahoo Finance provider with optional proxy support.
func NewYahooProvider(proxyURL string) *YahooProvider {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &YahooProvider{
		Client: &http.Client{
			Timeout:   30 * time.Second,
			Transport: transport,
		},
		BaseURL: "https://query1.finance.yahoo.com",
	}
}

func (p *YahooProvider) Name() string { return "yahoo" }

// yahooChart is the response structure from the Yahoo Finance chart API.
type yahooChart struct {
	Chart struct {
		Result []yahooResult `json:"result"`
		Error  *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type yahooResult struct {
	Meta struct {
		Currency            string  `json:"currency"`
		Symbol              string  `json:"symbol"`
		ExchangeName        string  `json:"exchangeName"`
		FullExchangeName    string  `json:"fullExchangeName"`
		LongName            string  `json:"longName"`
		ShortName           string  `json:"shortName"`
		RegularMarketPrice  float64 `json:"regularMarketPrice"`
		FiftyTwoWeekHigh    float64 `json:"fiftyTwoWeekHigh"`
		FiftyTwoWeekLow     float64 `json:"fiftyTwoWeekLow"`
		RegularMarketVolume float64 `json:"regularMarketVolume"`
	} `json:"meta"`
	Timestamp []int64 `json:"timestamp"`
	Events    struct {
		Dividends map[string]struct {
			Amount float64 `json:"amount"`
			Date   int64   `json:"date"`
		} `json:"dividends"`
	} `json:"events"`
	Indicators struct {
		Quote []struct {
			Open   []interface{} `json:"open"`
			High   []interface{} `json:"high"`
			Low    []interface{} `json:"low"`
			Close  []interface{} `json:"close"`
			Volume []interface{} `json:"volume"`
		} `json:"quote"`
	} `json:"indicators"`
}

func toFloat(v interface{}) float64 {
	if v == nil {
		return 0
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}

func (p *YahooProvider) fetchChart(symbol, query string) (*yahooResult, error) {
	u := fmt.Sprintf("%s/v8/finance/chart/%s?%s", p.BaseURL, url.PathEscape(symbol), query)

	req, err := http.NewRequest("GET", u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")

	resp, err := p.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo fetch: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("yahoo read body: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("yahoo %q: %w", symbol, ErrSymbolNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo: status %d, body: %s", resp.StatusCode, string(body))
	}

	var chart yahooChart
	if err := json.Unmarshal(body, &chart); err != nil {
		return nil, fmt.Errorf("yahoo decode: %w", err)
	}
	if chart.Chart.Error != nil {
		if strings.EqualFold(chart.Chart.Error.Code, "Not Found") {
			return nil, fmt.Errorf("yahoo %q: %s: %w", symbol, chart.Chart.Error.Description, ErrSymbolNotFound)
		}
		return nil, fmt.Errorf("yahoo api error: %s", chart.Chart.Error.Description)
	}
	if len(chart.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo %q: %w", symbol, ErrNoData)
	}
	return &chart.Chart.Result[0], nil
}

func barsFromResult(result *yahooResult) model.Series {
	if len(result.Indicators.Quote) == 0 {
		return nil
	}
	quote := result.Indicators.Quote[0]
	bars := make(model.Series, 0, len(result.Timestamp))

	for i, ts := range result.Timestamp {
		o := toFloat(quote.Open[i])
		h := toFloat(quote.High[i])
		l := toFloat(quote.Low[i])
		c := toFloat(quote.Close[i])
		if o == 0 && h == 0 && l == 0 && c == 0 {
			continue // skip null bars (holidays etc.)
		}
		bars = append(bars, model.Bar{
			Date:   model.Day(time.Unix(ts, 0)),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  c,
			Volume: toFloat(quote.Volume[i]),
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars
}

// FetchDailyBars returns daily bars for the given period token.
func (p *YahooProvider) FetchDailyBars(symbol, period string) (model.Series, error) {
	if !ValidPeriod(period) {
		return nil, fmt.Errorf("unsupported period %q", period)
	}
	result, err := p.fetchChart(symbol, fmt.Sprintf("interval=1d&range=%s", period))
	if err != nil {
		return nil, err
	}
	bars := barsFromResult(result)
	if len(bars) == 0 {
		return nil, fmt.Errorf("yahoo %q: %w", symbol, ErrNoData)
	}
	return bars, nil
}

// FetchDividends returns the dividend events in [from, to]. Yahoo delivers
// them as chart events, the same way yfinance reads them.
func (p *YahooProvider) FetchDividends(symbol string, from, to time.Time) (model.DividendSeries, error) {
	query := fmt.Sprintf("interval=1d&events=div&period1=%d&period2=%d",
		from.Unix(), to.AddDate(0, 0, 1).Unix())
	result, err := p.fetchChart(symbol, query)
	if err != nil {
		return nil, err
	}

	var divs model.DividendSeries
	for _, ev := range result.Events.Dividends {
		d := model.Day(time.Unix(ev.Date, 0))
		if d.Before(model.Day(from)) || d.After(model.Day(to)) {
			continue
		}
		if ev.Amount <= 0 {
			continue
		}
		divs = append(divs, model.Dividend{Date: d, AmountPerShare: ev.Amount})
	}
	sort.Slice(divs, func(i, j int) bool { return divs[i].Date.Before(divs[j].Date) })
	return divs, nil
}

// FetchMetadata reads instrument metadata from the chart meta block.
// Missing fields fall back to placeholders and never fail the caller.
func (p *YahooProvider) FetchMetadata(symbol string) (model.Metadata, error) {
	result, err := p.fetchChart(symbol, "interval=1d&range=1d")
	if err != nil {
		return model.Metadata{}, err
	}

	m := result.Meta
	meta := model.Metadata{
		Symbol:       symbol,
		Name:         m.LongName,
		Exchange:     m.FullExchangeName,
		Currency:     m.Currency,
		MarketPrice:  m.RegularMarketPrice,
		High52Week:   m.FiftyTwoWeekHigh,
		Low52Week:    m.FiftyTwoWeekLow,
		MarketVolume: m.RegularMarketVolume,
	}
	if meta.Name == "" {
		meta.Name = m.ShortName
	}
	if meta.Name == "" {
		meta.Name = symbol
	}
	if meta.Exchange == "" {
		meta.Exchange = m.ExchangeName
	}
	if meta.Exchange == "" {
		meta.Exchange = "N/A"
	}
	if meta.Currency == "" {
		meta.Currency = "USD"
	}
	return meta, nil
}
