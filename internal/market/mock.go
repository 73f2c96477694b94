package market

import (
	"time"

	"EquitySim/internal/model"
)

// MockProvider returns controllable fixed data for development and testing.
type MockProvider struct {
	Bars      model.Series
	Dividends model.DividendSeries
	Meta      model.Metadata
	Price     float64
	Err       error
}

func (m *MockProvider) Name() string { return "mock" }

func (m *MockProvider) FetchDailyBars(_ string, _ string) (model.Series, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Bars != nil {
		return m.Bars, nil
	}
	return GenerateMockBars(m.Price, 120), nil
}

func (m *MockProvider) FetchDividends(_ string, from, to time.Time) (model.DividendSeries, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Dividends.Between(from, to), nil
}

func (m *MockProvider) FetchMetadata(symbol string) (model.Metadata, error) {
	if m.Err != nil {
		return model.Metadata{}, m.Err
	}
	if m.Meta != (model.Metadata{}) {
		return m.Meta, nil
	}
	return model.Metadata{Symbol: symbol, Name: symbol, Exchange: "N/A", Currency: "USD"}, nil
}

// GenerateMockBars produces a gently trending daily series around basePrice.
func GenerateMockBars(basePrice float64, count int) model.Series {
	bars := make(model.Series, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.Bar{
			Date:   model.Day(time.Now().AddDate(0, 0, -(count - i))),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
