package mocks

import (
	"testing"
	"time"
)

func TestDataGenerator_Generate(t *testing.T) {
	gen := NewDataGenerator(42) // Fixed seed for reproducibility
	config := DefaultConfig()
	config.Count = 100

	data := gen.Generate(config)

	if len(data) != 100 {
		t.Errorf("expected 100 bars, got %d", len(data))
	}

	// Verify bars are in chronological order
	for i := 1; i < len(data); i++ {
		if !data[i].Date.After(data[i-1].Date) {
			t.Errorf("bars not in chronological order at index %d", i)
		}
	}

	// Verify OHLC values are positive
	for i, d := range data {
		if d.Open <= 0 || d.High <= 0 || d.Low <= 0 || d.Close <= 0 {
			t.Errorf("invalid OHLC values at index %d: O=%f H=%f L=%f C=%f",
				i, d.Open, d.High, d.Low, d.Close)
		}
	}

	// Verify High >= Low
	for i, d := range data {
		if d.High < d.Low {
			t.Errorf("High < Low at index %d: H=%f L=%f", i, d.High, d.Low)
		}
	}

	// Verify no weekend bars
	for i, d := range data {
		if d.Date.Weekday() == time.Saturday || d.Date.Weekday() == time.Sunday {
			t.Errorf("weekend bar at index %d: %s", i, d.Date)
		}
	}
}

func TestDataGenerator_CalendarDays(t *testing.T) {
	gen := NewDataGenerator(7)
	config := DefaultConfig()
	config.Count = 10
	config.SkipWeekends = false

	data := gen.Generate(config)

	for i := 1; i < len(data); i++ {
		if data[i].Date.Sub(data[i-1].Date) != 24*time.Hour {
			t.Errorf("unexpected gap at index %d: %v", i, data[i].Date.Sub(data[i-1].Date))
		}
	}
}

func TestDataGenerator_Reproducibility(t *testing.T) {
	// Same seed should produce same results
	gen1 := NewDataGenerator(42)
	gen2 := NewDataGenerator(42)

	config := DefaultConfig()
	config.Count = 10

	data1 := gen1.Generate(config)
	data2 := gen2.Generate(config)

	for i := range data1 {
		if data1[i].Close != data2[i].Close {
			t.Errorf("data not reproducible at index %d: got %f and %f",
				i, data1[i].Close, data2[i].Close)
		}
	}
}

func TestDataGenerator_Different_Seeds(t *testing.T) {
	gen1 := NewDataGenerator(42)
	gen2 := NewDataGenerator(123)

	config := DefaultConfig()
	config.Count = 10

	data1 := gen1.Generate(config)
	data2 := gen2.Generate(config)

	// Different seeds should produce different results
	sameCount := 0
	for i := range data1 {
		if data1[i].Close == data2[i].Close {
			sameCount++
		}
	}

	if sameCount == len(data1) {
		t.Error("different seeds produced identical data")
	}
}

func TestGenerateYear(t *testing.T) {
	data := GenerateYear()

	if len(data) != 252 {
		t.Errorf("expected 252 bars, got %d", len(data))
	}

	if data[0].Date.Weekday() != time.Monday {
		t.Errorf("expected the first bar on Monday 2024-01-01, got %s", data[0].Date.Weekday())
	}
}

func TestGenerateMultiSymbol(t *testing.T) {
	symbols := []string{"AAPL", "GOOG", "MSFT"}
	gen := NewDataGenerator(42)
	config := DefaultConfig()
	config.Count = 100

	data := gen.GenerateMultiSymbol(symbols, config)

	if len(data) != len(symbols) {
		t.Errorf("expected %d series, got %d", len(symbols), len(data))
	}

	for _, symbol := range symbols {
		if len(data[symbol]) != config.Count {
			t.Errorf("expected %d bars for %s, got %d",
				config.Count, symbol, len(data[symbol]))
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	if config.Count != 252 {
		t.Errorf("expected default count 252, got %d", config.Count)
	}

	if !config.SkipWeekends {
		t.Error("expected weekends to be skipped by default")
	}

	if config.InitialPrice != 100.0 {
		t.Errorf("expected default initial price 100.0, got %f", config.InitialPrice)
	}
}
