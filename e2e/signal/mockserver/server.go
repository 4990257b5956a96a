// Package mockserver provides a mock Alpha Vantage server for testing.
// It serves TIME_SERIES_DAILY payloads built from generated bars and can be
// switched into the error modes the real API reports inside a 200 body.
package mockserver

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/rxtech-lab/argo-signal/internal/types"
)

// Mode selects how the server answers a query.
type Mode int

const (
	// ModeOK serves the configured series.
	ModeOK Mode = iota
	// ModeRateLimited answers with a "Note" body.
	ModeRateLimited
	// ModeInvalidSymbol answers with an "Error Message" body.
	ModeInvalidSymbol
	// ModeServerError answers HTTP 500.
	ModeServerError
)

// MockAlphaVantageServer provides a mock Alpha Vantage server for testing.
type MockAlphaVantageServer struct {
	mu sync.RWMutex

	// HTTP server
	httpServer *http.Server
	listener   net.Listener

	apiKey   string
	series   map[string][]types.PriceBar
	mode     Mode
	requests []Request
}

// Request records one query seen by the server.
type Request struct {
	Function   string
	Symbol     string
	APIKey     string
	OutputSize string
}

// NewMockAlphaVantageServer creates a server that accepts apiKey.
func NewMockAlphaVantageServer(apiKey string) *MockAlphaVantageServer {
	return &MockAlphaVantageServer{
		apiKey: apiKey,
		series: make(map[string][]types.PriceBar),
	}
}

// Start listens on address and serves in the background.
// If address is empty or ":0", a random available port is used.
func (s *MockAlphaVantageServer) Start(address string) error {
	if address == "" {
		address = ":0"
	}

	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to create listener: %w", err)
	}
	s.listener = listener

	router := mux.NewRouter()
	router.HandleFunc("/query", s.handleQuery).Methods("GET")

	s.httpServer = &http.Server{
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != http.ErrServerClosed {
			fmt.Printf("HTTP server error: %v\n", err)
		}
	}()

	return nil
}

// Stop shuts the server down.
func (s *MockAlphaVantageServer) Stop() error {
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(ctx)
	}

	return nil
}

// Address returns the address the server is listening on.
func (s *MockAlphaVantageServer) Address() string {
	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// BaseURL returns the URL to configure the Alpha Vantage client with.
func (s *MockAlphaVantageServer) BaseURL() string {
	return "http://" + s.Address()
}

// SetSeries sets the bars served for symbol.
func (s *MockAlphaVantageServer) SetSeries(symbol string, bars []types.PriceBar) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.series[strings.ToUpper(symbol)] = bars
}

// SetMode switches the answer mode.
func (s *MockAlphaVantageServer) SetMode(mode Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
}

// Requests returns the queries seen so far.
func (s *MockAlphaVantageServer) Requests() []Request {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Request, len(s.requests))
	copy(out, s.requests)

	return out
}

type dailyBar struct {
	Open   string `json:"1. open"`
	High   string `json:"2. high"`
	Low    string `json:"3. low"`
	Close  string `json:"4. close"`
	Volume string `json:"5. volume"`
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (s *MockAlphaVantageServer) handleQuery(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	req := Request{
		Function:   query.Get("function"),
		Symbol:     strings.ToUpper(query.Get("symbol")),
		APIKey:     query.Get("apikey"),
		OutputSize: query.Get("outputsize"),
	}

	s.mu.Lock()
	s.requests = append(s.requests, req)
	mode := s.mode
	bars, ok := s.series[req.Symbol]
	s.mu.Unlock()

	switch {
	case mode == ModeServerError:
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	case mode == ModeRateLimited:
		writeJSON(w, http.StatusOK, map[string]string{
			"Note": "Thank you for using Alpha Vantage! Our standard API call frequency is 5 calls per minute.",
		})
		return
	case req.APIKey != s.apiKey:
		writeJSON(w, http.StatusOK, map[string]string{
			"Information": "the parameter apikey is invalid or missing.",
		})
		return
	case req.Function != "TIME_SERIES_DAILY":
		writeJSON(w, http.StatusOK, map[string]string{
			"Error Message": "This API function does not exist.",
		})
		return
	case mode == ModeInvalidSymbol || !ok:
		writeJSON(w, http.StatusOK, map[string]string{
			"Error Message": "Invalid API call. Please retry or visit the documentation for TIME_SERIES_DAILY.",
		})
		return
	}

	// compact returns the newest 100 days, like the real endpoint
	if req.OutputSize != "full" && len(bars) > 100 {
		bars = bars[len(bars)-100:]
	}

	series := make(map[string]dailyBar, len(bars))
	for _, bar := range bars {
		series[bar.Date.Format(types.DateLayout)] = dailyBar{
			Open:   formatPrice(bar.Open),
			High:   formatPrice(bar.High),
			Low:    formatPrice(bar.Low),
			Close:  formatPrice(bar.Close),
			Volume: strconv.FormatFloat(bar.Volume, 'f', 0, 64),
		}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"Meta Data": map[string]string{
			"1. Information": "Daily Prices (open, high, low, close) and Volumes",
			"2. Symbol":      req.Symbol,
		},
		"Time Series (Daily)": series,
	})
}
