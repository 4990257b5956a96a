package mocks

//go:generate mockgen -destination=./mock_provider.go -package=mocks github.com/rxtech-lab/argo-signal/pkg/marketdata/provider Provider
//go:generate mockgen -destination=./mock_market_data_writer.go -package=mocks github.com/rxtech-lab/argo-signal/pkg/marketdata/writer MarketDataWriter
