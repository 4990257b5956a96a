package provider

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"github.com/rxtech-lab/argo-signal/internal/logger"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"go.uber.org/zap"
)

// FileConfig contains configuration for reading bars from a local file.
type FileConfig struct {
	Path         string `yaml:"path" json:"path" jsonschema:"title=Path,description=Parquet or CSV file with time/open/high/low/close/volume columns"`
	SymbolColumn string `yaml:"symbol_column" json:"symbol_column" jsonschema:"title=Symbol Column,description=Optional column used to filter rows by symbol"`
}

// FileProvider reads daily bars from a parquet or CSV file through DuckDB.
type FileProvider struct {
	path         string
	symbolColumn string
	logger       *logger.Logger
	sq           squirrel.StatementBuilderType
}

// NewFileProvider creates a provider over an existing file.
func NewFileProvider(config FileConfig, log *logger.Logger) (*FileProvider, error) {
	if config.Path == "" {
		return nil, errors.New(errors.ErrCodeMissingParameter, "file provider requires file.path")
	}

	if !fileExists(config.Path) {
		return nil, errors.Newf(errors.ErrCodeDataNotFound, "market data file %s does not exist", config.Path)
	}

	if _, err := sourceFunction(config.Path); err != nil {
		return nil, err
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	return &FileProvider{
		path:         config.Path,
		symbolColumn: config.SymbolColumn,
		logger:       log.Named("file"),
		sq:           squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}, nil
}

// Name returns the provider type.
func (p *FileProvider) Name() ProviderType {
	return ProviderFile
}

// sourceFunction picks the DuckDB table function for the file extension.
func sourceFunction(path string) (string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".parquet":
		return "read_parquet", nil
	case ".csv":
		return "read_csv_auto", nil
	default:
		return "", errors.Newf(errors.ErrCodeUnsupportedFormat, "unsupported market data file %s: expected .parquet or .csv", path)
	}
}

func quoteIdentifier(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// FetchDaily reads every bar of the file, filtered by symbol when a symbol column is configured.
func (p *FileProvider) FetchDaily(ctx context.Context, symbol string) ([]types.PriceBar, error) {
	fn, err := sourceFunction(p.path)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataSourceUnavailable, "failed to open DuckDB connection", err)
	}
	defer db.Close()

	// raw SQL: squirrel has no CREATE VIEW
	view := fmt.Sprintf(`CREATE VIEW market_data AS SELECT * FROM %s('%s');`, fn, strings.ReplaceAll(p.path, "'", "''"))
	if _, err := db.ExecContext(ctx, view); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to read %s", p.path)
	}

	builder := p.sq.
		Select(
			"CAST(time AS TIMESTAMP)",
			"CAST(open AS DOUBLE)",
			"CAST(high AS DOUBLE)",
			"CAST(low AS DOUBLE)",
			"CAST(close AS DOUBLE)",
			"CAST(volume AS DOUBLE)",
		).
		From("market_data").
		OrderBy("time ASC")

	if p.symbolColumn != "" {
		builder = builder.Where(squirrel.Eq{quoteIdentifier(p.symbolColumn): symbol})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to build query", err)
	}

	p.logger.Debug("Reading market data file", zap.String("path", p.path), zap.String("query", query))

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeQueryFailed, err, "failed to query %s", p.path)
	}
	defer rows.Close()

	var bars []types.PriceBar

	for rows.Next() {
		var (
			date                           time.Time
			open, high, low, close, volume float64
		)

		if err := rows.Scan(&date, &open, &high, &low, &close, &volume); err != nil {
			return nil, errors.Wrap(errors.ErrCodeMarketDataParseFailed, "failed to scan row", err)
		}

		bars = append(bars, types.PriceBar{
			Date:   time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC),
			Open:   open,
			High:   high,
			Low:    low,
			Close:  close,
			Volume: volume,
		})
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeQueryFailed, "failed to iterate rows", err)
	}

	p.logger.Info("Read market data file", zap.String("symbol", symbol), zap.Int("bars", len(bars)))

	return bars, nil
}
