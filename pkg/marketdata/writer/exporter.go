package writer

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rxtech-lab/argo-signal/internal/logger"
	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"go.uber.org/zap"
)

// SeriesExporter writes a scored series, one row per bar, to a parquet or CSV file.
// Undefined indicator cells become NULL.
type SeriesExporter struct {
	logger *logger.Logger
}

// NewSeriesExporter creates an exporter.
func NewSeriesExporter(log *logger.Logger) *SeriesExporter {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &SeriesExporter{logger: log.Named("exporter")}
}

// Export writes series to path in format. An empty format is inferred from the extension.
func (e *SeriesExporter) Export(series *types.ScoredSeries, path string, format Format) (string, error) {
	if format == "" {
		inferred, err := FormatFromPath(path)
		if err != nil {
			return "", err
		}

		format = inferred
	}

	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeExportFailed, "failed to open DuckDB connection", err)
	}
	defer db.Close()

	columns := series.ColumnNames()
	table := "scored_" + strings.ReplaceAll(uuid.New().String(), "-", "")

	definitions := []string{"symbol TEXT", "date DATE", "open DOUBLE", "high DOUBLE", "low DOUBLE", "close DOUBLE", "volume DOUBLE"}
	for _, col := range columns {
		definitions = append(definitions, fmt.Sprintf("%q DOUBLE", string(col)))
	}

	definitions = append(definitions, "signal TEXT", "buy_score INTEGER", "sell_score INTEGER", "bullish_rules TEXT", "bearish_rules TEXT")

	if _, err := db.Exec(fmt.Sprintf("CREATE TABLE %s (%s)", table, strings.Join(definitions, ", "))); err != nil {
		return "", errors.Wrap(errors.ErrCodeExportFailed, "failed to create export table", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeExportFailed, "failed to begin transaction", err)
	}

	placeholders := strings.Repeat("?, ", len(definitions)-1) + "?"

	stmt, err := tx.Prepare(fmt.Sprintf("INSERT INTO %s VALUES (%s)", table, placeholders))
	if err != nil {
		tx.Rollback()

		return "", errors.Wrap(errors.ErrCodeExportFailed, "failed to prepare statement", err)
	}
	defer stmt.Close()

	for i := range series.Len() {
		args := exportRow(series, columns, i)
		if _, err := stmt.Exec(args...); err != nil {
			tx.Rollback()

			return "", errors.Wrapf(errors.ErrCodeExportFailed, err, "failed to insert row %d", i)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", errors.Wrap(errors.ErrCodeExportFailed, "failed to commit transaction", err)
	}

	query := fmt.Sprintf("COPY (SELECT * FROM %s ORDER BY date) TO %s (%s)", table, quoteLiteral(path), format.copyOptions())
	if _, err := db.Exec(query); err != nil {
		return "", errors.Wrapf(errors.ErrCodeExportFailed, err, "failed to export to %s", format)
	}

	e.logger.Info("Exported scored series",
		zap.String("symbol", series.Symbol),
		zap.String("path", path),
		zap.String("format", string(format)),
		zap.Int("rows", series.Len()),
	)

	return path, nil
}

func exportRow(series *types.ScoredSeries, columns []types.Column, i int) []any {
	bar := series.Bars[i]
	args := []any{series.Symbol, bar.Date, bar.Open, bar.High, bar.Low, bar.Close, bar.Volume}

	for _, col := range columns {
		value := series.Value(col, i)
		if value.IsNone() {
			args = append(args, nil)

			continue
		}

		args = append(args, value.Unwrap())
	}

	eval := series.Evaluations[i]

	return append(args,
		string(series.Signals[i]),
		eval.BuyScore,
		eval.SellScore,
		strings.Join(eval.Bullish, ","),
		strings.Join(eval.Bearish, ","),
	)
}
