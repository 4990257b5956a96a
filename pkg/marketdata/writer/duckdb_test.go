package writer

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-signal/internal/types"
	"github.com/stretchr/testify/suite"
)

type DuckDBWriterTestSuite struct {
	suite.Suite
	tempDir string
}

func TestDuckDBWriterSuite(t *testing.T) {
	suite.Run(t, new(DuckDBWriterTestSuite))
}

func (suite *DuckDBWriterTestSuite) SetupTest() {
	suite.tempDir = suite.T().TempDir()
}

func sampleBar(i int) types.PriceBar {
	return types.PriceBar{
		Date:   time.Date(2023, 6, 15, 0, 0, 0, 0, time.UTC).AddDate(0, 0, i),
		Open:   150.0 + float64(i),
		High:   155.0 + float64(i),
		Low:    148.0 + float64(i),
		Close:  152.0 + float64(i),
		Volume: 1000000.0 + float64(i*100),
	}
}

// countRows reads back an exported file.
func countRows(path string, fn string) (int, error) {
	db, err := sql.Open("duckdb", ":memory:")
	if err != nil {
		return 0, err
	}
	defer db.Close()

	var count int
	err = db.QueryRow(fmt.Sprintf("SELECT COUNT(*) FROM %s('%s')", fn, path)).Scan(&count)

	return count, err
}

func (suite *DuckDBWriterTestSuite) TestNewDuckDBWriter() {
	outputPath := filepath.Join(suite.tempDir, "test.parquet")
	writer := NewDuckDBWriter(outputPath, "AAPL", nil)

	suite.NotNil(writer)
	suite.Equal(outputPath, writer.GetOutputPath())

	// Cast to check internal state
	duckWriter, ok := writer.(*DuckDBWriter)
	suite.True(ok)
	suite.Equal(FormatParquet, duckWriter.format)
	suite.Equal("AAPL", duckWriter.symbol)
	suite.Nil(duckWriter.db)
	suite.Nil(duckWriter.tx)
	suite.Nil(duckWriter.stmt)

	csvWriter := NewDuckDBWriter(filepath.Join(suite.tempDir, "test.csv"), "AAPL", nil).(*DuckDBWriter)
	suite.Equal(FormatCSV, csvWriter.format)
}

func (suite *DuckDBWriterTestSuite) TestInitialize() {
	writer := NewDuckDBWriter(filepath.Join(suite.tempDir, "test_init.parquet"), "AAPL", nil)

	err := writer.Initialize()
	suite.NoError(err)

	duckWriter := writer.(*DuckDBWriter)
	suite.NotNil(duckWriter.db)
	suite.NotNil(duckWriter.tx)
	suite.NotNil(duckWriter.stmt)

	suite.NoError(writer.Close())
}

func (suite *DuckDBWriterTestSuite) TestWriteWithoutInitialize() {
	writer := NewDuckDBWriter(filepath.Join(suite.tempDir, "test_no_init.parquet"), "AAPL", nil)

	err := writer.Write(sampleBar(0))
	suite.Error(err)
	suite.Contains(err.Error(), "not initialized")
}

func (suite *DuckDBWriterTestSuite) TestFinalizeWithoutInitialize() {
	writer := NewDuckDBWriter(filepath.Join(suite.tempDir, "test_finalize_no_init.parquet"), "AAPL", nil)

	_, err := writer.Finalize()
	suite.Error(err)
	suite.Contains(err.Error(), "not initialized")
}

func (suite *DuckDBWriterTestSuite) TestFullWorkflowParquet() {
	outputPath := filepath.Join(suite.tempDir, "test_workflow.parquet")
	writer := NewDuckDBWriter(outputPath, "SPY", nil)

	suite.Require().NoError(writer.Initialize())

	// written out of order, exported ascending
	for _, i := range []int{3, 0, 4, 1, 2} {
		suite.Require().NoError(writer.Write(sampleBar(i)))
	}

	path, err := writer.Finalize()
	suite.NoError(err)
	suite.Equal(outputPath, path)

	fileInfo, err := os.Stat(path)
	suite.NoError(err)
	suite.Greater(fileInfo.Size(), int64(0))

	count, err := countRows(path, "read_parquet")
	suite.NoError(err)
	suite.Equal(5, count)

	suite.NoError(writer.Close())
}

func (suite *DuckDBWriterTestSuite) TestFullWorkflowCSV() {
	outputPath := filepath.Join(suite.tempDir, "test_workflow.csv")
	writer := NewDuckDBWriter(outputPath, "SPY", nil)

	suite.Require().NoError(writer.Initialize())

	for i := range 3 {
		suite.Require().NoError(writer.Write(sampleBar(i)))
	}

	_, err := writer.Finalize()
	suite.Require().NoError(err)

	content, err := os.ReadFile(outputPath)
	suite.Require().NoError(err)
	suite.Contains(string(content), "id,time,symbol,open,high,low,close,volume")
	suite.Contains(string(content), "SPY")

	suite.NoError(writer.Close())
}

func (suite *DuckDBWriterTestSuite) TestDoubleFinalize() {
	writer := NewDuckDBWriter(filepath.Join(suite.tempDir, "test_double_finalize.parquet"), "AAPL", nil)

	suite.Require().NoError(writer.Initialize())
	suite.Require().NoError(writer.Write(sampleBar(0)))

	_, err := writer.Finalize()
	suite.NoError(err)

	_, err = writer.Finalize()
	suite.Error(err)
	suite.Contains(err.Error(), "not initialized")

	suite.NoError(writer.Close())
}

func (suite *DuckDBWriterTestSuite) TestFinalizeExportError() {
	// Use an invalid path that cannot be written to
	writer := NewDuckDBWriter("/nonexistent/directory/test.parquet", "AAPL", nil)

	suite.Require().NoError(writer.Initialize())
	suite.Require().NoError(writer.Write(sampleBar(0)))

	_, err := writer.Finalize()
	suite.Error(err)
	suite.Contains(err.Error(), "failed to export to parquet")

	suite.NoError(writer.Close())
}

func (suite *DuckDBWriterTestSuite) TestCloseWithoutInitialize() {
	writer := NewDuckDBWriter(filepath.Join(suite.tempDir, "test_close_no_init.parquet"), "AAPL", nil)

	suite.NoError(writer.Close())
}

func (suite *DuckDBWriterTestSuite) TestDoubleClose() {
	writer := NewDuckDBWriter(filepath.Join(suite.tempDir, "test_double_close.parquet"), "AAPL", nil)

	suite.Require().NoError(writer.Initialize())

	// First close
	suite.NoError(writer.Close())

	// Second close should not error
	suite.NoError(writer.Close())
}

func (suite *DuckDBWriterTestSuite) TestCloseWithActiveTransaction() {
	writer := NewDuckDBWriter(filepath.Join(suite.tempDir, "test_close_active_tx.parquet"), "AAPL", nil)

	suite.Require().NoError(writer.Initialize())
	suite.Require().NoError(writer.Write(sampleBar(0)))

	// Close without finalizing - should rollback the transaction
	suite.NoError(writer.Close())

	duckWriter := writer.(*DuckDBWriter)
	suite.Nil(duckWriter.db)
	suite.Nil(duckWriter.tx)
	suite.Nil(duckWriter.stmt)
}

func (suite *DuckDBWriterTestSuite) TestFormatHelpers() {
	format, err := FormatFromPath("/tmp/out.PARQUET")
	suite.NoError(err)
	suite.Equal(FormatParquet, format)

	_, err = FormatFromPath("/tmp/out.json")
	suite.Error(err)

	format, err = ParseFormat("CSV")
	suite.NoError(err)
	suite.Equal(FormatCSV, format)

	_, err = ParseFormat("xlsx")
	suite.Error(err)

	suite.Equal("'it''s'", quoteLiteral("it's"))
}
