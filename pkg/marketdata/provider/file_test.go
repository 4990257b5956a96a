package provider

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rxtech-lab/argo-signal/pkg/errors"
	"github.com/stretchr/testify/suite"
)

type FileProviderTestSuite struct {
	suite.Suite
	dir string
}

func TestFileProviderSuite(t *testing.T) {
	suite.Run(t, new(FileProviderTestSuite))
}

func (suite *FileProviderTestSuite) SetupTest() {
	suite.dir = suite.T().TempDir()
}

func (suite *FileProviderTestSuite) writeFile(name, content string) string {
	path := filepath.Join(suite.dir, name)
	suite.Require().NoError(os.WriteFile(path, []byte(content), 0o644))

	return path
}

func (suite *FileProviderTestSuite) TestNewFileProviderErrors() {
	_, err := NewFileProvider(FileConfig{}, nil)
	suite.True(errors.HasCode(err, errors.ErrCodeMissingParameter))

	_, err = NewFileProvider(FileConfig{Path: filepath.Join(suite.dir, "missing.csv")}, nil)
	suite.True(errors.HasCode(err, errors.ErrCodeDataNotFound))

	path := suite.writeFile("bars.json", "{}")
	_, err = NewFileProvider(FileConfig{Path: path}, nil)
	suite.True(errors.HasCode(err, errors.ErrCodeUnsupportedFormat))
}

func (suite *FileProviderTestSuite) TestFetchDailyFromCSV() {
	path := suite.writeFile("bars.csv", `time,open,high,low,close,volume
2024-01-03,101,103,100,102.5,2500000
2024-01-02,100,101.5,99,101,2000000
`)

	p, err := NewFileProvider(FileConfig{Path: path}, nil)
	suite.Require().NoError(err)
	suite.Equal(ProviderFile, p.Name())

	bars, err := p.FetchDaily(context.Background(), "IBM")
	suite.Require().NoError(err)
	suite.Len(bars, 2)

	// ordered by time
	suite.Equal(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), bars[0].Date)
	suite.Equal(101.0, bars[0].Close)
	suite.Equal(2000000.0, bars[0].Volume)
	suite.Equal(time.Date(2024, 1, 3, 0, 0, 0, 0, time.UTC), bars[1].Date)
}

func (suite *FileProviderTestSuite) TestFetchDailyFiltersBySymbol() {
	path := suite.writeFile("multi.csv", `time,symbol,open,high,low,close,volume
2024-01-02,IBM,100,101,99,100.5,1000
2024-01-02,AAPL,190,192,189,191,5000
2024-01-03,IBM,100.5,102,100,101.5,1200
`)

	p, err := NewFileProvider(FileConfig{Path: path, SymbolColumn: "symbol"}, nil)
	suite.Require().NoError(err)

	bars, err := p.FetchDaily(context.Background(), "IBM")
	suite.Require().NoError(err)
	suite.Len(bars, 2)
	suite.Equal(100.5, bars[0].Close)
	suite.Equal(101.5, bars[1].Close)
}

func (suite *FileProviderTestSuite) TestFetchDailyMissingColumns() {
	path := suite.writeFile("broken.csv", `date,price
2024-01-02,100
`)

	p, err := NewFileProvider(FileConfig{Path: path}, nil)
	suite.Require().NoError(err)

	_, err = p.FetchDaily(context.Background(), "IBM")
	suite.Error(err)
	suite.True(errors.HasCode(err, errors.ErrCodeQueryFailed))
}

func (suite *FileProviderTestSuite) TestQuoteIdentifier() {
	suite.Equal(`"symbol"`, quoteIdentifier("symbol"))
	suite.Equal(`"bad""name"`, quoteIdentifier(`bad"name`))
}
