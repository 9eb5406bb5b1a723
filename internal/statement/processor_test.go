package statement

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"fjacquet/statement-budget/internal/categorizer"
	"fjacquet/statement-budget/internal/categorytable"
	"fjacquet/statement-budget/internal/extractor"
	"fjacquet/statement-budget/internal/logging"
	"fjacquet/statement-budget/internal/models"
	"fjacquet/statement-budget/internal/parsererror"
	"fjacquet/statement-budget/internal/textextract"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var statementLines = []string{
	"ACME CARD",
	"Transaction Description",
	"03/14",
	"03/15",
	"1234567ABCDEFGHIJ",
	"Coffee Shop",
	"4.50",
	"03/20",
	"03/21",
	"7654321ZYXWVUTSRQ",
	"SAFEWAY #1234",
	"-12.00",
	"TOTAL FEES FOR THIS PERIOD",
}

func newTestProcessor(t *testing.T, text textextract.Extractor) (*Processor, *logging.MockLogger) {
	t.Helper()
	table, err := categorytable.New([]models.CategoryConfig{
		{ID: "dining out", Keywords: []string{"coffee"}},
		{ID: "groceries", Keywords: []string{"safeway"}},
		{ID: "other"},
	})
	require.NoError(t, err)

	logger := logging.NewMockLogger()
	return NewProcessor(text,
		extractor.New(extractor.DefaultOptions(), logger),
		categorizer.New(table, logger),
		logger), logger
}

func TestProcess(t *testing.T) {
	p, logger := newTestProcessor(t, &textextract.MockExtractor{Lines: statementLines})

	res, err := p.Process(context.Background(), "mar2025.pdf", 2025)
	require.NoError(t, err)

	_, err = uuid.Parse(res.RunID)
	assert.NoError(t, err)
	assert.Equal(t, "mar2025.pdf", res.Document)
	assert.Equal(t, 2025, res.Year)

	assert.Equal(t, int64(450), res.Debits.Total("dining out"))
	assert.Equal(t, []string{"coffee shop: $4.50 date:03/14/2025"}, res.Debits.Transactions("dining out"))
	assert.Equal(t, int64(450), res.Debits.GrandTotal())

	assert.Zero(t, res.Debits.Total("groceries"))
	assert.Equal(t, int64(1200), res.Credits.Total("groceries"))

	require.Len(t, res.Records, 2)
	assert.Equal(t, models.DirectionDebit, res.Records[0].Direction)
	assert.Equal(t, models.DirectionCredit, res.Records[1].Direction)
	assert.False(t, res.IsEmpty())
	assert.True(t, logger.HasEntry("INFO", "Statement processed"))
}

func TestProcess_FreshLedgerPerRun(t *testing.T) {
	p, _ := newTestProcessor(t, &textextract.MockExtractor{Lines: statementLines})

	first, err := p.Process(context.Background(), "a.pdf", 2025)
	require.NoError(t, err)
	second, err := p.Process(context.Background(), "b.pdf", 2025)
	require.NoError(t, err)

	assert.Equal(t, int64(450), second.Debits.GrandTotal())
	assert.NotEqual(t, first.RunID, second.RunID)
}

func TestProcess_EmptyWarns(t *testing.T) {
	p, logger := newTestProcessor(t, &textextract.MockExtractor{Lines: []string{"no markers here"}})

	res, err := p.Process(context.Background(), "empty.pdf", 2025)
	require.NoError(t, err)
	assert.True(t, res.IsEmpty())
	assert.True(t, res.Debits.IsZero())
	assert.True(t, logger.HasEntry("WARN", "No transactions found; check statement markers"))
}

func TestProcess_ZeroDebitsWarns(t *testing.T) {
	p, logger := newTestProcessor(t, &textextract.MockExtractor{})

	res, err := p.ProcessCandidates(context.Background(), "refunds.pdf", &extractor.Result{
		Credits: []models.Candidate{{Name: "SAFEWAY #1234", Cents: 1200, Date: "03/20"}},
	}, 2025)
	require.NoError(t, err)
	assert.False(t, res.IsEmpty())
	assert.True(t, res.Debits.IsZero())
	assert.False(t, logger.HasEntry("WARN", "No transactions found; check statement markers"))

	warn := logger.EntriesByLevel("WARN")
	require.Len(t, warn, 1)
	assert.Equal(t, "Statement debits total zero", warn[0].Message)
	assert.Equal(t, 1, warn[0].FieldValue(logging.FieldCredits))
	assert.Equal(t, int64(1200), res.Credits.Total("groceries"))
}

func TestProcess_Errors(t *testing.T) {
	tests := []struct {
		name      string
		text      textextract.Extractor
		year      int
		wantStage string
		wantIs    error
	}{
		{
			name:      "text extraction fails",
			text:      &textextract.MockExtractor{Err: errors.New("corrupt pdf")},
			year:      2025,
			wantStage: StageText,
		},
		{
			name:      "malformed structure",
			text:      &textextract.MockExtractor{Lines: []string{"Transaction Description", "12.00"}},
			year:      2025,
			wantStage: StageScan,
			wantIs:    parsererror.ErrMalformedStatement,
		},
		{
			name:      "bad year",
			text:      &textextract.MockExtractor{Lines: statementLines},
			year:      25,
			wantStage: StageValidate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestProcessor(t, tt.text)
			res, err := p.Process(context.Background(), "bad.pdf", tt.year)
			assert.Nil(t, res)

			var de *parsererror.DocumentError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, "bad.pdf", de.Document)
			assert.Equal(t, tt.wantStage, de.Stage)
			if tt.wantIs != nil {
				assert.ErrorIs(t, err, tt.wantIs)
			}
		})
	}
}

func TestProcess_Cancelled(t *testing.T) {
	text := &textextract.MockExtractor{Lines: statementLines}
	p, _ := newTestProcessor(t, text)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Process(ctx, "a.pdf", 2025)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, text.Calls())
}

func TestProcess_CandidateCSV(t *testing.T) {
	text := &textextract.MockExtractor{}
	p, _ := newTestProcessor(t, text)

	path := filepath.Join(t.TempDir(), "mar2025.csv")
	require.NoError(t, os.WriteFile(path, []byte(
		"direction,date,name,cents\n"+
			"debit,03/14,Coffee Shop,450\n"+
			"credit,03/20,SAFEWAY #1234,1200\n"), 0600))

	res, err := p.Process(context.Background(), path, 2025)
	require.NoError(t, err)
	assert.Equal(t, int64(450), res.Debits.Total("dining out"))
	assert.Equal(t, int64(1200), res.Credits.Total("groceries"))
	assert.Empty(t, text.Calls())
}

func TestProcess_CandidateCSVRejectsOtherFiles(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{"bank export", `Description,Amount,Cardholder
SAFEWAY #1234,61.10,J DOE
STARBUCKS,4.50,J DOE
`, ""},
		{"summary report", `direction,category,total,count,transactions
debit,groceries,61.10,1,x
`, ""},
		{"empty name", `direction,date,name,cents
debit,03/14,,450
`, "name"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := newTestProcessor(t, &textextract.MockExtractor{})
			path := filepath.Join(t.TempDir(), "dec2024.csv")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0600))

			res, err := p.Process(context.Background(), path, 2024)
			assert.Nil(t, res)
			var de *parsererror.DocumentError
			require.True(t, errors.As(err, &de))
			assert.Equal(t, StageImport, de.Stage)

			var pe *parsererror.ParseError
			if tt.field == "" {
				assert.Contains(t, err.Error(), "missing columns")
				assert.False(t, errors.As(err, &pe))
				return
			}
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.field, pe.Field)
		})
	}
}

func TestProcess_CandidateCSVBadDirection(t *testing.T) {
	p, _ := newTestProcessor(t, &textextract.MockExtractor{})

	path := filepath.Join(t.TempDir(), "bad.csv")
	require.NoError(t, os.WriteFile(path, []byte("direction,date,name,cents\nrefund,03/14,x,1\n"), 0600))

	_, err := p.Process(context.Background(), path, 2025)
	var de *parsererror.DocumentError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, StageImport, de.Stage)
	var pe *parsererror.ParseError
	assert.True(t, errors.As(err, &pe))
}
