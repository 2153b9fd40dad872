package assembler

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/fasbooks/src/classifier"
	"github.com/username/fasbooks/src/engine"
	"github.com/username/fasbooks/src/models"
	"github.com/username/fasbooks/src/standards"
)

func testClassification(t *testing.T) *classifier.ClassificationResult {
	t.Helper()
	catalog, err := standards.Load("", 1)
	require.NoError(t, err)
	def, err := catalog.LookupByID("FAS_32")
	require.NoError(t, err)
	return &classifier.ClassificationResult{Standard: def, Basis: classifier.MatchByType}
}

func balancedOutput() *engine.Output {
	trace := models.NewCalculationTrace()
	trace.Add("total_rentals", "300000 × 2 = 600000")
	return &engine.Output{
		Entries: []models.JournalEntry{
			models.Debit("Right of Use Asset (ROU)", decimal.NewFromInt(489000)),
			models.Debit("Deferred Ijarah Cost", decimal.NewFromInt(111000)),
			models.Credit("Ijarah Liability", decimal.NewFromInt(600000)),
		},
		Trace:       trace,
		Explanation: "explanation",
	}
}

func TestAssembleBuildsResult(t *testing.T) {
	a := NewAssembler()
	facts := &models.TransactionFacts{TransactionType: models.TypeIjarahMBT}
	classification := testClassification(t)

	result, err := a.Assemble(facts, classification, balancedOutput())
	require.NoError(t, err)

	assert.Equal(t, models.TypeIjarahMBT, result.TransactionSummary.TransactionType)
	assert.Equal(t, "FAS_32", result.StandardInfo.StandardID)
	assert.Equal(t, "Ijarah and Ijarah Muntahia Bittamleek", result.StandardInfo.StandardName)
	assert.NotEmpty(t, result.StandardInfo.KeyTerms)
	assert.Len(t, result.JournalEntries, 3)
	assert.Equal(t, "explanation", result.Explanation)
	assert.False(t, result.VisualizationCreated)

	// Chart arrays are aligned with the entry list.
	require.Equal(t, []string{"Right of Use Asset (ROU)", "Deferred Ijarah Cost", "Ijarah Liability"}, result.ChartData.Accounts)
	assert.True(t, result.ChartData.Debits[0].Equal(decimal.NewFromInt(489000)))
	assert.True(t, result.ChartData.Credits[2].Equal(decimal.NewFromInt(600000)))
	assert.True(t, result.ChartData.Debits[2].IsZero())
}

func TestAssembleRejectsUnbalancedEntries(t *testing.T) {
	a := NewAssembler()
	facts := &models.TransactionFacts{TransactionType: models.TypeIjarahMBT}
	classification := testClassification(t)

	out := balancedOutput()
	out.Entries[1] = models.Debit("Deferred Ijarah Cost", decimal.NewFromInt(111001))

	result, err := a.Assemble(facts, classification, out)
	assert.Nil(t, result)

	var consistencyErr *InternalConsistencyError
	require.ErrorAs(t, err, &consistencyErr)
	assert.True(t, consistencyErr.Debits.Equal(decimal.NewFromInt(600001)))
	assert.True(t, consistencyErr.Credits.Equal(decimal.NewFromInt(600000)))
	assert.Contains(t, consistencyErr.Error(), "do not balance")
}

func TestChartDataFromEmptyEntries(t *testing.T) {
	chart := ChartDataFrom(nil)
	assert.Empty(t, chart.Accounts)
	assert.Empty(t, chart.Debits)
	assert.Empty(t, chart.Credits)
}
