package services

import (
	"encoding/json"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/fasbooks/src/assembler"
	"github.com/username/fasbooks/src/classifier"
	"github.com/username/fasbooks/src/engine"
	"github.com/username/fasbooks/src/logger"
	"github.com/username/fasbooks/src/models"
	"github.com/username/fasbooks/src/standards"
	"github.com/username/fasbooks/src/visualization"
)

func TestMain(m *testing.M) {
	logger.InitLogger("error")
	os.Exit(m.Run())
}

func newTestService(t *testing.T) ProcessingService {
	t.Helper()
	catalog, err := standards.Load("", 1)
	require.NoError(t, err)
	return NewProcessingService(
		catalog,
		classifier.NewClassifier(catalog),
		engine.NewEngine(),
		assembler.NewAssembler(),
		visualization.NewChartDataRenderer(),
	)
}

func ijarahMBTFacts() *models.TransactionFacts {
	return &models.TransactionFacts{
		TransactionType: models.TypeIjarahMBT,
		Entity:          "Alpha Islamic Bank",
		Counterparty:    "Super Generators",
		AssetCost:       decimal.NewFromInt(450000),
		AdditionalCosts: map[string]decimal.Decimal{
			"import_tax": decimal.NewFromInt(12000),
			"freight":    decimal.NewFromInt(30000),
		},
		LeaseTermYears: decimal.NewFromInt(2),
		AnnualRental:   decimal.NewFromInt(300000),
		ResidualValue:  decimal.NewFromInt(5000),
		TransferPrice:  decimal.NewFromInt(3000),
	}
}

func TestProcessEndToEnd(t *testing.T) {
	service := newTestService(t)

	result, err := service.Process(ijarahMBTFacts(), true)
	require.NoError(t, err)

	assert.Equal(t, "FAS_32", result.StandardInfo.StandardID)
	require.Len(t, result.JournalEntries, 3)

	debits, credits := models.Totals(result.JournalEntries)
	assert.True(t, debits.Equal(credits))
	assert.True(t, debits.Equal(decimal.NewFromInt(600000)))

	assert.Equal(t, []string{
		"prime_cost",
		"rou_asset",
		"total_rentals",
		"deferred_cost",
		"terminal_value_difference",
		"amortizable_amount",
	}, result.Calculations.Names())

	assert.True(t, result.VisualizationCreated)
	require.NotNil(t, result.Visualization)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(result.Visualization, &doc))
	assert.Equal(t, "bar", doc["type"])

	assert.Len(t, result.ChartData.Accounts, 3)
	assert.Contains(t, result.Explanation, "Ijarah")
}

func TestProcessWithoutVisualization(t *testing.T) {
	service := newTestService(t)

	result, err := service.Process(ijarahMBTFacts(), false)
	require.NoError(t, err)
	assert.False(t, result.VisualizationCreated)
	assert.Nil(t, result.Visualization)
}

func TestProcessRejectsNegativeMoneyBeforeComputing(t *testing.T) {
	service := newTestService(t)

	facts := ijarahMBTFacts()
	facts.AnnualRental = decimal.NewFromInt(-300000)

	result, err := service.Process(facts, false)
	assert.Nil(t, result)

	var validationErr *models.ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestProcessUnknownTypeFailsClassification(t *testing.T) {
	service := newTestService(t)

	facts := &models.TransactionFacts{
		TransactionType:  "Unknown_Contract",
		AssetDescription: "a shipment of widgets",
		AssetCost:        decimal.NewFromInt(1000),
	}
	result, err := service.Process(facts, false)
	assert.Nil(t, result)

	var classificationErr *classifier.ClassificationError
	require.ErrorAs(t, err, &classificationErr)
}

func TestProcessMissingFactsFails(t *testing.T) {
	service := newTestService(t)

	facts := &models.TransactionFacts{
		TransactionType: models.TypeMurabaha,
		AssetCost:       decimal.NewFromInt(100000),
		// selling_price deliberately absent
	}
	result, err := service.Process(facts, false)
	assert.Nil(t, result)

	var unsupported *engine.UnsupportedFactsError
	require.ErrorAs(t, err, &unsupported)
	assert.Equal(t, "selling_price", unsupported.Field)
}

func TestProcessIsDeterministic(t *testing.T) {
	service := newTestService(t)

	first, err := service.Process(ijarahMBTFacts(), false)
	require.NoError(t, err)
	firstJSON, err := json.Marshal(first)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		again, err := service.Process(ijarahMBTFacts(), false)
		require.NoError(t, err)
		againJSON, err := json.Marshal(again)
		require.NoError(t, err)
		assert.Equal(t, string(firstJSON), string(againJSON))
	}
}

func TestStandardsInfo(t *testing.T) {
	service := newTestService(t)

	infos := service.StandardsInfo()
	require.Len(t, infos, 5)
	assert.Equal(t, "FAS_4", infos[0].StandardID)
	assert.Equal(t, "FAS_32", infos[4].StandardID)
	for _, info := range infos {
		assert.NotEmpty(t, info.StandardName)
		assert.NotEmpty(t, info.KeyTerms)
	}
}
