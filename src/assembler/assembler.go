// Package assembler combines classification and computation output into the
// final ProcessingResult and guards the engine-wide balance invariant.
package assembler

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/username/fasbooks/src/classifier"
	"github.com/username/fasbooks/src/engine"
	"github.com/username/fasbooks/src/models"
)

// InternalConsistencyError reports an unbalanced entry set. It indicates a
// defect in a computation strategy, never bad input: the boundary logs it
// and returns a generic 500.
type InternalConsistencyError struct {
	Debits  decimal.Decimal
	Credits decimal.Decimal
}

func (e *InternalConsistencyError) Error() string {
	return fmt.Sprintf("journal entries do not balance: debits %s != credits %s", e.Debits, e.Credits)
}

// Assembler builds ProcessingResults.
type Assembler interface {
	Assemble(facts *models.TransactionFacts, classification *classifier.ClassificationResult, out *engine.Output) (*models.ProcessingResult, error)
}

type assemblerImpl struct{}

// NewAssembler creates an Assembler.
func NewAssembler() Assembler {
	return &assemblerImpl{}
}

// Assemble validates the balance invariant and builds the immutable result.
// Debits and credits must match exactly; the engine works in decimal
// arithmetic, so no tolerance is applied.
func (a *assemblerImpl) Assemble(facts *models.TransactionFacts, classification *classifier.ClassificationResult, out *engine.Output) (*models.ProcessingResult, error) {
	debits, credits := models.Totals(out.Entries)
	if !debits.Equal(credits) {
		return nil, &InternalConsistencyError{Debits: debits, Credits: credits}
	}

	std := classification.Standard
	return &models.ProcessingResult{
		TransactionSummary: *facts,
		StandardInfo: models.StandardInfo{
			StandardID:          std.ID,
			StandardName:        std.Name,
			KeyTerms:            std.KeyTerms,
			RecognitionCriteria: std.RecognitionCriteria,
			MeasurementRules:    std.MeasurementRules,
		},
		JournalEntries: out.Entries,
		Calculations:   out.Trace,
		Explanation:    out.Explanation,
		ChartData:      ChartDataFrom(out.Entries),
	}, nil
}

// ChartDataFrom reshapes journal entries into the index-aligned arrays the
// external chart renderer consumes.
func ChartDataFrom(entries []models.JournalEntry) models.ChartData {
	chart := models.ChartData{
		Accounts: make([]string, 0, len(entries)),
		Debits:   make([]decimal.Decimal, 0, len(entries)),
		Credits:  make([]decimal.Decimal, 0, len(entries)),
	}
	for _, e := range entries {
		chart.Accounts = append(chart.Accounts, e.Account)
		chart.Debits = append(chart.Debits, e.Debit)
		chart.Credits = append(chart.Credits, e.Credit)
	}
	return chart
}
