package engine

import (
	"fmt"

	"github.com/username/fasbooks/src/models"
	"github.com/username/fasbooks/src/standards"
)

const (
	accountFXAsset = "Asset/Expense"
	accountFXGain  = "Exchange Gain"
	accountFXLoss  = "Exchange Loss"
)

// foreignCurrencyStrategy implements FAS 4: initial recognition at the
// transaction-date rate, and period-end revaluation of monetary items at
// the closing rate with a single balancing gain/loss entry.
type foreignCurrencyStrategy struct{}

func (s *foreignCurrencyStrategy) Compute(facts *models.TransactionFacts, std *standards.StandardDefinition) (*Output, error) {
	t := facts.TransactionType
	if err := requirePositive(t, "foreign_amount", facts.ForeignAmount); err != nil {
		return nil, err
	}
	if err := requirePositive(t, "exchange_rate", facts.ExchangeRate); err != nil {
		return nil, err
	}

	localEquivalent := facts.ForeignAmount.Mul(facts.ExchangeRate)

	trace := models.NewCalculationTrace()
	trace.Add("local_equivalent", formula(facts.ForeignAmount, "×", facts.ExchangeRate, localEquivalent))

	switch facts.Entry() {
	case models.EntryInitialRecognition:
		entries := []models.JournalEntry{
			models.Debit(accountFXAsset, localEquivalent),
			models.Credit(accountCashBank, localEquivalent),
		}
		explanation := fmt.Sprintf(
			"According to %s, a foreign currency transaction is recognized at the exchange rate ruling on the transaction date: the foreign amount of %s converts to a local equivalent of %s, debited to Asset/Expense against Cash/Bank.",
			std.Name, facts.ForeignAmount, localEquivalent)
		return &Output{Entries: entries, Trace: trace, Explanation: explanation}, nil

	case models.EntrySubsequentMeasurement:
		if err := requirePositive(t, "closing_rate", facts.ClosingRate); err != nil {
			return nil, err
		}
		closingEquivalent := facts.ForeignAmount.Mul(facts.ClosingRate)
		difference := closingEquivalent.Sub(localEquivalent)
		trace.Add("closing_equivalent", formula(facts.ForeignAmount, "×", facts.ClosingRate, closingEquivalent))
		trace.Add("exchange_difference", formula(closingEquivalent, "-", localEquivalent, difference))

		// An unchanged rate means nothing to book; a zero-amount pair would
		// have neither side non-zero.
		if difference.IsZero() {
			explanation := fmt.Sprintf(
				"According to %s, monetary items are remeasured at the closing rate at the reporting date; the closing rate equals the transaction-date rate, so no exchange difference arises and no entry is required.",
				std.Name)
			return &Output{Entries: nil, Trace: trace, Explanation: explanation}, nil
		}

		var entries []models.JournalEntry
		if difference.IsNegative() {
			loss := difference.Neg()
			entries = []models.JournalEntry{
				models.Debit(accountFXLoss, loss),
				models.Credit(accountFXAsset, loss),
			}
		} else {
			entries = []models.JournalEntry{
				models.Debit(accountFXAsset, difference),
				models.Credit(accountFXGain, difference),
			}
		}
		explanation := fmt.Sprintf(
			"According to %s, monetary items are remeasured at the closing rate at the reporting date; the exchange difference of %s is recognized in the income statement through a single balancing entry.",
			std.Name, difference)
		return &Output{Entries: entries, Trace: trace, Explanation: explanation}, nil
	}

	return nil, entryNotApplicable(t, facts.Entry())
}
