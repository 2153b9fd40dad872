package engine

import (
	"fmt"

	"github.com/username/fasbooks/src/models"
	"github.com/username/fasbooks/src/standards"
)

const (
	accountIstisnaReceivables = "Istisna'a Receivables"
	accountIstisnaRevenue     = "Istisna'a Revenue"
	accountWorkInProgress     = "Work in Progress"
	accountIstisnaPayable     = "Istisna'a Payable"
	accountIstisnaCost        = "Cost of Istisna'a"
	accountIstisnaProfit      = "Profit on Istisna'a"
)

// istisnaStrategy implements FAS 10. The contract value agreed with the
// buyer is carried in selling_price; with parallel set, the manufacturing
// cost owed under the back-to-back contract is carried in asset_cost.
type istisnaStrategy struct {
	parallel bool
}

func (s *istisnaStrategy) Compute(facts *models.TransactionFacts, std *standards.StandardDefinition) (*Output, error) {
	t := facts.TransactionType
	if err := requirePositive(t, "selling_price", facts.SellingPrice); err != nil {
		return nil, err
	}
	contractValue := facts.SellingPrice

	trace := models.NewCalculationTrace()

	if s.parallel {
		if err := requirePositive(t, "asset_cost", facts.AssetCost); err != nil {
			return nil, err
		}
		manufacturingCost := facts.AssetCost
		profit := contractValue.Sub(manufacturingCost)
		if profit.IsNegative() {
			return nil, &UnsupportedFactsError{
				TransactionType: t,
				Field:           "selling_price",
				Reason:          "must not be less than the manufacturing cost in asset_cost",
			}
		}
		trace.Add("profit", formula(contractValue, "-", manufacturingCost, profit))

		switch facts.Entry() {
		case models.EntryInitialRecognition:
			entries := []models.JournalEntry{
				// Istisna'a contract with the customer.
				models.Debit(accountIstisnaReceivables, contractValue),
				models.Credit(accountIstisnaRevenue, contractValue),
				// Parallel Istisna'a contract with the manufacturer.
				models.Debit(accountWorkInProgress, manufacturingCost),
				models.Credit(accountIstisnaPayable, manufacturingCost),
			}
			explanation := fmt.Sprintf(
				"According to %s, the contract with the customer is recognized as Istisna'a Receivables and Revenue at the contract value of %s, and the parallel contract with the manufacturer as Work in Progress against Istisna'a Payable at the manufacturing cost of %s.",
				std.Name, contractValue, manufacturingCost)
			return &Output{Entries: entries, Trace: trace, Explanation: explanation}, nil

		case models.EntrySubsequentMeasurement:
			// Completion: close WIP to cost, close revenue against cost and
			// recognize the profit.
			entries := []models.JournalEntry{
				models.Debit(accountIstisnaCost, manufacturingCost),
				models.Credit(accountWorkInProgress, manufacturingCost),
				models.Debit(accountIstisnaRevenue, contractValue),
				models.Credit(accountIstisnaCost, manufacturingCost),
				models.Credit(accountIstisnaProfit, profit),
			}
			explanation := fmt.Sprintf(
				"According to %s, on completion the Work in Progress of %s is closed to Cost of Istisna'a, revenue of %s is closed against that cost, and the difference of %s is recognized as Profit on Istisna'a.",
				std.Name, manufacturingCost, contractValue, profit)
			return &Output{Entries: entries, Trace: trace, Explanation: explanation}, nil
		}
		return nil, entryNotApplicable(t, facts.Entry())
	}

	if facts.Entry() != models.EntryInitialRecognition {
		return nil, entryNotApplicable(t, facts.Entry())
	}
	entries := []models.JournalEntry{
		models.Debit(accountIstisnaReceivables, contractValue),
		models.Credit(accountIstisnaRevenue, contractValue),
	}
	explanation := fmt.Sprintf(
		"According to %s, initial recognition of an Istisna'a contract records Istisna'a Receivables against Istisna'a Revenue at the contract value of %s; further entries follow progress and completion of manufacturing.",
		std.Name, contractValue)
	return &Output{Entries: entries, Trace: trace, Explanation: explanation}, nil
}
