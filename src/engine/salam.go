package engine

import (
	"fmt"

	"github.com/username/fasbooks/src/models"
	"github.com/username/fasbooks/src/standards"
)

const (
	accountSalamFinancing = "Salam Financing"
	accountSalamRevenue   = "Salam Revenue"
	accountSalamCost      = "Cost of Salam"
	accountSalamProfit    = "Profit on Salam"
)

// salamStrategy implements FAS 7. The Salam capital (the advance paid for
// future delivery) is carried in asset_cost; with parallel set the strategy
// also covers the back-to-back sale at selling_price.
type salamStrategy struct {
	parallel bool
}

func (s *salamStrategy) Compute(facts *models.TransactionFacts, std *standards.StandardDefinition) (*Output, error) {
	t := facts.TransactionType
	if err := requirePositive(t, "asset_cost", facts.AssetCost); err != nil {
		return nil, err
	}
	capital := facts.AssetCost

	trace := models.NewCalculationTrace()

	if s.parallel {
		if err := requirePositive(t, "selling_price", facts.SellingPrice); err != nil {
			return nil, err
		}
		profit := facts.SellingPrice.Sub(capital)
		if profit.IsNegative() {
			return nil, &UnsupportedFactsError{
				TransactionType: t,
				Field:           "selling_price",
				Reason:          "must not be less than the Salam capital in asset_cost",
			}
		}
		trace.Add("profit", formula(facts.SellingPrice, "-", capital, profit))

		switch facts.Entry() {
		case models.EntryInitialRecognition:
			entries := []models.JournalEntry{
				// Salam contract: capital advanced in full at signing.
				models.Debit(accountSalamFinancing, capital),
				models.Credit(accountCashBank, capital),
				// Parallel Salam: sale proceeds received.
				models.Debit(accountCashBank, facts.SellingPrice),
				models.Credit(accountSalamRevenue, facts.SellingPrice),
			}
			explanation := fmt.Sprintf(
				"According to %s, the Salam capital of %s is advanced in full at contract time (Salam Financing against Cash/Bank), and under the parallel Salam the selling price of %s is recorded as Salam Revenue. Profit is recognized only upon delivery of the goods.",
				std.Name, capital, facts.SellingPrice)
			return &Output{Entries: entries, Trace: trace, Explanation: explanation}, nil

		case models.EntrySubsequentMeasurement:
			// Delivery: derecognize the financing, close revenue against
			// cost and recognize the profit.
			entries := []models.JournalEntry{
				models.Debit(accountSalamCost, capital),
				models.Credit(accountSalamFinancing, capital),
				models.Debit(accountSalamRevenue, facts.SellingPrice),
				models.Credit(accountSalamCost, capital),
				models.Credit(accountSalamProfit, profit),
			}
			explanation := fmt.Sprintf(
				"According to %s, on delivery the Salam financing of %s is closed to Cost of Salam, revenue of %s is closed against that cost, and the difference of %s is recognized as Profit on Salam.",
				std.Name, capital, facts.SellingPrice, profit)
			return &Output{Entries: entries, Trace: trace, Explanation: explanation}, nil
		}
		return nil, entryNotApplicable(t, facts.Entry())
	}

	if facts.Entry() != models.EntryInitialRecognition {
		return nil, entryNotApplicable(t, facts.Entry())
	}
	entries := []models.JournalEntry{
		models.Debit(accountSalamFinancing, capital),
		models.Credit(accountCashBank, capital),
	}
	explanation := fmt.Sprintf(
		"According to %s, initial recognition of a Salam contract records the capital of %s as Salam Financing against Cash/Bank; revenue and profit are recognized only upon delivery of the goods.",
		std.Name, capital)
	return &Output{Entries: entries, Trace: trace, Explanation: explanation}, nil
}
