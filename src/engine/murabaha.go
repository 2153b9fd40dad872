package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/username/fasbooks/src/models"
	"github.com/username/fasbooks/src/standards"
)

const (
	accountMurabahaAsset      = "Murabaha Asset"
	accountMurabahaReceivable = "Murabaha Receivable"
	accountDeferredProfit     = "Deferred Profit"
	accountMurabahaIncome     = "Income on Murabaha Financing"
)

var monthsPerYear = decimal.NewFromInt(12)

// murabahaStrategy implements FAS 28: cost-plus sale with profit deferred
// over the financing period.
type murabahaStrategy struct{}

func (s *murabahaStrategy) Compute(facts *models.TransactionFacts, std *standards.StandardDefinition) (*Output, error) {
	t := facts.TransactionType
	if err := requirePositive(t, "asset_cost", facts.AssetCost); err != nil {
		return nil, err
	}
	if err := requirePositive(t, "selling_price", facts.SellingPrice); err != nil {
		return nil, err
	}

	acquisitionCost := facts.AssetCost
	profit := facts.SellingPrice.Sub(acquisitionCost)
	// A loss-making sale would book a negative deferred profit.
	if profit.IsNegative() {
		return nil, &UnsupportedFactsError{
			TransactionType: t,
			Field:           "selling_price",
			Reason:          "must not be less than asset_cost",
		}
	}

	trace := models.NewCalculationTrace()
	trace.Add("profit", formula(facts.SellingPrice, "-", acquisitionCost, profit))

	switch facts.Entry() {
	case models.EntryInitialRecognition:
		entries := []models.JournalEntry{
			// Acquisition of the asset by the institution.
			models.Debit(accountMurabahaAsset, acquisitionCost),
			models.Credit(accountCashBank, acquisitionCost),
			// Sale to the client at the marked-up, deferred price.
			models.Debit(accountMurabahaReceivable, facts.SellingPrice),
			models.Credit(accountMurabahaAsset, acquisitionCost),
			models.Credit(accountDeferredProfit, profit),
		}
		explanation := fmt.Sprintf(
			"According to %s, the institution first recognizes the Murabaha asset at its acquisition cost of %s, then on sale records a Murabaha Receivable for the selling price of %s, derecognizes the asset, and defers the disclosed profit of %s to be recognized over the financing period.",
			std.Name, acquisitionCost, facts.SellingPrice, profit)
		return &Output{Entries: entries, Trace: trace, Explanation: explanation}, nil

	case models.EntrySubsequentMeasurement:
		if err := requirePositive(t, "financing_period_years", facts.FinancingPeriodYears); err != nil {
			return nil, err
		}
		financingMonths := facts.FinancingPeriodYears.Mul(monthsPerYear)
		monthlyProfit := profit.Div(financingMonths)
		trace.Add("financing_period_months", formula(facts.FinancingPeriodYears, "×", monthsPerYear, financingMonths))
		trace.Add("monthly_profit", formula(profit, "/", financingMonths, monthlyProfit))

		entries := []models.JournalEntry{
			models.Debit(accountDeferredProfit, monthlyProfit),
			models.Credit(accountMurabahaIncome, monthlyProfit),
		}
		explanation := fmt.Sprintf(
			"According to %s, the deferred profit is recognized proportionally over the financing period: each month %s is released from Deferred Profit to Income on Murabaha Financing.",
			std.Name, monthlyProfit)
		return &Output{Entries: entries, Trace: trace, Explanation: explanation}, nil
	}

	return nil, entryNotApplicable(t, facts.Entry())
}
