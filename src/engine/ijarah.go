package engine

import (
	"fmt"

	"github.com/username/fasbooks/src/models"
	"github.com/username/fasbooks/src/standards"
)

// Account names used by the FAS 32 entry templates.
const (
	accountROUAsset        = "Right of Use Asset (ROU)"
	accountDeferredIjarah  = "Deferred Ijarah Cost"
	accountIjarahLiability = "Ijarah Liability"
	accountIjarahExpense   = "Ijarah Expense"
	accountAccumAmort      = "Accumulated Amortization"
	accountAsset           = "Asset"
	accountCashBank        = "Cash/Bank"
)

// ijarahStrategy implements FAS 32 for Ijarah and, with ownershipTransfer
// set, Ijarah Muntahia Bittamleek.
type ijarahStrategy struct {
	ownershipTransfer bool
}

func (s *ijarahStrategy) Compute(facts *models.TransactionFacts, std *standards.StandardDefinition) (*Output, error) {
	t := facts.TransactionType
	if err := requirePositive(t, "asset_cost", facts.AssetCost); err != nil {
		return nil, err
	}
	if err := requirePositive(t, "annual_rental", facts.AnnualRental); err != nil {
		return nil, err
	}
	if err := requirePositive(t, "lease_term_years", facts.LeaseTermYears); err != nil {
		return nil, err
	}

	additional := facts.AdditionalCostsTotal()
	primeCost := facts.AssetCost.Add(additional)
	rouAsset := primeCost.Sub(facts.TransferPrice)
	totalRentals := facts.AnnualRental.Mul(facts.LeaseTermYears)
	deferredCost := totalRentals.Sub(rouAsset)
	terminalValueDiff := facts.ResidualValue.Sub(facts.TransferPrice)
	amortizable := rouAsset.Sub(terminalValueDiff)

	trace := models.NewCalculationTrace()
	trace.Add("prime_cost", formula(facts.AssetCost, "+", additional, primeCost))
	trace.Add("rou_asset", formula(primeCost, "-", facts.TransferPrice, rouAsset))
	trace.Add("total_rentals", formula(facts.AnnualRental, "×", facts.LeaseTermYears, totalRentals))
	trace.Add("deferred_cost", formula(totalRentals, "-", rouAsset, deferredCost))
	if s.ownershipTransfer {
		trace.Add("terminal_value_difference", formula(facts.ResidualValue, "-", facts.TransferPrice, terminalValueDiff))
		trace.Add("amortizable_amount", formula(rouAsset, "-", terminalValueDiff, amortizable))
	}

	// Every entry amount must be non-negative; facts that push a derived
	// quantity below zero are rejected rather than booked.
	if rouAsset.IsNegative() {
		return nil, &UnsupportedFactsError{
			TransactionType: t,
			Field:           "transfer_price",
			Reason:          "must not exceed the prime cost of the asset",
		}
	}
	if deferredCost.IsNegative() {
		return nil, &UnsupportedFactsError{
			TransactionType: t,
			Field:           "annual_rental",
			Reason:          "and lease_term_years give total rentals below the right-of-use asset",
		}
	}

	switch facts.Entry() {
	case models.EntryInitialRecognition:
		entries := []models.JournalEntry{
			models.Debit(accountROUAsset, rouAsset),
			models.Debit(accountDeferredIjarah, deferredCost),
			models.Credit(accountIjarahLiability, totalRentals),
		}
		explanation := fmt.Sprintf(
			"According to %s, initial recognition records a Right of Use asset at the prime cost of the leased asset less the transfer price (%s), a Deferred Ijarah Cost of %s for the excess of total rentals over the right of use, and an Ijarah Liability of %s for the total rental obligation over the lease term.",
			std.Name, rouAsset, deferredCost, totalRentals)
		return &Output{Entries: entries, Trace: trace, Explanation: explanation}, nil

	case models.EntrySubsequentMeasurement:
		if !s.ownershipTransfer {
			trace.Add("terminal_value_difference", formula(facts.ResidualValue, "-", facts.TransferPrice, terminalValueDiff))
			trace.Add("amortizable_amount", formula(rouAsset, "-", terminalValueDiff, amortizable))
		}
		if amortizable.IsNegative() {
			return nil, &UnsupportedFactsError{
				TransactionType: t,
				Field:           "residual_value",
				Reason:          "less transfer_price must not exceed the right-of-use asset",
			}
		}
		annualAmort := amortizable.Div(facts.LeaseTermYears)
		trace.Add("annual_amortization", formula(amortizable, "/", facts.LeaseTermYears, annualAmort))

		entries := []models.JournalEntry{
			models.Debit(accountIjarahLiability, facts.AnnualRental),
			models.Credit(accountCashBank, facts.AnnualRental),
			models.Debit(accountIjarahExpense, annualAmort),
			models.Credit(accountAccumAmort, annualAmort),
		}
		explanation := fmt.Sprintf(
			"According to %s, each period the rental payment of %s reduces the Ijarah Liability against Cash/Bank, and amortization of %s is charged to Ijarah Expense against Accumulated Amortization over the lease term.",
			std.Name, facts.AnnualRental, annualAmort)
		return &Output{Entries: entries, Trace: trace, Explanation: explanation}, nil

	case models.EntryOwnershipTransfer:
		if !s.ownershipTransfer {
			return nil, entryNotApplicable(t, models.EntryOwnershipTransfer)
		}
		if err := requirePositive(t, "transfer_price", facts.TransferPrice); err != nil {
			return nil, err
		}
		entries := []models.JournalEntry{
			models.Debit(accountAsset, facts.TransferPrice),
			models.Credit(accountCashBank, facts.TransferPrice),
		}
		explanation := fmt.Sprintf(
			"According to %s, at the end of an Ijarah Muntahia Bittamleek ownership passes to the lessee: the asset is recognized at the agreed transfer price of %s against Cash/Bank.",
			std.Name, facts.TransferPrice)
		return &Output{Entries: entries, Trace: trace, Explanation: explanation}, nil
	}

	return nil, entryNotApplicable(t, facts.Entry())
}
