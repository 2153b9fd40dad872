package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// TransactionType identifies the Islamic finance contract structure of a
// transaction. The set is extensible: adding a type means registering a
// computation strategy for it, nothing else.
type TransactionType string

const (
	TypeMurabaha        TransactionType = "Murabaha"
	TypeIjarah          TransactionType = "Ijarah"
	TypeIjarahMBT       TransactionType = "Ijarah_MBT"
	TypeSalam           TransactionType = "Salam"
	TypeParallelSalam   TransactionType = "Parallel_Salam"
	TypeIstisna         TransactionType = "Istisna"
	TypeParallelIstisna TransactionType = "Parallel_Istisna"
	TypeForeignCurrency TransactionType = "Foreign_Currency"
)

// EntryType selects which stage of the contract lifecycle the caller wants
// journal entries for.
type EntryType string

const (
	EntryInitialRecognition    EntryType = "initial_recognition"
	EntrySubsequentMeasurement EntryType = "subsequent_measurement"
	EntryOwnershipTransfer     EntryType = "ownership_transfer"
)

// TransactionFacts is the normalized, language-independent representation of
// a transaction produced by the external fact-extraction layer. It is
// read-only within the engine and lives only for the duration of a request.
type TransactionFacts struct {
	TransactionType  TransactionType `json:"transaction_type"`
	Entity           string          `json:"entity,omitempty"`
	Counterparty     string          `json:"counterparty,omitempty"`
	AssetDescription string          `json:"asset_description,omitempty"`

	AssetCost       decimal.Decimal            `json:"asset_cost"`
	AdditionalCosts map[string]decimal.Decimal `json:"additional_costs,omitempty"`

	// Ijarah-family fields. AnnualRental and LeaseTermYears must both be
	// present or both absent.
	LeaseTermYears decimal.Decimal `json:"lease_term_years,omitempty"`
	AnnualRental   decimal.Decimal `json:"annual_rental,omitempty"`
	ResidualValue  decimal.Decimal `json:"residual_value,omitempty"`
	TransferPrice  decimal.Decimal `json:"transfer_price,omitempty"`

	// Murabaha / Salam / Istisna'a fields.
	SellingPrice         decimal.Decimal `json:"selling_price,omitempty"`
	FinancingPeriodYears decimal.Decimal `json:"financing_period_years,omitempty"`

	// Foreign currency (FAS 4) fields.
	ForeignAmount decimal.Decimal `json:"foreign_amount,omitempty"`
	ExchangeRate  decimal.Decimal `json:"exchange_rate,omitempty"`
	ClosingRate   decimal.Decimal `json:"closing_rate,omitempty"`

	RequestedEntry EntryType `json:"requested_entry,omitempty"`
}

// ValidationError reports a fact that failed basic numeric sanity checks.
// The HTTP layer maps it to a 400 response.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid facts: field %q %s", e.Field, e.Message)
}

// AdditionalCostsTotal sums the named additional costs (import tax, freight, ...).
func (f *TransactionFacts) AdditionalCostsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, v := range f.AdditionalCosts {
		total = total.Add(v)
	}
	return total
}

// Entry returns the requested entry type, defaulting to initial recognition.
func (f *TransactionFacts) Entry() EntryType {
	if f.RequestedEntry == "" {
		return EntryInitialRecognition
	}
	return f.RequestedEntry
}

// Validate rejects negative monetary values and inconsistent Ijarah-family
// fields before the facts ever reach a computation strategy.
func (f *TransactionFacts) Validate() error {
	monetary := []struct {
		name  string
		value decimal.Decimal
	}{
		{"asset_cost", f.AssetCost},
		{"lease_term_years", f.LeaseTermYears},
		{"annual_rental", f.AnnualRental},
		{"residual_value", f.ResidualValue},
		{"transfer_price", f.TransferPrice},
		{"selling_price", f.SellingPrice},
		{"financing_period_years", f.FinancingPeriodYears},
		{"foreign_amount", f.ForeignAmount},
		{"exchange_rate", f.ExchangeRate},
		{"closing_rate", f.ClosingRate},
	}
	for _, m := range monetary {
		if m.value.IsNegative() {
			return &ValidationError{Field: m.name, Message: "must not be negative"}
		}
	}
	for name, v := range f.AdditionalCosts {
		if v.IsNegative() {
			return &ValidationError{Field: "additional_costs." + name, Message: "must not be negative"}
		}
	}

	// Ijarah-family transactions need both rental and term, or neither.
	if f.AnnualRental.IsPositive() != f.LeaseTermYears.IsPositive() {
		return &ValidationError{
			Field:   "lease_term_years",
			Message: "and annual_rental must both be present or both absent",
		}
	}

	switch f.Entry() {
	case EntryInitialRecognition, EntrySubsequentMeasurement, EntryOwnershipTransfer:
	default:
		return &ValidationError{Field: "requested_entry", Message: fmt.Sprintf("unknown value %q", f.RequestedEntry)}
	}

	return nil
}
