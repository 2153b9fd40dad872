// Package engine computes AAOIFI-compliant journal entries. Each supported
// transaction type has one calculation strategy; strategies are pure
// functions of the transaction facts and are registered in a dispatch table,
// which is the engine's extension point.
package engine

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/username/fasbooks/src/models"
	"github.com/username/fasbooks/src/standards"
)

// Output is everything one strategy produces for a request: a balanced
// entry set, the ordered calculation trace, and a deterministic narrative.
type Output struct {
	Entries     []models.JournalEntry
	Trace       *models.CalculationTrace
	Explanation string
}

// Strategy computes the journal entries for one transaction type.
type Strategy interface {
	Compute(facts *models.TransactionFacts, std *standards.StandardDefinition) (*Output, error)
}

// UnsupportedFactsError reports facts that cannot be computed by the
// strategy for their transaction type: a required field is missing, or the
// requested entry type does not apply. Never silently computed around.
type UnsupportedFactsError struct {
	TransactionType models.TransactionType
	Field           string
	Reason          string
}

func (e *UnsupportedFactsError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "is required but missing"
	}
	return fmt.Sprintf("cannot compute %s transaction: field %q %s", e.TransactionType, e.Field, reason)
}

// Engine dispatches facts to the strategy registered for their transaction
// type. The registry is populated at startup and read-only afterwards.
type Engine struct {
	strategies map[models.TransactionType]Strategy
}

// NewEngine returns an engine with all built-in strategies registered.
func NewEngine() *Engine {
	e := &Engine{strategies: make(map[models.TransactionType]Strategy)}
	e.Register(models.TypeIjarah, &ijarahStrategy{})
	e.Register(models.TypeIjarahMBT, &ijarahStrategy{ownershipTransfer: true})
	e.Register(models.TypeMurabaha, &murabahaStrategy{})
	e.Register(models.TypeSalam, &salamStrategy{})
	e.Register(models.TypeParallelSalam, &salamStrategy{parallel: true})
	e.Register(models.TypeIstisna, &istisnaStrategy{})
	e.Register(models.TypeParallelIstisna, &istisnaStrategy{parallel: true})
	e.Register(models.TypeForeignCurrency, &foreignCurrencyStrategy{})
	return e
}

// Register adds (or replaces) the strategy for a transaction type. Adding a
// standard means registering one new strategy here; the classifier and
// assembler are untouched.
func (e *Engine) Register(t models.TransactionType, s Strategy) {
	e.strategies[t] = s
}

// Compute runs the strategy registered for the facts' transaction type.
func (e *Engine) Compute(facts *models.TransactionFacts, std *standards.StandardDefinition) (*Output, error) {
	strategy, ok := e.strategies[facts.TransactionType]
	if !ok {
		return nil, &UnsupportedFactsError{
			TransactionType: facts.TransactionType,
			Field:           "transaction_type",
			Reason:          "has no registered computation strategy",
		}
	}
	return strategy.Compute(facts, std)
}

// requirePositive fails with an UnsupportedFactsError when a field the
// strategy depends on is absent (zero) or zero-valued.
func requirePositive(t models.TransactionType, field string, value decimal.Decimal) error {
	if !value.IsPositive() {
		return &UnsupportedFactsError{TransactionType: t, Field: field}
	}
	return nil
}

// entryNotApplicable builds the error for an entry type a strategy does not
// produce (e.g. ownership transfer on a plain Ijarah).
func entryNotApplicable(t models.TransactionType, entry models.EntryType) error {
	return &UnsupportedFactsError{
		TransactionType: t,
		Field:           "requested_entry",
		Reason:          fmt.Sprintf("value %q is not applicable", entry),
	}
}

// formula renders one trace line in the "operands = result" shape the
// output contract requires, e.g. "450000 + 42000 = 492000".
func formula(left decimal.Decimal, op string, right, result decimal.Decimal) string {
	return fmt.Sprintf("%s %s %s = %s", left, op, right, result)
}
