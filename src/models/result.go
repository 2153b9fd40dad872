package models

import (
	"bytes"
	"encoding/json"

	"github.com/shopspring/decimal"
)

// JournalEntry is a single ledger line. Exactly one of Debit/Credit is
// non-zero; the unused side is kept and zeroed, matching the conventional
// presentation format. Entries are never mutated after creation.
type JournalEntry struct {
	Account string          `json:"account"`
	Debit   decimal.Decimal `json:"debit"`
	Credit  decimal.Decimal `json:"credit"`
}

// Debit builds a debit-side entry.
func Debit(account string, amount decimal.Decimal) JournalEntry {
	return JournalEntry{Account: account, Debit: amount, Credit: decimal.Zero}
}

// Credit builds a credit-side entry.
func Credit(account string, amount decimal.Decimal) JournalEntry {
	return JournalEntry{Account: account, Debit: decimal.Zero, Credit: amount}
}

// Totals returns the debit and credit sums of an entry set.
func Totals(entries []JournalEntry) (debits, credits decimal.Decimal) {
	debits, credits = decimal.Zero, decimal.Zero
	for _, e := range entries {
		debits = debits.Add(e.Debit)
		credits = credits.Add(e.Credit)
	}
	return debits, credits
}

// CalculationTrace records named intermediate quantities together with the
// literal arithmetic that produced them. Later entries may depend on earlier
// ones, so insertion order is meaningful and preserved through JSON encoding.
type CalculationTrace struct {
	names    []string
	formulas map[string]string
}

// NewCalculationTrace returns an empty trace.
func NewCalculationTrace() *CalculationTrace {
	return &CalculationTrace{formulas: make(map[string]string)}
}

// Add appends a named formula. Re-adding a name overwrites the formula but
// keeps its original position.
func (t *CalculationTrace) Add(name, formula string) {
	if _, exists := t.formulas[name]; !exists {
		t.names = append(t.names, name)
	}
	t.formulas[name] = formula
}

// Get returns the formula recorded under name.
func (t *CalculationTrace) Get(name string) (string, bool) {
	formula, ok := t.formulas[name]
	return formula, ok
}

// Names returns the recorded names in insertion order.
func (t *CalculationTrace) Names() []string {
	out := make([]string, len(t.names))
	copy(out, t.names)
	return out
}

// Len returns the number of recorded formulas.
func (t *CalculationTrace) Len() int {
	return len(t.names)
}

// MarshalJSON encodes the trace as a JSON object whose keys appear in
// insertion order. encoding/json would sort map keys, which loses the
// derivation order, so the object is assembled by hand.
func (t *CalculationTrace) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range t.names {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(t.formulas[name])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON restores a trace from a JSON object, preserving key order.
func (t *CalculationTrace) UnmarshalJSON(data []byte) error {
	t.names = nil
	t.formulas = make(map[string]string)

	dec := json.NewDecoder(bytes.NewReader(data))
	if _, err := dec.Token(); err != nil { // opening brace
		return err
	}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key := keyTok.(string)
		var value string
		if err := dec.Decode(&value); err != nil {
			return err
		}
		t.Add(key, value)
	}
	_, err := dec.Token() // closing brace
	return err
}

// StandardInfo is the standard metadata echoed back with every result.
type StandardInfo struct {
	StandardID          string   `json:"standard_id"`
	StandardName        string   `json:"standard_name"`
	KeyTerms            []string `json:"key_terms"`
	RecognitionCriteria []string `json:"recognition_criteria,omitempty"`
	MeasurementRules    []string `json:"measurement_rules,omitempty"`
}

// ChartData carries the journal entries reshaped for the external chart
// renderer: the three arrays are aligned by index.
type ChartData struct {
	Accounts []string          `json:"accounts"`
	Debits   []decimal.Decimal `json:"debits"`
	Credits  []decimal.Decimal `json:"credits"`
}

// ProcessingResult is the complete structured output for one request.
// Assembled once, immutable once returned.
type ProcessingResult struct {
	TransactionSummary   TransactionFacts  `json:"transaction_summary"`
	StandardInfo         StandardInfo      `json:"standard_info"`
	JournalEntries       []JournalEntry    `json:"journal_entries"`
	Calculations         *CalculationTrace `json:"calculations"`
	Explanation          string            `json:"explanation"`
	ChartData            ChartData         `json:"chart_data"`
	VisualizationCreated bool              `json:"visualization_created"`
	Visualization        json.RawMessage   `json:"visualization,omitempty"`
}
