// Package classifier resolves which AAOIFI standard governs a transaction.
package classifier

import (
	"fmt"
	"strings"

	"github.com/username/fasbooks/src/logger"
	"github.com/username/fasbooks/src/models"
	"github.com/username/fasbooks/src/standards"
)

// MatchBasis records how a classification was reached.
type MatchBasis string

const (
	// MatchByType means the declared transaction type mapped directly to a standard.
	MatchByType MatchBasis = "transaction_type"
	// MatchByKeywords means the standard was found by key-term overlap.
	MatchByKeywords MatchBasis = "keyword_overlap"
)

// ClassificationResult pairs the governing standard with the basis on which
// it was chosen.
type ClassificationResult struct {
	Standard *standards.StandardDefinition
	Basis    MatchBasis
}

// ClassificationError reports that no standard could be resolved for the
// transaction. The HTTP layer maps it to a 400 response.
type ClassificationError struct {
	TransactionType models.TransactionType
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("standard not found for transaction type %q", e.TransactionType)
}

// standardByType is the direct mapping used before any keyword matching.
var standardByType = map[models.TransactionType]string{
	models.TypeMurabaha:        "FAS_28",
	models.TypeIjarah:          "FAS_32",
	models.TypeIjarahMBT:       "FAS_32",
	models.TypeSalam:           "FAS_7",
	models.TypeParallelSalam:   "FAS_7",
	models.TypeIstisna:         "FAS_10",
	models.TypeParallelIstisna: "FAS_10",
	models.TypeForeignCurrency: "FAS_4",
}

// Classifier maps transaction facts to one catalog entry.
type Classifier interface {
	Classify(facts *models.TransactionFacts) (*ClassificationResult, error)
}

type classifierImpl struct {
	catalog *standards.Catalog
}

// NewClassifier creates a Classifier backed by the given catalog.
func NewClassifier(catalog *standards.Catalog) Classifier {
	return &classifierImpl{catalog: catalog}
}

// Classify resolves the governing standard. The declared transaction type
// wins when it has a direct mapping; otherwise key terms are matched against
// tokens from the type and the asset description. Classification is
// deterministic for identical facts.
func (c *classifierImpl) Classify(facts *models.TransactionFacts) (*ClassificationResult, error) {
	if id, ok := standardByType[facts.TransactionType]; ok {
		def, err := c.catalog.LookupByID(id)
		if err != nil {
			// The type mapping references a standard missing from the
			// catalog; fall through to keyword matching.
			logger.L.Warn("Mapped standard missing from catalog",
				"transactionType", facts.TransactionType, "standardID", id)
		} else {
			return &ClassificationResult{Standard: def, Basis: MatchByType}, nil
		}
	}

	tokens := standards.Tokenize(
		strings.ReplaceAll(string(facts.TransactionType), "_", " "),
		facts.AssetDescription,
		facts.Entity,
		facts.Counterparty,
	)
	def, err := c.catalog.MatchByKeywords(tokens)
	if err != nil {
		return nil, &ClassificationError{TransactionType: facts.TransactionType}
	}
	logger.L.Debug("Classified by keyword overlap",
		"transactionType", facts.TransactionType, "standardID", def.ID)
	return &ClassificationResult{Standard: def, Basis: MatchByKeywords}, nil
}
