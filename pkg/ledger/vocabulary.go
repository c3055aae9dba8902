package ledger

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// vocabularyFile is the YAML layout of a category vocabulary file.
//
//	income:
//	  - 町内会費
//	expense:
//	  - 行事費
type vocabularyFile struct {
	Income  []string `yaml:"income"`
	Expense []string `yaml:"expense"`
}

// Vocabulary is the fixed set of categories offered to the input layer for
// each transaction type. It is immutable once constructed.
type Vocabulary struct {
	income  []string
	expense []string
}

// NewVocabulary creates a Vocabulary from the given category lists.
// The slices are copied.
func NewVocabulary(income, expense []string) Vocabulary {
	return Vocabulary{
		income:  append([]string(nil), income...),
		expense: append([]string(nil), expense...),
	}
}

// DefaultVocabulary returns the standard neighborhood association categories.
func DefaultVocabulary() Vocabulary {
	return NewVocabulary(
		[]string{"町内会費", "補助金", "繰越金", "その他収入"},
		[]string{"行事費", "消耗品費", "通信費", "慶弔費", "その他支出"},
	)
}

// LoadVocabulary reads a Vocabulary from a YAML file.
// A type whose list is missing or empty falls back to the default categories.
func LoadVocabulary(path string) (Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Vocabulary{}, fmt.Errorf("failed to read categories file: %w", err)
	}

	var file vocabularyFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return Vocabulary{}, fmt.Errorf("failed to parse YAML: %w", err)
	}

	def := DefaultVocabulary()
	income, expense := file.Income, file.Expense
	if len(income) == 0 {
		income = def.income
	}
	if len(expense) == 0 {
		expense = def.expense
	}

	return NewVocabulary(income, expense), nil
}

// Categories returns a copy of the categories offered for t.
func (v Vocabulary) Categories(t Type) []string {
	switch t {
	case Income:
		return append([]string(nil), v.income...)
	case Expense:
		return append([]string(nil), v.expense...)
	}
	return nil
}

// Contains reports whether category belongs to the vocabulary of t.
func (v Vocabulary) Contains(t Type, category string) bool {
	for _, c := range v.Categories(t) {
		if c == category {
			return true
		}
	}
	return false
}
