package ledger

import (
	"log/slog"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/text/width"
)

// Input holds raw field values as collected by the input layer.
type Input struct {
	Date     string `json:"date"`
	Type     string `json:"type"`
	Category string `json:"category"`
	Amount   string `json:"amount"`
	Note     string `json:"note"`
}

// Factory validates input and creates new transaction records.
type Factory struct {
	vocab Vocabulary
	newID func() string
}

// FactoryOption configures a Factory.
type FactoryOption func(*Factory)

// WithIDGenerator replaces the default UUID generator.
func WithIDGenerator(fn func() string) FactoryOption {
	return func(f *Factory) {
		f.newID = fn
	}
}

// NewFactory creates a new Factory using the given vocabulary.
func NewFactory(vocab Vocabulary, opts ...FactoryOption) *Factory {
	f := &Factory{
		vocab: vocab,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Vocabulary returns the category vocabulary offered to the input layer.
func (f *Factory) Vocabulary() Vocabulary {
	return f.vocab
}

// Create validates the fields and returns a new transaction with a fresh ID.
// It returns ErrValidation if the date or category is empty, or the amount
// is not positive.
func (f *Factory) Create(date string, typ Type, category string, amount int64, note string) (Transaction, error) {
	date = strings.TrimSpace(date)
	category = strings.TrimSpace(category)

	if date == "" || category == "" || amount <= 0 || !typ.Valid() {
		return Transaction{}, ErrValidation
	}

	if !f.vocab.Contains(typ, category) {
		slog.Debug("category outside vocabulary", "type", typ, "category", category)
	}

	return Transaction{
		ID:       f.newID(),
		Date:     date,
		Type:     typ,
		Category: category,
		Amount:   amount,
		Note:     strings.TrimSpace(note),
	}, nil
}

// Parse converts raw field strings into a transaction.
// Any unparsable field is reported as ErrValidation.
func (f *Factory) Parse(in Input) (Transaction, error) {
	typ, err := ParseType(in.Type)
	if err != nil {
		return Transaction{}, ErrValidation
	}

	amount, err := ParseAmount(in.Amount)
	if err != nil {
		return Transaction{}, ErrValidation
	}

	return f.Create(in.Date, typ, in.Category, amount, in.Note)
}

// ParseAmount parses a whole-yen amount.
//
// It accepts thousands separators, a leading ¥ and a trailing 円, and
// full-width digits. Signs and decimals are rejected.
//
// Examples:
//
//	ParseAmount("5000")    -> 5000
//	ParseAmount("¥5,000")  -> 5000
//	ParseAmount("５０００円") -> 5000
func ParseAmount(s string) (int64, error) {
	s = width.Narrow.String(strings.TrimSpace(s))
	s = strings.TrimPrefix(s, "¥")
	s = strings.TrimSuffix(s, "円")
	s = strings.ReplaceAll(s, ",", "")
	s = strings.TrimSpace(s)

	if s == "" {
		return 0, ErrValidation
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, ErrValidation
		}
	}

	v, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, ErrValidation
	}
	return v, nil
}
