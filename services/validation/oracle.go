package validation

import (
	"Wordrush/logger"
	"context"
	"strings"
)

// Request asks whether a word is legal for a category
type Request struct {
	Word     string `json:"word"`
	Category string `json:"category"`
	// empty means any starting letter is fine
	AllowedStartLetters []string `json:"allowed_start_letters,omitempty"`
	UsedWords           []string `json:"used_words,omitempty"`
}

type Verdict struct {
	Valid        bool   `json:"valid"`
	FitsCategory bool   `json:"fits_category"`
	Reason       string `json:"reason,omitempty"`
}

// Accepted is true when the word is a real word that fits the category
func (v Verdict) Accepted() bool {
	return v.Valid && v.FitsCategory
}

// Oracle judges words. Implementations may call remote services
type Oracle interface {
	Validate(ctx context.Context, req Request) (Verdict, error)
}

// FailClosed turns every oracle error into a rejection, so an unavailable
// oracle never lets a word through
type FailClosed struct {
	Oracle Oracle
}

func (f FailClosed) Validate(ctx context.Context, req Request) (Verdict, error) {
	if f.Oracle == nil {
		return Verdict{Reason: "Word validation is unavailable"}, nil
	}
	verdict, err := f.Oracle.Validate(ctx, req)
	if err != nil {
		logger.Warnf("[ORACLE-ERROR] validating %q for %q: %v", req.Word, req.Category, err)
		return Verdict{Reason: "Word validation is unavailable, try again"}, nil
	}
	return verdict, nil
}

// precheck applies the checks every oracle shares: start letter and reuse
func precheck(req Request) (Verdict, bool) {
	word := strings.ToUpper(strings.TrimSpace(req.Word))
	if word == "" {
		return Verdict{Reason: "Empty word"}, false
	}
	if len(req.AllowedStartLetters) > 0 {
		ok := false
		for _, l := range req.AllowedStartLetters {
			if strings.HasPrefix(word, strings.ToUpper(l)) {
				ok = true
				break
			}
		}
		if !ok {
			return Verdict{Reason: "Word must start with one of the round letters"}, false
		}
	}
	for _, used := range req.UsedWords {
		if strings.EqualFold(used, word) {
			return Verdict{Valid: true, Reason: "Word already used in this category"}, false
		}
	}
	return Verdict{}, true
}
