package validation

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
)

// DictionaryOracle validates words against per-category word lists
type DictionaryOracle struct {
	lists map[string]map[string]struct{} // lower-case category -> upper-case words
	all   map[string]struct{}
}

// NewDictionaryOracle builds an oracle from category name -> words
func NewDictionaryOracle(lists map[string][]string) *DictionaryOracle {
	d := &DictionaryOracle{
		lists: make(map[string]map[string]struct{}, len(lists)),
		all:   map[string]struct{}{},
	}
	for category, words := range lists {
		key := strings.ToLower(strings.TrimSpace(category))
		set, ok := d.lists[key]
		if !ok {
			set = map[string]struct{}{}
			d.lists[key] = set
		}
		for _, w := range words {
			w = strings.ToUpper(strings.TrimSpace(w))
			set[w] = struct{}{}
			d.all[w] = struct{}{}
		}
	}
	return d
}

// LoadDictionary reads a JSON object of category name -> word list
func LoadDictionary(path string) (*DictionaryOracle, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error reading word lists: %w", err)
	}
	var lists map[string][]string
	if err := json.Unmarshal(data, &lists); err != nil {
		return nil, fmt.Errorf("error parsing word lists: %w", err)
	}
	return NewDictionaryOracle(lists), nil
}

// Categories lists the category names with a word list
func (d *DictionaryOracle) Categories() []string {
	return lo.Keys(d.lists)
}

// Knows reports whether a category has a word list
func (d *DictionaryOracle) Knows(category string) bool {
	_, ok := d.lists[strings.ToLower(strings.TrimSpace(category))]
	return ok
}

func (d *DictionaryOracle) Validate(ctx context.Context, req Request) (Verdict, error) {
	if v, ok := precheck(req); !ok {
		return v, nil
	}

	word := strings.ToUpper(strings.TrimSpace(req.Word))
	list, known := d.lists[strings.ToLower(strings.TrimSpace(req.Category))]
	if !known {
		return Verdict{}, fmt.Errorf("no word list for category %q", req.Category)
	}

	_, isWord := d.all[word]
	_, fits := list[word]
	switch {
	case fits:
		return Verdict{Valid: true, FitsCategory: true}, nil
	case isWord:
		return Verdict{Valid: true, Reason: fmt.Sprintf("%s is not in %s", word, req.Category)}, nil
	default:
		return Verdict{Reason: fmt.Sprintf("%s is not a known word", word)}, nil
	}
}

// SampleWordLists is a small built-in dictionary for local play
var SampleWordLists = map[string][]string{
	"Animals": {
		"ANT", "BAT", "BEAR", "CAMEL", "CAT", "COW", "DEER", "DOG", "EAGLE", "ELK", "FOX", "GOAT",
		"HORSE", "IGUANA", "JACKAL", "JAGUAR", "KANGAROO", "KOALA", "LION", "MOLE", "MOUSE", "NEWT",
		"OTTER", "OWL", "PANDA", "PIG", "QUAIL", "QUOKKA", "RABBIT", "RAT", "SEAL", "SHEEP", "SNAKE",
		"TIGER", "TOAD", "URCHIN", "VIPER", "VOLE", "WOLF", "YAK", "ZEBRA",
	},
	"Food": {
		"APPLE", "BACON", "BREAD", "BURGER", "CAKE", "CHEESE", "CURRY", "DONUT", "EGG", "FIG",
		"GARLIC", "HAM", "HONEY", "JAM", "JERKY", "KALE", "KEBAB", "LEMON", "MANGO", "NOODLE",
		"OLIVE", "PASTA", "PIZZA", "QUICHE", "QUINOA", "RICE", "SALAD", "SOUP", "STEAK", "TACO",
		"TOAST", "VEAL", "WAFFLE", "YAM", "YOGURT", "ZUCCHINI",
	},
	"Fruits": {
		"APPLE", "APRICOT", "BANANA", "CHERRY", "DATE", "FIG", "GRAPE", "GUAVA", "KIWI", "KUMQUAT",
		"LEMON", "LIME", "MANGO", "MELON", "OLIVE", "ORANGE", "PEACH", "PEAR", "PLUM", "QUINCE",
	},
	"Jobs": {
		"ACTOR", "BAKER", "CHEF", "CLERK", "DENTIST", "DOCTOR", "EDITOR", "FARMER", "GUARD", "JANITOR",
		"JUDGE", "JOCKEY", "KEEPER", "LAWYER", "MAYOR", "NURSE", "PILOT", "PLUMBER", "QUARTERMASTER",
		"SAILOR", "TAILOR", "TEACHER", "VET", "WAITER", "WRITER", "ZOOKEEPER",
	},
	"Sports": {
		"ARCHERY", "BASEBALL", "BOXING", "CRICKET", "DIVING", "FENCING", "GOLF", "HOCKEY", "JUDO",
		"KARATE", "KAYAKING", "POLO", "ROWING", "RUGBY", "SKIING", "SOCCER", "SQUASH", "SURFING",
		"TENNIS", "VOLLEYBALL",
	},
	"Things in a House": {
		"BED", "BOOK", "CARPET", "CHAIR", "CLOCK", "CUP", "DESK", "DOOR", "FORK", "JAR", "KETTLE",
		"KEY", "LAMP", "MIRROR", "OVEN", "PILLOW", "QUILT", "RUG", "SHEET", "SINK", "SOFA", "TABLE",
		"TOWEL", "VASE", "WINDOW",
	},
}
