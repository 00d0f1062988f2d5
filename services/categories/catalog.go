package categories

import "strings"

// Category is one mini category of the round pool
type Category struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Breadth       int    `json:"breadth"`        // 1-10, how many words plausibly fit
	ToughFriendly bool   `json:"tough_friendly"` // has enough words for J/K/Q/V/X/Z
}

const (
	SegmentBroad  = "broad"
	SegmentMedium = "medium"
	SegmentNarrow = "narrow"
)

func (c Category) Segment() string {
	switch {
	case c.Breadth >= 7:
		return SegmentBroad
	case c.Breadth >= 4:
		return SegmentMedium
	default:
		return SegmentNarrow
	}
}

func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

// DefaultCatalog is the built-in mini category pool
var DefaultCatalog = []Category{
	// broad
	{ID: "animals", Name: "Animals", Breadth: 9, ToughFriendly: true},
	{ID: "food", Name: "Food", Breadth: 9, ToughFriendly: true},
	{ID: "things-in-a-house", Name: "Things in a House", Breadth: 8, ToughFriendly: false},
	{ID: "verbs", Name: "Action Verbs", Breadth: 9, ToughFriendly: true},
	{ID: "adjectives", Name: "Describing Words", Breadth: 9, ToughFriendly: true},
	{ID: "jobs", Name: "Jobs", Breadth: 8, ToughFriendly: true},
	{ID: "places", Name: "Places", Breadth: 8, ToughFriendly: true},
	{ID: "first-names", Name: "First Names", Breadth: 9, ToughFriendly: true},
	{ID: "things-in-nature", Name: "Things in Nature", Breadth: 7, ToughFriendly: false},
	{ID: "things-you-can-buy", Name: "Things You Can Buy", Breadth: 8, ToughFriendly: true},
	{ID: "objects", Name: "Everyday Objects", Breadth: 8, ToughFriendly: false},
	{ID: "body-words", Name: "Words About the Body", Breadth: 7, ToughFriendly: false},
	// medium
	{ID: "fruits", Name: "Fruits", Breadth: 5, ToughFriendly: true},
	{ID: "vegetables", Name: "Vegetables", Breadth: 5, ToughFriendly: false},
	{ID: "countries", Name: "Countries", Breadth: 6, ToughFriendly: false},
	{ID: "cities", Name: "Cities", Breadth: 6, ToughFriendly: true},
	{ID: "sports", Name: "Sports", Breadth: 5, ToughFriendly: true},
	{ID: "clothing", Name: "Clothing", Breadth: 5, ToughFriendly: true},
	{ID: "musical-instruments", Name: "Musical Instruments", Breadth: 4, ToughFriendly: true},
	{ID: "kitchen-items", Name: "Kitchen Items", Breadth: 5, ToughFriendly: true},
	{ID: "birds", Name: "Birds", Breadth: 4, ToughFriendly: true},
	{ID: "drinks", Name: "Drinks", Breadth: 5, ToughFriendly: true},
	{ID: "colors", Name: "Colors", Breadth: 4, ToughFriendly: false},
	{ID: "hobbies", Name: "Hobbies", Breadth: 6, ToughFriendly: true},
	{ID: "tools", Name: "Tools", Breadth: 5, ToughFriendly: true},
	{ID: "vehicles", Name: "Vehicles", Breadth: 5, ToughFriendly: true},
	{ID: "emotions", Name: "Emotions", Breadth: 5, ToughFriendly: false},
	{ID: "school-things", Name: "School Things", Breadth: 5, ToughFriendly: false},
	{ID: "weather", Name: "Weather Words", Breadth: 4, ToughFriendly: false},
	{ID: "games", Name: "Games", Breadth: 5, ToughFriendly: true},
	{ID: "desserts", Name: "Desserts", Breadth: 4, ToughFriendly: false},
	{ID: "furniture", Name: "Furniture", Breadth: 4, ToughFriendly: false},
	// narrow
	{ID: "dog-breeds", Name: "Dog Breeds", Breadth: 3, ToughFriendly: false},
	{ID: "cheeses", Name: "Cheeses", Breadth: 2, ToughFriendly: false},
	{ID: "gemstones", Name: "Gemstones", Breadth: 2, ToughFriendly: false},
	{ID: "dances", Name: "Dances", Breadth: 3, ToughFriendly: true},
	{ID: "card-games", Name: "Card Games", Breadth: 2, ToughFriendly: false},
	{ID: "planets-and-stars", Name: "Space Things", Breadth: 3, ToughFriendly: false},
	{ID: "spices", Name: "Spices", Breadth: 3, ToughFriendly: false},
	{ID: "insects", Name: "Insects", Breadth: 3, ToughFriendly: false},
	{ID: "fish", Name: "Fish", Breadth: 3, ToughFriendly: false},
	{ID: "trees", Name: "Trees", Breadth: 2, ToughFriendly: false},
	{ID: "board-games", Name: "Board Games", Breadth: 2, ToughFriendly: false},
	{ID: "currencies", Name: "Currencies", Breadth: 2, ToughFriendly: false},
	{ID: "mythical-creatures", Name: "Mythical Creatures", Breadth: 3, ToughFriendly: false},
}

// DefaultBaseCategories are the grand categories a match can lock
var DefaultBaseCategories = []string{
	"Animals",
	"Food",
	"Jobs",
	"Places",
	"Things in a House",
	"Things You Can Buy",
	"Action Verbs",
	"Describing Words",
}
