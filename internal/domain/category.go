package domain

// MappingTier records which resolution strategy produced a category.
// Observability only, never business data.
type MappingTier string

const (
	TierDirect      MappingTier = "direct"
	TierPartial     MappingTier = "partial"
	TierFuzzy       MappingTier = "fuzzy"
	TierML          MappingTier = "ml"
	TierSpecialCase MappingTier = "special_case"
)

// DefaultCategory is the terminal fallback when nothing else resolves.
const DefaultCategory = "overig"

// CanonicalCategories is the fixed, closed set of top-level shelf
// categories shared across all shops. Established once at startup,
// never mutated.
var CanonicalCategories = []string{
	"aardappel-groente-fruit",
	"vlees-kip",
	"vis",
	"vegetarisch",
	"zuivel-eieren",
	"kaas",
	"brood-banket",
	"ontbijtgranen",
	"broodbeleg",
	"snoep-chocolade",
	"koek-gebak",
	"chips-noten",
	"frisdrank",
	"sappen",
	"koffie-thee",
	"bier",
	"wijn",
	"pasta-rijst",
	"wereldkeuken",
	"soepen-sauzen",
	"conserven",
	"diepvries",
	"baby-kind",
	"drogisterij",
	"huishouden",
	"overig",
}

var canonicalSet = func() map[string]bool {
	set := make(map[string]bool, len(CanonicalCategories))
	for _, c := range CanonicalCategories {
		set[c] = true
	}
	return set
}()

// IsCanonical reports whether c is a member of the canonical set.
func IsCanonical(c string) bool {
	return canonicalSet[c]
}
