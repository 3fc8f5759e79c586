package usecase

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map"

	"github.com/schaplens/engine/internal/domain"
)

// phraseMapping maps one curated label phrase (already in normalized
// form) to a canonical category. The slice order is the tie-break for
// substring matches: the first entry that matches wins, so more specific
// phrases must come before the generic ones they contain.
type phraseMapping struct {
	pattern  string
	category string
}

var categoryPhrases = []phraseMapping{
	// potatoes, vegetables, fruit
	{"aardappelen groente fruit", "aardappel-groente-fruit"},
	{"groente fruit", "aardappel-groente-fruit"},
	{"verse groente", "aardappel-groente-fruit"},
	{"vers fruit", "aardappel-groente-fruit"},
	{"aardappelen", "aardappel-groente-fruit"},
	{"groente", "aardappel-groente-fruit"},
	{"fruit", "aardappel-groente-fruit"},
	{"salades kruiden", "aardappel-groente-fruit"},
	{"verse kruiden", "aardappel-groente-fruit"},

	// meat, poultry, fish
	{"vlees kip vis", "vlees-kip"},
	{"vlees kip", "vlees-kip"},
	{"vleeswaren", "broodbeleg"},
	{"vlees", "vlees-kip"},
	{"kip gevogelte", "vlees-kip"},
	{"gevogelte", "vlees-kip"},
	{"rundvlees", "vlees-kip"},
	{"varkensvlees", "vlees-kip"},
	{"gehakt", "vlees-kip"},
	{"barbecue vlees", "vlees-kip"},
	{"verse vis", "vis"},
	{"vis schaaldieren", "vis"},
	{"zalm", "vis"},
	{"haring", "vis"},
	{"vis", "vis"},

	// vegetarian
	{"vegetarisch vegan", "vegetarisch"},
	{"vleesvervangers", "vegetarisch"},
	{"plantaardig", "vegetarisch"},
	{"vegan", "vegetarisch"},
	{"vegetarisch", "vegetarisch"},

	// dairy, eggs, cheese
	{"zuivel plantaardig eieren", "zuivel-eieren"},
	{"zuivel eieren", "zuivel-eieren"},
	{"melk yoghurt", "zuivel-eieren"},
	{"yoghurt kwark", "zuivel-eieren"},
	{"zuivel", "zuivel-eieren"},
	{"melk", "zuivel-eieren"},
	{"yoghurt", "zuivel-eieren"},
	{"vla toetjes", "zuivel-eieren"},
	{"eieren", "zuivel-eieren"},
	{"boter margarine", "zuivel-eieren"},
	{"kaas vleeswaren tapas", "kaas"},
	{"kaas", "kaas"},

	// bread and bakery
	{"brood gebak", "brood-banket"},
	{"brood banket", "brood-banket"},
	{"vers brood", "brood-banket"},
	{"bakkerij", "brood-banket"},
	{"brood", "brood-banket"},
	{"crackers beschuit", "ontbijtgranen"},
	{"beschuit", "ontbijtgranen"},

	// breakfast and spreads
	{"ontbijtgranen beleg", "ontbijtgranen"},
	{"ontbijtgranen", "ontbijtgranen"},
	{"cornflakes muesli", "ontbijtgranen"},
	{"muesli", "ontbijtgranen"},
	{"havermout", "ontbijtgranen"},
	{"broodbeleg", "broodbeleg"},
	{"zoet beleg", "broodbeleg"},
	{"hartig beleg", "broodbeleg"},
	{"pindakaas", "broodbeleg"},
	{"hagelslag", "broodbeleg"},
	{"jam", "broodbeleg"},

	// sweets, cookies, snacks
	{"snoep chocolade koek", "snoep-chocolade"},
	{"snoep chocolade", "snoep-chocolade"},
	{"chocolade", "snoep-chocolade"},
	{"snoep", "snoep-chocolade"},
	{"drop", "snoep-chocolade"},
	{"koek gebak", "koek-gebak"},
	{"koeken", "koek-gebak"},
	{"koek", "koek-gebak"},
	{"gebak taart", "koek-gebak"},
	{"chips noten toast", "chips-noten"},
	{"chips noten", "chips-noten"},
	{"chips", "chips-noten"},
	{"noten zuidvruchten", "chips-noten"},
	{"noten", "chips-noten"},
	{"borrelhapjes", "chips-noten"},
	{"zoutjes", "chips-noten"},

	// drinks
	{"frisdrank sappen koffie thee", "frisdrank"},
	{"frisdrank sappen", "frisdrank"},
	{"frisdrank", "frisdrank"},
	{"cola", "frisdrank"},
	{"energiedrank", "frisdrank"},
	{"water", "frisdrank"},
	{"sappen smoothies", "sappen"},
	{"vruchtensap", "sappen"},
	{"sappen", "sappen"},
	{"sap", "sappen"},
	{"koffie thee", "koffie-thee"},
	{"koffie", "koffie-thee"},
	{"thee", "koffie-thee"},
	{"bier aperitieven", "bier"},
	{"speciaalbier", "bier"},
	{"bier", "bier"},
	{"wijn bubbels", "wijn"},
	{"wijn", "wijn"},
	{"sterke drank", "wijn"},

	// pantry
	{"pasta rijst wereldkeuken", "pasta-rijst"},
	{"pasta rijst", "pasta-rijst"},
	{"pasta", "pasta-rijst"},
	{"rijst", "pasta-rijst"},
	{"mie noedels", "pasta-rijst"},
	{"wereldkeuken", "wereldkeuken"},
	{"aziatisch", "wereldkeuken"},
	{"mexicaans", "wereldkeuken"},
	{"italiaans", "wereldkeuken"},
	{"tapas", "wereldkeuken"},
	{"soepen sauzen oli kruiden", "soepen-sauzen"},
	{"soepen sauzen", "soepen-sauzen"},
	{"soep", "soepen-sauzen"},
	{"sauzen", "soepen-sauzen"},
	{"kruiden specerijen", "soepen-sauzen"},
	{"olie azijn", "soepen-sauzen"},
	{"bakproducten", "soepen-sauzen"},
	{"conserven", "conserven"},
	{"potten blikken", "conserven"},
	{"maaltijden gemak", "conserven"},
	{"kant klaar", "conserven"},

	// frozen
	{"diepvries", "diepvries"},
	{"ijs diepvries", "diepvries"},
	{"diepvriesmaaltijden", "diepvries"},
	{"ijs", "diepvries"},
	{"pizza", "diepvries"},

	// baby, drugstore, household
	{"baby kind", "baby-kind"},
	{"babyvoeding", "baby-kind"},
	{"baby verzorging", "baby-kind"},
	{"luiers", "baby-kind"},
	{"baby", "baby-kind"},
	{"drogisterij", "drogisterij"},
	{"gezondheid", "drogisterij"},
	{"vitamines supplementen", "drogisterij"},
	{"verzorging hygiene", "drogisterij"},
	{"lichaamsverzorging", "drogisterij"},
	{"haarverzorging", "drogisterij"},
	{"mondverzorging", "drogisterij"},
	{"make up", "drogisterij"},
	{"parfum", "drogisterij"},
	{"huishouden", "huishouden"},
	{"huishoudelijke artikelen", "huishouden"},
	{"wasmiddel schoonmaak", "huishouden"},
	{"wasmiddel", "huishouden"},
	{"schoonmaakmiddelen", "huishouden"},
	{"schoonmaak", "huishouden"},
	{"toiletpapier", "huishouden"},
	{"keukenpapier", "huishouden"},
	{"huisdier", "huishouden"},
	{"dierenvoeding", "huishouden"},

	// catch-alls
	{"koken tafelen", "overig"},
	{"non food", "overig"},
	{"seizoensartikelen", "overig"},
	{"cadeaukaarten", "overig"},
	{"tijdschriften", "overig"},
	{"overig", "overig"},

	// shop-specific corrections: labels with shop wording baked in
	{"ah voordeelshop", "overig"},
	{"ah basic", "overig"},
	{"jumbo huismerk", "overig"},
	{"plus huismerk", "overig"},
	{"aldi aanbieding week", "overig"},
	{"kruidvat gezond slank", "drogisterij"},
	{"kruidvat huismerk", "drogisterij"},
	{"kruidvat baby kind", "baby-kind"},
	{"bewuste voeding", "drogisterij"},
	{"sport voeding", "drogisterij"},
	{"glutenvrij", "conserven"},
	{"biologisch assortiment", "aardappel-groente-fruit"},
}

// buildPhraseTable loads the curated phrase table into an insertion-
// ordered map and validates every target against the canonical set, so a
// typo in the table fails at startup instead of polluting output.
func buildPhraseTable(entries []phraseMapping) (*orderedmap.OrderedMap, error) {
	table := orderedmap.New()
	for _, e := range entries {
		if !domain.IsCanonical(e.category) {
			return nil, fmt.Errorf("phrase %q -> %q: %w", e.pattern, e.category, domain.ErrUnknownCategory)
		}
		table.Set(e.pattern, e.category)
	}
	return table, nil
}

// shopMarketingKeywords are per-shop marketing-label keyword sets. A
// label containing one of these says nothing about the shelf, so the
// resolver consults the ML prediction early, with a lower acceptance
// threshold than the regular ML tier.
var shopMarketingKeywords = map[string][]string{
	"ah":       {"bonus", "voordeel", "seizoen", "nieuw"},
	"jumbo":    {"acties", "voordeel", "laagste prijs"},
	"plus":     {"aanbiedingen", "opruiming"},
	"aldi":     {"actie", "weekacties"},
	"kruidvat": {"voordeelverpakking", "opruiming", "aanbieding"},
}
