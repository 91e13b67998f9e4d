// Package taxonomy defines the closed set of estate document categories.
//
// The set is fixed at build time and is not user-extensible at runtime. Each
// category carries a human-readable display name and a stable NN.NNNN-NN code
// that compliance rule lists are keyed by. Exactly one catch-all category
// exists (Miscellaneous) which bypasses rule evaluation entirely.
package taxonomy

// Category is one taxonomy entry.
type Category struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// CatchAllCode is the stable code of the distinguished catch-all category.
const CatchAllCode = "00.0000-00"

// The fixed category set.
var (
	DeathCertificate   = Category{Name: "Death Certificate", Code: "01.0000-50"}
	WillOrTrust        = Category{Name: "Will or Trust", Code: "02.0300-50"}
	PropertyDeed       = Category{Name: "Property Deed", Code: "03.0090-00"}
	FinancialStatement = Category{Name: "Financial Statement", Code: "04.5000-00"}
	TaxDocument        = Category{Name: "Tax Document", Code: "05.5000-70"}
	Miscellaneous      = Category{Name: "Miscellaneous", Code: CatchAllCode}
)

// ordered holds the declaration order. Classification tie-breaks resolve to
// the first declared category, so this order is load-bearing.
var ordered = []Category{
	DeathCertificate,
	WillOrTrust,
	PropertyDeed,
	FinancialStatement,
	TaxDocument,
	Miscellaneous,
}

var byCode = func() map[string]Category {
	m := make(map[string]Category, len(ordered))
	for _, c := range ordered {
		m[c.Code] = c
	}
	return m
}()

// Categories returns the full category set in declaration order. The returned
// slice is a copy; callers may not grow the taxonomy.
func Categories() []Category {
	return append([]Category(nil), ordered...)
}

// ByCode looks up a category by its stable code.
func ByCode(code string) (Category, bool) {
	c, ok := byCode[code]
	return c, ok
}

// IsCatchAll reports whether the category is the distinguished catch-all.
func (c Category) IsCatchAll() bool {
	return c.Code == CatchAllCode
}
