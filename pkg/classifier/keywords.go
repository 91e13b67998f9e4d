package classifier

import (
	"fmt"
	"strings"

	"github.com/probatech/estadoc/pkg/taxonomy"
)

// KeywordTable maps category codes to their keyword phrase lists. Phrases are
// stored lower-cased because matching is performed against case-folded text.
type KeywordTable map[string][]string

// DefaultKeywordTable returns the builtin estate keyword table. The catch-all
// category deliberately has no keywords; it can only be selected when no
// other category matches.
func DefaultKeywordTable() KeywordTable {
	return KeywordTable{
		taxonomy.DeathCertificate.Code: {
			"certificate of death",
			"death certificate",
			"deceased",
			"date of death",
			"cause of death",
			"certifying physician",
			"funeral director",
			"vital statistics",
			"department of health",
		},
		taxonomy.WillOrTrust.Code: {
			"last will and testament",
			"trust agreement",
			"living trust",
			"revocable trust",
			"irrevocable trust",
			"testamentary",
			"executor",
			"trustee",
			"beneficiary",
			"bequeath",
			"estate planning",
		},
		taxonomy.PropertyDeed.Code: {
			"property deed",
			"deed of trust",
			"warranty deed",
			"quitclaim deed",
			"real property",
			"parcel",
			"grantor",
			"grantee",
			"property description",
			"recording information",
		},
		taxonomy.FinancialStatement.Code: {
			"financial statement",
			"bank statement",
			"investment account",
			"brokerage",
			"account balance",
			"portfolio",
			"assets",
			"liabilities",
			"net worth",
			"account summary",
		},
		taxonomy.TaxDocument.Code: {
			"tax return",
			"form 1040",
			"w-2",
			"1099",
			"tax assessment",
			"irs",
			"internal revenue",
			"taxable income",
			"deductions",
			"tax liability",
		},
	}
}

// validate checks that every code belongs to the taxonomy and that no phrase
// is empty or mixed-case.
func (t KeywordTable) validate() error {
	for code, phrases := range t {
		if _, ok := taxonomy.ByCode(code); !ok {
			return fmt.Errorf("classifier: unknown category code %q in keyword table", code)
		}
		for _, phrase := range phrases {
			if strings.TrimSpace(phrase) == "" {
				return fmt.Errorf("classifier: empty keyword phrase for category %s", code)
			}
			if phrase != strings.ToLower(phrase) {
				return fmt.Errorf("classifier: keyword %q for category %s must be lower-cased", phrase, code)
			}
		}
	}
	return nil
}

// clone deep-copies the table so the classifier's view is immutable.
func (t KeywordTable) clone() KeywordTable {
	out := make(KeywordTable, len(t))
	for code, phrases := range t {
		out[code] = append([]string(nil), phrases...)
	}
	return out
}
