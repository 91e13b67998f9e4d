package rules

import (
	"regexp"
	"strings"

	"github.com/probatech/estadoc/pkg/taxonomy"
)

// Patterns are compiled once at package load; rule lists built from them are
// immutable for the life of the process.
var (
	reDateOfDeath    = regexp.MustCompile(`(?i)date of death`)
	reDeceasedName   = regexp.MustCompile(`(?i)(name of deceased|full name|deceased)`)
	reCertNumber     = regexp.MustCompile(`(?i)(certificate number|cert\.?\s*no\.?|registration)`)
	reTestator       = regexp.MustCompile(`(?i)(testator|grantor|settlor|trustor)`)
	reBeneficiary    = regexp.MustCompile(`(?i)(beneficiary|beneficiaries|heir|inherit)`)
	reDeedType       = regexp.MustCompile(`(?i)(warranty deed|quitclaim deed|deed of trust|property deed)`)
	rePropertyDesc   = regexp.MustCompile(`(?i)(property description|parcel|lot|legal description)`)
	reFinancialInfo  = regexp.MustCompile(`(?i)(account|balance|statement|financial)`)
	reMonetaryAmount = regexp.MustCompile(`\$[\d,]+\.?\d*`)
	reTaxInfo        = regexp.MustCompile(`(?i)(tax|irs|internal revenue|form \d+|schedule)`)
	reTaxYear        = regexp.MustCompile(`(?i)(tax year|year \d{4}|20\d{2})`)
)

// BuiltinRules returns the builtin per-category compliance rule lists. The
// catch-all category is deliberately absent: it bypasses validation before
// any list lookup happens.
func BuiltinRules() map[string][]Rule {
	return map[string][]Rule{
		taxonomy.DeathCertificate.Code: {
			{
				Name: "contains_certificate_title",
				Predicate: func(content string) bool {
					return strings.Contains(strings.ToLower(content), "certificate of death")
				},
				Message: "Must contain 'Certificate of Death'",
			},
			{
				Name:      "has_date_of_death",
				Predicate: reDateOfDeath.MatchString,
				Message:   "Must have 'Date of Death' field",
			},
			{
				Name:      "has_deceased_name",
				Predicate: reDeceasedName.MatchString,
				Message:   "Must include deceased person's name",
			},
			{
				Name:      "has_certificate_number",
				Predicate: reCertNumber.MatchString,
				Message:   "Must have certificate number",
			},
		},
		taxonomy.WillOrTrust.Code: {
			{
				Name: "contains_will_or_trust",
				Predicate: func(content string) bool {
					folded := strings.ToLower(content)
					for _, term := range []string{"last will and testament", "trust agreement", "living trust", "revocable trust"} {
						if strings.Contains(folded, term) {
							return true
						}
					}
					return false
				},
				Message: "Must contain 'Last Will and Testament' or 'Trust Agreement'",
			},
			{
				Name:      "has_testator_or_grantor",
				Predicate: reTestator.MatchString,
				Message:   "Must identify the testator or grantor",
			},
			{
				Name:      "has_beneficiary_info",
				Predicate: reBeneficiary.MatchString,
				Message:   "Must include beneficiary information",
			},
		},
		taxonomy.PropertyDeed.Code: {
			{
				Name:      "contains_deed_type",
				Predicate: reDeedType.MatchString,
				Message:   "Must specify deed type",
			},
			{
				Name:      "has_property_description",
				Predicate: rePropertyDesc.MatchString,
				Message:   "Must include property description",
			},
		},
		taxonomy.FinancialStatement.Code: {
			{
				Name:      "contains_financial_info",
				Predicate: reFinancialInfo.MatchString,
				Message:   "Must contain financial account information",
			},
			{
				Name:      "has_monetary_amounts",
				Predicate: reMonetaryAmount.MatchString,
				Message:   "Must include monetary amounts",
			},
		},
		taxonomy.TaxDocument.Code: {
			{
				Name:      "contains_tax_info",
				Predicate: reTaxInfo.MatchString,
				Message:   "Must contain tax-related information",
			},
			{
				Name:      "has_tax_year",
				Predicate: reTaxYear.MatchString,
				Message:   "Must specify tax year",
			},
		},
	}
}
