/*
Package classify decides whether an income category counts as business
income (事業所得) or stays miscellaneous income (雑所得) for a reporting
year.

PURPOSE:
  Since the 2022 NTA guidance, whether side income is "business" depends
  on scale and continuity, not just the category label. This package
  encodes that policy as a tiered decision table over three inputs:

    category              the income category label
    annual income (yen)   the aggregated total for the fiscal year
    multi-year history    did the same client+category produce income
                          in the immediately preceding fiscal year?

DECISION POLICY (first matching rule wins):
  1. Categories in the non-business set are never business income.
  2. 3,000,000 yen or more is always business income.
  3. Likely-business categories (manuscript fees, lecture fees, royalties,
     broadcast appearances): business at 1,000,000+, or at 500,000+ with
     multi-year history. Otherwise not; no fall-through to rule 5.
  4. Crypto assets: business only at 5,000,000+. No fall-through.
  5. Anything else: business at 2,000,000+, or at 1,000,000+ with
     multi-year history.

PURITY:
  The classifier performs no I/O. The multi-year-history flag is an
  explicit input; HistoryChecker (history.go) derives it from the record
  store ahead of the call.

SEE ALSO:
  - history.go: Prior-year lookback
  - report/: Annotates per-category totals with these decisions
*/
package classify

import "github.com/shopspring/decimal"

// =============================================================================
// CATEGORY SETS
// =============================================================================
// Kept as named tables, not scattered literals, so the classifier can be
// audited against future tax-rule changes in one place.

// NonBusinessCategories never classify as business income.
var NonBusinessCategories = map[string]bool{
	"個人年金": true, // personal pension
}

// LikelyBusinessCategories get the lowered thresholds of rule 3.
var LikelyBusinessCategories = map[string]bool{
	"原稿料":   true, // manuscript fees
	"講演料":   true, // lecture fees
	"印税":    true, // royalties
	"放送出演料": true, // broadcast appearance fees
}

// CategoryCrypto uses its own high bar (rule 4).
const CategoryCrypto = "暗号資産"

// =============================================================================
// THRESHOLDS (yen)
// =============================================================================

var (
	ThresholdAlwaysBusiness = decimal.NewFromInt(3_000_000)

	ThresholdLikelyBusiness        = decimal.NewFromInt(1_000_000)
	ThresholdLikelyBusinessHistory = decimal.NewFromInt(500_000)

	ThresholdCrypto = decimal.NewFromInt(5_000_000)

	ThresholdGeneric        = decimal.NewFromInt(2_000_000)
	ThresholdGenericHistory = decimal.NewFromInt(1_000_000)
)

// =============================================================================
// DECISION
// =============================================================================

// Rule names which tier of the decision table fired.
type Rule string

const (
	RuleNonBusiness    Rule = "non_business_category"
	RuleAlwaysBusiness Rule = "high_income"
	RuleLikelyBusiness Rule = "likely_business_category"
	RuleCrypto         Rule = "crypto_assets"
	RuleGeneric        Rule = "generic"
)

// Decision is the classifier outcome with the rule that produced it.
type Decision struct {
	Business bool
	Rule     Rule
}

// IsBusinessIncome reports whether the category's annual income counts as
// business income.
func IsBusinessIncome(category string, annualIncomeJPY decimal.Decimal, hasMultiYearHistory bool) bool {
	return Classify(category, annualIncomeJPY, hasMultiYearHistory).Business
}

// Classify runs the decision table top to bottom; the first matching rule
// wins. Tiers 3 and 4 are terminal: a likely-business or crypto category
// that misses its thresholds does NOT fall through to the generic rule.
func Classify(category string, annualIncomeJPY decimal.Decimal, hasMultiYearHistory bool) Decision {
	// Rule 1: excluded categories, unconditionally.
	if NonBusinessCategories[category] {
		return Decision{Business: false, Rule: RuleNonBusiness}
	}

	// Rule 2: scale alone is decisive.
	if annualIncomeJPY.GreaterThanOrEqual(ThresholdAlwaysBusiness) {
		return Decision{Business: true, Rule: RuleAlwaysBusiness}
	}

	// Rule 3: likely-business categories, lowered bar.
	if LikelyBusinessCategories[category] {
		switch {
		case annualIncomeJPY.GreaterThanOrEqual(ThresholdLikelyBusiness):
			return Decision{Business: true, Rule: RuleLikelyBusiness}
		case hasMultiYearHistory && annualIncomeJPY.GreaterThanOrEqual(ThresholdLikelyBusinessHistory):
			return Decision{Business: true, Rule: RuleLikelyBusiness}
		default:
			return Decision{Business: false, Rule: RuleLikelyBusiness}
		}
	}

	// Rule 4: crypto assets, higher bar.
	if category == CategoryCrypto {
		business := annualIncomeJPY.GreaterThanOrEqual(ThresholdCrypto)
		return Decision{Business: business, Rule: RuleCrypto}
	}

	// Rule 5: generic fallback.
	switch {
	case annualIncomeJPY.GreaterThanOrEqual(ThresholdGeneric):
		return Decision{Business: true, Rule: RuleGeneric}
	case hasMultiYearHistory && annualIncomeJPY.GreaterThanOrEqual(ThresholdGenericHistory):
		return Decision{Business: true, Rule: RuleGeneric}
	default:
		return Decision{Business: false, Rule: RuleGeneric}
	}
}
