package catalog

// Recommendation accompanies every full listing so callers start from the
// consolidated view instead of the raw schedules.
const Recommendation = "Use the cu_with_ratios view for most analytical queries"

// tableDescriptions carries curated summaries for the NCUA call report
// objects. Objects missing from this map list with an empty description.
var tableDescriptions = map[string]string{
	"cu_with_ratios": "⭐ Consolidated view that joins identifying info with pre-calculated ratios",
	"foicu":          "Credit union identity (charter, branchings, geography)",
	"fs220":          "Primary financial schedule with core account balances",
	"fs220a":         "Supplemental schedule (non-interest income, employee stats)",
	"fs220b":         "Breakouts for investment balances",
	"fs220c":         "Allowance and delinquency metrics",
	"fs220g":         "Member business loan detail",
	"fs220h":         "Mortgage and real estate balances",
	"fs220i":         "Indirect lending detail",
	"fs220j":         "Deposit and share account detail",
	"fs220k":         "Capital and net worth detail",
	"fs220l":         "Income statement breakouts",
	"fs220m":         "Expense detail",
	"fs220n":         "Other operating income detail",
	"fs220p":         "Product penetration data",
	"fs220q":         "Member service measurements",
	"fs220r":         "Technology and channel usage",
	"acctdesc":       "Account code dictionary mapping acct_XXX columns to names",
}

// columnDescriptions annotates the well-known analytical columns.
var columnDescriptions = map[string]string{
	"cu_number":                 "Unique credit union identifier assigned by the NCUA",
	"cycle_date":                "Quarter end date for the reported metrics",
	"cu_name":                   "Credit union legal name",
	"city":                      "Headquarters city",
	"state":                     "Two-letter state or territory code",
	"assets":                    "Total assets reported for the quarter",
	"member_count":              "Number of members",
	"member_growth_yoy":         "Year-over-year member growth percentage",
	"loan_growth_yoy":           "Year-over-year loan balance growth percentage",
	"share_growth_yoy":          "Year-over-year share/deposit growth percentage",
	"asset_growth_yoy":          "Year-over-year asset growth percentage",
	"roa":                       "Return on Assets (annualized percentage)",
	"efficiency_ratio":          "Operating expenses as % of revenue (lower is better, typical range 50-90%)",
	"operating_expense_ratio":   "Operating expenses as % of assets (annualized, different from efficiency ratio)",
	"loan_to_share_ratio":       "Loan to share (deposit) ratio",
	"net_worth_ratio":           "Net worth ratio (capital / assets)",
	"net_interest_margin":       "Net interest income as % of assets (typical range 2-4%)",
	"non_interest_income_ratio": "Non-interest income as % of assets (annualized)",
	"members_per_employee":      "Average members per full-time employee",
	"indirect_lending_ratio":    "Indirect lending share of total loans",
	"avg_member_relationship":   "Average relationship per member in dollars",
}
