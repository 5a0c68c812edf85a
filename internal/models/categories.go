package models

// Category names form a closed taxonomy. Any label outside this set is
// invalid and must be coerced to CategoryMiscellaneous.
const (
	CategoryFoodDining        = "Food & Dining"
	CategoryTransportation    = "Transportation"
	CategoryShopping          = "Shopping"
	CategoryHealthcare        = "Healthcare"
	CategoryEntertainment     = "Entertainment"
	CategoryUtilitiesBills    = "Utilities & Bills"
	CategoryFinancialServices = "Financial Services"
	CategoryPersonalCare      = "Personal Care"
	CategoryEducation         = "Education"
	CategoryTransferRefund    = "Transfer/Refund"
	CategoryMiscellaneous     = "Miscellaneous"
)

// AllCategories lists every valid category in presentation order.
var AllCategories = []string{
	CategoryFoodDining,
	CategoryTransportation,
	CategoryShopping,
	CategoryHealthcare,
	CategoryEntertainment,
	CategoryUtilitiesBills,
	CategoryFinancialServices,
	CategoryPersonalCare,
	CategoryEducation,
	CategoryTransferRefund,
	CategoryMiscellaneous,
}

var categorySet = func() map[string]struct{} {
	set := make(map[string]struct{}, len(AllCategories))
	for _, name := range AllCategories {
		set[name] = struct{}{}
	}
	return set
}()

// IsValidCategory reports whether name is a member of the taxonomy.
func IsValidCategory(name string) bool {
	_, ok := categorySet[name]
	return ok
}

// CoerceCategory returns name unchanged when it is a valid category and
// CategoryMiscellaneous otherwise.
func CoerceCategory(name string) string {
	if IsValidCategory(name) {
		return name
	}
	return CategoryMiscellaneous
}
