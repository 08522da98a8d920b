package risk

// Category names a class of impact an action may have. An action can belong
// to several categories at once; an assessment always carries at least one.
type Category string

const (
	CategoryDataAccess            Category = "data_access"
	CategoryExternalCommunication Category = "external_communication"
	CategorySystemModification    Category = "system_modification"
	CategoryFinancial             Category = "financial"
	CategoryIdentity              Category = "identity"
	CategorySecurity              Category = "security"
)

// HasCategory reports whether categories contains the supplied category.
func HasCategory(categories []Category, category Category) bool {
	for _, c := range categories {
		if c == category {
			return true
		}
	}
	return false
}
