package scorer

import (
	"github.com/agentry/riskgate/model/risk"
)

// categoryTerms maps each risk category to the indicators that place an
// action in it. Derivation is independent of factor scoring; an action can
// land in several categories.
var categoryTerms = []struct {
	category risk.Category
	terms    []string
}{
	{risk.CategorySystemModification, []string{"delete", "drop", "modify", "update", "write", "deploy", "install", "configure", "terminate", "restart", "database", "system", "file"}},
	{risk.CategoryExternalCommunication, []string{"send", "email", "post", "publish", "http", "webhook", "message", "notify", "broadcast"}},
	{risk.CategoryFinancial, []string{"payment", "purchase", "transfer", "invoice", "refund", "billing", "charge", "financial", "money"}},
	{risk.CategoryIdentity, []string{"user", "account", "identity", "permission", "role", "credential"}},
	{risk.CategorySecurity, []string{"secret", "password", "token", "key", "auth", "encrypt", "firewall", "security"}},
	{risk.CategoryDataAccess, []string{"read", "query", "fetch", "list", "export", "download", "access", "data", "record"}},
}

// deriveCategories returns every category the view matches, defaulting to
// data_access so the set is never empty.
func deriveCategories(view *View) []risk.Category {
	var ret []risk.Category
	for _, entry := range categoryTerms {
		if view.Contains(entry.terms...) {
			ret = append(ret, entry.category)
		}
	}
	if len(ret) == 0 {
		ret = []risk.Category{risk.CategoryDataAccess}
	}
	return ret
}
