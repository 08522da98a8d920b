package scorer

// Built-in heuristic factors. Each scores one dimension from the serialized
// action view; thresholds and keyword sets are deliberately simple so the
// resulting assessments stay auditable.

var (
	destructiveVerbs = []string{"delete", "drop", "remove", "destroy", "purge", "terminate", "truncate", "revoke", "erase", "wipe"}
	mutatingVerbs    = []string{"write", "update", "modify", "create", "insert", "upload", "deploy", "install", "execute", "move", "rename", "set"}
	readingVerbs     = []string{"read", "get", "list", "view", "fetch", "query", "search", "describe", "download"}
)

type reversibilityFactor struct{}

func (f *reversibilityFactor) Name() string    { return "reversibility" }
func (f *reversibilityFactor) Weight() float64 { return 0.30 }

func (f *reversibilityFactor) Evaluate(view *View) float64 {
	switch {
	case view.Contains(destructiveVerbs...):
		return 0.9
	case view.Contains(mutatingVerbs...):
		return 0.5
	case view.Contains(readingVerbs...):
		return 0.1
	}
	// unknown verbs still score, at a conservative default
	return 0.3
}

func (f *reversibilityFactor) Describe(score float64) string {
	switch {
	case score >= 0.9:
		return "action verb suggests irreversible, destructive effects"
	case score >= 0.5:
		return "action mutates state but is likely recoverable"
	case score <= 0.1:
		return "read-only action"
	}
	return "unrecognized action verb, default reversibility assumed"
}

type scopeFactor struct{}

func (f *scopeFactor) Name() string    { return "scope" }
func (f *scopeFactor) Weight() float64 { return 0.20 }

func (f *scopeFactor) Evaluate(view *View) float64 {
	switch {
	case view.Contains("all records", "all ", "entire", "every", "bulk", "mass", "*"):
		return 0.9
	case view.Contains("multiple", "batch", "many"):
		return 0.6
	}
	return 0.2
}

func (f *scopeFactor) Describe(score float64) string {
	switch {
	case score >= 0.9:
		return "action targets an unbounded or complete data set"
	case score >= 0.6:
		return "action targets multiple records"
	}
	return "action appears narrowly scoped"
}

type privilegeFactor struct{}

func (f *privilegeFactor) Name() string    { return "privilege" }
func (f *privilegeFactor) Weight() float64 { return 0.15 }

func (f *privilegeFactor) Evaluate(view *View) float64 {
	switch {
	case view.Context.ElevatedPrivileges:
		return 0.9
	case view.Context.VerifiedUser:
		return 0.2
	}
	return 0.4
}

func (f *privilegeFactor) Describe(score float64) string {
	switch {
	case score >= 0.9:
		return "runs with elevated privileges"
	case score <= 0.2:
		return "initiated by a verified user"
	}
	return "no privilege context supplied"
}

type exposureFactor struct{}

func (f *exposureFactor) Name() string    { return "external_exposure" }
func (f *exposureFactor) Weight() float64 { return 0.15 }

func (f *exposureFactor) Evaluate(view *View) float64 {
	if view.Contains("send", "post", "publish", "email", "message", "http", "webhook", "broadcast", "external", "notify") {
		return 0.8
	}
	return 0.1
}

func (f *exposureFactor) Describe(score float64) string {
	if score >= 0.8 {
		return "action communicates outside the platform boundary"
	}
	return "no external communication detected"
}

type sensitivityFactor struct{}

func (f *sensitivityFactor) Name() string    { return "data_sensitivity" }
func (f *sensitivityFactor) Weight() float64 { return 0.20 }

func (f *sensitivityFactor) Evaluate(view *View) float64 {
	switch {
	case view.Contains("password", "secret", "credential", "token", "private_key", "api_key", "ssn", "credit_card", "pii", "medical"):
		return 0.9
	case view.Contains("database", "records", "personal", "financial", "account"):
		return 0.6
	}
	return 0.2
}

func (f *sensitivityFactor) Describe(score float64) string {
	switch {
	case score >= 0.9:
		return "action touches secrets or regulated personal data"
	case score >= 0.6:
		return "action touches stored user or financial data"
	}
	return "no sensitive data indicators"
}
