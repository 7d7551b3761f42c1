package dto

// RuleReloadResult reports the outcome of reloading the rules file. Invalid
// rules are listed by name with the reason they were rejected; they never
// block the valid rest of the set.
type RuleReloadResult struct {
	Loaded  int               `json:"loaded"`
	Skipped []RuleReloadError `json:"skipped,omitempty"`
}

// RuleReloadError names one rejected rule.
type RuleReloadError struct {
	RuleName string `json:"ruleName"`
	Reason   string `json:"reason"`
}
