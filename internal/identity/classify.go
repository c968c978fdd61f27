package identity

import "strings"

// Tier is the sensitivity classification of a field. It decides whether the
// value is stored in the clear (Public, Medium) or sealed (High).
type Tier string

const (
	TierPublic Tier = "public"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

// policyRule maps a field-name pattern to a tier. Patterns match a field when
// they equal it or appear as a substring of it ("nin" matches
// "nin verification status").
type policyRule struct {
	pattern string
	tier    Tier
}

// Policy is the immutable, process-wide sensitivity policy. Rules are ordered:
// the first match wins, and field names matching no rule classify High so an
// unrecognized field is never accidentally exposed in the clear.
type Policy struct {
	rules []policyRule
}

// DefaultPolicy returns the sensitivity policy for national identity records.
// The tier assignments follow the registry field vocabulary: direct
// identifiers and contact or financial details are High, demographic context
// is Medium, derived non-identifying facts are Public.
func DefaultPolicy() *Policy {
	rules := make([]policyRule, 0, 64)
	add := func(tier Tier, patterns ...string) {
		for _, p := range patterns {
			rules = append(rules, policyRule{pattern: p, tier: tier})
		}
	}

	add(TierHigh,
		"full name", "complete name", "real name",
		"home address", "residential address", "street address", "physical address",
		"phone number", "mobile number", "telephone",
		"email address", "email",
		"nin", "national identification number",
		"bvn number", "bank verification number",
		"passport number", "driver license",
		"social security", "tax id",
		"bank account", "account number",
		"credit card", "debit card",
		"date of birth", "dob", "birthday",
		"exact location", "gps coordinates",
		"fingerprint", "biometric", "facial recognition",
		"medical record", "health information", "cvv", "pin code", "otp",
	)
	add(TierMedium,
		"first name", "last name", "surname",
		"city", "state", "country",
		"workplace", "employer", "company name",
		"education", "school attended",
		"marital status", "gender",
		"income level", "salary",
		"religion", "tribe", "ethnicity",
	)
	add(TierPublic,
		"citizenship status",
		"verification status",
		"registration status",
	)

	return &Policy{rules: rules}
}

// Classify returns the tier for a field name. Matching is case-insensitive
// and whitespace-trimmed; unknown names classify High (fail closed).
func (p *Policy) Classify(fieldName string) Tier {
	name := strings.ToLower(strings.TrimSpace(fieldName))
	if name == "" {
		return TierHigh
	}
	for _, rule := range p.rules {
		if rule.pattern == name || strings.Contains(name, rule.pattern) {
			return rule.tier
		}
	}
	return TierHigh
}

// Partition splits a raw record into the plaintext profile (Public and Medium
// fields) and the sensitive map (High fields) destined for sealing.
func (p *Policy) Partition(raw RawRecord) (PublicProfile, map[string]string) {
	public := make(PublicProfile)
	sensitive := make(map[string]string)
	for name, value := range raw {
		if p.Classify(name) == TierHigh {
			sensitive[name] = value
		} else {
			public[name] = value
		}
	}
	return public, sensitive
}
