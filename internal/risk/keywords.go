package risk

// Keyword tables are configuration, not code branches: the scorer walks these
// ordered lists so the tables can be tuned without touching scoring logic.
// Entries are stored pre-normalized (lowercase) because matching happens on
// normalized text.

// highRiskKeywords mark requests for directly identifying or exploitable
// data. Weight +30 per distinct match.
var highRiskKeywords = []string{
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
}

// mediumRiskKeywords mark requests for demographic or contextual data.
// Weight +15 per distinct match.
var mediumRiskKeywords = []string{
	"first name", "last name", "surname",
	"city", "state", "country",
	"workplace", "employer", "company name",
	"education", "school attended",
	"marital status", "gender",
	"income level", "salary",
	"religion", "tribe", "ethnicity",
}

// safePatterns mark verification phrasings that do not ask for data at all.
// Weight -20 per distinct match.
var safePatterns = []string{
	"age verification", "over 18", "over 21", "adult verification",
	"nigerian citizen", "citizenship status",
	"bvn verified", "nin verified", "identity verified",
	"is registered", "account exists",
	"eligible", "qualified",
}
