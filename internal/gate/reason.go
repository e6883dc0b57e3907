package gate

// Reason classifies why a candidate was rejected. Every rejected candidate
// carries exactly one reason; rejection is a first-class outcome, not an
// error path.
type Reason string

const (
	MissingTitle            Reason = "missing_title"
	PlaceholderTitle        Reason = "placeholder_title"
	TitleTooShort           Reason = "title_too_short"
	NavigationContent       Reason = "navigation_content"
	MissingDate             Reason = "missing_date"
	InvalidDateRange        Reason = "invalid_date_range"
	SyntheticContent        Reason = "synthetic_content"
	ExcessiveCapitalization Reason = "excessive_capitalization"
	UnrelatedContent        Reason = "unrelated_content"
	InsufficientScore       Reason = "insufficient_score"
	SuspiciousImage         Reason = "suspicious_image"
	SuspiciousURL           Reason = "suspicious_url"
)

// Reasons lists every rejection reason in reporting order.
var Reasons = []Reason{
	MissingTitle,
	PlaceholderTitle,
	TitleTooShort,
	NavigationContent,
	MissingDate,
	InvalidDateRange,
	SyntheticContent,
	ExcessiveCapitalization,
	UnrelatedContent,
	InsufficientScore,
	SuspiciousImage,
	SuspiciousURL,
}
