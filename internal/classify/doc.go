// Package classify assigns topical and actionability tags to extracted
// text with a deterministic keyword rule engine. Additive rules
// contribute independent tags; primary rules form an exclusivity group
// where the first match wins and a fallback tag applies otherwise, so
// every classification carries exactly one primary tag.
package classify
