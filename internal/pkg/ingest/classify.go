package ingest

import "strings"

// categoryKeywords maps licence-type keywords to directory categories.
// First match wins, so more specific keywords come first.
var categoryKeywords = []struct {
	keyword  string
	category string
}{
	{"restaurant", "restaurants"},
	{"food service", "restaurants"},
	{"caterer", "restaurants"},
	{"drinking establishment", "restaurants"},
	{"retail", "retail"},
	{"market", "retail"},
	{"grocery", "retail"},
	{"hair", "beauty"},
	{"esthetic", "beauty"},
	{"barber", "beauty"},
	{"massage", "health"},
	{"health", "health"},
	{"fitness", "health"},
	{"daycare", "services"},
	{"pet", "services"},
	{"cleaning", "services"},
	{"amusement", "entertainment"},
	{"theatre", "entertainment"},
}

// nonConsumerKeywords marks licence types that exist for permitting purposes
// rather than a storefront the public would visit.
var nonConsumerKeywords = []string{
	"home occupation",
	"contractor",
	"tradesman",
	"manufactur",
	"wholesale",
	"warehouse",
	"office only",
}

// Categorize maps a municipal licence type onto a directory category, or nil
// when no keyword matches and the record stays unclassified.
func Categorize(licenseType string) *string {
	lt := strings.ToLower(licenseType)
	for _, entry := range categoryKeywords {
		if strings.Contains(lt, entry.keyword) {
			c := entry.category
			return &c
		}
	}
	return nil
}

// IsConsumerFacing reports whether a licence type describes a business the
// public directory should list by default.
func IsConsumerFacing(licenseType string) bool {
	lt := strings.ToLower(licenseType)
	for _, keyword := range nonConsumerKeywords {
		if strings.Contains(lt, keyword) {
			return false
		}
	}
	return true
}
