package domain

import "sort"

type regionInfo struct {
	Name string
	TLD  string
}

// Regional Audible marketplaces and the TLD their API host uses.
var regions = map[string]regionInfo{
	"au": {Name: "Australia", TLD: "com.au"},
	"ca": {Name: "Canada", TLD: "ca"},
	"de": {Name: "Germany", TLD: "de"},
	"es": {Name: "Spain", TLD: "es"},
	"fr": {Name: "France", TLD: "fr"},
	"in": {Name: "India", TLD: "in"},
	"it": {Name: "Italy", TLD: "it"},
	"jp": {Name: "Japan", TLD: "co.jp"},
	"us": {Name: "United States", TLD: "com"},
	"uk": {Name: "United Kingdom", TLD: "co.uk"},
}

// ValidRegion reports whether code names a known marketplace.
func ValidRegion(code string) bool {
	_, ok := regions[code]
	return ok
}

// RegionTLD returns the API host TLD for a region, defaulting to "com".
func RegionTLD(code string) string {
	if info, ok := regions[code]; ok {
		return info.TLD
	}
	return "com"
}

// RegionName returns the marketplace display name for a region.
func RegionName(code string) string {
	if info, ok := regions[code]; ok {
		return info.Name
	}
	return ""
}

// RegionCodes returns all known region codes, sorted.
func RegionCodes() []string {
	codes := make([]string, 0, len(regions))
	for code := range regions {
		codes = append(codes, code)
	}
	sort.Strings(codes)
	return codes
}

// Catalog display names per library language code. The language penalty
// compares a candidate's language string against this name.
var languageNames = map[string]string{
	"en": "English",
	"de": "Deutsch",
	"fr": "Français",
	"it": "Italiano",
	"es": "Español",
	"jp": "日本語",
}

// LanguageDisplayName maps a library language code to the catalog's
// display name for it. Unknown codes map to "" (no penalty basis).
func LanguageDisplayName(code string) string {
	return languageNames[code]
}
