// Package taxonomy maps free-form classifier output onto the fixed
// department/category/subcategory enumerations. Matching is keyword-based
// and deterministic; unmatched input degrades to the Unknown sentinels,
// never to an error.
package taxonomy

import (
	"regexp"
	"strings"

	"govmadad/models"
)

// Categories is the closed set of complaint categories. Matching is
// keyword-based, so the literals must not be edited.
var Categories = []string{
	"Corruption",
	"Crime",
	"Electricity Issue",
	"Public Transport",
	"Road Maintenance",
	"Water Supply",
}

// Subcategories is the closed set of complaint subcategories (24 terms).
// Matching is keyword-based, so the literals must not be edited.
var Subcategories = []string{
	"Billing Issue",
	"Blocked Drainage",
	"Bribery",
	"Chain Snatching",
	"Contaminated Water",
	"Cyber Crime",
	"Fare Overcharging",
	"Favoritism in Govt Services",
	"Fraud in Public Distribution",
	"Irregular Metro Services",
	"Land Registration Scam",
	"Low Pressure",
	"Meter Fault",
	"No Water Supply",
	"Overcrowded Buses",
	"Pipeline Leakage",
	"Poor Bus Condition",
	"Potholes",
	"Power Outage",
	"Road Safety Issues",
	"Robbery",
	"Theft",
	"Unfinished Roadwork",
	"Voltage Fluctuation",
}

// departmentKeywords is the department search order. First match wins, so the
// order is part of the contract: Healthcare, Police, PublicWorks, FoodQuality,
// Cleaning, Traffic. Do not reorder.
var departmentKeywords = []struct {
	keyword    string
	department models.Department
}{
	{"healthcare", models.DeptHealthcare},
	{"police", models.DeptPolice},
	{"publicworks", models.DeptPublicWorks},
	{"foodquality", models.DeptFoodQuality},
	{"cleaning", models.DeptCleaning},
	{"traffic", models.DeptTraffic},
}

var (
	categoryRe    = alternationRegexp(Categories)
	subcategoryRe = alternationRegexp(Subcategories)
)

// alternationRegexp builds a case-insensitive alternation over the given
// terms. The regexp engine returns the leftmost match in the text; ties at
// the same position go to the earlier alternative, i.e. list order.
func alternationRegexp(terms []string) *regexp.Regexp {
	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = regexp.QuoteMeta(t)
	}
	return regexp.MustCompile("(?i)" + strings.Join(quoted, "|"))
}

// fold lowercases s and strips spaces so that keyword search tolerates both
// "PublicWorks" and "Public Works Department (PWD)" spellings.
func fold(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), " ", "")
}

// Result is a fully resolved classification.
type Result struct {
	Department  models.Department
	Category    string
	Subcategory string
}

// MatchDepartment resolves the department from the classifier's natural
// language statement by case-insensitive, space-insensitive substring search
// in the fixed keyword order. No match yields DeptUnknown.
func MatchDepartment(freeText string) models.Department {
	folded := fold(freeText)
	for _, dk := range departmentKeywords {
		if strings.Contains(folded, dk.keyword) {
			return dk.department
		}
	}
	return models.DeptUnknown
}

// ExtractCategory extracts the first canonical category mentioned in text,
// or the Unknown Category sentinel.
func ExtractCategory(text string) string {
	if m := categoryRe.FindString(text); m != "" {
		return canonicalize(m, Categories)
	}
	return models.UnknownCategory
}

// ExtractSubcategory extracts the first canonical subcategory mentioned in
// text, or the Unknown Subcategory sentinel.
func ExtractSubcategory(text string) string {
	if m := subcategoryRe.FindString(text); m != "" {
		return canonicalize(m, Subcategories)
	}
	return models.UnknownSubcategory
}

// canonicalize maps a case-insensitive regexp match back to the canonical
// spelling from the fixed list.
func canonicalize(match string, terms []string) string {
	for _, t := range terms {
		if strings.EqualFold(t, match) {
			return t
		}
	}
	return match
}

// Match resolves the full classification for one complaint.
//
// freeText is the classifier's department statement. classifierCategory and
// classifierSubcategory are the classifier's category guesses; userCategory
// and userSubcategory are the citizen's dropdown selections. The policy is
// classifier-first with user-selection fallback, and the chosen text is
// always re-extracted through the fixed keyword lists so only canonical
// values (or the Unknown sentinels) reach storage.
func Match(freeText, classifierCategory, classifierSubcategory, userCategory, userSubcategory string) Result {
	catText := classifierCategory
	if catText == "" {
		catText = userCategory
	}
	subText := classifierSubcategory
	if subText == "" {
		subText = userSubcategory
	}
	return Result{
		Department:  MatchDepartment(freeText),
		Category:    ExtractCategory(catText),
		Subcategory: ExtractSubcategory(subText),
	}
}
