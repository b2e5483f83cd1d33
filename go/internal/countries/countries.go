// Package countries maps provider country names to ISO 3166-1 alpha-2 codes.
package countries

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// codes is keyed by normalized name, see normalize
var codes = map[string]string{
	"albania":                "AL",
	"algeria":                "DZ",
	"andorra":                "AD",
	"argentina":              "AR",
	"armenia":                "AM",
	"australia":              "AU",
	"austria":                "AT",
	"azerbaijan":             "AZ",
	"belarus":                "BY",
	"belgium":                "BE",
	"bolivia":                "BO",
	"bosnia":                 "BA",
	"bosnia and herzegovina": "BA",
	"brazil":                 "BR",
	"bulgaria":               "BG",
	"cameroon":               "CM",
	"canada":                 "CA",
	"chile":                  "CL",
	"china":                  "CN",
	"colombia":               "CO",
	"costa rica":             "CR",
	"croatia":                "HR",
	"cyprus":                 "CY",
	"czech republic":         "CZ",
	"czechia":                "CZ",
	"denmark":                "DK",
	"ecuador":                "EC",
	"egypt":                  "EG",
	"england":                "GB",
	"estonia":                "EE",
	"faroe islands":          "FO",
	"finland":                "FI",
	"france":                 "FR",
	"georgia":                "GE",
	"germany":                "DE",
	"ghana":                  "GH",
	"gibraltar":              "GI",
	"greece":                 "GR",
	"hungary":                "HU",
	"iceland":                "IS",
	"india":                  "IN",
	"indonesia":              "ID",
	"iran":                   "IR",
	"ireland":                "IE",
	"israel":                 "IL",
	"italy":                  "IT",
	"ivory coast":            "CI",
	"cote d'ivoire":          "CI",
	"japan":                  "JP",
	"kazakhstan":             "KZ",
	"kosovo":                 "XK",
	"latvia":                 "LV",
	"liechtenstein":          "LI",
	"lithuania":              "LT",
	"luxembourg":             "LU",
	"malta":                  "MT",
	"mexico":                 "MX",
	"moldova":                "MD",
	"montenegro":             "ME",
	"morocco":                "MA",
	"netherlands":            "NL",
	"new zealand":            "NZ",
	"nigeria":                "NG",
	"north macedonia":        "MK",
	"northern ireland":       "GB",
	"norway":                 "NO",
	"paraguay":               "PY",
	"peru":                   "PE",
	"poland":                 "PL",
	"portugal":               "PT",
	"qatar":                  "QA",
	"romania":                "RO",
	"russia":                 "RU",
	"san marino":             "SM",
	"saudi arabia":           "SA",
	"scotland":               "GB",
	"senegal":                "SN",
	"serbia":                 "RS",
	"slovakia":               "SK",
	"slovenia":               "SI",
	"south africa":           "ZA",
	"south korea":            "KR",
	"korea republic":         "KR",
	"spain":                  "ES",
	"sweden":                 "SE",
	"switzerland":            "CH",
	"tunisia":                "TN",
	"turkey":                 "TR",
	"turkiye":                "TR",
	"ukraine":                "UA",
	"united arab emirates":   "AE",
	"united kingdom":         "GB",
	"united states":          "US",
	"usa":                    "US",
	"uruguay":                "UY",
	"venezuela":              "VE",
	"wales":                  "GB",
}

var stripMarks = runes.Remove(runes.In(unicode.Mn))

// normalize folds case, strips diacritics and treats '-' and '_' as spaces
// so that "Côte-d'Ivoire" and "cote d'ivoire" share a key.
func normalize(name string) string {
	t := transform.Chain(norm.NFD, stripMarks, norm.NFC)
	folded, _, err := transform.String(t, name)
	if err != nil {
		folded = name
	}
	folded = strings.ToLower(folded)
	folded = strings.Map(func(r rune) rune {
		if r == '-' || r == '_' {
			return ' '
		}
		return r
	}, folded)
	return strings.Join(strings.Fields(folded), " ")
}

// Code returns the ISO alpha-2 code for a country name. The UK home nations
// all map to GB.
func Code(name string) (string, bool) {
	code, ok := codes[normalize(name)]
	return code, ok
}

// CodeOr returns the code for name, or fallback when the name is unknown
func CodeOr(name, fallback string) string {
	if code, ok := Code(name); ok {
		return code
	}
	return fallback
}

// Resolve picks the alpha-2 code for a provider record. A well-formed code
// wins, then the name lookup, then the country part of a subdivision code
// such as "GB-ENG". Returns "" when none apply.
func Resolve(code, name string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if isAlpha2(code) {
		return code
	}
	if c, ok := Code(name); ok {
		return c
	}
	if len(code) > 3 && code[2] == '-' && isAlpha2(code[:2]) {
		return code[:2]
	}
	return ""
}

func isAlpha2(code string) bool {
	return len(code) == 2 && code[0] >= 'A' && code[0] <= 'Z' && code[1] >= 'A' && code[1] <= 'Z'
}
