package services

import "strings"

var regionURNs = map[string]string{
	"india":          "urn:li:fs_geo:102713980",
	"united states":  "urn:li:fs_geo:103644278",
	"canada":         "urn:li:fs_geo:101174742",
	"united kingdom": "urn:li:fs_geo:103137801",
	"australia":      "urn:li:fs_geo:103228277",
	"germany":        "urn:li:fs_geo:101282230",
	"france":         "urn:li:fs_geo:105015875",
	"brazil":         "urn:li:fs_geo:106057199",
	"netherlands":    "urn:li:fs_geo:102890719",
	"italy":          "urn:li:fs_geo:104108173",
	"spain":          "urn:li:fs_geo:103448411",
	"mexico":         "urn:li:fs_geo:106693272",
	"japan":          "urn:li:fs_geo:111076699",
	"china":          "urn:li:fs_geo:100476389",
	"russia":         "urn:li:fs_geo:103296191",
}

var industryURNs = map[string]string{
	"consulting":                "urn:li:fs_industry:96",
	"information technology":    "urn:li:fs_industry:4",
	"financial services":        "urn:li:fs_industry:43",
	"healthcare":                "urn:li:fs_industry:7",
	"education":                 "urn:li:fs_industry:69",
	"manufacturing":             "urn:li:fs_industry:62",
	"retail":                    "urn:li:fs_industry:68",
	"telecommunications":        "urn:li:fs_industry:8",
	"media":                     "urn:li:fs_industry:12",
	"entertainment":             "urn:li:fs_industry:14",
	"real estate":               "urn:li:fs_industry:19",
	"construction":              "urn:li:fs_industry:23",
	"non-profit":                "urn:li:fs_industry:50",
	"government administration": "urn:li:fs_industry:47",
	"arts":                      "urn:li:fs_industry:31",
	"legal services":            "urn:li:fs_industry:9",
	"hospitality":               "urn:li:fs_industry:34",
	"energy":                    "urn:li:fs_industry:45",
	"transportation":            "urn:li:fs_industry:11",
	"logistics":                 "urn:li:fs_industry:41",
}

// LookupRegion resolves a free-text country name. Unknown names report ok=false.
func LookupRegion(country string) (string, bool) {
	urn, ok := regionURNs[normalizeKey(country)]
	return urn, ok
}

// LookupIndustry resolves a free-text industry name. Unknown names report ok=false.
func LookupIndustry(industry string) (string, bool) {
	urn, ok := industryURNs[normalizeKey(industry)]
	return urn, ok
}

func normalizeKey(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
