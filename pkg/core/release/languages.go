package release

import (
	"path/filepath"
	"sort"
	"strings"
)

// Language holds the codes a language goes by.
type Language struct {
	OSCode string // Code used by the OpenSubtitles API (e.g. "en", "pt-br")
	Code2  string // ISO 639-1
	Code3  string // ISO 639-2
	Name   string
}

var languages = []Language{
	{OSCode: "en", Code2: "en", Code3: "eng", Name: "English"},
	{OSCode: "el", Code2: "el", Code3: "gre", Name: "Greek"},
	{OSCode: "es", Code2: "es", Code3: "spa", Name: "Spanish"},
	{OSCode: "fr", Code2: "fr", Code3: "fre", Name: "French"},
	{OSCode: "de", Code2: "de", Code3: "ger", Name: "German"},
	{OSCode: "it", Code2: "it", Code3: "ita", Name: "Italian"},
	{OSCode: "pt-pt", Code2: "pt", Code3: "por", Name: "Portuguese"},
	{OSCode: "pt-br", Code2: "pb", Code3: "pob", Name: "Portuguese (Brazilian)"},
	{OSCode: "zh-cn", Code2: "zh", Code3: "chi", Name: "Chinese (simplified)"},
	{OSCode: "zh-tw", Code2: "zt", Code3: "zht", Name: "Chinese (traditional)"},
	{OSCode: "af", Code2: "af", Code3: "afr", Name: "Afrikaans"},
	{OSCode: "sq", Code2: "sq", Code3: "alb", Name: "Albanian"},
	{OSCode: "ar", Code2: "ar", Code3: "ara", Name: "Arabic"},
	{OSCode: "hy", Code2: "hy", Code3: "arm", Name: "Armenian"},
	{OSCode: "eu", Code2: "eu", Code3: "baq", Name: "Basque"},
	{OSCode: "bn", Code2: "bn", Code3: "ben", Name: "Bengali"},
	{OSCode: "bg", Code2: "bg", Code3: "bul", Name: "Bulgarian"},
	{OSCode: "ca", Code2: "ca", Code3: "cat", Name: "Catalan"},
	{OSCode: "hr", Code2: "hr", Code3: "hrv", Name: "Croatian"},
	{OSCode: "cs", Code2: "cs", Code3: "cze", Name: "Czech"},
	{OSCode: "da", Code2: "da", Code3: "dan", Name: "Danish"},
	{OSCode: "nl", Code2: "nl", Code3: "dut", Name: "Dutch"},
	{OSCode: "fi", Code2: "fi", Code3: "fin", Name: "Finnish"},
	{OSCode: "he", Code2: "he", Code3: "heb", Name: "Hebrew"},
	{OSCode: "hi", Code2: "hi", Code3: "hin", Name: "Hindi"},
	{OSCode: "hu", Code2: "hu", Code3: "hun", Name: "Hungarian"},
	{OSCode: "id", Code2: "id", Code3: "ind", Name: "Indonesian"},
	{OSCode: "ja", Code2: "ja", Code3: "jpn", Name: "Japanese"},
	{OSCode: "ko", Code2: "ko", Code3: "kor", Name: "Korean"},
	{OSCode: "lv", Code2: "lv", Code3: "lav", Name: "Latvian"},
	{OSCode: "lt", Code2: "lt", Code3: "lit", Name: "Lithuanian"},
	{OSCode: "mk", Code2: "mk", Code3: "mac", Name: "Macedonian"},
	{OSCode: "ms", Code2: "ms", Code3: "may", Name: "Malay"},
	{OSCode: "no", Code2: "no", Code3: "nor", Name: "Norwegian"},
	{OSCode: "fa", Code2: "fa", Code3: "per", Name: "Persian"},
	{OSCode: "pl", Code2: "pl", Code3: "pol", Name: "Polish"},
	{OSCode: "ro", Code2: "ro", Code3: "rum", Name: "Romanian"},
	{OSCode: "ru", Code2: "ru", Code3: "rus", Name: "Russian"},
	{OSCode: "sr", Code2: "sr", Code3: "scc", Name: "Serbian"},
	{OSCode: "sk", Code2: "sk", Code3: "slo", Name: "Slovak"},
	{OSCode: "sl", Code2: "sl", Code3: "slv", Name: "Slovenian"},
	{OSCode: "sv", Code2: "sv", Code3: "swe", Name: "Swedish"},
	{OSCode: "th", Code2: "th", Code3: "tha", Name: "Thai"},
	{OSCode: "tr", Code2: "tr", Code3: "tur", Name: "Turkish"},
	{OSCode: "uk", Code2: "uk", Code3: "ukr", Name: "Ukrainian"},
	{OSCode: "vi", Code2: "vi", Code3: "vie", Name: "Vietnamese"},
}

// byKey indexes languages by every lowercase code and name. OSCodes are
// registered first so a shared ISO code never shadows one.
var byKey = func() map[string]Language {
	m := make(map[string]Language, len(languages)*4)
	for _, lang := range languages {
		m[lang.OSCode] = lang
	}
	for _, lang := range languages {
		for _, key := range []string{lang.Code2, lang.Code3, strings.ToLower(lang.Name)} {
			if _, exists := m[key]; !exists {
				m[key] = lang
			}
		}
	}
	return m
}()

// LookupLanguage finds a language by OpenSubtitles code, ISO code or English name.
func LookupLanguage(s string) (Language, bool) {
	lang, ok := byKey[strings.ToLower(strings.TrimSpace(s))]
	return lang, ok
}

// DetectLanguage returns the OpenSubtitles code tagged right before the
// extension (Movie.2010.en.srt, Movie_greek.mkv), or "" if there is none.
func DetectLanguage(filename string) string {
	base := strings.ToLower(strings.TrimSuffix(filename, filepath.Ext(filename)))
	parts := strings.FieldsFunc(base, func(r rune) bool {
		return r == '.' || r == '_' || r == ' '
	})
	if len(parts) < 2 {
		return ""
	}
	if lang, ok := byKey[parts[len(parts)-1]]; ok {
		return lang.OSCode
	}
	return ""
}

// NormalizeLanguages turns a comma-separated list such as "English, GRE,en" into
// the sorted, de-duplicated OpenSubtitles codes the API expects ("el,en").
// Unknown entries are kept lowercased.
func NormalizeLanguages(list string) string {
	seen := map[string]struct{}{}
	var codes []string
	for _, part := range strings.Split(list, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		if lang, ok := byKey[part]; ok {
			part = lang.OSCode
		}
		if _, dup := seen[part]; dup {
			continue
		}
		seen[part] = struct{}{}
		codes = append(codes, part)
	}
	sort.Strings(codes)
	return strings.Join(codes, ",")
}
