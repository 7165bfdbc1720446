// Package languages is the catalogue of languages a course can be taught in.
// Courses store the lower-case English name ("hindi"); display names come
// from the CLDR tables in golang.org/x/text.
package languages

import (
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// Language is a catalogue entry
type Language struct {
	Code       string
	Tag        language.Tag
	Name       string
	NativeName string
}

var supported = []struct {
	code string
	tag  language.Tag
}{
	{"english", language.English},
	{"hindi", language.Hindi},
	{"kannada", language.Kannada},
	{"tamil", language.Tamil},
	{"telugu", language.Telugu},
	{"malayalam", language.Malayalam},
	{"marathi", language.Marathi},
	{"bengali", language.Bengali},
	{"gujarati", language.Gujarati},
	{"sanskrit", language.MustParse("sa")},
}

var (
	catalogue []Language
	byKey     map[string]Language
)

func init() {
	names := display.English.Languages()
	byKey = make(map[string]Language, len(supported)*2)
	for _, s := range supported {
		l := Language{
			Code:       s.code,
			Tag:        s.tag,
			Name:       names.Name(s.tag),
			NativeName: display.Self.Name(s.tag),
		}
		catalogue = append(catalogue, l)
		byKey[s.code] = l
		byKey[strings.ToLower(s.tag.String())] = l
	}
	sort.Slice(catalogue, func(i, j int) bool { return catalogue[i].Code < catalogue[j].Code })
}

// All returns the catalogue ordered by code
func All() []Language {
	return append([]Language(nil), catalogue...)
}

// Lookup finds a language by catalogue code or BCP 47 tag, ignoring case
func Lookup(key string) (Language, bool) {
	l, ok := byKey[strings.ToLower(strings.TrimSpace(key))]
	return l, ok
}

// Normalize maps each entry to its catalogue code and drops duplicates.
// Entries that are not in the catalogue are returned in unknown.
func Normalize(keys []string) (codes []string, unknown []string) {
	seen := make(map[string]bool, len(keys))
	for _, k := range keys {
		l, ok := Lookup(k)
		if !ok {
			unknown = append(unknown, k)
			continue
		}
		if seen[l.Code] {
			continue
		}
		seen[l.Code] = true
		codes = append(codes, l.Code)
	}
	return codes, unknown
}
