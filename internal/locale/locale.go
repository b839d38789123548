// Package locale maps the user's locale onto one of the built-in course and
// keyboard codes.
package locale

import (
	"strings"

	"golang.org/x/text/language"
)

// Course codes. They double as keyboard layout codes.
const (
	CodeUS = "us"
	CodeES = "es"
)

// Fallback is the code used for anything that is not Spanish.
const Fallback = CodeUS

// envVars are consulted in POSIX precedence order.
var envVars = []string{"LC_ALL", "LANG"}

// Getenv looks up an environment variable. os.Getenv satisfies it.
type Getenv func(key string) string

// Detect returns the course code for the process locale. An unset or
// unparsable locale yields Fallback.
func Detect(getenv Getenv) string {
	for _, key := range envVars {
		if v := strings.TrimSpace(getenv(key)); v != "" {
			return Resolve(v)
		}
	}
	return Fallback
}

// Resolve accepts a course code ("us", "es"), a BCP 47 tag ("es-MX") or a
// POSIX locale ("es_ES.UTF-8") and returns the matching course code.
func Resolve(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	switch value {
	case CodeUS, CodeES:
		return value
	}
	tag, ok := ParsePOSIX(value)
	if !ok {
		return Fallback
	}
	return CourseCode(tag)
}

// ParsePOSIX parses locale strings such as "es_ES.UTF-8@euro". The C and
// POSIX locales carry no language and are reported as not ok.
func ParsePOSIX(value string) (language.Tag, bool) {
	if i := strings.IndexAny(value, ".@"); i >= 0 {
		value = value[:i]
	}
	value = strings.ReplaceAll(value, "_", "-")
	switch strings.ToLower(value) {
	case "", "c", "posix":
		return language.Und, false
	}
	tag, err := language.Parse(value)
	if err != nil {
		return language.Und, false
	}
	return tag, true
}

// CourseCode returns CodeES for any Spanish tag and Fallback otherwise.
func CourseCode(tag language.Tag) string {
	base, _ := tag.Base()
	spanish, _ := language.Spanish.Base()
	if base == spanish {
		return CodeES
	}
	return Fallback
}
