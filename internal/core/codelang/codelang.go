// Package codelang normalizes model-produced snippet metadata:
// language names and hashtag lists arrive as free text and need taming
package codelang

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MaxTags bounds how many tags a snippet carries
const MaxTags = 3

var titleCaser = cases.Title(language.English)

// aliases maps lowercased model output to the display name we store
// only spellings the model actually produces belong here
var aliases = map[string]string{
	"golang":     "Go",
	"c++":        "C++",
	"cpp":        "C++",
	"c#":         "C#",
	"csharp":     "C#",
	"js":         "JavaScript",
	"javascript": "JavaScript",
	"ts":         "TypeScript",
	"typescript": "TypeScript",
	"objective-c": "Objective-C",
	"php":        "PHP",
	"sql":        "SQL",
	"html":       "HTML",
	"css":        "CSS",
}

// CanonicalLanguage turns a one-word model answer into a stored language name
// unknown names are title-cased as-is; empty input stays empty
func CanonicalLanguage(s string) string {
	s = strings.TrimSpace(strings.Trim(strings.TrimSpace(s), ".\"'`"))
	if s == "" {
		return ""
	}
	// models occasionally answer with a sentence; keep the first word
	if i := strings.IndexAny(s, " \t\n"); i > 0 {
		s = s[:i]
	}
	if canon, ok := aliases[strings.ToLower(s)]; ok {
		return canon
	}
	return titleCaser.String(strings.ToLower(s))
}

// CleanTitle trims a model-produced title down to a single plain line
func CleanTitle(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	s = strings.TrimSpace(strings.Trim(strings.TrimSpace(s), "\"'`"))
	const maxLen = 120
	if len(s) > maxLen {
		s = strings.TrimSpace(s[:maxLen])
	}
	return s
}

// ParseTags splits a comma-separated hashtag list into clean lowercase tags
// "#Sorting, #algorithms" becomes ["sorting", "algorithms"]; capped at MaxTags
func ParseTags(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, MaxTags)
	seen := make(map[string]bool, MaxTags)
	for _, p := range parts {
		t := strings.ToLower(strings.TrimSpace(p))
		t = strings.TrimPrefix(t, "#")
		t = strings.Trim(t, ".\"'`")
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
		if len(out) == MaxTags {
			break
		}
	}
	return out
}
