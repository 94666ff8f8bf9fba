// Package domain defines core types and interfaces for snippet enrichment
package domain

// DefaultTitle is the placeholder a snippet gets when created without one
// a field still holding its creation default is eligible for inference
const DefaultTitle = "Untitled Snippet"

// Result holds AI-derived metadata for a snippet
// applied to storage as one unit, never column by column
type Result struct {
	Title    string
	Language string
	Tags     []string // normalized, at most 3
}

// Job is one unit of enrichment work created right after a snippet row
// is committed; it carries the field values captured at creation time
// and is owned by exactly one worker until applied or dropped
type Job struct {
	SnippetID string
	Content   string
	Title     string
	Language  string
	Tags      []string
}

// NeedsTitle reports whether the title is still at its creation default
func (j Job) NeedsTitle() bool { return j.Title == "" || j.Title == DefaultTitle }

// NeedsLanguage reports whether the language was never set
func (j Job) NeedsLanguage() bool { return j.Language == "" }

// NeedsTags reports whether no tags were provided
func (j Job) NeedsTags() bool { return len(j.Tags) == 0 }

// NeedsAny reports whether the job has anything left to infer
func (j Job) NeedsAny() bool { return j.NeedsTitle() || j.NeedsLanguage() || j.NeedsTags() }

// NeedsAll reports whether every enrichable field is still at its default,
// in which case the combined three-way inference runs
func (j Job) NeedsAll() bool { return j.NeedsTitle() && j.NeedsLanguage() && j.NeedsTags() }
