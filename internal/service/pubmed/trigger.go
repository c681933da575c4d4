package pubmed

import "regexp"

// searchTrigger matches transcripts that ask for medical or research
// information. The terms are English-only, so alternate-language
// transcripts do not trigger augmentation.
var searchTrigger = regexp.MustCompile(`(?i)treatment|research|study|medicine|disease|syndrome|latest|update`)

// ShouldSearch reports whether the transcript warrants literature
// augmentation.
func ShouldSearch(transcript string) bool {
	return searchTrigger.MatchString(transcript)
}
