package gallery

import (
	"encoding/json"
	"regexp"
)

// Fingerprint summarizes the semantic inputs of a rendered wall: the ordered
// display names per section. Two runs with identical fingerprints render the
// same user set, even if template whitespace differs across tool versions.
// Change detection therefore compares fingerprints, not rendered output.
type Fingerprint struct {
	Contributors  []string `json:"contributors"`
	Bots          []string `json:"bots"`
	Collaborators []string `json:"collaborators"`
}

// NewFingerprint captures the ordered names of every section.
func NewFingerprint(s Sections) Fingerprint {
	return Fingerprint{
		Contributors:  names(s.Contributors),
		Bots:          names(s.Bots),
		Collaborators: names(s.Collaborators),
	}
}

func names(users []User) []string {
	out := make([]string, len(users))
	for i, u := range users {
		out[i] = u.Name
	}
	return out
}

// Annotation renders the fingerprint as the single-line comment block
// embedded at the head of the published artifact.
func (f Fingerprint) Annotation() string {
	data, _ := json.Marshal(f) // field order is fixed by the struct, so this is stable
	return "<!-- " + string(data) + " -->"
}

var commentBlocks = regexp.MustCompile(`<!--(?s:.*?)-->`)

// ContainsAnnotation reports whether content embeds a comment block exactly
// equal to annotation. Comparing extracted blocks (rather than diffing whole
// artifacts) keeps recognition robust against cosmetic re-renders.
func ContainsAnnotation(content, annotation string) bool {
	for _, block := range commentBlocks.FindAllString(content, -1) {
		if block == annotation {
			return true
		}
	}
	return false
}
