package gallery

import (
	"strings"
	"testing"
)

func sectionsFixture() Sections {
	return Sections{
		Contributors:  []User{{Name: "alice"}, {Name: "bob"}},
		Bots:          []User{{Name: "dep-bot…"}},
		Collaborators: []User{},
	}
}

func TestAnnotationIsSingleLineJSON(t *testing.T) {
	ann := NewFingerprint(sectionsFixture()).Annotation()

	if strings.ContainsAny(ann, "\n\r") {
		t.Errorf("annotation must be a single line, got %q", ann)
	}
	if !strings.HasPrefix(ann, "<!-- ") || !strings.HasSuffix(ann, " -->") {
		t.Errorf("annotation must be a comment block, got %q", ann)
	}
	want := `<!-- {"contributors":["alice","bob"],"bots":["dep-bot…"],"collaborators":[]} -->`
	if ann != want {
		t.Errorf("annotation = %q\nwant %q", ann, want)
	}
}

func TestAnnotationStableAcrossRuns(t *testing.T) {
	a := NewFingerprint(sectionsFixture()).Annotation()
	b := NewFingerprint(sectionsFixture()).Annotation()
	if a != b {
		t.Errorf("identical sections must fingerprint identically: %q vs %q", a, b)
	}
}

func TestAnnotationEmptySectionsSerializeAsArrays(t *testing.T) {
	ann := NewFingerprint(Sections{}).Annotation()
	if strings.Contains(ann, "null") {
		t.Errorf("empty sections must serialize as [], got %q", ann)
	}
}

func TestContainsAnnotation(t *testing.T) {
	ann := NewFingerprint(sectionsFixture()).Annotation()

	tests := []struct {
		name    string
		content string
		want    bool
	}{
		{"exact match at head", ann + "\n<svg/>", true},
		{"match among other comments", "<!-- generated -->\n" + ann + "\n<svg><!-- layout --></svg>", true},
		{"minified artifact", ann + "<svg><rect/></svg>", true},
		{"no annotation", "<svg/>", false},
		{"different user set", `<!-- {"contributors":["carol"],"bots":[],"collaborators":[]} -->` + "<svg/>", false},
		{"empty content", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ContainsAnnotation(tt.content, ann); got != tt.want {
				t.Errorf("ContainsAnnotation = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContainsAnnotationMultilineComment(t *testing.T) {
	// A prior artifact may carry comments spanning lines; the scanner must
	// still find the annotation after them.
	content := "<!-- header\nspanning lines -->\n" + NewFingerprint(sectionsFixture()).Annotation()
	if !ContainsAnnotation(content, NewFingerprint(sectionsFixture()).Annotation()) {
		t.Error("annotation after a multiline comment should be found")
	}
}
