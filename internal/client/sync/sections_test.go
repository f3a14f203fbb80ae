package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSectionsRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		text string
	}{
		{"empty", ""},
		{"header only", "# 2026-02-14\nsome intro\n"},
		{"single section", "## Notes\n- a note\n"},
		{"header and sections", "# 2026-02-14\n\n## Backlog\n- task\n\n## Notes\n- note\n"},
		{"no trailing newline", "## Notes\n- a note"},
		{"blank lines inside blocks", "## Backlog\n\n- task\n\n\n## Notes\n"},
		{"crlf endings", "# hi\r\n## Notes\r\n- note\r\n"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			sections, err := ParseSections(tc.text)
			require.NoError(t, err)
			assert.Equal(t, tc.text, sections.Reconstruct(nil))
		})
	}
}

func TestParseSectionsNames(t *testing.T) {
	text := "# 2026-02-14\nintro\n\n## Backlog\n- one\n\n## Notes\n- two\n"
	sections, err := ParseSections(text)
	require.NoError(t, err)

	assert.Equal(t, []string{HeaderSection, "Backlog", "Notes"}, sections.Names())

	header, ok := sections.Get(HeaderSection)
	require.True(t, ok)
	assert.Equal(t, "# 2026-02-14\nintro\n", header)

	backlog, ok := sections.Get("Backlog")
	require.True(t, ok)
	assert.Equal(t, "## Backlog\n- one\n", backlog)
}

func TestParseSectionsNoHeader(t *testing.T) {
	sections, err := ParseSections("## Notes\n- note\n")
	require.NoError(t, err)
	assert.False(t, sections.Has(HeaderSection))
	assert.Equal(t, []string{"Notes"}, sections.Names())
}

func TestParseSectionsEmpty(t *testing.T) {
	sections, err := ParseSections("")
	require.NoError(t, err)
	assert.Equal(t, 0, sections.Len())
	assert.Equal(t, "", sections.Reconstruct(nil))
}

func TestParseSectionsDuplicate(t *testing.T) {
	_, err := ParseSections("## Notes\n- a\n## Notes\n- b\n")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `duplicate section "Notes"`)
}

func TestParseSectionsHeadingEdgeCases(t *testing.T) {
	// `##` without a space and `## ` with an empty name are body text,
	// not headings
	sections, err := ParseSections("##NotAHeading\n## \n## Real\nbody\n")
	require.NoError(t, err)
	assert.Equal(t, []string{HeaderSection, "Real"}, sections.Names())

	// trailing whitespace around the name is trimmed
	sections, err = ParseSections("##   Padded   \nbody\n")
	require.NoError(t, err)
	assert.True(t, sections.Has("Padded"))
}

func TestParseSectionsCRLFHeading(t *testing.T) {
	sections, err := ParseSections("## Notes\r\n- note\r\n")
	require.NoError(t, err)
	assert.True(t, sections.Has("Notes"))
}

func TestReconstructCanonicalOrder(t *testing.T) {
	s := NewSections()
	s.Set("Notes", "## Notes\nn")
	s.Set("Extra", "## Extra\ne")
	s.Set("Backlog", "## Backlog\nb")
	s.Set(HeaderSection, "# head")

	got := s.Reconstruct(nil)
	want := "# head\n## Backlog\nb\n## Notes\nn\n## Extra\ne"
	assert.Equal(t, want, got)
}

func TestReconstructCustomOrder(t *testing.T) {
	s := NewSections()
	s.Set("A", "## A\n1")
	s.Set("B", "## B\n2")

	assert.Equal(t, "## B\n2\n## A\n1", s.Reconstruct([]string{"B", "A"}))
}

func TestReconstructStable(t *testing.T) {
	// once reconstructed, parse+reconstruct is a fixed point
	s := NewSections()
	s.Set("Notes", "## Notes\nn")
	s.Set("Priorities", "## Priorities\np")

	first := s.Reconstruct(nil)
	parsed, err := ParseSections(first)
	require.NoError(t, err)
	assert.Equal(t, first, parsed.Reconstruct(nil))
}

func TestSectionsSetReplaces(t *testing.T) {
	s := NewSections()
	s.Set("Notes", "## Notes\nold")
	s.Set("Notes", "## Notes\nnew")

	require.Equal(t, 1, s.Len())
	block, _ := s.Get("Notes")
	assert.Equal(t, "## Notes\nnew", block)
}

func TestNewEntryTemplate(t *testing.T) {
	text := NewEntryTemplate("2026-02-14", nil)

	sections, err := ParseSections(text)
	require.NoError(t, err)

	header, ok := sections.Get(HeaderSection)
	require.True(t, ok)
	assert.Contains(t, header, "# 2026-02-14")
	for _, name := range DefaultSectionOrder {
		assert.True(t, sections.Has(name), "missing section %q", name)
	}
}
