package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, text string) *Sections {
	t.Helper()
	s, err := ParseSections(text)
	require.NoError(t, err)
	return s
}

func TestMergeIdenticalSides(t *testing.T) {
	text := "# day\n## Backlog\n- one\n## Notes\n- two\n"
	local := mustParse(t, text)
	remote := mustParse(t, text)

	result := MergeSections(local, remote, "", Digest(text))

	assert.Empty(t, result.Conflicts)
	assert.Equal(t, text, result.Merged.Reconstruct(nil))
}

func TestMergeOneSidedSectionsSurvive(t *testing.T) {
	local := mustParse(t, "# day\n## Backlog\n- local task\n")
	remote := mustParse(t, "# day\n## Completed\n- remote done\n")

	result := MergeSections(local, remote, "", "whatever")

	assert.Empty(t, result.Conflicts)
	merged := result.Merged.Reconstruct(nil)
	assert.Contains(t, merged, "- local task")
	assert.Contains(t, merged, "- remote done")
}

func TestMergeRemoteUnchangedAttributesToLocal(t *testing.T) {
	remoteText := "# day\n## Notes\n- original\n"
	local := mustParse(t, "# day\n## Notes\n- edited locally\n")
	remote := mustParse(t, remoteText)

	// remote's whole-document digest still matches the last sync, so the
	// divergence can only be local edits
	result := MergeSections(local, remote, Digest(remoteText), Digest(remoteText))

	assert.Empty(t, result.Conflicts)
	notes, _ := result.Merged.Get("Notes")
	assert.Equal(t, "## Notes\n- edited locally\n", notes)
}

func TestMergeGenuineConflictDefaultsToLocal(t *testing.T) {
	local := mustParse(t, "## Notes\n- local version\n")
	remote := mustParse(t, "## Notes\n- remote version\n")

	result := MergeSections(local, remote, "digest-of-older-state", Digest("something else"))

	assert.Equal(t, []string{"Notes"}, result.Conflicts)
	notes, _ := result.Merged.Get("Notes")
	assert.Equal(t, "## Notes\n- local version\n", notes)
}

func TestMergeEmptyKnownDigestNeverMatches(t *testing.T) {
	// no sync state yet: an empty known digest must not be read as
	// "remote unchanged", even against an empty remote digest
	local := mustParse(t, "## Notes\n- a\n")
	remote := mustParse(t, "## Notes\n- b\n")

	result := MergeSections(local, remote, "", "")

	assert.Equal(t, []string{"Notes"}, result.Conflicts)
}

func TestMergeMixedClassification(t *testing.T) {
	local := mustParse(t, "# day\n## Priorities\n- same\n## Backlog\n- local only edit\n## Scratch\n- local section\n")
	remote := mustParse(t, "# day\n## Priorities\n- same\n## Backlog\n- remote edit\n## Notes\n- remote section\n")

	result := MergeSections(local, remote, "stale", "current")

	assert.Equal(t, []string{"Backlog"}, result.Conflicts)

	merged := result.Merged.Reconstruct(nil)
	assert.Contains(t, merged, "- same")
	assert.Contains(t, merged, "- local only edit")
	assert.Contains(t, merged, "- local section")
	assert.Contains(t, merged, "- remote section")
	assert.NotContains(t, merged, "- remote edit")
}

func TestMergeConflictOrderFollowsLocal(t *testing.T) {
	local := mustParse(t, "## Notes\n- l1\n## Backlog\n- l2\n")
	remote := mustParse(t, "## Backlog\n- r2\n## Notes\n- r1\n")

	result := MergeSections(local, remote, "", "d")

	assert.Equal(t, []string{"Notes", "Backlog"}, result.Conflicts)
}

func TestMergeDeterministic(t *testing.T) {
	local := mustParse(t, "# day\n## Backlog\n- a\n## Scratch\n- b\n")
	remote := mustParse(t, "# day\n## Backlog\n- c\n## Notes\n- d\n")

	first := MergeSections(local, remote, "known", "current")
	second := MergeSections(local, remote, "known", "current")

	assert.Equal(t, first.Conflicts, second.Conflicts)
	assert.Equal(t, first.Merged.Reconstruct(nil), second.Merged.Reconstruct(nil))
}
