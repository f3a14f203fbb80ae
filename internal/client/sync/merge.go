package sync

// MergeResult is the output of a section-level three-way merge.
type MergeResult struct {
	Merged    *Sections
	Conflicts []string
}

// MergeSections classifies every section present on either side and builds a
// merged document. knownRemoteDigest is the whole-document digest of the
// remote copy at the last sync (empty when no sync state exists);
// remoteDigest is the current remote document's digest.
//
// When both sides changed a section but the remote document as a whole still
// matches knownRemoteDigest, the divergence must be local edits, so local
// wins without a conflict. A genuine conflict defaults to the local text so
// unresolved merges never silently destroy local work.
//
// Pure function: identical inputs always produce identical output.
func MergeSections(local, remote *Sections, knownRemoteDigest, remoteDigest string) *MergeResult {
	remoteUnchanged := knownRemoteDigest != "" && remoteDigest == knownRemoteDigest

	merged := NewSections()
	var conflicts []string

	for _, name := range local.Names() {
		localBlock, _ := local.Get(name)
		remoteBlock, inRemote := remote.Get(name)

		switch {
		case !inRemote:
			// remote hasn't seen this section yet; keep local work
			merged.Set(name, localBlock)
		case localBlock == remoteBlock:
			merged.Set(name, localBlock)
		case remoteUnchanged:
			merged.Set(name, localBlock)
		default:
			conflicts = append(conflicts, name)
			merged.Set(name, localBlock)
		}
	}

	for _, name := range remote.Names() {
		if local.Has(name) {
			continue
		}
		remoteBlock, _ := remote.Get(name)
		merged.Set(name, remoteBlock)
	}

	return &MergeResult{Merged: merged, Conflicts: conflicts}
}
