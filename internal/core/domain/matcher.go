package domain

import "iter"

// MatchingArtifacts yields the artifacts of the identified package that are usable for
// platformVersion, in catalog order.
//
// The catalog is expected to be normalized, so the first artifact yielded is the newest
// match. The identifier is compared case-insensitively. An unknown identifier yields
// nothing; whether that is an error is up to the caller.
func (c *Catalog) MatchingArtifacts(identifier, platformVersion string) iter.Seq[Artifact] {
	return func(yield func(Artifact) bool) {
		record, ok := c.Lookup(identifier)
		if !ok {
			return
		}
		for i := range record.Artifacts {
			if !record.Artifacts[i].Supports(platformVersion) {
				continue
			}
			if !yield(record.Artifacts[i]) {
				return
			}
		}
	}
}

// TopMatch returns the first artifact yielded by MatchingArtifacts.
func (c *Catalog) TopMatch(identifier, platformVersion string) (Artifact, bool) {
	for a := range c.MatchingArtifacts(identifier, platformVersion) {
		return a, true
	}
	return Artifact{}, false
}
