package mesh

import "github.com/arl/assertgo/assert"

// MustHold panics (under the "debug" build tag; a no-op otherwise) if cond
// is false. delaunay's hull extension calls this right before it frees
// ghost edge pairs, so a corrupted pool fails at its origin instead of
// surfacing later as a confusing Delaunay-property failure.
func MustHold(cond bool, format string, args ...interface{}) {
	assert.True(cond, format, args...)
}

// CheckTwinInvolution reports every edge for which twin(twin(e)) != e or
// origin(e) != dest(twin(e)) — P3 from the specification's testable
// properties. A correctly maintained pool always returns an empty slice;
// a non-empty result indicates a pool bug, not a user-input problem.
func (m *Mesh) CheckTwinInvolution() []string {
	var reasons []string
	for _, e := range m.EdgesAndTwins() {
		if Twin(Twin(e)) != e {
			reasons = append(reasons, "twin(twin(e)) != e")
		}
		if m.Origin(e) != m.Dest(Twin(e)) {
			reasons = append(reasons, "origin(e) != dest(twin(e))")
		}
	}
	return reasons
}
