package predicate

import "math"

// Thresholds bundles tolerances, all but CircumradiusInflation (a fixed
// factor) derived from the same two inputs — a nominal coordinate magnitude and the
// nominal spacing between neighboring points — so the engine adapts
// uniformly whether it is triangulating sub-millimeter CAD data or
// UTM-scale survey data. Of the engine's packages, the builder consults
// SpacingTolerance (duplicate detection) and the alpha and contour packages
// consult AreaZero; Orient and InCircle apply their own magnitude-scaled
// filter.
type Thresholds struct {
	// NominalMagnitude is the characteristic coordinate magnitude (e.g. the
	// half-diagonal of the point set's bounding box).
	NominalMagnitude float64
	// NominalSpacing is the characteristic distance between neighboring
	// vertices.
	NominalSpacing float64
}

// NewThresholds constructs a Thresholds bundle from the observed coordinate
// magnitude and point spacing. Zero or negative inputs are replaced with a
// small positive default so the derived tolerances never collapse to zero.
func NewThresholds(nominalMagnitude, nominalSpacing float64) Thresholds {
	if nominalMagnitude <= 0 {
		nominalMagnitude = 1
	}
	if nominalSpacing <= 0 {
		nominalSpacing = nominalMagnitude * 1e-6
	}
	return Thresholds{NominalMagnitude: nominalMagnitude, NominalSpacing: nominalSpacing}
}

// HalfPlane is a side-of-edge tolerance scaled to the nominal spacing.
// Triangle location does not consult it; Locate uses Orient.
func (t Thresholds) HalfPlane() float64 {
	return t.NominalSpacing * 1e-6
}

// Colinearity is a colinearity tolerance scaled to the square of the
// nominal magnitude. Bootstrap and constraint snapping do not consult it;
// they use Orient.
func (t Thresholds) Colinearity() float64 {
	return t.NominalMagnitude * t.NominalMagnitude * filter
}

// DelaunayViolation is an in-circle tolerance scaled to the cube of the
// nominal magnitude. The flip test does not consult it; it uses InCircle.
func (t Thresholds) DelaunayViolation() float64 {
	return math.Pow(t.NominalMagnitude, 3) * filter
}

// CircumradiusInflation is a fixed multiplicative slack for comparing
// near-equal circumradii under floating point noise. No package of the
// engine consults it.
func (t Thresholds) CircumradiusInflation() float64 {
	return 1 + 1e-9
}

// AreaZero is the tolerance below which a triangle or alpha-part area is
// treated as degenerate (zero-area, a candidate for the open-line
// reclassification spec'd by the alpha-shape extractor).
func (t Thresholds) AreaZero() float64 {
	spacing := t.NominalSpacing
	if spacing <= 0 {
		spacing = 1
	}
	return (spacing * spacing) / (1 << 20)
}

// SpacingTolerance is the distance below which two vertices are treated as
// coincident (the "spacing * epsilon" rule the builder uses to reject
// duplicate insertions).
func (t Thresholds) SpacingTolerance() float64 {
	return t.NominalSpacing * 1e-6
}
