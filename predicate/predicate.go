// Package predicate implements the robust geometric tests every layer above
// the mesh consults instead of hard-coding its own epsilon: orientation,
// in-circle, signed area, and the adaptive Thresholds bundle derived from a
// triangulation's coordinate magnitude and nominal point spacing.
package predicate

import (
	"math"
	"math/big"

	"github.com/kestrelmesh/trimesh/vertex"
)

// Orientation is the classification returned by Orient.
type Orientation int

const (
	Clockwise Orientation = -1
	Colinear  Orientation = 0
	CounterClockwise Orientation = 1
)

// InCircleResult is the classification returned by InCircle.
type InCircleResult int

const (
	Outside InCircleResult = -1
	On      InCircleResult = 0
	Inside  InCircleResult = 1
)

const filter = 1e-15

// Orient classifies the turn a->b->c makes. The float64 fast path is
// filtered by an epsilon scaled to the input magnitude; values that fall
// inside the filter band fall back to exact big.Float arithmetic so that
// near-degenerate triples never produce an inconsistent answer across
// callers.
func Orient(a, b, c vertex.Vertex) Orientation {
	ax := b.X - a.X
	ay := b.Y - a.Y
	bx := c.X - a.X
	by := c.Y - a.Y
	det := ax*by - ay*bx

	mag := maxAbs(a.X, a.Y, b.X, b.Y, c.X, c.Y)
	eps := mag * mag * filter
	if eps < filter {
		eps = filter
	}

	switch {
	case det > eps:
		return CounterClockwise
	case det < -eps:
		return Clockwise
	default:
		return orientExact(a, b, c)
	}
}

func orientExact(a, b, c vertex.Vertex) Orientation {
	ax := bigSub(b.X, a.X)
	ay := bigSub(b.Y, a.Y)
	bx := bigSub(c.X, a.X)
	by := bigSub(c.Y, a.Y)

	term1 := new(big.Float).SetPrec(256).Mul(ax, by)
	term2 := new(big.Float).SetPrec(256).Mul(ay, bx)
	det := new(big.Float).SetPrec(256).Sub(term1, term2)

	switch det.Sign() {
	case 1:
		return CounterClockwise
	case -1:
		return Clockwise
	default:
		return Colinear
	}
}

// InCircle tests whether d lies inside, on, or outside the circumcircle of
// triangle (a, b, c). The sign convention assumes a, b, c are in
// counter-clockwise order; callers that cannot guarantee that orientation
// must reorder before calling (delaunay does this once, at the call site,
// rather than re-deriving orientation on every predicate call).
func InCircle(a, b, c, d vertex.Vertex) InCircleResult {
	adx := a.X - d.X
	ady := a.Y - d.Y
	bdx := b.X - d.X
	bdy := b.Y - d.Y
	cdx := c.X - d.X
	cdy := c.Y - d.Y

	ad2 := adx*adx + ady*ady
	bd2 := bdx*bdx + bdy*bdy
	cd2 := cdx*cdx + cdy*cdy

	det := ad2*(bdx*cdy-bdy*cdx) -
		bd2*(adx*cdy-ady*cdx) +
		cd2*(adx*bdy-ady*bdx)

	mag := maxAbs(adx, ady, bdx, bdy, cdx, cdy)
	eps := math.Pow(mag, 3) * filter
	if eps < filter {
		eps = filter
	}

	switch {
	case det > eps:
		return Inside
	case det < -eps:
		return Outside
	default:
		return inCircleExact(a, b, c, d)
	}
}

func inCircleExact(a, b, c, d vertex.Vertex) InCircleResult {
	ax := bigSub(a.X, d.X)
	ay := bigSub(a.Y, d.Y)
	bx := bigSub(b.X, d.X)
	by := bigSub(b.Y, d.Y)
	cx := bigSub(c.X, d.X)
	cy := bigSub(c.Y, d.Y)

	sq := func(v *big.Float) *big.Float {
		return new(big.Float).SetPrec(256).Mul(v, v)
	}
	ad2 := new(big.Float).SetPrec(256).Add(sq(ax), sq(ay))
	bd2 := new(big.Float).SetPrec(256).Add(sq(bx), sq(by))
	cd2 := new(big.Float).SetPrec(256).Add(sq(cx), sq(cy))

	term1 := new(big.Float).SetPrec(256).Mul(ad2, det2(bx, by, cx, cy))
	term2 := new(big.Float).SetPrec(256).Mul(bd2, det2(ax, ay, cx, cy))
	term3 := new(big.Float).SetPrec(256).Mul(cd2, det2(ax, ay, bx, by))

	det := new(big.Float).SetPrec(256).Add(term1, term3)
	det.Sub(det, term2)

	switch det.Sign() {
	case 1:
		return Inside
	case -1:
		return Outside
	default:
		return On
	}
}

// SignedArea returns twice the signed area of triangle (a, b, c); positive
// for counter-clockwise winding, negative for clockwise. Using the doubled
// area avoids a division at every call site that only needs the sign or a
// ratio of areas.
func SignedArea(a, b, c vertex.Vertex) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (c.X-a.X)*(b.Y-a.Y)
}

// PerpDistance returns the signed perpendicular distance from p to the
// infinite line through a and b. Positive values lie to the left of a->b.
func PerpDistance(a, b, p vertex.Vertex) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return math.Hypot(p.X-a.X, p.Y-a.Y)
	}
	return ((p.X-a.X)*dy - (p.Y-a.Y)*dx) / length
}

// SqDist returns the squared Euclidean distance between two vertices in the
// xy-plane.
func SqDist(a, b vertex.Vertex) float64 {
	dx := b.X - a.X
	dy := b.Y - a.Y
	return dx*dx + dy*dy
}

func maxAbs(values ...float64) float64 {
	max := 0.0
	for _, v := range values {
		if abs := math.Abs(v); abs > max {
			max = abs
		}
	}
	return max
}

func bigSub(a, b float64) *big.Float {
	return new(big.Float).SetPrec(256).Sub(
		new(big.Float).SetPrec(256).SetFloat64(a),
		new(big.Float).SetPrec(256).SetFloat64(b),
	)
}

func det2(ax, ay, bx, by *big.Float) *big.Float {
	out := new(big.Float).SetPrec(256).Mul(ax, by)
	tmp := new(big.Float).SetPrec(256).Mul(ay, bx)
	return out.Sub(out, tmp)
}
