// Package contour traces level-set contours across a triangulation whose
// vertices carry a Z value: for each requested level, every crossed
// triangle edge yields an interpolated point, and those points are
// stitched into closed or open polylines.
package contour

import (
	"math"
	"sort"

	"github.com/kestrelmesh/trimesh/delaunay"
	"github.com/kestrelmesh/trimesh/mesh"
	"github.com/kestrelmesh/trimesh/vertex"
)

// Options configures contour extraction.
type Options struct {
	// ZTolerance is how close a vertex's Z must be to a level to be
	// treated as lying exactly on it (the through-vertex case). Zero
	// selects a tolerance derived from the mesh's spacing-based
	// thresholds.
	ZTolerance float64
}

// Line is one traced polyline at a single level.
type Line struct {
	Level  float64
	Points []vertex.Vertex
	Closed bool
}

// Region is a closed line together with its nesting and area bookkeeping.
type Region struct {
	Line         *Line
	AbsoluteArea float64
	AdjustedArea float64 // absolute area minus the area of nested child regions
	Parent       int     // index into Set.Regions, or -1
	Children     []int
}

// Set is the full result of a multi-level contour extraction.
type Set struct {
	Lines   []Line
	Regions []Region
}

// BuildContours traces every level in zLevels across b's triangulation.
func BuildContours(b *delaunay.Builder, zLevels []float64, opts Options) *Set {
	m := b.Mesh
	tol := opts.ZTolerance
	if tol <= 0 {
		tol = b.Thresholds().AreaZero()
		if tol <= 0 {
			tol = 1e-9
		}
	}

	var lines []Line
	for _, level := range zLevels {
		segs := segmentsAtLevel(m, b.Triangles(), level, tol)
		lines = append(lines, stitch(b, segs, level)...)
	}

	regions := assembleRegions(b, lines)
	return &Set{Lines: lines, Regions: regions}
}

// segment is one piece of a level's contour, with an endpoint tagged by its
// mesh vertex index (and the pair of neighbor vertices bounding the
// triangle wedge it sits in) whenever the endpoint is a through-vertex
// point rather than a plain edge interpolation. The wedge tag is what
// stitch's fan-walk uses to disambiguate a vertex where more than two
// contour segments meet.
type segment struct {
	a, b           vertex.Vertex
	aVert, bVert   int
	aWedge, bWedge [2]int
}

// segmentsAtLevel finds, for every triangle, the 0 or 1 crossing segments
// at the given level. Vertices within tol of the level are treated as
// lying exactly on it (through-vertex); a triangle with two such vertices
// contributes its on-level edge as a segment (once, even when both triangles
// sharing that edge report it), and a triangle with all three is skipped as
// flat.
func segmentsAtLevel(m *mesh.Mesh, tris []delaunay.Triangle, level, tol float64) []segment {
	noWedge := [2]int{-1, -1}
	seenLevelEdge := make(map[[2]int]bool)
	var out []segment
	for _, tri := range tris {
		a, bIdx, c := tri.Vertices(m)
		va, vb, vc := m.Vertex(a), m.Vertex(bIdx), m.Vertex(c)
		onA := math.Abs(va.Z-level) <= tol
		onB := math.Abs(vb.Z-level) <= tol
		onC := math.Abs(vc.Z-level) <= tol
		nOn := boolCount(onA, onB, onC)

		switch nOn {
		case 3:
			continue
		case 2:
			var s segment
			switch {
			case onA && onB:
				s = segment{a: va, b: vb, aVert: a, bVert: bIdx, aWedge: noWedge, bWedge: noWedge}
			case onB && onC:
				s = segment{a: vb, b: vc, aVert: bIdx, bVert: c, aWedge: noWedge, bWedge: noWedge}
			default:
				s = segment{a: vc, b: va, aVert: c, bVert: a, aWedge: noWedge, bWedge: noWedge}
			}
			edgeKey := [2]int{min(s.aVert, s.bVert), max(s.aVert, s.bVert)}
			if seenLevelEdge[edgeKey] {
				continue
			}
			seenLevelEdge[edgeKey] = true
			out = append(out, s)
		case 1:
			var onVIdx, off1Idx, off2Idx int
			var onV, off1, off2 vertex.Vertex
			switch {
			case onA:
				onVIdx, onV, off1, off2 = a, va, vb, vc
				off1Idx, off2Idx = bIdx, c
			case onB:
				onVIdx, onV, off1, off2 = bIdx, vb, vc, va
				off1Idx, off2Idx = c, a
			default:
				onVIdx, onV, off1, off2 = c, vc, va, vb
				off1Idx, off2Idx = a, bIdx
			}
			if sign(off1.Z-level) != sign(off2.Z-level) {
				cross := interpolate(off1, off2, level)
				out = append(out, segment{
					a: onV, b: cross,
					aVert: onVIdx, bVert: -1,
					aWedge: [2]int{off1Idx, off2Idx}, bWedge: noWedge,
				})
			}
		default:
			crossings := crossingsOf(va, vb, vc, level)
			if len(crossings) == 2 {
				out = append(out, segment{a: crossings[0], b: crossings[1], aVert: -1, bVert: -1, aWedge: noWedge, bWedge: noWedge})
			}
		}
	}
	return out
}

func boolCount(bs ...bool) int {
	n := 0
	for _, b := range bs {
		if b {
			n++
		}
	}
	return n
}

func sign(v float64) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	default:
		return 0
	}
}

func crossingsOf(a, b, c vertex.Vertex, level float64) []vertex.Vertex {
	var out []vertex.Vertex
	edges := [][2]vertex.Vertex{{a, b}, {b, c}, {c, a}}
	for _, e := range edges {
		if sign(e[0].Z-level) != sign(e[1].Z-level) {
			out = append(out, interpolate(e[0], e[1], level))
		}
	}
	return out
}

func interpolate(p, q vertex.Vertex, level float64) vertex.Vertex {
	t := (level - p.Z) / (q.Z - p.Z)
	return vertex.New(p.X+t*(q.X-p.X), p.Y+t*(q.Y-p.Y), level, -1)
}

const stitchGrid = 1e-7

type pointKey struct{ x, y int64 }

func keyOf(v vertex.Vertex) pointKey {
	return pointKey{int64(math.Round(v.X / stitchGrid)), int64(math.Round(v.Y / stitchGrid))}
}

// stitch joins unordered segments that share an endpoint into maximal
// polylines, closing a line when its walk returns to its own start. At a
// through-vertex where more than two segments meet (the fanout case), the
// next segment is chosen by pickNext's CCW fan-walk rather than an
// arbitrary member of the coordinate bucket.
func stitch(b *delaunay.Builder, segs []segment, level float64) []Line {
	adjacency := make(map[pointKey][]int)
	used := make([]bool, len(segs))
	for i, s := range segs {
		adjacency[keyOf(s.a)] = append(adjacency[keyOf(s.a)], i)
		adjacency[keyOf(s.b)] = append(adjacency[keyOf(s.b)], i)
	}

	var lines []Line
	for i := range segs {
		if used[i] {
			continue
		}
		used[i] = true
		pts := []vertex.Vertex{segs[i].a, segs[i].b}
		vertTags := []int{segs[i].aVert, segs[i].bVert}
		wedges := [][2]int{segs[i].aWedge, segs[i].bWedge}

		extend := func(forward bool) {
			for {
				var tail vertex.Vertex
				var tailVert int
				var tailWedge [2]int
				if forward {
					n := len(pts) - 1
					tail, tailVert, tailWedge = pts[n], vertTags[n], wedges[n]
				} else {
					tail, tailVert, tailWedge = pts[0], vertTags[0], wedges[0]
				}
				key := keyOf(tail)
				next := pickNext(b, segs, adjacency[key], used, key, tailVert, tailWedge)
				if next == -1 {
					return
				}
				used[next] = true
				s := segs[next]
				var otherPt vertex.Vertex
				var otherVert int
				var otherWedge [2]int
				if keyOf(s.a) == key {
					otherPt, otherVert, otherWedge = s.b, s.bVert, s.bWedge
				} else {
					otherPt, otherVert, otherWedge = s.a, s.aVert, s.aWedge
				}
				if forward {
					pts = append(pts, otherPt)
					vertTags = append(vertTags, otherVert)
					wedges = append(wedges, otherWedge)
				} else {
					pts = append([]vertex.Vertex{otherPt}, pts...)
					vertTags = append([]int{otherVert}, vertTags...)
					wedges = append([][2]int{otherWedge}, wedges...)
				}
			}
		}
		extend(true)
		extend(false)

		closed := len(pts) > 2 && keyOf(pts[0]) == keyOf(pts[len(pts)-1])
		if closed {
			pts = pts[:len(pts)-1]
		}
		lines = append(lines, Line{Level: level, Points: pts, Closed: closed})
	}
	return lines
}

// pickNext returns the next unused segment index touching the bucket at
// key. A plain edge-interpolated endpoint has at most one other unused
// candidate in a manifold mesh and is returned directly. A through-vertex
// endpoint (tailVert >= 0) with more than one unused candidate is
// disambiguated by walking tailVert's CCW pinwheel starting just past the
// far bound of the wedge the path arrived through, taking the first
// candidate whose own wedge is met — the fan-walk rule for the
// three-vertex/fanout case, tie-breaking from the incoming edge's reverse.
func pickNext(b *delaunay.Builder, segs []segment, candidates []int, used []bool, key pointKey, tailVert int, tailWedge [2]int) int {
	var unused []int
	for _, c := range candidates {
		if !used[c] {
			unused = append(unused, c)
		}
	}
	if len(unused) == 0 {
		return -1
	}
	if len(unused) == 1 || tailVert < 0 || tailWedge[1] < 0 {
		return unused[0]
	}

	m := b.Mesh
	pinwheel := b.Pinwheel(tailVert)
	if len(pinwheel) == 0 {
		return unused[0]
	}
	start := 0
	for i, e := range pinwheel {
		if m.Dest(e) == tailWedge[1] {
			start = i
			break
		}
	}
	for step := 1; step <= len(pinwheel); step++ {
		nb := m.Dest(pinwheel[(start+step)%len(pinwheel)])
		for _, c := range unused {
			w := wedgeAt(segs[c], key)
			if w[0] == nb || w[1] == nb {
				return c
			}
		}
	}
	return unused[0]
}

func wedgeAt(s segment, key pointKey) [2]int {
	if keyOf(s.a) == key {
		return s.aWedge
	}
	return s.bWedge
}

// assembleRegions computes area and nesting bookkeeping over the full set
// of traced lines plus the convex hull boundary itself. Closed lines
// become regions directly. Open lines — contours that enter and leave
// through the hull perimeter rather than closing on themselves — are
// stitched to the arc of the hull they span, via closeAgainstHull, into a
// synthetic closed region. The hull polygon is always added as its own
// region with no parent, so that every other region's nesting bottoms out
// there: adjusted area then telescopes to exactly the hull area regardless
// of how many levels or open lines contributed, satisfying area
// conservation across the whole tiling.
func assembleRegions(b *delaunay.Builder, lines []Line) []Region {
	m := b.Mesh
	hullEdges := b.PerimeterWalk()
	hullPts := make([]vertex.Vertex, len(hullEdges))
	for i, e := range hullEdges {
		hullPts[i] = m.Vertex(m.Origin(e))
	}

	var regions []Region
	for i := range lines {
		if !lines[i].Closed {
			continue
		}
		area := math.Abs(shoelace(lines[i].Points))
		regions = append(regions, Region{Line: &lines[i], AbsoluteArea: area, AdjustedArea: area, Parent: -1})
	}
	for i := range lines {
		if lines[i].Closed || len(lines[i].Points) < 2 || len(hullPts) < 3 {
			continue
		}
		loop, ok := closeAgainstHull(lines[i].Points, hullPts)
		if !ok {
			continue
		}
		synth := Line{Level: lines[i].Level, Points: loop, Closed: true}
		area := math.Abs(shoelace(loop))
		regions = append(regions, Region{Line: &synth, AbsoluteArea: area, AdjustedArea: area, Parent: -1})
	}
	if len(hullPts) >= 3 {
		hullLine := Line{Points: hullPts, Closed: true}
		regions = append(regions, Region{Line: &hullLine, AbsoluteArea: math.Abs(shoelace(hullPts)), AdjustedArea: math.Abs(shoelace(hullPts)), Parent: -1})
	}

	order := make([]int, len(regions))
	for i := range order {
		order[i] = i
	}
	sort.Slice(order, func(i, j int) bool {
		return regions[order[i]].AbsoluteArea > regions[order[j]].AbsoluteArea
	})

	for _, ri := range order {
		probe := regions[ri].Line.Points[0]
		best := -1
		var bestArea float64
		for _, cj := range order {
			if cj == ri {
				continue
			}
			if pointInClosedLine(regions[cj].Line.Points, probe) {
				if best == -1 || regions[cj].AbsoluteArea < bestArea {
					best = cj
					bestArea = regions[cj].AbsoluteArea
				}
			}
		}
		regions[ri].Parent = best
		if best >= 0 {
			regions[best].Children = append(regions[best].Children, ri)
			regions[best].AdjustedArea -= regions[ri].AbsoluteArea
		}
	}
	return regions
}

// closeAgainstHull closes an open contour line into a polygon loop by
// appending the arc of the hull boundary running forward (CCW) from the
// line's last point to its first. locateOnHull anchors each endpoint to
// the hull edge it lies on — both line endpoints were produced by
// interpolating along a perimeter triangle edge, so they lie exactly on
// the hull boundary up to floating-point error.
func closeAgainstHull(openPts []vertex.Vertex, hullPts []vertex.Vertex) ([]vertex.Vertex, bool) {
	if len(openPts) < 2 {
		return nil, false
	}
	n := len(hullPts)
	start := locateOnHull(hullPts, openPts[0])
	end := locateOnHull(hullPts, openPts[len(openPts)-1])

	loop := append([]vertex.Vertex{}, openPts...)
	for i, steps := (end+1)%n, 0; steps <= n; i, steps = (i+1)%n, steps+1 {
		loop = append(loop, hullPts[i])
		if i == start {
			break
		}
	}
	return loop, true
}

// locateOnHull returns the index of the hull vertex beginning the edge
// (hullPts[i], hullPts[i+1]) closest to p.
func locateOnHull(hullPts []vertex.Vertex, p vertex.Vertex) int {
	n := len(hullPts)
	best := 0
	bestDist := math.Inf(1)
	for i := 0; i < n; i++ {
		a, c := hullPts[i], hullPts[(i+1)%n]
		dx, dy := c.X-a.X, c.Y-a.Y
		len2 := dx*dx + dy*dy
		t := 0.0
		if len2 > 0 {
			t = ((p.X-a.X)*dx + (p.Y-a.Y)*dy) / len2
			if t < 0 {
				t = 0
			} else if t > 1 {
				t = 1
			}
		}
		px, py := a.X+t*dx, a.Y+t*dy
		ddx, ddy := p.X-px, p.Y-py
		d := ddx*ddx + ddy*ddy
		if d < bestDist {
			bestDist = d
			best = i
		}
	}
	return best
}

func shoelace(pts []vertex.Vertex) float64 {
	n := len(pts)
	if n < 3 {
		return 0
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		sum += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return sum / 2
}

func pointInClosedLine(loop []vertex.Vertex, p vertex.Vertex) bool {
	return delaunay.PointInPolygon(loop, p, 0)
}
