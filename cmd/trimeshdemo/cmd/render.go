package cmd

import (
	"fmt"
	"os"

	svg "github.com/ajstarks/svgo"

	"github.com/kestrelmesh/trimesh/alpha"
	"github.com/kestrelmesh/trimesh/contour"
	"github.com/kestrelmesh/trimesh/delaunay"
)

const (
	canvasSize = 1024
	margin     = 32
)

// writeSVG renders the triangulation edges, an optional alpha shape's
// covered triangles, and an optional contour set's traced lines into a
// single SVG file scaled to fit the mesh's bounding box.
func writeSVG(path string, b *delaunay.Builder, shape *alpha.Shape, contours *contour.Set) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	minX, minY, maxX, maxY := b.Mesh.GetBounds()
	w, h := maxX-minX, maxY-minY
	if w == 0 {
		w = 1
	}
	if h == 0 {
		h = 1
	}
	scale := float64(canvasSize-2*margin) / maxFloat(w, h)
	project := func(x, y float64) (int, int) {
		return margin + int((x-minX)*scale), canvasSize - margin - int((y-minY)*scale)
	}

	canvas := svg.New(f)
	canvas.Start(canvasSize, canvasSize)
	canvas.Rect(0, 0, canvasSize, canvasSize, "fill:white")

	for _, tri := range b.Triangles() {
		a, bv, c := tri.Vertices(b.Mesh)
		xs, ys := triPoints(b, project, a, bv, c)
		canvas.Polygon(xs, ys, "fill:none;stroke:#888;stroke-width:1")
	}

	if shape != nil {
		for _, tri := range shape.Triangles {
			a, bv, c := tri.Vertices(b.Mesh)
			xs, ys := triPoints(b, project, a, bv, c)
			canvas.Polygon(xs, ys, "fill:#ffcc66;fill-opacity:0.5;stroke:none")
		}
		for _, part := range shape.Parts {
			if !part.IsPolygon {
				continue
			}
			xs := make([]int, len(part.Loop))
			ys := make([]int, len(part.Loop))
			for i, idx := range part.Loop {
				v := b.Mesh.Vertex(idx)
				xs[i], ys[i] = project(v.X, v.Y)
			}
			canvas.Polygon(xs, ys, "fill:none;stroke:#cc3300;stroke-width:2")
		}
	}

	if contours != nil {
		for _, line := range contours.Lines {
			xs := make([]int, len(line.Points))
			ys := make([]int, len(line.Points))
			for i, p := range line.Points {
				xs[i], ys[i] = project(p.X, p.Y)
			}
			if line.Closed {
				canvas.Polygon(xs, ys, "fill:none;stroke:#0066cc;stroke-width:2")
			} else {
				canvas.Polyline(xs, ys, "fill:none;stroke:#0066cc;stroke-width:2")
			}
		}
	}

	canvas.End()
	fmt.Printf("wrote %s\n", path)
	return nil
}

func triPoints(b *delaunay.Builder, project func(float64, float64) (int, int), a, bv, c int) ([]int, []int) {
	va, vb, vc := b.Mesh.Vertex(a), b.Mesh.Vertex(bv), b.Mesh.Vertex(c)
	xs := make([]int, 3)
	ys := make([]int, 3)
	xs[0], ys[0] = project(va.X, va.Y)
	xs[1], ys[1] = project(vb.X, vb.Y)
	xs[2], ys[2] = project(vc.X, vc.Y)
	return xs, ys
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
