package limb

import(
	"image"
	"math"
	"math/rand"
)

// A mask is a binary image, true where a pixel passed the threshold.
type mask struct {
	w, h int
	on   []bool
}

func newMask(w, h int) *mask { return &mask{w: w, h: h, on: make([]bool, w*h)} }

func (m *mask)At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.w || y >= m.h {
		return false
	}
	return m.on[y*m.w + x]
}

// outerContours finds the 8-connected blobs in the mask, and returns
// the edge pixels of each one; an edge pixel is one with a 4-neighbour
// outside the blob. Only the outermost edge matters to the callers, so
// the edges of any holes are returned too rather than being filtered.
func (m *mask)outerContours() [][]image.Point {
	labels := make([]int32, len(m.on))
	contours := [][]image.Point{}

	toVisit := []int{}
	for start := range m.on {
		if !m.on[start] || labels[start] != 0 {
			continue
		}

		label := int32(len(contours) + 1)
		contour := []image.Point{}
		labels[start] = label
		toVisit = append(toVisit[:0], start)

		for len(toVisit) > 0 {
			i := toVisit[len(toVisit)-1]
			toVisit = toVisit[:len(toVisit)-1]
			x, y := i % m.w, i / m.w

			if !m.At(x-1, y) || !m.At(x+1, y) || !m.At(x, y-1) || !m.At(x, y+1) {
				contour = append(contour, image.Point{x, y})
			}

			for dy:=-1; dy<=1; dy++ {
				for dx:=-1; dx<=1; dx++ {
					nx, ny := x+dx, y+dy
					if !m.At(nx, ny) {
						continue
					}
					if j := ny*m.w + nx; labels[j] == 0 {
						labels[j] = label
						toVisit = append(toVisit, j)
					}
				}
			}
		}

		contours = append(contours, contour)
	}

	return contours
}

type circle struct {
	X, Y, R float64
}

func (c circle)contains(x, y float64) bool {
	return math.Hypot(x-c.X, y-c.Y) <= c.R * (1 + 1e-9) + 1e-9
}

func circleFrom2(ax, ay, bx, by float64) circle {
	return circle{(ax+bx)/2, (ay+by)/2, math.Hypot(ax-bx, ay-by)/2}
}

// circleFrom3 is the circumcircle; for collinear points it falls back
// to the circle over the two points furthest apart.
func circleFrom3(ax, ay, bx, by, cx, cy float64) circle {
	bx, by, cx, cy = bx-ax, by-ay, cx-ax, cy-ay
	d := 2 * (bx*cy - by*cx)
	if math.Abs(d) < 1e-12 {
		c := circleFrom2(ax, ay, ax+bx, ay+by)
		if c2 := circleFrom2(ax, ay, ax+cx, ay+cy); c2.R > c.R { c = c2 }
		if c3 := circleFrom2(ax+bx, ay+by, ax+cx, ay+cy); c3.R > c.R { c = c3 }
		return c
	}
	b2 := bx*bx + by*by
	c2 := cx*cx + cy*cy
	ux := (cy*b2 - by*c2) / d
	uy := (bx*c2 - cx*b2) / d
	return circle{ux + ax, uy + ay, math.Hypot(ux, uy)}
}

// minEnclosingCircle is Welzl's algorithm, unrolled into loops. The
// points are shuffled with a fixed seed so the result is repeatable.
func minEnclosingCircle(pts []image.Point) circle {
	if len(pts) == 0 {
		return circle{}
	}

	p := make([][2]float64, len(pts))
	for i, pt := range pts {
		p[i] = [2]float64{float64(pt.X), float64(pt.Y)}
	}
	rand.New(rand.NewSource(1)).Shuffle(len(p), func(i, j int) { p[i], p[j] = p[j], p[i] })

	c := circle{p[0][0], p[0][1], 0}
	for i:=1; i<len(p); i++ {
		if c.contains(p[i][0], p[i][1]) {
			continue
		}
		c = circle{p[i][0], p[i][1], 0}
		for j:=0; j<i; j++ {
			if c.contains(p[j][0], p[j][1]) {
				continue
			}
			c = circleFrom2(p[i][0], p[i][1], p[j][0], p[j][1])
			for k:=0; k<j; k++ {
				if !c.contains(p[k][0], p[k][1]) {
					c = circleFrom3(p[i][0], p[i][1], p[j][0], p[j][1], p[k][0], p[k][1])
				}
			}
		}
	}

	return c
}
