// Package hexcoord implements axial hex-grid coordinates and the geometry
// helpers (distance, neighbours, lines, circles, cones) the rest of the
// engine builds on.
package hexcoord

import "math"

// direction offsets, clockwise from East, pointy-top hexes.
var directions = [6]Coord{
	{Q: 1, R: 0},
	{Q: 0, R: 1},
	{Q: -1, R: 1},
	{Q: -1, R: 0},
	{Q: 0, R: -1},
	{Q: 1, R: -1},
}

// Coord is an axial hex coordinate. The cube third coordinate S is derived
// as -Q-R and never stored.
type Coord struct {
	Q, R int
}

func (c Coord) S() int { return -c.Q - c.R }

func (c Coord) Add(o Coord) Coord { return Coord{Q: c.Q + o.Q, R: c.R + o.R} }
func (c Coord) Sub(o Coord) Coord { return Coord{Q: c.Q - o.Q, R: c.R - o.R} }
func (c Coord) Scale(k int) Coord { return Coord{Q: c.Q * k, R: c.R * k} }
func (c Coord) Neg() Coord        { return Coord{Q: -c.Q, R: -c.R} }

// Distance returns the hex (cube) distance between two coordinates.
func (c Coord) Distance(o Coord) int {
	dq := abs(c.Q - o.Q)
	dr := abs(c.R - o.R)
	ds := abs(c.S() - o.S())
	return (dq + dr + ds) / 2
}

// Neighbors returns the six adjacent hexes, in clockwise-from-East order.
func (c Coord) Neighbors() [6]Coord {
	var out [6]Coord
	for i, d := range directions {
		out[i] = c.Add(d)
	}
	return out
}

// Neighbor returns the neighbor in the given direction (0..5, E..NE).
func (c Coord) Neighbor(dir int) Coord {
	return c.Add(directions[dir%6])
}

// LineTo returns the hexes on the straight line from c to o, inclusive,
// via cube-space linear interpolation with rounding.
func (c Coord) LineTo(o Coord) []Coord {
	n := c.Distance(o)
	if n == 0 {
		return []Coord{c}
	}
	out := make([]Coord, 0, n+1)
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		q := lerp(float64(c.Q), float64(o.Q), t)
		r := lerp(float64(c.R), float64(o.R), t)
		s := lerp(float64(c.S()), float64(o.S()), t)
		out = append(out, cubeRound(q, r, s))
	}
	return out
}

// Ring returns the hexes exactly radius steps from c. radius 0 is [c].
func (c Coord) Ring(radius int) []Coord {
	if radius == 0 {
		return []Coord{c}
	}
	out := make([]Coord, 0, 6*radius)
	cur := c.Add(directions[4].Scale(radius))
	for dir := 0; dir < 6; dir++ {
		for i := 0; i < radius; i++ {
			out = append(out, cur)
			cur = cur.Neighbor(dir)
		}
	}
	return out
}

// Circle returns every hex within distance radius of c (including c).
func (c Coord) Circle(radius int) []Coord {
	out := make([]Coord, 0)
	for r := 0; r <= radius; r++ {
		out = append(out, c.Ring(r)...)
	}
	return out
}

// Cone returns the hexes within range of origin whose angular offset from
// the origin->axis direction is within halfAngleDeg (inclusive), excluding
// the origin itself.
func Cone(origin, axisTarget Coord, rangeHexes int, halfAngleDeg float64) []Coord {
	ax, ay := axialToCartesian(axisTarget.Sub(origin))
	axisAngle := math.Atan2(ay, ax)
	out := make([]Coord, 0)
	for _, h := range origin.Circle(rangeHexes) {
		if h == origin {
			continue
		}
		hx, hy := axialToCartesian(h.Sub(origin))
		angle := math.Atan2(hy, hx)
		delta := angleDiff(axisAngle, angle)
		if delta <= halfAngleDeg*math.Pi/180 {
			out = append(out, h)
		}
	}
	return out
}

// ThickLine returns the hexes forming a line from origin to target with
// the given half-width (0 = single-hex-wide line, >0 adds hexes
// perpendicular to the line's direction).
func ThickLine(origin, target Coord, halfWidth int) []Coord {
	seen := make(map[Coord]bool)
	out := make([]Coord, 0)
	for _, h := range origin.LineTo(target) {
		for _, w := range h.Circle(halfWidth) {
			if !seen[w] {
				seen[w] = true
				out = append(out, w)
			}
		}
	}
	return out
}

// Rotated returns the hex nearest to c after rotating it by angleRadians
// around center, via cartesian rotation and cube rounding back onto the
// grid. Used to fan swarm/spread projectiles out around their launch hex
// (spec.md §4.9 "Projectile") at fixed angular offsets.
func (c Coord) Rotated(center Coord, angleRadians float64) Coord {
	dx, dy := axialToCartesian(c.Sub(center))
	cosA, sinA := math.Cos(angleRadians), math.Sin(angleRadians)
	rx := dx*cosA - dy*sinA
	ry := dx*sinA + dy*cosA
	r := ry * 2 / math.Sqrt(3)
	q := rx - r/2
	return center.Add(cubeRound(q, r, -q-r))
}

func axialToCartesian(c Coord) (x, y float64) {
	x = float64(c.Q) + float64(c.R)/2
	y = float64(c.R) * math.Sqrt(3) / 2
	return
}

func angleDiff(a, b float64) float64 {
	d := math.Abs(a - b)
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }

func cubeRound(q, r, s float64) Coord {
	rq := math.Round(q)
	rr := math.Round(r)
	rs := math.Round(s)

	dq := math.Abs(rq - q)
	dr := math.Abs(rr - r)
	ds := math.Abs(rs - s)

	if dq > dr && dq > ds {
		rq = -rr - rs
	} else if dr > ds {
		rr = -rq - rs
	}
	return Coord{Q: int(rq), R: int(rr)}
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
