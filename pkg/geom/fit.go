package geom

import "math"

// FitCurve fits a sequence of cubic Beziers to points within tolerance,
// using Schneider's least-squares fitting algorithm: fit a single cubic to
// the whole run, and if its maximum squared distance from the points
// exceeds tolerance, split at the worst point and fit each half
// independently. tolerance is thus compared against squared distances.
func FitCurve(points []Point, tolerance float64) []Bezier {
	if len(points) < 2 {
		return nil
	}
	leftTangent := normalize(points[1].Sub(points[0]))
	rightTangent := normalize(points[len(points)-2].Sub(points[len(points)-1]))
	return fitCubic(points, leftTangent, rightTangent, tolerance)
}

func normalize(p Point) Point {
	l := math.Hypot(p.X, p.Y)
	if l < 1e-9 {
		return Point{0, 0}
	}
	return Point{p.X / l, p.Y / l}
}

func fitCubic(points []Point, leftTangent, rightTangent Point, tolerance float64) []Bezier {
	if len(points) == 2 {
		dist := points[0].Dist(points[1]) / 3
		b := Bezier{
			P0: points[0],
			P1: points[0].Add(leftTangent.Scale(dist)),
			P2: points[1].Add(rightTangent.Scale(dist)),
			P3: points[1],
		}
		return []Bezier{b}
	}

	u := chordLengthParameterize(points)
	curve := generateBezier(points, u, leftTangent, rightTangent)
	maxErr, splitIdx := computeMaxError(points, curve, u)

	if maxErr < tolerance {
		return []Bezier{curve}
	}

	// Try a few Newton-Raphson reparameterization passes before splitting.
	if maxErr < tolerance*tolerance*16 {
		for i := 0; i < 4; i++ {
			u = reparameterize(points, u, curve)
			curve = generateBezier(points, u, leftTangent, rightTangent)
			maxErr, splitIdx = computeMaxError(points, curve, u)
			if maxErr < tolerance {
				return []Bezier{curve}
			}
		}
	}

	if splitIdx <= 0 || splitIdx >= len(points)-1 {
		splitIdx = len(points) / 2
	}

	centerTangent := centerTangentAt(points, splitIdx)
	left := fitCubic(points[:splitIdx+1], leftTangent, centerTangent.Scale(-1), tolerance)
	right := fitCubic(points[splitIdx:], centerTangent, rightTangent, tolerance)
	return append(left, right...)
}

func centerTangentAt(points []Point, idx int) Point {
	v := points[idx-1].Sub(points[idx+1])
	return normalize(v)
}

func chordLengthParameterize(points []Point) []float64 {
	u := make([]float64, len(points))
	for i := 1; i < len(points); i++ {
		u[i] = u[i-1] + points[i].Dist(points[i-1])
	}
	total := u[len(u)-1]
	if total < 1e-9 {
		total = 1
	}
	for i := range u {
		u[i] /= total
	}
	return u
}

func bernstein(t float64) [4]float64 {
	mt := 1 - t
	return [4]float64{mt * mt * mt, 3 * mt * mt * t, 3 * mt * t * t, t * t * t}
}

func generateBezier(points []Point, u []float64, leftTangent, rightTangent Point) Bezier {
	first, last := points[0], points[len(points)-1]

	var c [2][2]float64
	var x [2]float64

	for i, t := range u {
		b := bernstein(t)
		a0 := leftTangent.Scale(b[1])
		a1 := rightTangent.Scale(b[2])

		c[0][0] += a0.X*a0.X + a0.Y*a0.Y
		c[0][1] += a0.X*a1.X + a0.Y*a1.Y
		c[1][0] = c[0][1]
		c[1][1] += a1.X*a1.X + a1.Y*a1.Y

		shortfall := points[i].Sub(
			first.Scale(b[0]).Add(first.Scale(b[1])).Add(last.Scale(b[2])).Add(last.Scale(b[3])),
		)

		x[0] += a0.X*shortfall.X + a0.Y*shortfall.Y
		x[1] += a1.X*shortfall.X + a1.Y*shortfall.Y
	}

	det := c[0][0]*c[1][1] - c[0][1]*c[1][0]

	var alphaL, alphaR float64
	if math.Abs(det) > 1e-9 {
		detL := x[0]*c[1][1] - c[0][1]*x[1]
		detR := c[0][0]*x[1] - x[0]*c[1][0]
		alphaL = detL / det
		alphaR = detR / det
	}

	segLen := last.Dist(first)
	epsilon := 1.0e-6 * segLen
	if alphaL < epsilon || alphaR < epsilon || segLen < 1e-9 {
		alphaL = segLen / 3
		alphaR = segLen / 3
	}

	return Bezier{
		P0: first,
		P1: first.Add(leftTangent.Scale(alphaL)),
		P2: last.Add(rightTangent.Scale(alphaR)),
		P3: last,
	}
}

func computeMaxError(points []Point, curve Bezier, u []float64) (float64, int) {
	maxErr := 0.0
	splitIdx := len(points) / 2
	for i, p := range points {
		fit := curve.PointAt(u[i])
		d := fit.Dist(p)
		d *= d
		if d > maxErr {
			maxErr = d
			splitIdx = i
		}
	}
	return maxErr, splitIdx
}

func reparameterize(points []Point, u []float64, curve Bezier) []float64 {
	out := make([]float64, len(u))
	for i, p := range points {
		out[i] = newtonRaphsonRootFind(curve, p, u[i])
	}
	return out
}

func newtonRaphsonRootFind(curve Bezier, p Point, u float64) float64 {
	qu := curve.PointAt(u)
	d1 := curve.derivativeAt(u)
	d2x := 6*(1-u)*(curve.P2.X-2*curve.P1.X+curve.P0.X) + 6*u*(curve.P3.X-2*curve.P2.X+curve.P1.X)
	d2y := 6*(1-u)*(curve.P2.Y-2*curve.P1.Y+curve.P0.Y) + 6*u*(curve.P3.Y-2*curve.P2.Y+curve.P1.Y)

	numerator := (qu.X-p.X)*d1.X + (qu.Y-p.Y)*d1.Y
	denominator := d1.X*d1.X + d1.Y*d1.Y + (qu.X-p.X)*d2x + (qu.Y-p.Y)*d2y

	if math.Abs(denominator) < 1e-9 {
		return u
	}
	newU := u - numerator/denominator
	if newU < 0 {
		newU = 0
	}
	if newU > 1 {
		newU = 1
	}
	return newU
}
