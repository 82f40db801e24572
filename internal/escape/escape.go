package escape

// DefaultEscapeRadius is the classic divergence bound for z = z*z + c.
const DefaultEscapeRadius = 2.0

// Evaluate returns the number of iterations of z = z*z + c, starting at z = 0,
// that stay within escapeRadius, capped at maxIterations.
//
// A return value equal to maxIterations means the point did not escape.
// The function is pure and allocation free; it is defined for every finite c,
// including a zero radius and maxIterations <= 0 (which returns 0).
func Evaluate(c complex128, maxIterations int, escapeRadius float64) int {
	limit := escapeRadius * escapeRadius
	cr, ci := real(c), imag(c)

	var zr, zi float64
	count := 0
	for count < maxIterations {
		zr, zi = zr*zr-zi*zi+cr, 2*zr*zi+ci
		if zr*zr+zi*zi > limit {
			break
		}
		count++
	}
	return count
}

// Count evaluates c with DefaultEscapeRadius.
func Count(c complex128, maxIterations int) int {
	return Evaluate(c, maxIterations, DefaultEscapeRadius)
}

// InMainBody reports whether c lies in the main cardioid or the period-2 bulb.
func InMainBody(c complex128) bool {
	x, y := real(c), imag(c)
	y2 := y * y

	q := (x-0.25)*(x-0.25) + y2
	if q*(q+(x-0.25)) < 0.25*y2 {
		return true
	}
	return (x+1)*(x+1)+y2 < 0.0625
}

// Evaluator bundles the per-run evaluation parameters.
//
// The zero Radius is a legal radius, so callers that want the classic bound
// should use NewEvaluator or set Radius explicitly.
type Evaluator struct {
	MaxIterations int
	Radius        float64

	// Shortcut skips iteration for points inside the main cardioid or the
	// period-2 bulb. It is only sound for radii of at least 2.
	Shortcut bool
}

// NewEvaluator returns an Evaluator using DefaultEscapeRadius.
func NewEvaluator(maxIterations int) Evaluator {
	return Evaluator{MaxIterations: maxIterations, Radius: DefaultEscapeRadius}
}

// Count returns the iteration count for c.
func (e Evaluator) Count(c complex128) int {
	if e.Shortcut && e.MaxIterations > 0 && e.Radius >= DefaultEscapeRadius && InMainBody(c) {
		return e.MaxIterations
	}
	return Evaluate(c, e.MaxIterations, e.Radius)
}
