package render

// Plane is the linear transform from pixel coordinates to the complex plane.
type Plane struct {
	StartReal float64 `json:"start_real"`
	StartImag float64 `json:"start_imag"`
	IncReal   float64 `json:"inc_real"`
	IncImag   float64 `json:"inc_imag"`
}

// NewPlane centers a width x height pixel grid on center, one pixel covering
// precision units of the plane in each direction.
func NewPlane(center complex128, precision float64, width, height int) Plane {
	cx, cy := real(center), imag(center)
	w, h := float64(width), float64(height)

	startReal := cx - w*precision/2
	startImag := cy - h*precision/2
	endReal := cx + w*precision/2
	endImag := cy + h*precision/2

	return Plane{
		StartReal: startReal,
		StartImag: startImag,
		IncReal:   (endReal - startReal) / w,
		IncImag:   (endImag - startImag) / h,
	}
}

// Point returns the complex coordinate of pixel (x, y).
func (p Plane) Point(x, y int) complex128 {
	return complex(p.StartReal+p.IncReal*float64(x), p.StartImag+p.IncImag*float64(y))
}
