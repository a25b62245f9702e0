// Package quantities implements a dimensional-quantities algebra: physical
// values tagged with a vector of exponents over a fixed set of base
// dimensions. Go generics cannot encode arithmetic on type parameters, so
// unlike a phantom-typed implementation, dimension checking happens at
// runtime and mismatches are reported as an [ErrDimensionMismatch] error
// rather than a compile failure.
package quantities

import "fmt"

// Dimension is a vector of integer exponents over the base dimensions
// length, mass, time, electric current, thermodynamic temperature, amount
// of substance, luminous intensity, and plane angle.
type Dimension struct {
	Length      int8
	Mass        int8
	Time        int8
	Current     int8
	Temperature int8
	Amount      int8
	Luminosity  int8
	Angle       int8
}

// Zero is the dimensionless vector: all exponents are zero.
var Zero = Dimension{}

// IsZero reports whether every exponent is zero, i.e. the vector describes
// a dimensionless quantity.
func (d Dimension) IsZero() bool {
	return d == Zero
}

// Add returns the exponent-wise sum of two dimension vectors, as used when
// multiplying two quantities.
func (d Dimension) Add(other Dimension) Dimension {
	return Dimension{
		Length:      d.Length + other.Length,
		Mass:        d.Mass + other.Mass,
		Time:        d.Time + other.Time,
		Current:     d.Current + other.Current,
		Temperature: d.Temperature + other.Temperature,
		Amount:      d.Amount + other.Amount,
		Luminosity:  d.Luminosity + other.Luminosity,
		Angle:       d.Angle + other.Angle,
	}
}

// Sub returns the exponent-wise difference of two dimension vectors, as
// used when dividing one quantity by another.
func (d Dimension) Sub(other Dimension) Dimension {
	return Dimension{
		Length:      d.Length - other.Length,
		Mass:        d.Mass - other.Mass,
		Time:        d.Time - other.Time,
		Current:     d.Current - other.Current,
		Temperature: d.Temperature - other.Temperature,
		Amount:      d.Amount - other.Amount,
		Luminosity:  d.Luminosity - other.Luminosity,
		Angle:       d.Angle - other.Angle,
	}
}

// Scale multiplies every exponent by n, as used by Quantity.Pow.
func (d Dimension) Scale(n int) Dimension {
	return Dimension{
		Length:      int8(int(d.Length) * n),
		Mass:        int8(int(d.Mass) * n),
		Time:        int8(int(d.Time) * n),
		Current:     int8(int(d.Current) * n),
		Temperature: int8(int(d.Temperature) * n),
		Amount:      int8(int(d.Amount) * n),
		Luminosity:  int8(int(d.Luminosity) * n),
		Angle:       int8(int(d.Angle) * n),
	}
}

// halved returns d/2 and whether every exponent divided evenly, as needed
// by Quantity.Sqrt.
func (d Dimension) halved() (Dimension, bool) {
	if d.Length%2 != 0 || d.Mass%2 != 0 || d.Time%2 != 0 || d.Current%2 != 0 ||
		d.Temperature%2 != 0 || d.Amount%2 != 0 || d.Luminosity%2 != 0 || d.Angle%2 != 0 {
		return Dimension{}, false
	}

	return Dimension{
		Length:      d.Length / 2,
		Mass:        d.Mass / 2,
		Time:        d.Time / 2,
		Current:     d.Current / 2,
		Temperature: d.Temperature / 2,
		Amount:      d.Amount / 2,
		Luminosity:  d.Luminosity / 2,
		Angle:       d.Angle / 2,
	}, true
}

// String renders the dimension as its unit suffix, or "1" when dimensionless.
func (d Dimension) String() string {
	if s := d.symbol(); s != "" {
		return s
	}

	return "1"
}

// symbol returns the unit suffix for every non-zero exponent, joined with
// "·", or "" when the dimension is zero.
func (d Dimension) symbol() string {
	type term struct {
		unit string
		exp  int8
	}

	terms := []term{
		{"m", d.Length},
		{"kg", d.Mass},
		{"s", d.Time},
		{"A", d.Current},
		{"K", d.Temperature},
		{"mol", d.Amount},
		{"cd", d.Luminosity},
		{"rad", d.Angle},
	}

	out := ""

	for _, t := range terms {
		if t.exp == 0 {
			continue
		}

		if out != "" {
			out += "·"
		}

		if t.exp == 1 {
			out += t.unit
		} else {
			out += fmt.Sprintf("%s^%d", t.unit, t.exp)
		}
	}

	return out
}
