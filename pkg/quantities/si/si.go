// Package si provides constructors for the SI base and derived units used
// throughout the trajectory engine, mirroring the source's
// Principia::SI namespace.
package si

import "github.com/orbitalcore/trajectory/pkg/quantities"

var (
	lengthDim      = quantities.Dimension{Length: 1}
	massDim        = quantities.Dimension{Mass: 1}
	timeDim        = quantities.Dimension{Time: 1}
	currentDim     = quantities.Dimension{Current: 1}
	temperatureDim = quantities.Dimension{Temperature: 1}
	amountDim      = quantities.Dimension{Amount: 1}
	luminosityDim  = quantities.Dimension{Luminosity: 1}
	angleDim       = quantities.Dimension{Angle: 1}
)

// Metre constructs a length quantity of the given magnitude, in metres.
func Metre(value float64) quantities.Quantity { return quantities.New(value, lengthDim) }

// Kilogram constructs a mass quantity, in kilograms.
func Kilogram(value float64) quantities.Quantity { return quantities.New(value, massDim) }

// Second constructs a duration/time quantity, in seconds.
func Second(value float64) quantities.Quantity { return quantities.New(value, timeDim) }

// Ampere constructs an electric-current quantity, in amperes.
func Ampere(value float64) quantities.Quantity { return quantities.New(value, currentDim) }

// Kelvin constructs a thermodynamic-temperature quantity.
func Kelvin(value float64) quantities.Quantity { return quantities.New(value, temperatureDim) }

// Mole constructs an amount-of-substance quantity.
func Mole(value float64) quantities.Quantity { return quantities.New(value, amountDim) }

// Candela constructs a luminous-intensity quantity.
func Candela(value float64) quantities.Quantity { return quantities.New(value, luminosityDim) }

// Radian constructs a plane-angle quantity.
func Radian(value float64) quantities.Quantity { return quantities.New(value, angleDim) }

// Common time multiples, derived from Second the way the source derives
// Minute/Hour/Day from Second in SI.h.
var (
	Minute = Second(60)
	Hour   = Second(60 * 60)
	Day    = Second(24 * 60 * 60)
)
