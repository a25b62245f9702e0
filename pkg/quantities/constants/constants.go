// Package constants provides the physical constants exercised by the
// dimensional-quantities algebra's elementary-function and integer-power
// tests, mirroring Principia::Constants and Principia::Astronomy from the
// original source (kept here as a supplement: the distilled spec.md omits
// them, but QuantitiesTests.cpp exercises exactly this set).
package constants

import (
	"github.com/orbitalcore/trajectory/pkg/quantities"
	"github.com/orbitalcore/trajectory/pkg/quantities/si"
)

// SpeedOfLight is the speed of light in vacuum, in m·s⁻¹.
var SpeedOfLight = si.Metre(299792458).Div(si.Second(1))

// GravitationalConstant is Newton's constant, in m³·kg⁻¹·s⁻².
var GravitationalConstant = si.Metre(6.67430e-11).
	Mul(si.Metre(1)).
	Mul(si.Metre(1)).
	Div(si.Kilogram(1)).
	Div(si.Second(1)).
	Div(si.Second(1))

// VacuumPermittivity is the electric constant ε₀, in F·m⁻¹.
var VacuumPermittivity = quantities.New(8.8541878128e-12,
	quantities.Dimension{Length: -3, Mass: -1, Time: 4, Current: 2})

// VacuumPermeability is the magnetic constant μ₀, in H·m⁻¹, derived from
// c² = 1/(ε₀μ₀) the same way the original test cross-checks it.
var VacuumPermeability = quantities.DimensionlessOf(1).
	Div(VacuumPermittivity).
	Div(SpeedOfLight.Pow(2))

// AstronomicalUnit is the mean Earth–Sun distance.
var AstronomicalUnit = si.Metre(1.495978707e11)

// JulianYear is the Julian astronomical year.
var JulianYear = si.Second(365.25 * 86400)

// SolarMass is the mass of the Sun.
var SolarMass = si.Kilogram(1.98847e30)

// Pi is the ratio of a circle's circumference to its diameter, as a
// dimensionless quantity (so it composes with Quantity arithmetic the way
// the original's π does).
var Pi = quantities.DimensionlessOf(3.14159265358979323846)
