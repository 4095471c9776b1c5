package sizing

import (
	"math"

	"gonum.org/v1/gonum/floats/scalar"

	"github.com/airframe/battsizer/pkg/types"
)

// massEps is the absolute tolerance below which a total mass is treated as
// zero and flight time becomes NaN instead of blowing up a division.
const massEps = 1e-12

// Params holds the full sizing model constants.
// Units:
//   - FrameCost/ElectronicsCost: currency
//   - FrameMass/ElectronicsMass/MassOffset: kg
//   - KBattery: kg per Ah (battery mass curve slope)
//   - Thrust: dimensionless derating on the battery mass slope
//   - EnergyDensity: Wh equivalent per kg of battery, scaled to minutes
//   - PropEfficiency: (0..1], PropCount: number of motors
//   - MinCapacity/MaxCapacity: Ah, MinFlightTime: minutes, MaxTotalMass: kg
//   - TimeWeight: currency per minute of endurance in the objective
type Params struct {
	FrameCost       float64
	ElectronicsCost float64
	FrameMass       float64
	ElectronicsMass float64
	KBattery        float64
	Thrust          float64
	MassOffset      float64
	EnergyDensity   float64
	PropEfficiency  float64
	PropCount       float64
	MinCapacity     float64
	MaxCapacity     float64
	MinFlightTime   float64
	MaxTotalMass    float64
	TimeWeight      float64
}

// DefaultParams returns a Params pre-filled with the reference quadcopter
// constants. TimeWeight is a tunable trade-off knob, not a physical law:
// it converts one minute of endurance into currency inside the objective.
func DefaultParams() *Params {
	return &Params{
		FrameCost:       1000,  // currency
		ElectronicsCost: 500,   // currency
		FrameMass:       2.0,   // kg
		ElectronicsMass: 1.0,   // kg
		KBattery:        0.1,   // kg/Ah
		Thrust:          1.01,  // thrust derating
		MassOffset:      0.1,   // kg, pack overhead
		EnergyDensity:   250,   // endurance scale
		PropEfficiency:  0.8,   // propulsive efficiency
		PropCount:       4,     // quad
		MinCapacity:     16,    // Ah
		MaxCapacity:     32,    // Ah
		MinFlightTime:   10,    // minutes
		MaxTotalMass:    10.0,  // kg
		TimeWeight:      50,    // currency per minute
	}
}

// SimpleParams holds the coarse sizing model constants. The design variable
// is the battery mass itself and the flight-time estimate deliberately omits
// the propulsion factor of the full model.
type SimpleParams struct {
	FrameMass        float64 // kg
	FrameCost        float64 // currency
	BatteryCostPerKg float64 // currency per kg of battery
	EnergyDensity    float64 // endurance scale
	TimeWeight       float64 // currency per minute of endurance
}

// DefaultSimpleParams returns a SimpleParams pre-filled with the reference
// constants.
func DefaultSimpleParams() *SimpleParams {
	return &SimpleParams{
		FrameMass:        2.0,
		FrameCost:        1000,
		BatteryCostPerKg: 500,
		EnergyDensity:    200,
		TimeWeight:       50,
	}
}

// Derived bundles the quantities recomputed from a candidate design variable.
// They have no identity of their own: always derived, never cached.
type Derived struct {
	BatteryMass types.Kilograms
	TotalMass   types.Kilograms
	FlightTime  types.Minutes
	TotalCost   types.Money
}

// Constraint is one inequality g(x) >= 0 with its exact derivative.
// Eval and Grad must be total over the reals: the solver probes trial
// points outside the feasible box during line search.
type Constraint struct {
	Eval func(x float64) float64
	Grad func(x float64) float64
}

// BatteryMass returns the pack mass for a capacity x (Ah).
// The curve is affine in capacity with a thrust-derated slope.
func (p *Params) BatteryMass(x float64) float64 {
	return p.KBattery*x*p.Thrust + p.KBattery*x + p.MassOffset
}

// batteryMassSlope is d(BatteryMass)/dx, constant over x.
func (p *Params) batteryMassSlope() float64 {
	return p.KBattery * (p.Thrust + 1)
}

// TotalMass returns airframe + electronics + battery mass for capacity x.
func (p *Params) TotalMass(x float64) float64 {
	return p.FrameMass + p.ElectronicsMass + p.BatteryMass(x)
}

// FlightTime estimates endurance in minutes for capacity x.
// Returns NaN at the measure-zero pole TotalMass(x) == 0.
func (p *Params) FlightTime(x float64) float64 {
	mt := p.TotalMass(x)
	if scalar.EqualWithinAbs(mt, 0, massEps) {
		return math.NaN()
	}
	powerFactor := p.PropCount / p.PropEfficiency
	return p.EnergyDensity * p.BatteryMass(x) / (powerFactor * mt)
}

// flightTimeGrad is d(FlightTime)/dx. The dry mass (frame + electronics)
// is the only part of total mass that does not move with x, which collapses
// the quotient rule to a single term.
func (p *Params) flightTimeGrad(x float64) float64 {
	mt := p.TotalMass(x)
	if scalar.EqualWithinAbs(mt, 0, massEps) {
		return math.NaN()
	}
	dry := p.FrameMass + p.ElectronicsMass
	powerFactor := p.PropCount / p.PropEfficiency
	return p.EnergyDensity * p.batteryMassSlope() * dry / (powerFactor * mt * mt)
}

// TotalCost returns frame + electronics + battery cost, with capacity taken
// at face value as the battery cost proxy.
func (p *Params) TotalCost(x float64) float64 {
	return p.FrameCost + p.ElectronicsCost + x
}

// Objective is the scalar the solver minimizes: cost penalized, endurance
// rewarded through TimeWeight.
func (p *Params) Objective(x float64) float64 {
	return p.TotalCost(x) - p.TimeWeight*p.FlightTime(x)
}

func (p *Params) objectiveGrad(x float64) float64 {
	return 1 - p.TimeWeight*p.flightTimeGrad(x)
}

// Constraints returns the four feasibility inequalities in fixed order:
// weight budget, endurance floor, capacity lower bound, capacity upper bound.
// The bound constraints are redundant with the solver box but enforced
// independently, and all four are non-strict (exactly zero is feasible).
func (p *Params) Constraints() []Constraint {
	return []Constraint{
		{ // MaxTotalMass - TotalMass(x) >= 0
			Eval: func(x float64) float64 { return p.MaxTotalMass - p.TotalMass(x) },
			Grad: func(x float64) float64 { return -p.batteryMassSlope() },
		},
		{ // FlightTime(x) - MinFlightTime >= 0
			Eval: func(x float64) float64 { return p.FlightTime(x) - p.MinFlightTime },
			Grad: p.flightTimeGrad,
		},
		{ // x - MinCapacity >= 0
			Eval: func(x float64) float64 { return x - p.MinCapacity },
			Grad: func(x float64) float64 { return 1 },
		},
		{ // MaxCapacity - x >= 0
			Eval: func(x float64) float64 { return p.MaxCapacity - x },
			Grad: func(x float64) float64 { return -1 },
		},
	}
}

// Derived recomputes every derived quantity at x.
func (p *Params) Derived(x float64) Derived {
	return Derived{
		BatteryMass: types.Kilograms(p.BatteryMass(x)),
		TotalMass:   types.Kilograms(p.TotalMass(x)),
		FlightTime:  types.Minutes(p.FlightTime(x)),
		TotalCost:   types.Money(p.TotalCost(x)),
	}
}

// TotalMass returns frame + battery mass for a battery mass x.
func (p *SimpleParams) TotalMass(x float64) float64 {
	return p.FrameMass + x
}

// FlightTime estimates endurance in minutes for a battery mass x.
// No propulsion factor here: the coarse model trades accuracy for fewer
// constants. Returns NaN at the pole TotalMass(x) == 0.
func (p *SimpleParams) FlightTime(x float64) float64 {
	mt := p.TotalMass(x)
	if scalar.EqualWithinAbs(mt, 0, massEps) {
		return math.NaN()
	}
	return p.EnergyDensity * x / mt
}

func (p *SimpleParams) flightTimeGrad(x float64) float64 {
	mt := p.TotalMass(x)
	if scalar.EqualWithinAbs(mt, 0, massEps) {
		return math.NaN()
	}
	return p.EnergyDensity * p.FrameMass / (mt * mt)
}

// TotalCost returns frame cost plus battery mass priced per kilogram.
func (p *SimpleParams) TotalCost(x float64) float64 {
	return p.FrameCost + p.BatteryCostPerKg*x
}

// Objective is the scalar the solver minimizes.
func (p *SimpleParams) Objective(x float64) float64 {
	return p.TotalCost(x) - p.TimeWeight*p.FlightTime(x)
}

func (p *SimpleParams) objectiveGrad(x float64) float64 {
	return p.BatteryCostPerKg - p.TimeWeight*p.flightTimeGrad(x)
}

// Derived recomputes every derived quantity at x.
func (p *SimpleParams) Derived(x float64) Derived {
	return Derived{
		BatteryMass: types.Kilograms(x),
		TotalMass:   types.Kilograms(p.TotalMass(x)),
		FlightTime:  types.Minutes(p.FlightTime(x)),
		TotalCost:   types.Money(p.TotalCost(x)),
	}
}

// Validate reports the first precondition violation as a *ParamError.
// The model functions themselves stay total over the reals; validation
// exists so a misconfigured parameter set fails loudly at Optimize instead
// of producing a garbage design.
func (p *Params) Validate() error {
	switch {
	case p.FrameCost < 0:
		return &ParamError{Field: "FrameCost", Reason: "must not be negative"}
	case p.ElectronicsCost < 0:
		return &ParamError{Field: "ElectronicsCost", Reason: "must not be negative"}
	case p.FrameMass <= 0:
		return &ParamError{Field: "FrameMass", Reason: "must be positive"}
	case p.ElectronicsMass < 0:
		return &ParamError{Field: "ElectronicsMass", Reason: "must not be negative"}
	case p.KBattery <= 0:
		return &ParamError{Field: "KBattery", Reason: "must be positive"}
	case p.Thrust < 0:
		return &ParamError{Field: "Thrust", Reason: "must not be negative"}
	case p.MassOffset < 0:
		return &ParamError{Field: "MassOffset", Reason: "must not be negative"}
	case p.EnergyDensity <= 0:
		return &ParamError{Field: "EnergyDensity", Reason: "must be positive"}
	case p.PropEfficiency <= 0:
		return &ParamError{Field: "PropEfficiency", Reason: "must be positive"}
	case p.PropCount < 1:
		return &ParamError{Field: "PropCount", Reason: "must be at least 1"}
	case p.MinCapacity < 0:
		return &ParamError{Field: "MinCapacity", Reason: "must not be negative"}
	case p.MaxCapacity < p.MinCapacity:
		return &ParamError{Field: "MaxCapacity", Reason: "must not be below MinCapacity"}
	case p.MinFlightTime < 0:
		return &ParamError{Field: "MinFlightTime", Reason: "must not be negative"}
	case p.MaxTotalMass <= 0:
		return &ParamError{Field: "MaxTotalMass", Reason: "must be positive"}
	case p.TimeWeight < 0:
		return &ParamError{Field: "TimeWeight", Reason: "must not be negative"}
	}
	return nil
}

// Validate reports the first precondition violation as a *ParamError.
func (p *SimpleParams) Validate() error {
	switch {
	case p.FrameMass <= 0:
		return &ParamError{Field: "FrameMass", Reason: "must be positive"}
	case p.FrameCost < 0:
		return &ParamError{Field: "FrameCost", Reason: "must not be negative"}
	case p.BatteryCostPerKg < 0:
		return &ParamError{Field: "BatteryCostPerKg", Reason: "must not be negative"}
	case p.EnergyDensity <= 0:
		return &ParamError{Field: "EnergyDensity", Reason: "must be positive"}
	case p.TimeWeight < 0:
		return &ParamError{Field: "TimeWeight", Reason: "must not be negative"}
	}
	return nil
}
