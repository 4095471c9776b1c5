package sizing

import (
	"math"
	"testing"

	"github.com/curioloop/optimizer/numdiff"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// expect mirrors the model equations independently so the methods are
// cross-checked against plain arithmetic, not against themselves.
func expect(p *Params, x float64) (mb, mt, ft, cost float64) {
	mb = p.KBattery*x*p.Thrust + p.KBattery*x + p.MassOffset
	mt = p.FrameMass + p.ElectronicsMass + mb
	ft = p.EnergyDensity * mb / ((p.PropCount / p.PropEfficiency) * mt)
	cost = p.FrameCost + p.ElectronicsCost + x
	return
}

func TestModel_ReferenceQuantities(t *testing.T) {
	p := DefaultParams()

	t.Logf("#     x |   M_batt(kg)   M_total(kg) |   T(min)      cost")
	for _, x := range []float64{16, 20, 24, 32} {
		mb, mt, ft, cost := expect(p, x)
		require.InDelta(t, mb, p.BatteryMass(x), 1e-12, "battery mass at x=%v", x)
		require.InDelta(t, mt, p.TotalMass(x), 1e-12, "total mass at x=%v", x)
		require.InDelta(t, ft, p.FlightTime(x), 1e-12, "flight time at x=%v", x)
		require.InDelta(t, cost, p.TotalCost(x), 1e-12, "total cost at x=%v", x)
		require.InDelta(t, cost-p.TimeWeight*ft, p.Objective(x), 1e-12, "objective at x=%v", x)
		t.Logf("%7.2f | %12.4f %13.4f | %8.4f %9.2f", x, mb, mt, ft, cost)
	}
}

func TestModel_TotalMassPositiveOnBox(t *testing.T) {
	p := DefaultParams()
	for x := p.MinCapacity; x <= p.MaxCapacity; x += 0.25 {
		assert.Greater(t, p.TotalMass(x), 0.0, "total mass at x=%v", x)
	}

	sp := DefaultSimpleParams()
	for x := 0.0; x <= 2*sp.FrameMass; x += 0.05 {
		assert.Greater(t, sp.TotalMass(x), 0.0, "total mass at x=%v", x)
	}
}

func TestModel_FlightTimeMonotone(t *testing.T) {
	p := DefaultParams()
	prev := math.Inf(-1)
	for x := p.MinCapacity; x <= p.MaxCapacity; x += 0.25 {
		ft := p.FlightTime(x)
		require.GreaterOrEqual(t, ft, prev, "flight time dipped at x=%v", x)
		prev = ft
	}

	sp := DefaultSimpleParams()
	prev = math.Inf(-1)
	for x := 0.0; x <= 2*sp.FrameMass; x += 0.05 {
		ft := sp.FlightTime(x)
		require.GreaterOrEqual(t, ft, prev, "flight time dipped at x=%v", x)
		prev = ft
	}
}

func TestModel_ConstraintBoundsExactZero(t *testing.T) {
	p := DefaultParams()
	cons := p.Constraints()
	require.Len(t, cons, 4)

	// The bound inequalities are non-strict: exactly zero is feasible.
	assert.Zero(t, cons[2].Eval(p.MinCapacity))
	assert.Zero(t, cons[3].Eval(p.MaxCapacity))

	assert.Positive(t, cons[2].Eval(p.MinCapacity+1))
	assert.Negative(t, cons[2].Eval(p.MinCapacity-1))
}

func TestModel_TotalOverReals(t *testing.T) {
	p := DefaultParams()
	cons := p.Constraints()

	// The solver probes far outside the box during line search. Nothing may
	// panic, and away from the total-mass pole everything stays finite.
	for _, x := range []float64{-1e6, -100, -1, 0, 1e6} {
		require.NotPanics(t, func() {
			p.BatteryMass(x)
			p.TotalMass(x)
			p.FlightTime(x)
			p.Objective(x)
			for _, c := range cons {
				c.Eval(x)
				c.Grad(x)
			}
		}, "panic at x=%v", x)
		assert.False(t, math.IsNaN(p.Objective(x)), "objective NaN at x=%v", x)
	}
}

func TestModel_NaNAtZeroTotalMass(t *testing.T) {
	p := DefaultParams()
	// The capacity at which battery mass exactly cancels the dry mass.
	pole := -(p.FrameMass + p.ElectronicsMass + p.MassOffset) / p.batteryMassSlope()
	assert.True(t, math.IsNaN(p.FlightTime(pole)), "expected NaN at the mass pole")

	sp := DefaultSimpleParams()
	assert.True(t, math.IsNaN(sp.FlightTime(-sp.FrameMass)), "expected NaN at the mass pole")
}

func TestModel_ValidateRejectsBadParams(t *testing.T) {
	p := DefaultParams()
	require.NoError(t, p.Validate())

	bad := *p
	bad.FrameMass = -1
	err := bad.Validate()
	require.ErrorIs(t, err, ErrInvalidParams)
	var pe *ParamError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "FrameMass", pe.Field)

	bad = *p
	bad.MaxCapacity = p.MinCapacity - 1
	require.ErrorIs(t, bad.Validate(), ErrInvalidParams)

	sp := DefaultSimpleParams()
	require.NoError(t, sp.Validate())
	sbad := *sp
	sbad.EnergyDensity = 0
	require.ErrorIs(t, sbad.Validate(), ErrInvalidParams)
}

// approxGrad estimates df/dx by central differences to verify the analytic
// derivatives handed to the solver.
func approxGrad(t *testing.T, f func(float64) float64, x float64) float64 {
	t.Helper()
	fd := numdiff.ApproxSpec{
		N: 1, M: 1,
		Object: func(x, y []float64) { y[0] = f(x[0]) },
		Method: numdiff.Central,
	}
	diff := make([]float64, 1)
	require.NoError(t, fd.Diff([]float64{x}, diff))
	return diff[0]
}

func TestModel_AnalyticGradients(t *testing.T) {
	p := DefaultParams()
	cons := p.Constraints()
	for _, x := range []float64{16, 20, 27.5, 32} {
		require.InDelta(t, approxGrad(t, p.Objective, x), p.objectiveGrad(x), 1e-4,
			"objective gradient at x=%v", x)
		for i, c := range cons {
			require.InDelta(t, approxGrad(t, c.Eval, x), c.Grad(x), 1e-4,
				"constraint %d gradient at x=%v", i, x)
		}
	}

	sp := DefaultSimpleParams()
	for _, x := range []float64{0.5, 1, 2.5, 4} {
		require.InDelta(t, approxGrad(t, sp.Objective, x), sp.objectiveGrad(x), 1e-4,
			"objective gradient at x=%v", x)
	}
}
