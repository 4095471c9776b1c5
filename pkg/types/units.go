package types

import "fmt"

// Kilograms is a float64 wrapper representing a mass in kg.
type Kilograms float64

// String formats the mass with two decimals, e.g. "9.53 kg".
func (k Kilograms) String() string { return fmt.Sprintf("%.2f kg", float64(k)) }

// AmpHours is a float64 wrapper representing a battery capacity in Ah.
type AmpHours float64

// String formats the capacity with two decimals, e.g. "32.00 Ah".
func (a AmpHours) String() string { return fmt.Sprintf("%.2f Ah", float64(a)) }

// MilliampHours returns the capacity in mAh.
func (a AmpHours) MilliampHours() float64 { return float64(a) * 1000 }

// Minutes is a float64 wrapper representing a duration in minutes.
type Minutes float64

// String formats the duration with two decimals, e.g. "34.26 min".
func (m Minutes) String() string { return fmt.Sprintf("%.2f min", float64(m)) }

// Seconds returns the duration in seconds.
func (m Minutes) Seconds() float64 { return float64(m) * 60 }

// Money is a float64 wrapper representing an amount in an unspecified
// currency unit.
type Money float64

// String formats the amount with two decimals, e.g. "1532.00".
func (m Money) String() string { return fmt.Sprintf("%.2f", float64(m)) }
