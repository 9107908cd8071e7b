package combat

// Variant is the kind of attack released from a charge.
type Variant int

const (
	VariantNone     Variant = iota // Still holding, or nothing was held
	VariantBase                    // Released before the threshold
	VariantEnhanced                // Released after holding past the threshold
)

// String returns a human-readable name for the variant.
func (v Variant) String() string {
	switch v {
	case VariantBase:
		return "base"
	case VariantEnhanced:
		return "enhanced"
	default:
		return "none"
	}
}

// Charge tracks how long an attack input has been held.
// The variant is decided only on release.
type Charge struct {
	ThresholdMs float64
	heldMs      float64
	holding     bool
}

// Update feeds the current held state and tick length.
// It returns VariantNone while the input is held or idle, and the released
// variant on the tick the input goes up.
func (c *Charge) Update(held bool, dt float64) Variant {
	switch {
	case held && c.holding:
		c.heldMs += dt
		return VariantNone
	case held:
		c.holding = true
		c.heldMs = dt
		return VariantNone
	case c.holding:
		c.holding = false
		full := c.heldMs >= c.ThresholdMs
		c.heldMs = 0
		if full {
			return VariantEnhanced
		}
		return VariantBase
	default:
		return VariantNone
	}
}

// Charged reports whether the current hold already passed the threshold.
func (c *Charge) Charged() bool {
	return c.holding && c.heldMs >= c.ThresholdMs
}

// Holding reports whether the input is currently held.
func (c *Charge) Holding() bool {
	return c.holding
}

// Cancel drops the current hold without releasing an attack.
func (c *Charge) Cancel() {
	c.holding = false
	c.heldMs = 0
}
