package combat

// Pool is a bounded resource counter (magic, ammo, keys).
type Pool struct {
	Current int
	Max     int // 0 means unbounded
}

// Spend deducts n if available. Insufficient resource is a silent no-op.
func (p *Pool) Spend(n int) bool {
	if n < 0 || p.Current < n {
		return false
	}
	p.Current -= n
	return true
}

// Add increases the pool, clamped to Max when bounded.
func (p *Pool) Add(n int) {
	p.Current += n
	if p.Max > 0 && p.Current > p.Max {
		p.Current = p.Max
	}
	if p.Current < 0 {
		p.Current = 0
	}
}

// Has reports whether at least n is available.
func (p Pool) Has(n int) bool {
	return p.Current >= n
}
