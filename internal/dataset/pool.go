package dataset

import "slices"

// Pool maps dataset names to their preloaded example sentences.
// It is built once and only read afterwards, so it is safe for concurrent use.
type Pool struct {
	order    []string
	examples map[string][]string
}

// NewPool builds a Pool. names fixes the listing order; every name in
// examples that is missing from names is appended in sorted order.
func NewPool(names []string, examples map[string][]string) *Pool {
	p := &Pool{examples: make(map[string][]string, len(examples))}

	for name, ex := range examples {
		p.examples[name] = slices.Clone(ex)
	}

	seen := make(map[string]bool, len(names))
	for _, n := range names {
		if _, ok := p.examples[n]; ok && !seen[n] {
			seen[n] = true
			p.order = append(p.order, n)
		}
	}

	var rest []string
	for n := range p.examples {
		if !seen[n] {
			rest = append(rest, n)
		}
	}
	slices.Sort(rest)
	p.order = append(p.order, rest...)

	return p
}

// Names returns the datasets held by the pool.
func (p *Pool) Names() []string {
	return slices.Clone(p.order)
}

// Has reports whether the dataset was preloaded (possibly with zero examples).
func (p *Pool) Has(name string) bool {
	_, ok := p.examples[name]
	return ok
}

// Len returns the number of examples for name.
func (p *Pool) Len(name string) int {
	return len(p.examples[name])
}

// Examples returns a copy of the examples for name.
func (p *Pool) Examples(name string) []string {
	return slices.Clone(p.examples[name])
}

// Pick returns the example at index pick(n) where n is the number of examples
// for name. ok is false when the dataset has no examples.
func (p *Pool) Pick(name string, pick func(n int) int) (string, bool) {
	ex := p.examples[name]
	if len(ex) == 0 {
		return "", false
	}
	return ex[pick(len(ex))], true
}
