package reactions

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"
)

// Balancer balances equations, remembering the results for recently seen
// inputs. A Balancer is safe for concurrent use.
type Balancer struct {
	cache *lru.Cache
	opts  []BalanceOption
}

type balanced struct {
	eq  *Equation
	err error
}

// NewBalancer creates a Balancer that remembers up to size results and
// balances with the given options.
func NewBalancer(size int, opts ...BalanceOption) (*Balancer, error) {
	c, err := lru.New(size)
	if err != nil {
		return nil, fmt.Errorf("creating balancer cache: %w", err)
	}
	return &Balancer{cache: c, opts: append([]BalanceOption(nil), opts...)}, nil
}

// Balance balances an equation as by the function Balance. The result is a
// copy that the caller may modify.
func (b *Balancer) Balance(equation string) (*Equation, error) {
	if v, ok := b.cache.Get(equation); ok {
		r := v.(balanced)
		if r.err != nil {
			return nil, r.err
		}
		return r.eq.clone(), nil
	}
	eq, err := Balance(equation, b.opts...)
	b.cache.Add(equation, balanced{eq: eq, err: err})
	if err != nil {
		return nil, err
	}
	return eq.clone(), nil
}

// Len returns the number of remembered results.
func (b *Balancer) Len() int {
	return b.cache.Len()
}
