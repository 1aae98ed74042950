package network

import (
	"errors"
	"fmt"
	"math/rand"
	"net/url"
	"sync"
)

var ErrNoProxies = errors.New("no proxies available")

// Rotator hands out proxies round-robin. A process only makes one request,
// so the starting index is random to spread successive runs over the list.
type Rotator struct {
	proxies []*url.URL
	index   int
	mu      sync.Mutex
}

func NewRotator(raw []string, rng *rand.Rand) (*Rotator, error) {
	rotator := &Rotator{}

	for _, proxy := range raw {
		u, err := url.Parse(proxy)
		if err != nil {
			return nil, err
		}
		if u.Scheme == "" || u.Host == "" {
			return nil, fmt.Errorf("invalid proxy url: %q", proxy)
		}
		rotator.proxies = append(rotator.proxies, u)
	}

	if rng != nil && len(rotator.proxies) > 0 {
		rotator.index = rng.Intn(len(rotator.proxies))
	}
	return rotator, nil
}

func (r *Rotator) Len() int {
	return len(r.proxies)
}

func (r *Rotator) Next() (*url.URL, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.proxies) == 0 {
		return nil, ErrNoProxies
	}

	proxy := r.proxies[r.index]
	r.index = (r.index + 1) % len(r.proxies)
	return proxy, nil
}
