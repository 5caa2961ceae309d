package provisioning

import (
	"cmp"
	"slices"
	"sync"

	"github.com/purecloudlabs/premium-app-installer/internal/config"
)

// Identity describes who runs the installation. UserID is empty when the
// token has no user context, as with client credentials.
type Identity struct {
	UserID     string `yaml:"userId,omitempty"`
	UserName   string `yaml:"userName,omitempty"`
	OrgID      string `yaml:"orgId"`
	OrgName    string `yaml:"orgName"`
	DivisionID string `yaml:"divisionId"`
}

// HasUser reports whether the installer acts as a user.
func (i Identity) HasUser() bool {
	return i.UserID != ""
}

type stateKey struct {
	category config.Category
	name     string
}

// State holds the shared results of provisioning phases.
// It is progressively populated as modules create resources and is read by
// later modules to resolve cross references. It is safe for concurrent use.
type State struct {
	mu        sync.RWMutex
	identity  Identity
	resources map[stateKey]Resource
	order     []stateKey
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{
		resources: make(map[stateKey]Resource),
	}
}

// SetIdentity records the installer identity.
func (s *State) SetIdentity(id Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.identity = id
}

// Identity returns the installer identity.
func (s *State) Identity() Identity {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.identity
}

// Put registers r under its category and manifest name, replacing an
// earlier entry with the same key.
func (s *State) Put(r Resource) {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := stateKey{r.Category, r.Name}
	if _, ok := s.resources[key]; !ok {
		s.order = append(s.order, key)
	}
	s.resources[key] = r
}

// Lookup returns the resource registered for a manifest item.
func (s *State) Lookup(category config.Category, name string) (Resource, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.resources[stateKey{category, name}]
	return r, ok
}

// IDs resolves manifest names to resource IDs. Missing names are returned
// separately so callers can report them.
func (s *State) IDs(category config.Category, names []string) (ids, missing []string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, n := range names {
		if r, ok := s.resources[stateKey{category, n}]; ok {
			ids = append(ids, r.ID)
		} else {
			missing = append(missing, n)
		}
	}
	return ids, missing
}

// Resources returns every registered resource in registration order.
func (s *State) Resources() []Resource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Resource, 0, len(s.order))
	for _, k := range s.order {
		out = append(out, s.resources[k])
	}
	return out
}

// ByCategory returns the resources of one category sorted by name.
func (s *State) ByCategory(category config.Category) []Resource {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []Resource
	for k, r := range s.resources {
		if k.category == category {
			out = append(out, r)
		}
	}
	slices.SortFunc(out, func(a, b Resource) int { return cmp.Compare(a.Name, b.Name) })
	return out
}
