package sasl

import (
	"io"
	"sort"
	"sync"
)

// Role distinguishes the two sides of a SASL exchange.
type Role int

const (
	RoleClient Role = iota
	RoleServer
)

func (r Role) String() string {
	if r == RoleServer {
		return "server"
	}
	return "client"
}

// MechanismImpl is the stepping contract every mechanism side (client or
// server) satisfies. A Factory (see Mechanism) constructs one per Session,
// so the instance itself is free to hold private state as ordinary struct
// fields instead of the original implementation's void-pointer state box
// (spec §9: "represent mechanism private state with a polymorphic owned
// value").
type MechanismImpl interface {
	// Step advances the mechanism by one round-trip. input is nil on the
	// very first call of a mechanism whose side speaks first (the session
	// driver enforces ErrInputDataRequired otherwise). Step writes its
	// emitted bytes, if any, to out. A returned error is wrapped by the
	// Session as a *MechanismError unless it already is one.
	//
	// more reports whether another round-trip is required; when more is
	// false and err is nil the exchange completed successfully.
	Step(sess *Session, input []byte, out io.Writer) (more bool, err error)
}

// Finisher is an optional extension a MechanismImpl may satisfy to release
// resources when its Session is dropped or sealed.
type Finisher interface {
	Finish()
}

// SecurityLayer is an optional extension point for a post-authentication
// integrity/confidentiality wrap, named in spec §4.4 but left
// non-committal: no mechanism in this module implements it (spec §9).
type SecurityLayer interface {
	Encode(plaintext []byte) ([]byte, error)
	Decode(ciphertext []byte) ([]byte, error)
}

// Factory constructs a MechanismImpl bound to sess. It corresponds to
// spec §4's start(session) -> private_state entry point: the returned
// value *is* the private state, accessed only through MechanismImpl.Step.
type Factory func(sess *Session) (MechanismImpl, error)

// Mechanism is a registry entry: a name, a priority, and up to one Factory
// per role. ClientFirst records whether the client speaks before seeing
// any peer input, so Session.Step can validate input requirements.
type Mechanism struct {
	Name        *Mechname
	Priority    int
	NewClient   Factory
	NewServer   Factory
	ClientFirst bool
}

func (m *Mechanism) factory(role Role) Factory {
	if role == RoleServer {
		return m.NewServer
	}
	return m.NewClient
}

var (
	staticMu    sync.Mutex
	staticMechs []*Mechanism
)

// registerStatic adds m to the link-time-collected table of built-in
// mechanisms. Called from each mechanism file's init(), replacing the
// original's distributed_slice linker trick with the portable form spec §9
// suggests ("an explicit init() function that registers all built-ins").
func registerStatic(m *Mechanism) {
	staticMu.Lock()
	defer staticMu.Unlock()
	staticMechs = append(staticMechs, m)
}

// registry is the per-context union of the static table and dynamically
// registered mechanisms. It is read-mostly: Register mutates it, but a
// Session's Step never does. Per spec §5, concurrent Register alongside
// Suggest/Start is undefined; snapshot on use.
type registry struct {
	mu      sync.RWMutex
	dynamic []*Mechanism
}

func newRegistry() *registry {
	return &registry{}
}

func (r *registry) register(m *Mechanism) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.dynamic = append(r.dynamic, m)
}

// snapshot returns the static table followed by the dynamic list, in
// registration order. Each call copies the slice so the caller may sort it
// freely without racing concurrent registration.
func (r *registry) snapshot() []*Mechanism {
	staticMu.Lock()
	out := make([]*Mechanism, 0, len(staticMechs))
	out = append(out, staticMechs...)
	staticMu.Unlock()

	r.mu.RLock()
	out = append(out, r.dynamic...)
	r.mu.RUnlock()
	return out
}

func (r *registry) find(name *Mechname, role Role) (*Mechanism, error) {
	for _, m := range r.snapshot() {
		if m.Name.Equal(name) {
			if m.factory(role) == nil {
				if role == RoleClient {
					return nil, ErrNoClientCode
				}
				return nil, ErrNoServerCode
			}
			return m, nil
		}
	}
	return nil, &UnknownMechanismError{Name: name.String()}
}

// Comparator orders two registry entries by preference; it should report
// whether a is strictly preferred over b. The default, installed by New,
// is "higher numeric priority wins", ties broken by registration order
// (a stable sort keeps registration order for equal priorities).
type Comparator func(a, b *Mechanism) bool

// DefaultComparator implements "higher numeric priority wins".
func DefaultComparator(a, b *Mechanism) bool {
	return a.Priority > b.Priority
}

func (r *registry) suggest(offered []*Mechname, cmp Comparator) (*Mechname, error) {
	return suggestAmong(r.snapshot(), offered, cmp)
}

func suggestAmong(candidates []*Mechanism, offered []*Mechname, cmp Comparator) (*Mechname, error) {
	candidates = append([]*Mechanism(nil), candidates...)
	sort.SliceStable(candidates, func(i, j int) bool {
		return cmp(candidates[i], candidates[j])
	})

	offeredSet := make(map[string]struct{}, len(offered))
	for _, o := range offered {
		offeredSet[o.String()] = struct{}{}
	}

	for _, m := range candidates {
		if _, ok := offeredSet[m.Name.String()]; ok {
			return m.Name, nil
		}
	}
	return nil, ErrNoSharedMechanism
}
