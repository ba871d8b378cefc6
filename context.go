package sasl

// Config holds the per-context policy knobs named in spec §4.2 and §4.6.
type Config struct {
	// Comparator orders mechanisms during Suggest/negotiation. Defaults to
	// DefaultComparator ("higher numeric priority wins").
	Comparator Comparator

	// ScramInterop, when true, reads and writes ScramSalt,
	// ScramStoredKey and ScramServerKey properties as hex instead of
	// base64, matching servers that persist SCRAM credentials in hex
	// (spec §3's "(or hex in interop mode)" note).
	ScramInterop bool

	// NonceLength is the number of characters SCRAM generates for its
	// client/server nonce. Defaults to 24.
	NonceLength int
}

func defaultConfig() Config {
	return Config{
		Comparator:  DefaultComparator,
		NonceLength: 24,
	}
}

// SASL is the top-level handle: the mechanism registry, the installed
// Callback, and Config. It is safe to share across goroutines as long as
// the installed Callback is thread-safe (spec §5); each Session it starts
// must only be driven from one goroutine at a time.
type SASL struct {
	registry *registry
	callback Callback
	cfg      Config
}

// Option configures a SASL context at construction time.
type Option func(*SASL)

// WithCallback installs the application's Callback.
func WithCallback(cb Callback) Option {
	return func(s *SASL) { s.callback = cb }
}

// WithConfig replaces the default Config wholesale.
func WithConfig(cfg Config) Option {
	return func(s *SASL) { s.cfg = cfg }
}

// WithComparator overrides the mechanism priority comparator.
func WithComparator(cmp Comparator) Option {
	return func(s *SASL) { s.cfg.Comparator = cmp }
}

// WithMechanism registers m on this context's dynamic registry, in
// addition to the statically linked table built by each mechanism file's
// init(). Per spec §4.2, lookups iterate the union of both tiers.
func WithMechanism(m *Mechanism) Option {
	return func(s *SASL) { s.registry.register(m) }
}

// New builds a SASL context. Built-in mechanisms are always available
// through the static registry; opts may install a Callback, override
// Config, or register additional dynamic mechanisms.
func New(opts ...Option) *SASL {
	s := &SASL{
		registry: newRegistry(),
		cfg:      defaultConfig(),
	}
	for _, o := range opts {
		o(s)
	}
	if s.cfg.Comparator == nil {
		s.cfg.Comparator = DefaultComparator
	}
	if s.cfg.NonceLength <= 0 {
		s.cfg.NonceLength = 24
	}
	return s
}

// Register adds m to this context's dynamic mechanism table after
// construction.
func (s *SASL) Register(m *Mechanism) {
	s.registry.register(m)
}

// Config returns the context's current configuration.
func (s *SASL) Config() Config { return s.cfg }

// ClientStart looks up name for the client role and starts a Session.
func (s *SASL) ClientStart(name *Mechname) (*Session, error) {
	return s.start(name, RoleClient)
}

// ServerStart looks up name for the server role and starts a Session.
func (s *SASL) ServerStart(name *Mechname) (*Session, error) {
	return s.start(name, RoleServer)
}

func (s *SASL) start(name *Mechname, role Role) (*Session, error) {
	mech, err := s.registry.find(name, role)
	if err != nil {
		return nil, err
	}
	factory := mech.factory(role)

	sess := &Session{
		ctx:   s,
		mech:  mech,
		role:  role,
		name:  name,
		props: NewStore(),
	}
	impl, err := factory(sess)
	if err != nil {
		return nil, err
	}
	sess.impl = impl
	return sess, nil
}

// SuggestClientMechanism returns the highest-priority mechanism supported
// locally for the client role whose name appears in offered; ties are
// broken by registration order. Fails with ErrNoSharedMechanism if the
// intersection is empty.
func (s *SASL) SuggestClientMechanism(offered []*Mechname) (*Mechname, error) {
	var clientOnly []*Mechanism
	for _, m := range s.registry.snapshot() {
		if m.NewClient != nil {
			clientOnly = append(clientOnly, m)
		}
	}
	return suggestAmong(clientOnly, offered, s.cfg.Comparator)
}
