package engine

// Handle identifies one live engine instance. Its concrete type belongs to
// the Backend that produced it; callers must treat it as opaque and must
// not use it after passing it to Kill.
type Handle any

// Value is one positional argument of a native callback. The engine hands
// arguments across the boundary untyped: integers and enumerants arrive in
// Uint, byte regions and strings arrive in Bytes. Which field is meaningful
// for a given position is fixed by the callback's slot.
type Value struct {
	Uint  uint64
	Bytes []byte
}

// Callback is the raw calling convention for event callbacks. The engine
// invokes it synchronously from inside Iterate, passing through the user
// context given to that Iterate call unchanged.
type Callback func(args []Value, user any)

// LogFunc receives one native log message. Unlike event callbacks the log
// arguments are structured, matching the engine's log registration point.
type LogFunc func(level LogLevel, file string, line uint32, function, message string, user any)

// Options is the engine's flat option structure. It is allocated through
// Backend.OptionsNew so allocation failure is observable, populated field
// by field, and then either consumed by a successful Backend.New (which
// takes ownership) or released with Backend.OptionsFree.
type Options struct {
	IPv6Enabled             bool
	UDPEnabled              bool
	LocalDiscoveryEnabled   bool
	DHTAnnouncementsEnabled bool
	HolePunchingEnabled     bool

	ProxyType ProxyType
	ProxyHost string
	ProxyPort uint16

	StartPort uint16
	EndPort   uint16
	TCPPort   uint16

	SavedataType SavedataType
	SavedataData []byte

	ExperimentalThreadSafety bool
}

// Backend is the full engine surface consumed by the session layer.
//
// All methods are synchronous. Unless ExperimentalThreadSafety was set in
// the Options an instance was built from, a Handle must only be driven by
// one goroutine at a time; the session layer enforces this with its own
// ownership discipline.
type Backend interface {
	// OptionsNew allocates a fresh option structure with engine defaults.
	// On any code other than OptionsNewOK the returned Options is nil and
	// nothing needs to be released.
	OptionsNew() (*Options, ErrOptionsNew)

	// OptionsFree releases an option structure that was not consumed by a
	// successful New.
	OptionsFree(opts *Options)

	// New constructs an instance from opts. On NewOK the engine takes
	// ownership of opts; on any other code ownership stays with the caller,
	// which must release opts via OptionsFree.
	New(opts *Options) (Handle, ErrNew)

	// Kill destroys the instance. Exactly one Kill per successful New;
	// any use of the handle afterwards is undefined.
	Kill(h Handle)

	// Iterate advances the engine by one step. Registered callbacks fire
	// synchronously inside this call with user passed through unchanged.
	Iterate(h Handle, user any)

	// IterationInterval reports the recommended delay in milliseconds
	// before the next Iterate call.
	IterationInterval(h Handle) uint32

	Bootstrap(h Handle, host string, port uint16, publicKey [PublicKeySize]byte) ErrBootstrap
	AddTCPRelay(h Handle, host string, port uint16, publicKey [PublicKeySize]byte) ErrBootstrap

	// SavedataSize reports the byte size of the serialized instance state.
	// Always nonzero for a live instance.
	SavedataSize(h Handle) uint32

	// SavedataExport writes the serialized instance state into out, which
	// must hold at least SavedataSize bytes. The caller checks the size;
	// the engine does not.
	SavedataExport(h Handle, out []byte)

	// RegisterCallback installs cb on the given slot, replacing any
	// callback registered there before.
	RegisterCallback(h Handle, slot Slot, cb Callback)

	// RegisterLogCallback installs the log sink for the instance.
	RegisterLogCallback(h Handle, fn LogFunc)

	// Pass-through self state accessors.
	SelfPublicKey(h Handle) [PublicKeySize]byte
	SelfSecretKey(h Handle) [SecretKeySize]byte
	SelfNospam(h Handle) uint32
	SelfSetNospam(h Handle, nospam uint32)
	SelfName(h Handle) []byte
	SelfSetName(h Handle, name []byte) ErrSetInfo
	SelfStatusMessage(h Handle) []byte
	SelfSetStatusMessage(h Handle, message []byte) ErrSetInfo
	SelfStatus(h Handle) uint32
	SelfSetStatus(h Handle, status uint32)
	SelfConnectionStatus(h Handle) uint32
}
