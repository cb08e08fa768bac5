package enginetest

import (
	"crypto/rand"
	"encoding/binary"
	"sync"

	"github.com/opd-ai/toxbind/crypto"
	"github.com/opd-ai/toxbind/engine"
)

// Backend is an in-memory engine for tests. The zero value is not usable;
// create one with New.
type Backend struct {
	mu sync.Mutex

	// Scripted failure codes. When set to a non-OK value the corresponding
	// operation fails with that code instead of succeeding.
	FailOptionsNew engine.ErrOptionsNew
	FailNew        engine.ErrNew
	FailBootstrap  engine.ErrBootstrap
	FailSetInfo    engine.ErrSetInfo

	// Interval is the reported iteration interval in milliseconds.
	Interval uint32

	liveOptions int
	created     int
	killed      int
	instances   []*instance
}

// New creates a Backend with engine-like defaults.
func New() *Backend {
	return &Backend{Interval: 50}
}

type pendingEvent struct {
	slot engine.Slot
	args []engine.Value
}

type instance struct {
	keys          *crypto.KeyPair
	nospam        uint32
	name          []byte
	statusMessage []byte
	status        uint32
	connection    uint32
	saveBlob      []byte
	callbacks     map[engine.Slot]engine.Callback
	logFn         engine.LogFunc
	pending       []pendingEvent
	bootstraps    []string
	killed        bool
}

// get resolves a handle, panicking on misuse the real engine leaves
// undefined.
func (b *Backend) get(h engine.Handle) *instance {
	inst, ok := h.(*instance)
	if !ok || inst == nil {
		panic("enginetest: invalid handle")
	}
	if inst.killed {
		panic("enginetest: use of handle after Kill")
	}
	return inst
}

// LiveOptions reports how many native option structures are currently
// allocated and unreleased.
func (b *Backend) LiveOptions() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.liveOptions
}

// LiveInstances reports how many instances are alive (created and not yet
// killed).
func (b *Backend) LiveInstances() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.created - b.killed
}

// CreatedCount reports how many instances were successfully constructed.
func (b *Backend) CreatedCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.created
}

// KilledCount reports how many instances were destroyed.
func (b *Backend) KilledCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.killed
}

// BootstrapNodes returns the node addresses handed to Bootstrap and
// AddTCPRelay for the sole live instance, in call order.
func (b *Backend) BootstrapNodes() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	var nodes []string
	for _, inst := range b.instances {
		if !inst.killed {
			nodes = append(nodes, inst.bootstraps...)
		}
	}
	return nodes
}

// Emit queues an event for every live instance. The event is delivered
// synchronously inside that instance's next Iterate call, dispatched to
// whatever callback is registered on the slot at delivery time.
func (b *Backend) Emit(slot engine.Slot, args ...engine.Value) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, inst := range b.instances {
		if !inst.killed {
			inst.pending = append(inst.pending, pendingEvent{slot: slot, args: args})
		}
	}
}

// EmitLog delivers a log message to every live instance's registered log
// callback, synchronously, with a nil user context.
func (b *Backend) EmitLog(level engine.LogLevel, file string, line uint32, function, message string) {
	b.mu.Lock()
	var sinks []engine.LogFunc
	for _, inst := range b.instances {
		if !inst.killed && inst.logFn != nil {
			sinks = append(sinks, inst.logFn)
		}
	}
	b.mu.Unlock()

	for _, fn := range sinks {
		fn(level, file, line, function, message, nil)
	}
}

// OptionsNew implements engine.Backend.
func (b *Backend) OptionsNew() (*engine.Options, engine.ErrOptionsNew) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.FailOptionsNew != engine.OptionsNewOK {
		return nil, b.FailOptionsNew
	}
	b.liveOptions++
	return &engine.Options{
		IPv6Enabled: true,
		UDPEnabled:  true,
	}, engine.OptionsNewOK
}

// OptionsFree implements engine.Backend.
func (b *Backend) OptionsFree(opts *engine.Options) {
	if opts == nil {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.liveOptions <= 0 {
		panic("enginetest: OptionsFree without matching OptionsNew")
	}
	b.liveOptions--
}

// New implements engine.Backend. On success it takes ownership of opts.
func (b *Backend) New(opts *engine.Options) (engine.Handle, engine.ErrNew) {
	if opts == nil {
		return nil, engine.NewNull
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.FailNew != engine.NewOK {
		return nil, b.FailNew
	}
	if opts.ProxyType > engine.ProxySOCKS5 {
		return nil, engine.NewProxyBadType
	}

	var keys *crypto.KeyPair
	var err error
	var saveBlob []byte

	switch opts.SavedataType {
	case engine.SavedataSecretKey:
		if len(opts.SavedataData) != engine.SecretKeySize {
			return nil, engine.NewLoadBadFormat
		}
		var secret [engine.SecretKeySize]byte
		copy(secret[:], opts.SavedataData)
		keys, err = crypto.FromSecretKey(secret)
		if err != nil {
			return nil, engine.NewLoadBadFormat
		}
	case engine.SavedataToxSave:
		// The fake does not parse full saves; the blob round-trips
		// verbatim through savedata export.
		saveBlob = append([]byte(nil), opts.SavedataData...)
		keys, err = crypto.GenerateKeyPair()
		if err != nil {
			return nil, engine.NewMalloc
		}
	default:
		keys, err = crypto.GenerateKeyPair()
		if err != nil {
			return nil, engine.NewMalloc
		}
	}

	if saveBlob == nil {
		saveBlob = append([]byte(nil), keys.Private[:]...)
	}

	var nospamBytes [4]byte
	if _, err := rand.Read(nospamBytes[:]); err != nil {
		return nil, engine.NewMalloc
	}

	inst := &instance{
		keys:      keys,
		nospam:    binary.BigEndian.Uint32(nospamBytes[:]),
		saveBlob:  saveBlob,
		callbacks: make(map[engine.Slot]engine.Callback),
	}
	b.instances = append(b.instances, inst)
	b.created++
	b.liveOptions-- // ownership of opts transfers on success
	return inst, engine.NewOK
}

// Kill implements engine.Backend.
func (b *Backend) Kill(h engine.Handle) {
	inst := b.get(h)
	b.mu.Lock()
	defer b.mu.Unlock()
	inst.killed = true
	inst.callbacks = nil
	inst.pending = nil
	b.killed++
}

// Iterate implements engine.Backend. Queued events are dispatched
// synchronously, in order, to the callbacks registered at delivery time.
func (b *Backend) Iterate(h engine.Handle, user any) {
	inst := b.get(h)

	b.mu.Lock()
	type dispatch struct {
		cb   engine.Callback
		args []engine.Value
	}
	var dispatches []dispatch
	for _, ev := range inst.pending {
		if cb := inst.callbacks[ev.slot]; cb != nil {
			dispatches = append(dispatches, dispatch{cb: cb, args: ev.args})
		}
	}
	inst.pending = nil
	b.mu.Unlock()

	// Invoke outside the lock so handlers may re-enter the backend.
	for _, d := range dispatches {
		d.cb(d.args, user)
	}
}

// IterationInterval implements engine.Backend.
func (b *Backend) IterationInterval(h engine.Handle) uint32 {
	b.get(h)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.Interval == 0 {
		return 50
	}
	return b.Interval
}

func (b *Backend) addNode(h engine.Handle, host string, port uint16) engine.ErrBootstrap {
	inst := b.get(h)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.FailBootstrap != engine.BootstrapOK {
		return b.FailBootstrap
	}
	if host == "" || len(host) > engine.MaxHostnameLength {
		return engine.BootstrapBadHost
	}
	if port == 0 {
		return engine.BootstrapBadPort
	}
	inst.bootstraps = append(inst.bootstraps, host)
	return engine.BootstrapOK
}

// Bootstrap implements engine.Backend.
func (b *Backend) Bootstrap(h engine.Handle, host string, port uint16, publicKey [engine.PublicKeySize]byte) engine.ErrBootstrap {
	return b.addNode(h, host, port)
}

// AddTCPRelay implements engine.Backend.
func (b *Backend) AddTCPRelay(h engine.Handle, host string, port uint16, publicKey [engine.PublicKeySize]byte) engine.ErrBootstrap {
	return b.addNode(h, host, port)
}

// SavedataSize implements engine.Backend.
func (b *Backend) SavedataSize(h engine.Handle) uint32 {
	inst := b.get(h)
	b.mu.Lock()
	defer b.mu.Unlock()
	return uint32(len(inst.saveBlob))
}

// SavedataExport implements engine.Backend.
func (b *Backend) SavedataExport(h engine.Handle, out []byte) {
	inst := b.get(h)
	b.mu.Lock()
	defer b.mu.Unlock()
	copy(out, inst.saveBlob)
}

// RegisterCallback implements engine.Backend; a later registration on the
// same slot replaces the earlier one.
func (b *Backend) RegisterCallback(h engine.Handle, slot engine.Slot, cb engine.Callback) {
	inst := b.get(h)
	b.mu.Lock()
	defer b.mu.Unlock()
	inst.callbacks[slot] = cb
}

// RegisterLogCallback implements engine.Backend.
func (b *Backend) RegisterLogCallback(h engine.Handle, fn engine.LogFunc) {
	inst := b.get(h)
	b.mu.Lock()
	defer b.mu.Unlock()
	inst.logFn = fn
}

// SelfPublicKey implements engine.Backend.
func (b *Backend) SelfPublicKey(h engine.Handle) [engine.PublicKeySize]byte {
	inst := b.get(h)
	b.mu.Lock()
	defer b.mu.Unlock()
	return inst.keys.Public
}

// SelfSecretKey implements engine.Backend.
func (b *Backend) SelfSecretKey(h engine.Handle) [engine.SecretKeySize]byte {
	inst := b.get(h)
	b.mu.Lock()
	defer b.mu.Unlock()
	return inst.keys.Private
}

// SelfNospam implements engine.Backend.
func (b *Backend) SelfNospam(h engine.Handle) uint32 {
	inst := b.get(h)
	b.mu.Lock()
	defer b.mu.Unlock()
	return inst.nospam
}

// SelfSetNospam implements engine.Backend.
func (b *Backend) SelfSetNospam(h engine.Handle, nospam uint32) {
	inst := b.get(h)
	b.mu.Lock()
	defer b.mu.Unlock()
	inst.nospam = nospam
}

// SelfName implements engine.Backend.
func (b *Backend) SelfName(h engine.Handle) []byte {
	inst := b.get(h)
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]byte(nil), inst.name...)
}

// SelfSetName implements engine.Backend.
func (b *Backend) SelfSetName(h engine.Handle, name []byte) engine.ErrSetInfo {
	inst := b.get(h)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.FailSetInfo != engine.SetInfoOK {
		return b.FailSetInfo
	}
	if len(name) > engine.MaxNameLength {
		return engine.SetInfoTooLong
	}
	inst.name = append([]byte(nil), name...)
	return engine.SetInfoOK
}

// SelfStatusMessage implements engine.Backend.
func (b *Backend) SelfStatusMessage(h engine.Handle) []byte {
	inst := b.get(h)
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]byte(nil), inst.statusMessage...)
}

// SelfSetStatusMessage implements engine.Backend.
func (b *Backend) SelfSetStatusMessage(h engine.Handle, message []byte) engine.ErrSetInfo {
	inst := b.get(h)
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.FailSetInfo != engine.SetInfoOK {
		return b.FailSetInfo
	}
	if len(message) > engine.MaxStatusMessageLength {
		return engine.SetInfoTooLong
	}
	inst.statusMessage = append([]byte(nil), message...)
	return engine.SetInfoOK
}

// SelfStatus implements engine.Backend.
func (b *Backend) SelfStatus(h engine.Handle) uint32 {
	inst := b.get(h)
	b.mu.Lock()
	defer b.mu.Unlock()
	return inst.status
}

// SelfSetStatus implements engine.Backend.
func (b *Backend) SelfSetStatus(h engine.Handle, status uint32) {
	inst := b.get(h)
	b.mu.Lock()
	defer b.mu.Unlock()
	inst.status = status
}

// SelfConnectionStatus implements engine.Backend.
func (b *Backend) SelfConnectionStatus(h engine.Handle) uint32 {
	inst := b.get(h)
	b.mu.Lock()
	defer b.mu.Unlock()
	return inst.connection
}

// SetConnectionStatus changes the reported own connection status of every
// live instance, as shifting network conditions would.
func (b *Backend) SetConnectionStatus(status uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, inst := range b.instances {
		if !inst.killed {
			inst.connection = status
		}
	}
}

var _ engine.Backend = (*Backend)(nil)
