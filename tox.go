package toxbind

import (
	"encoding/hex"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/opd-ai/toxbind/crypto"
	"github.com/opd-ai/toxbind/engine"
)

// Tox represents a live engine instance. It owns exactly one engine handle
// from New until Kill and must be driven by a single goroutine unless
// Options.ThreadsEnabled was set.
type Tox struct {
	backend engine.Backend
	log     logrus.FieldLogger

	// mu guards handle and running. The handle is read under the lock and
	// released before backend calls so callbacks firing inside Iterate can
	// re-enter the session layer.
	mu      sync.RWMutex
	handle  engine.Handle
	running bool
}

// New creates a new Tox instance on the given engine backend. A nil
// options value uses NewOptions defaults.
//
// Construction lowers the options into the engine's flat structure,
// builds the instance, and installs log forwarding when enabled. On any
// failure after the native options were acquired they are released before
// returning; no native resource leaks across failed calls.
func New(backend engine.Backend, options *Options) (*Tox, error) {
	if backend == nil {
		return nil, errors.New("engine backend cannot be nil")
	}
	if options == nil {
		options = NewOptions()
	}

	logger := options.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	native, err := lower(backend, options)
	if err != nil {
		return nil, err
	}

	handle, code := backend.New(native)
	if code != engine.NewOK {
		// Ownership of the options only transfers on success.
		backend.OptionsFree(native)
		return nil, mapNewError(code)
	}

	tox := &Tox{
		backend: backend,
		log:     logger,
		handle:  handle,
		running: true,
	}

	if options.LogEnabled {
		backend.RegisterLogCallback(handle, tox.forwardLog)
	}

	logger.WithFields(logrus.Fields{
		"function": "New",
		"udp":      options.UDPEnabled,
		"ipv6":     options.IPv6Enabled,
	}).Debug("Created Tox instance")

	return tox, nil
}

// alive returns the handle for a backend call, or false after Kill. The
// lock is not held across the backend call itself.
func (t *Tox) alive() (engine.Handle, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.handle, t.running
}

// Kill stops the Tox instance and releases the engine handle. Safe to call
// more than once; only the first call reaches the engine. After Kill every
// other operation is rejected without touching the engine.
func (t *Tox) Kill() {
	t.mu.Lock()
	if !t.running {
		t.mu.Unlock()
		return
	}
	handle := t.handle
	t.running = false
	t.handle = nil
	t.mu.Unlock()

	t.backend.Kill(handle)

	t.log.WithField("function", "Kill").Debug("Destroyed Tox instance")
}

// IsRunning checks if the Tox instance is still running.
func (t *Tox) IsRunning() bool {
	_, ok := t.alive()
	return ok
}

// Iterate performs a single iteration of the engine event loop. Registered
// callbacks fire synchronously inside this call; user is passed through to
// them unchanged and is never inspected or retained by the session layer.
func (t *Tox) Iterate(user any) {
	handle, ok := t.alive()
	if !ok {
		return
	}
	t.backend.Iterate(handle, user)
}

// IterationInterval returns the recommended interval between Iterate
// calls.
func (t *Tox) IterationInterval() time.Duration {
	handle, ok := t.alive()
	if !ok {
		return 50 * time.Millisecond
	}
	return time.Duration(t.backend.IterationInterval(handle)) * time.Millisecond
}

// parseBootstrapKey decodes a hex public key for bootstrap-family calls.
func parseBootstrapKey(publicKeyHex string) ([engine.PublicKeySize]byte, error) {
	var key [engine.PublicKeySize]byte
	decoded, err := hex.DecodeString(publicKeyHex)
	if err != nil || len(decoded) != engine.PublicKeySize {
		return key, fmt.Errorf("%w: public key must be %d hex-encoded bytes",
			ErrBootstrapNullArgument, engine.PublicKeySize)
	}
	copy(key[:], decoded)
	return key, nil
}

// Bootstrap connects to a bootstrap node to join the Tox network. The
// public key is the node's DHT key as a hex string.
func (t *Tox) Bootstrap(address string, port uint16, publicKeyHex string) error {
	handle, ok := t.alive()
	if !ok {
		return ErrToxKilled
	}

	key, err := parseBootstrapKey(publicKeyHex)
	if err != nil {
		return err
	}

	if err := mapBootstrapError(t.backend.Bootstrap(handle, address, port, key)); err != nil {
		t.log.WithFields(logrus.Fields{
			"function": "Bootstrap",
			"address":  address,
			"port":     port,
			"error":    err.Error(),
		}).Warn("Bootstrap failed")
		return err
	}
	return nil
}

// AddTCPRelay adds a TCP relay node used to reach the network when UDP is
// unavailable.
func (t *Tox) AddTCPRelay(address string, port uint16, publicKeyHex string) error {
	handle, ok := t.alive()
	if !ok {
		return ErrToxKilled
	}

	key, err := parseBootstrapKey(publicKeyHex)
	if err != nil {
		return err
	}

	return mapBootstrapError(t.backend.AddTCPRelay(handle, address, port, key))
}

// SavedataSize returns the byte size of the serialized instance state, or
// zero after Kill.
func (t *Tox) SavedataSize() uint32 {
	handle, ok := t.alive()
	if !ok {
		return 0
	}
	return t.backend.SavedataSize(handle)
}

// GetSavedata returns the serialized instance state for persistence. The
// size query and the export happen as one step under the instance lock so
// the engine cannot change the size in between. Returns nil after Kill.
func (t *Tox) GetSavedata() []byte {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !t.running {
		return nil
	}

	buf := make([]byte, t.backend.SavedataSize(t.handle))
	t.backend.SavedataExport(t.handle, buf)
	return buf
}

// ExportSavedata writes the serialized instance state into out and returns
// the written view. Fails with ErrBufferTooSmall before any native write
// when out is shorter than the reported size; the size re-check and the
// export happen under the instance lock.
func (t *Tox) ExportSavedata(out []byte) ([]byte, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if !t.running {
		return nil, ErrToxKilled
	}

	size := t.backend.SavedataSize(t.handle)
	if uint32(len(out)) < size {
		return nil, ErrBufferTooSmall
	}
	t.backend.SavedataExport(t.handle, out[:size])
	return out[:size], nil
}

// SelfGetAddress returns the Tox ID of this instance as a hex string:
// public key, nospam, checksum.
func (t *Tox) SelfGetAddress() string {
	handle, ok := t.alive()
	if !ok {
		return ""
	}

	out := make([]byte, crypto.AddressSize)
	addr, err := crypto.EncodeAddress(t.backend.SelfPublicKey(handle), t.backend.SelfNospam(handle), out)
	if err != nil {
		return ""
	}
	return hex.EncodeToString(addr)
}

// SelfGetAddressBytes writes the 38-byte address of this instance into out
// and returns the written view. Fails with ErrBufferTooSmall when out is
// shorter than the address, leaving out unmodified.
func (t *Tox) SelfGetAddressBytes(out []byte) ([]byte, error) {
	handle, ok := t.alive()
	if !ok {
		return nil, ErrToxKilled
	}
	return crypto.EncodeAddress(t.backend.SelfPublicKey(handle), t.backend.SelfNospam(handle), out)
}

// SelfGetPublicKey returns the public key of this instance.
func (t *Tox) SelfGetPublicKey() [engine.PublicKeySize]byte {
	handle, ok := t.alive()
	if !ok {
		return [engine.PublicKeySize]byte{}
	}
	return t.backend.SelfPublicKey(handle)
}

// SelfGetSecretKey returns the secret key of this instance.
func (t *Tox) SelfGetSecretKey() [engine.SecretKeySize]byte {
	handle, ok := t.alive()
	if !ok {
		return [engine.SecretKeySize]byte{}
	}
	return t.backend.SelfSecretKey(handle)
}

// SelfGetNospam returns the nospam value of this instance in host order.
func (t *Tox) SelfGetNospam() uint32 {
	handle, ok := t.alive()
	if !ok {
		return 0
	}
	return t.backend.SelfNospam(handle)
}

// SelfSetNospam replaces the nospam value, invalidating the previously
// published address without changing the key pair.
func (t *Tox) SelfSetNospam(nospam uint32) error {
	handle, ok := t.alive()
	if !ok {
		return ErrToxKilled
	}
	t.backend.SelfSetNospam(handle, nospam)
	return nil
}

// SelfSetName sets the nickname of this instance. Fails with ErrInfoTooLong
// before reaching the engine when the name exceeds the limit.
func (t *Tox) SelfSetName(name string) error {
	handle, ok := t.alive()
	if !ok {
		return ErrToxKilled
	}
	if len(name) > engine.MaxNameLength {
		return ErrInfoTooLong
	}
	return mapSetInfoError(t.backend.SelfSetName(handle, []byte(name)))
}

// SelfGetName gets the nickname of this instance.
func (t *Tox) SelfGetName() string {
	handle, ok := t.alive()
	if !ok {
		return ""
	}
	return string(t.backend.SelfName(handle))
}

// SelfSetStatusMessage sets the status message of this instance. Fails
// with ErrInfoTooLong before reaching the engine when the message exceeds
// the limit.
func (t *Tox) SelfSetStatusMessage(message string) error {
	handle, ok := t.alive()
	if !ok {
		return ErrToxKilled
	}
	if len(message) > engine.MaxStatusMessageLength {
		return ErrInfoTooLong
	}
	return mapSetInfoError(t.backend.SelfSetStatusMessage(handle, []byte(message)))
}

// SelfGetStatusMessage gets the status message of this instance.
func (t *Tox) SelfGetStatusMessage() string {
	handle, ok := t.alive()
	if !ok {
		return ""
	}
	return string(t.backend.SelfStatusMessage(handle))
}

// SelfSetStatus sets the user status of this instance.
func (t *Tox) SelfSetStatus(status UserStatus) error {
	handle, ok := t.alive()
	if !ok {
		return ErrToxKilled
	}
	t.backend.SelfSetStatus(handle, uint32(status))
	return nil
}

// SelfGetStatus returns the user status of this instance.
func (t *Tox) SelfGetStatus() UserStatus {
	handle, ok := t.alive()
	if !ok {
		return UserStatusNone
	}
	return decodeUserStatus(uint64(t.backend.SelfStatus(handle)))
}

// SelfGetConnectionStatus returns the current network connection status.
func (t *Tox) SelfGetConnectionStatus() Connection {
	handle, ok := t.alive()
	if !ok {
		return ConnectionNone
	}
	return decodeConnection(uint64(t.backend.SelfConnectionStatus(handle)))
}
