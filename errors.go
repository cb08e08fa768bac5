package toxbind

import (
	"errors"

	"github.com/opd-ai/toxbind/crypto"
	"github.com/opd-ai/toxbind/engine"
)

// Sentinel errors for session layer operations, grouped by the native
// operation family they translate. These errors enable reliable error
// classification using errors.Is(). Native integer codes never cross this
// boundary; an unrecognized code maps to its family's generic sentinel.

// Options creation and wrapper-local validation errors. Validation runs
// before any native resource is allocated.
var (
	// ErrOptionsAllocationFailed indicates the engine could not allocate
	// its option structure.
	ErrOptionsAllocationFailed = errors.New("native options allocation failed")

	// ErrOptionsUnexpected indicates an unrecognized option-allocation
	// failure.
	ErrOptionsUnexpected = errors.New("unexpected options allocation failure")

	// ErrProxyHostMissing indicates a proxy was requested without a host.
	ErrProxyHostMissing = errors.New("proxy host required when proxy is enabled")

	// ErrProxyHostTooLong indicates the proxy host exceeds the engine's
	// maximum hostname length.
	ErrProxyHostTooLong = errors.New("proxy host exceeds maximum hostname length")

	// ErrProxyPortMissing indicates a proxy was requested without a port.
	ErrProxyPortMissing = errors.New("proxy port required when proxy is enabled")

	// ErrSavedataDataMissing indicates a savedata type was selected
	// without a payload.
	ErrSavedataDataMissing = errors.New("savedata payload required for the selected savedata type")
)

// Instance creation errors.
var (
	// ErrNewNullArgument indicates the engine rejected a null argument.
	ErrNewNullArgument = errors.New("instance creation: null argument")

	// ErrNewAllocationFailed indicates the engine could not allocate the
	// instance.
	ErrNewAllocationFailed = errors.New("instance creation: allocation failed")

	// ErrNewPortBindingFailed indicates no port in the configured range
	// could be bound.
	ErrNewPortBindingFailed = errors.New("instance creation: port binding failed")

	// ErrNewProxyTypeInvalid indicates the proxy type was not understood
	// by the engine.
	ErrNewProxyTypeInvalid = errors.New("instance creation: invalid proxy type")

	// ErrNewProxyHostInvalid indicates the proxy host was rejected.
	ErrNewProxyHostInvalid = errors.New("instance creation: invalid proxy host")

	// ErrNewProxyPortInvalid indicates the proxy port was rejected.
	ErrNewProxyPortInvalid = errors.New("instance creation: invalid proxy port")

	// ErrNewProxyHostUnresolvable indicates the proxy host did not resolve.
	ErrNewProxyHostUnresolvable = errors.New("instance creation: proxy host not found")

	// ErrNewSavedataEncrypted indicates the savedata payload is encrypted
	// and cannot be loaded directly.
	ErrNewSavedataEncrypted = errors.New("instance creation: savedata is encrypted")

	// ErrNewSavedataMalformed indicates the savedata payload could not be
	// parsed.
	ErrNewSavedataMalformed = errors.New("instance creation: savedata is malformed")

	// ErrNewUnexpected indicates an unrecognized construction failure.
	ErrNewUnexpected = errors.New("instance creation: unexpected failure")
)

// Bootstrap and TCP relay errors.
var (
	// ErrBootstrapNullArgument indicates a required argument was missing
	// or unparseable.
	ErrBootstrapNullArgument = errors.New("bootstrap: null argument")

	// ErrBootstrapHostInvalid indicates the bootstrap host was rejected.
	ErrBootstrapHostInvalid = errors.New("bootstrap: invalid host")

	// ErrBootstrapPortInvalid indicates the bootstrap port was rejected.
	ErrBootstrapPortInvalid = errors.New("bootstrap: invalid port")

	// ErrBootstrapUnexpected indicates an unrecognized bootstrap failure.
	ErrBootstrapUnexpected = errors.New("bootstrap: unexpected failure")
)

// Self info errors.
var (
	// ErrInfoTooLong indicates a name or status message exceeds the
	// engine's limit.
	ErrInfoTooLong = errors.New("info too long")

	// ErrSetInfoUnexpected indicates an unrecognized set-info failure.
	ErrSetInfoUnexpected = errors.New("set info: unexpected failure")
)

// ErrBufferTooSmall indicates a caller-supplied buffer is shorter than the
// data that would be written into it. Checked by the session layer before
// any native write.
var ErrBufferTooSmall = crypto.ErrBufferTooSmall

// ErrToxKilled indicates an operation was attempted on a Tox value after
// Kill.
var ErrToxKilled = errors.New("tox instance has been killed")

// mapOptionsNewError translates a native option-allocation code. Total
// over the native code domain.
func mapOptionsNewError(code engine.ErrOptionsNew) error {
	switch code {
	case engine.OptionsNewOK:
		return nil
	case engine.OptionsNewMalloc:
		return ErrOptionsAllocationFailed
	default:
		return ErrOptionsUnexpected
	}
}

// mapNewError translates a native instance-construction code. Total over
// the native code domain.
func mapNewError(code engine.ErrNew) error {
	switch code {
	case engine.NewOK:
		return nil
	case engine.NewNull:
		return ErrNewNullArgument
	case engine.NewMalloc:
		return ErrNewAllocationFailed
	case engine.NewPortAlloc:
		return ErrNewPortBindingFailed
	case engine.NewProxyBadType:
		return ErrNewProxyTypeInvalid
	case engine.NewProxyBadHost:
		return ErrNewProxyHostInvalid
	case engine.NewProxyBadPort:
		return ErrNewProxyPortInvalid
	case engine.NewProxyNotFound:
		return ErrNewProxyHostUnresolvable
	case engine.NewLoadEncrypted:
		return ErrNewSavedataEncrypted
	case engine.NewLoadBadFormat:
		return ErrNewSavedataMalformed
	default:
		return ErrNewUnexpected
	}
}

// mapBootstrapError translates a native bootstrap or relay code. Total
// over the native code domain.
func mapBootstrapError(code engine.ErrBootstrap) error {
	switch code {
	case engine.BootstrapOK:
		return nil
	case engine.BootstrapNull:
		return ErrBootstrapNullArgument
	case engine.BootstrapBadHost:
		return ErrBootstrapHostInvalid
	case engine.BootstrapBadPort:
		return ErrBootstrapPortInvalid
	default:
		return ErrBootstrapUnexpected
	}
}

// mapSetInfoError translates a native set-info code. Total over the native
// code domain. A SetInfoNull from the engine means the wrapper passed a
// bad argument, which callers cannot act on distinctly, so it folds into
// the generic member.
func mapSetInfoError(code engine.ErrSetInfo) error {
	switch code {
	case engine.SetInfoOK:
		return nil
	case engine.SetInfoTooLong:
		return ErrInfoTooLong
	default:
		return ErrSetInfoUnexpected
	}
}
