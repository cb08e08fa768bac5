package engine

// Size limits fixed by the engine's wire and API contract.
const (
	// PublicKeySize is the size of a long-term public key in bytes.
	PublicKeySize = 32

	// SecretKeySize is the size of a long-term secret key in bytes.
	SecretKeySize = 32

	// NospamSize is the size of the nospam value embedded in an address.
	NospamSize = 4

	// ChecksumSize is the size of the address checksum in bytes.
	ChecksumSize = 2

	// AddressSize is the size of a full address:
	// public key, nospam, checksum.
	AddressSize = PublicKeySize + NospamSize + ChecksumSize

	// MaxHostnameLength is the maximum accepted proxy or bootstrap
	// hostname length.
	MaxHostnameLength = 255

	// MaxNameLength is the maximum self name length in bytes.
	MaxNameLength = 128

	// MaxStatusMessageLength is the maximum status message length in bytes.
	MaxStatusMessageLength = 1007
)

// ErrOptionsNew is the native result code of option-structure allocation.
type ErrOptionsNew int32

const (
	OptionsNewOK ErrOptionsNew = iota
	OptionsNewMalloc
)

// ErrNew is the native result code of instance construction.
type ErrNew int32

const (
	NewOK ErrNew = iota
	NewNull
	NewMalloc
	NewPortAlloc
	NewProxyBadType
	NewProxyBadHost
	NewProxyBadPort
	NewProxyNotFound
	NewLoadEncrypted
	NewLoadBadFormat
)

// ErrBootstrap is the native result code of bootstrap and TCP relay calls.
type ErrBootstrap int32

const (
	BootstrapOK ErrBootstrap = iota
	BootstrapNull
	BootstrapBadHost
	BootstrapBadPort
)

// ErrSetInfo is the native result code of self name and status message
// updates.
type ErrSetInfo int32

const (
	SetInfoOK ErrSetInfo = iota
	SetInfoNull
	SetInfoTooLong
)

// LogLevel is the severity attached to a native log message. The engine
// may emit levels outside this range; consumers must treat unknown values
// as errors rather than dropping the message.
type LogLevel int32

const (
	LogTrace LogLevel = iota
	LogDebug
	LogInfo
	LogWarning
	LogError
)

// Slot identifies one native callback registration point. Each slot holds
// at most one callback; registering again replaces the previous one.
type Slot int32

const (
	SlotSelfConnectionStatus Slot = iota
	SlotFriendRequest
	SlotFriendMessage
	SlotFriendName
	SlotFriendStatusMessage
	SlotFriendStatus
	SlotFriendConnectionStatus
)

// ProxyType is the native proxy kind carried in Options.
type ProxyType uint8

const (
	ProxyNone ProxyType = iota
	ProxyHTTP
	ProxySOCKS5
)

// SavedataType is the native savedata kind carried in Options.
type SavedataType uint8

const (
	SavedataNone SavedataType = iota
	SavedataToxSave
	SavedataSecretKey
)
