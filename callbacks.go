package toxbind

import (
	"github.com/opd-ai/toxbind/engine"
)

// Connection represents a network connection status.
type Connection uint8

const (
	ConnectionNone Connection = iota
	ConnectionTCP
	ConnectionUDP

	// ConnectionUnknown is reported when the engine delivers an enumerant
	// outside the known range. The native boundary does not guarantee
	// forward-compatible values.
	ConnectionUnknown
)

// UserStatus represents a user's availability.
type UserStatus uint8

const (
	UserStatusNone UserStatus = iota
	UserStatusAway
	UserStatusBusy

	// UserStatusUnknown is reported for out-of-range enumerants.
	UserStatusUnknown
)

// MessageType represents the type of a message.
type MessageType uint8

const (
	MessageTypeNormal MessageType = iota
	MessageTypeAction

	// MessageTypeUnknown is reported for out-of-range enumerants.
	MessageTypeUnknown
)

// Typed callback signatures. Every callback runs synchronously inside the
// Iterate call that triggered it, on the calling goroutine, with the user
// context given to that Iterate call.

// SelfConnectionStatusCallback is called when the own connection status
// changes.
type SelfConnectionStatusCallback func(status Connection, user any)

// FriendRequestCallback is called when a friend request is received.
type FriendRequestCallback func(publicKey [engine.PublicKeySize]byte, message string, user any)

// FriendMessageCallback is called when a message is received from a friend.
type FriendMessageCallback func(friendID uint32, kind MessageType, message string, user any)

// FriendNameCallback is called when a friend changes their nickname.
type FriendNameCallback func(friendID uint32, name string, user any)

// FriendStatusMessageCallback is called when a friend changes their status
// message.
type FriendStatusMessageCallback func(friendID uint32, message string, user any)

// FriendStatusCallback is called when a friend's user status changes.
type FriendStatusCallback func(friendID uint32, status UserStatus, user any)

// FriendConnectionStatusCallback is called when a friend's connection
// status changes.
type FriendConnectionStatusCallback func(friendID uint32, status Connection, user any)

// rawArgs wraps the positional arguments of a native callback with decode
// helpers. Each event slot declares its argument shape by which helpers
// its trampoline uses; positions past the end of the delivered arguments
// decode to zero values so a short native call cannot crash a handler.
type rawArgs []engine.Value

func (a rawArgs) uintAt(i int) uint64 {
	if i < len(a) {
		return a[i].Uint
	}
	return 0
}

func (a rawArgs) bytesAt(i int) []byte {
	if i < len(a) {
		return a[i].Bytes
	}
	return nil
}

func (a rawArgs) stringAt(i int) string {
	return string(a.bytesAt(i))
}

func (a rawArgs) publicKeyAt(i int) [engine.PublicKeySize]byte {
	var key [engine.PublicKeySize]byte
	copy(key[:], a.bytesAt(i))
	return key
}

func (a rawArgs) connectionAt(i int) Connection {
	return decodeConnection(a.uintAt(i))
}

func (a rawArgs) userStatusAt(i int) UserStatus {
	return decodeUserStatus(a.uintAt(i))
}

func (a rawArgs) messageTypeAt(i int) MessageType {
	return decodeMessageType(a.uintAt(i))
}

func decodeConnection(v uint64) Connection {
	if v > uint64(ConnectionUDP) {
		return ConnectionUnknown
	}
	return Connection(v)
}

func decodeUserStatus(v uint64) UserStatus {
	if v > uint64(UserStatusBusy) {
		return UserStatusUnknown
	}
	return UserStatus(v)
}

func decodeMessageType(v uint64) MessageType {
	if v > uint64(MessageTypeAction) {
		return MessageTypeUnknown
	}
	return MessageType(v)
}

// register installs a raw trampoline on one native slot. The engine keeps
// at most one callback per slot, so a later registration replaces the
// earlier one. Registrations are torn down with the instance; they must
// only be made from the goroutine that drives Iterate.
func (t *Tox) register(slot engine.Slot, trampoline engine.Callback) {
	handle, ok := t.alive()
	if !ok {
		return
	}
	t.backend.RegisterCallback(handle, slot, trampoline)
}

// OnSelfConnectionStatus sets the callback for own connection status
// changes.
func (t *Tox) OnSelfConnectionStatus(callback SelfConnectionStatusCallback) {
	if callback == nil {
		return
	}
	t.register(engine.SlotSelfConnectionStatus, func(args []engine.Value, user any) {
		callback(rawArgs(args).connectionAt(0), user)
	})
}

// OnFriendRequest sets the callback for friend requests.
func (t *Tox) OnFriendRequest(callback FriendRequestCallback) {
	if callback == nil {
		return
	}
	t.register(engine.SlotFriendRequest, func(args []engine.Value, user any) {
		a := rawArgs(args)
		callback(a.publicKeyAt(0), a.stringAt(1), user)
	})
}

// OnFriendMessage sets the callback for friend messages.
func (t *Tox) OnFriendMessage(callback FriendMessageCallback) {
	if callback == nil {
		return
	}
	t.register(engine.SlotFriendMessage, func(args []engine.Value, user any) {
		a := rawArgs(args)
		callback(uint32(a.uintAt(0)), a.messageTypeAt(1), a.stringAt(2), user)
	})
}

// OnFriendName sets the callback for friend nickname changes.
func (t *Tox) OnFriendName(callback FriendNameCallback) {
	if callback == nil {
		return
	}
	t.register(engine.SlotFriendName, func(args []engine.Value, user any) {
		a := rawArgs(args)
		callback(uint32(a.uintAt(0)), a.stringAt(1), user)
	})
}

// OnFriendStatusMessage sets the callback for friend status message
// changes.
func (t *Tox) OnFriendStatusMessage(callback FriendStatusMessageCallback) {
	if callback == nil {
		return
	}
	t.register(engine.SlotFriendStatusMessage, func(args []engine.Value, user any) {
		a := rawArgs(args)
		callback(uint32(a.uintAt(0)), a.stringAt(1), user)
	})
}

// OnFriendStatus sets the callback for friend user status changes.
func (t *Tox) OnFriendStatus(callback FriendStatusCallback) {
	if callback == nil {
		return
	}
	t.register(engine.SlotFriendStatus, func(args []engine.Value, user any) {
		a := rawArgs(args)
		callback(uint32(a.uintAt(0)), a.userStatusAt(1), user)
	})
}

// OnFriendConnectionStatus sets the callback for friend connection status
// changes.
func (t *Tox) OnFriendConnectionStatus(callback FriendConnectionStatusCallback) {
	if callback == nil {
		return
	}
	t.register(engine.SlotFriendConnectionStatus, func(args []engine.Value, user any) {
		a := rawArgs(args)
		callback(uint32(a.uintAt(0)), a.connectionAt(1), user)
	})
}
