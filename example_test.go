package toxbind_test

import (
	"fmt"

	toxbind "github.com/opd-ai/toxbind"
	"github.com/opd-ai/toxbind/engine"
	"github.com/opd-ai/toxbind/engine/enginetest"
)

// Example shows the full session lifecycle against the in-memory test
// engine: configure, construct, register handlers, drive the loop, tear
// down.
func Example() {
	backend := enginetest.New()

	options := toxbind.NewOptions()
	options.LogEnabled = false

	tox, err := toxbind.New(backend, options)
	if err != nil {
		fmt.Println("create failed:", err)
		return
	}
	defer tox.Kill()

	tox.OnFriendMessage(func(friendID uint32, kind toxbind.MessageType, message string, user any) {
		fmt.Printf("friend %d: %s\n", friendID, message)
	})

	backend.Emit(engine.SlotFriendMessage,
		engine.Value{Uint: 4},
		engine.Value{Uint: 0},
		engine.Value{Bytes: []byte("hello from the network")},
	)
	tox.Iterate(nil)

	// Output:
	// friend 4: hello from the network
}
