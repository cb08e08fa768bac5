// Package toxbind is a session layer over a Tox peer-to-peer encrypted
// messaging engine.
//
// It owns the lifecycle of one engine instance per Tox value, translates
// the typed Options into the engine's flat option structure, maps the
// engine's integer error codes into sentinel errors, and bridges the
// engine's untyped callback mechanism into typed per-event registration.
// The engine itself is consumed through the engine.Backend interface and
// stays opaque.
//
// Example:
//
//	options := toxbind.NewOptions()
//	options.UDPEnabled = true
//
//	tox, err := toxbind.New(backend, options)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer tox.Kill()
//
//	tox.OnFriendMessage(func(friendID uint32, kind toxbind.MessageType, message string, user any) {
//	    fmt.Printf("Message from %d: %s\n", friendID, message)
//	})
//
//	err = tox.Bootstrap("node.tox.example.com", 33445, "F404ABAA1C99A9D37D61AB54898F56793E1DEF8BD46B1038B9D822E8460FAB67")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for tox.IsRunning() {
//	    tox.Iterate(nil)
//	    time.Sleep(tox.IterationInterval())
//	}
package toxbind
