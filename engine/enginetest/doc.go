// Package enginetest provides an in-memory engine.Backend for deterministic
// testing of the toxbind session layer.
//
// The backend mirrors the native engine contract without any network or
// crypto protocol work: option structures and instance handles are
// accounted so tests can assert leak-freedom, failures are scripted per
// operation family, and events queued with Emit are delivered synchronously
// inside the next Iterate call, just as the real engine delivers callbacks.
//
// Misuse that the real engine leaves undefined, such as touching a handle
// after Kill, panics here so the session layer's ownership discipline is
// enforced in tests.
package enginetest
