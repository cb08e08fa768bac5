// Package crypto implements the identity primitives used by the toxbind
// session layer: key pairs, the address checksum, and the Tox ID address
// format (public key, nospam, checksum).
//
// Example:
//
//	keys, err := crypto.GenerateKeyPair()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	id := crypto.NewToxID(keys.Public, [4]byte{0x12, 0x34, 0x56, 0x78})
//	fmt.Println("Address:", id.String())
package crypto
