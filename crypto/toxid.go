package crypto

import (
	"encoding/binary"
	"encoding/hex"
	"errors"
)

const (
	// PublicKeySize is the size of a public key in bytes.
	PublicKeySize = 32

	// NospamSize is the size of the nospam value in bytes.
	NospamSize = 4

	// ChecksumSize is the size of the address checksum in bytes.
	ChecksumSize = 2

	// AddressSize is the size of a full address: public key, nospam
	// in network byte order, checksum of the preceding 36 bytes.
	AddressSize = PublicKeySize + NospamSize + ChecksumSize
)

// ErrBufferTooSmall indicates a caller-supplied buffer is shorter than the
// data that would be written into it.
var ErrBufferTooSmall = errors.New("buffer too small")

// Checksum folds data into two bytes: byte i is XORed into position i%2.
// Total over any input; an empty input yields {0, 0}.
func Checksum(data []byte) [2]byte {
	var sum [2]byte
	for i, b := range data {
		sum[i%2] ^= b
	}
	return sum
}

// EncodeAddress assembles a full address into out: the public key, the
// nospam in network byte order, then the checksum of those 36 bytes.
// It returns the 38-byte view of out. If out is shorter than AddressSize
// it fails with ErrBufferTooSmall and leaves out unmodified.
func EncodeAddress(publicKey [PublicKeySize]byte, nospam uint32, out []byte) ([]byte, error) {
	if len(out) < AddressSize {
		return nil, ErrBufferTooSmall
	}

	copy(out[:PublicKeySize], publicKey[:])
	binary.BigEndian.PutUint32(out[PublicKeySize:PublicKeySize+NospamSize], nospam)
	sum := Checksum(out[:PublicKeySize+NospamSize])
	copy(out[PublicKeySize+NospamSize:AddressSize], sum[:])

	return out[:AddressSize], nil
}

// ToxID represents a Tox identifier, consisting of a public key, nospam
// value, and checksum.
type ToxID struct {
	PublicKey [PublicKeySize]byte
	Nospam    [NospamSize]byte
	Checksum  [ChecksumSize]byte
}

// NewToxID creates a ToxID from a public key and nospam value.
func NewToxID(publicKey [PublicKeySize]byte, nospam [NospamSize]byte) *ToxID {
	id := &ToxID{
		PublicKey: publicKey,
		Nospam:    nospam,
	}
	id.calculateChecksum()
	return id
}

// calculateChecksum computes the checksum over the public key and nospam.
// Equivalent to Checksum over the first 36 bytes of the encoded address;
// the key length is even so the nospam bytes keep their parity.
func (id *ToxID) calculateChecksum() {
	var sum [ChecksumSize]byte
	for i := 0; i < PublicKeySize; i++ {
		sum[i%2] ^= id.PublicKey[i]
	}
	for i := 0; i < NospamSize; i++ {
		sum[i%2] ^= id.Nospam[i]
	}
	id.Checksum = sum
}

// ToxIDFromString parses a Tox ID from its hexadecimal string
// representation, verifying the embedded checksum.
func ToxIDFromString(s string) (*ToxID, error) {
	if len(s) != AddressSize*2 {
		return nil, errors.New("invalid Tox ID length")
	}

	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}

	id := &ToxID{}
	copy(id.PublicKey[:], data[0:PublicKeySize])
	copy(id.Nospam[:], data[PublicKeySize:PublicKeySize+NospamSize])
	copy(id.Checksum[:], data[PublicKeySize+NospamSize:AddressSize])

	if Checksum(data[:PublicKeySize+NospamSize]) != id.Checksum {
		return nil, errors.New("invalid checksum")
	}

	return id, nil
}

// Bytes returns the 38-byte address encoding of the Tox ID.
func (id *ToxID) Bytes() []byte {
	data := make([]byte, AddressSize)
	copy(data[0:PublicKeySize], id.PublicKey[:])
	copy(data[PublicKeySize:PublicKeySize+NospamSize], id.Nospam[:])
	copy(data[PublicKeySize+NospamSize:AddressSize], id.Checksum[:])
	return data
}

// String returns the hexadecimal string representation of the Tox ID.
func (id *ToxID) String() string {
	return hex.EncodeToString(id.Bytes())
}
