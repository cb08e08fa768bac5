package crypto

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// TestChecksum tests the XOR fold against independently computed parities
func TestChecksum(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want [2]byte
	}{
		{
			name: "empty input",
			data: nil,
			want: [2]byte{},
		},
		{
			name: "single byte",
			data: []byte{0xAB},
			want: [2]byte{0xAB, 0x00},
		},
		{
			name: "two bytes",
			data: []byte{0xAB, 0xCD},
			want: [2]byte{0xAB, 0xCD},
		},
		{
			name: "pair cancels itself",
			data: []byte{0xFF, 0x00, 0xFF, 0x00},
			want: [2]byte{},
		},
		{
			name: "mixed",
			data: []byte{0x12, 0x34, 0x56, 0x78},
			want: [2]byte{0x12 ^ 0x56, 0x34 ^ 0x78},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Checksum(tt.data); got != tt.want {
				t.Errorf("Checksum(%v) = %v, want %v", tt.data, got, tt.want)
			}
		})
	}
}

// TestChecksumParity verifies byte 0 folds even indices and byte 1 folds
// odd indices for an arbitrary buffer
func TestChecksumParity(t *testing.T) {
	data := make([]byte, 77)
	for i := range data {
		data[i] = byte(i*31 + 7)
	}

	var even, odd byte
	for i, b := range data {
		if i%2 == 0 {
			even ^= b
		} else {
			odd ^= b
		}
	}

	got := Checksum(data)
	if got[0] != even {
		t.Errorf("Checksum()[0] = %#x, want XOR of even indices %#x", got[0], even)
	}
	if got[1] != odd {
		t.Errorf("Checksum()[1] = %#x, want XOR of odd indices %#x", got[1], odd)
	}
}

// TestEncodeAddressFixedVector checks the full layout against hand
// arithmetic: 32 bytes of 0xAA contribute nothing to either parity, so
// the checksum comes from the nospam alone
func TestEncodeAddressFixedVector(t *testing.T) {
	var publicKey [PublicKeySize]byte
	for i := range publicKey {
		publicKey[i] = 0xAA
	}

	out := make([]byte, AddressSize)
	addr, err := EncodeAddress(publicKey, 0x12345678, out)
	if err != nil {
		t.Fatalf("EncodeAddress() error = %v", err)
	}
	if len(addr) != AddressSize {
		t.Fatalf("EncodeAddress() returned %d bytes, want %d", len(addr), AddressSize)
	}

	if !bytes.Equal(addr[:32], publicKey[:]) {
		t.Error("public key bytes not copied verbatim")
	}
	if got := binary.BigEndian.Uint32(addr[32:36]); got != 0x12345678 {
		t.Errorf("nospam encoded as %#x, want big-endian 0x12345678", got)
	}

	// 0x12^0x56 = 0x44 on the even position, 0x34^0x78 = 0x4C on the odd.
	if addr[36] != 0x44 || addr[37] != 0x4C {
		t.Errorf("checksum = {%#x, %#x}, want {0x44, 0x4C}", addr[36], addr[37])
	}
	if got := Checksum(addr[:36]); got != [2]byte{addr[36], addr[37]} {
		t.Errorf("embedded checksum %v disagrees with Checksum() %v", addr[36:38], got)
	}
}

// TestEncodeAddressBufferTooSmall verifies the short-buffer failure leaves
// the buffer untouched
func TestEncodeAddressBufferTooSmall(t *testing.T) {
	var publicKey [PublicKeySize]byte
	publicKey[0] = 0x01

	for _, size := range []int{0, 1, AddressSize - 1} {
		out := make([]byte, size)
		for i := range out {
			out[i] = 0x5A
		}
		snapshot := append([]byte(nil), out...)

		addr, err := EncodeAddress(publicKey, 42, out)
		if err != ErrBufferTooSmall {
			t.Errorf("size %d: error = %v, want ErrBufferTooSmall", size, err)
		}
		if addr != nil {
			t.Errorf("size %d: returned non-nil view on failure", size)
		}
		if !bytes.Equal(out, snapshot) {
			t.Errorf("size %d: buffer modified on failure", size)
		}
	}
}

// TestEncodeAddressLargerBuffer verifies extra capacity is accepted and
// only the 38-byte prefix is written
func TestEncodeAddressLargerBuffer(t *testing.T) {
	var publicKey [PublicKeySize]byte
	out := make([]byte, AddressSize+10)
	out[AddressSize] = 0x77

	addr, err := EncodeAddress(publicKey, 7, out)
	if err != nil {
		t.Fatalf("EncodeAddress() error = %v", err)
	}
	if len(addr) != AddressSize {
		t.Errorf("returned view has %d bytes, want %d", len(addr), AddressSize)
	}
	if out[AddressSize] != 0x77 {
		t.Error("bytes past the address were overwritten")
	}
}

// TestNewToxID tests ToxID creation and checksum agreement with the
// address encoder
func TestNewToxID(t *testing.T) {
	tests := []struct {
		name      string
		publicKey [PublicKeySize]byte
		nospam    [NospamSize]byte
	}{
		{
			name: "zero values",
		},
		{
			name:      "random values",
			publicKey: [PublicKeySize]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31, 32},
			nospam:    [NospamSize]byte{0xDE, 0xAD, 0xBE, 0xEF},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id := NewToxID(tt.publicKey, tt.nospam)
			if id == nil {
				t.Fatal("NewToxID() returned nil")
			}

			out := make([]byte, AddressSize)
			addr, err := EncodeAddress(tt.publicKey, binary.BigEndian.Uint32(tt.nospam[:]), out)
			if err != nil {
				t.Fatalf("EncodeAddress() error = %v", err)
			}
			if !bytes.Equal(id.Bytes(), addr) {
				t.Errorf("ToxID bytes %x disagree with EncodeAddress %x", id.Bytes(), addr)
			}
		})
	}
}

// TestToxIDFromString tests parsing and checksum verification
func TestToxIDFromString(t *testing.T) {
	publicKey := [PublicKeySize]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31, 32}
	nospam := [NospamSize]byte{0xDE, 0xAD, 0xBE, 0xEF}
	original := NewToxID(publicKey, nospam)

	parsed, err := ToxIDFromString(original.String())
	if err != nil {
		t.Fatalf("ToxIDFromString() error = %v", err)
	}
	if *parsed != *original {
		t.Errorf("round trip mismatch: got %+v, want %+v", parsed, original)
	}

	// Corrupt the checksum: parsing must fail.
	corrupted := original.String()[:74] + "00"
	if corrupted == original.String() {
		corrupted = original.String()[:74] + "01"
	}
	if _, err := ToxIDFromString(corrupted); err == nil {
		t.Error("ToxIDFromString() accepted a corrupted checksum")
	}

	if _, err := ToxIDFromString("too short"); err == nil {
		t.Error("ToxIDFromString() accepted a short string")
	}
	if _, err := ToxIDFromString(string(make([]byte, 76))); err == nil {
		t.Error("ToxIDFromString() accepted non-hex input")
	}
}
