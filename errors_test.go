package toxbind

import (
	"errors"
	"testing"

	"github.com/opd-ai/toxbind/engine"
)

// TestMapNewError checks the instance-creation table, including the
// generic fallback for codes this wrapper has never seen
func TestMapNewError(t *testing.T) {
	tests := []struct {
		name string
		code engine.ErrNew
		want error
	}{
		{"ok", engine.NewOK, nil},
		{"null", engine.NewNull, ErrNewNullArgument},
		{"malloc", engine.NewMalloc, ErrNewAllocationFailed},
		{"port alloc", engine.NewPortAlloc, ErrNewPortBindingFailed},
		{"proxy bad type", engine.NewProxyBadType, ErrNewProxyTypeInvalid},
		{"proxy bad host", engine.NewProxyBadHost, ErrNewProxyHostInvalid},
		{"proxy bad port", engine.NewProxyBadPort, ErrNewProxyPortInvalid},
		{"proxy not found", engine.NewProxyNotFound, ErrNewProxyHostUnresolvable},
		{"load encrypted", engine.NewLoadEncrypted, ErrNewSavedataEncrypted},
		{"load bad format", engine.NewLoadBadFormat, ErrNewSavedataMalformed},
		{"unknown positive", engine.ErrNew(99), ErrNewUnexpected},
		{"unknown negative", engine.ErrNew(-1), ErrNewUnexpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapNewError(tt.code); !errors.Is(got, tt.want) {
				t.Errorf("mapNewError(%d) = %v, want %v", tt.code, got, tt.want)
			}
		})
	}
}

// TestMapOptionsNewError checks the options family mapping
func TestMapOptionsNewError(t *testing.T) {
	if err := mapOptionsNewError(engine.OptionsNewOK); err != nil {
		t.Errorf("OK mapped to %v", err)
	}
	if err := mapOptionsNewError(engine.OptionsNewMalloc); !errors.Is(err, ErrOptionsAllocationFailed) {
		t.Errorf("malloc mapped to %v", err)
	}
	if err := mapOptionsNewError(engine.ErrOptionsNew(7)); !errors.Is(err, ErrOptionsUnexpected) {
		t.Errorf("unknown code mapped to %v", err)
	}
}

// TestMapBootstrapError checks the bootstrap family mapping
func TestMapBootstrapError(t *testing.T) {
	tests := []struct {
		code engine.ErrBootstrap
		want error
	}{
		{engine.BootstrapOK, nil},
		{engine.BootstrapNull, ErrBootstrapNullArgument},
		{engine.BootstrapBadHost, ErrBootstrapHostInvalid},
		{engine.BootstrapBadPort, ErrBootstrapPortInvalid},
		{engine.ErrBootstrap(42), ErrBootstrapUnexpected},
	}
	for _, tt := range tests {
		if got := mapBootstrapError(tt.code); !errors.Is(got, tt.want) {
			t.Errorf("mapBootstrapError(%d) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

// TestMapSetInfoError checks the set-info family mapping; the null code is
// a wrapper bug as far as callers are concerned and folds into the generic
// member
func TestMapSetInfoError(t *testing.T) {
	tests := []struct {
		code engine.ErrSetInfo
		want error
	}{
		{engine.SetInfoOK, nil},
		{engine.SetInfoTooLong, ErrInfoTooLong},
		{engine.SetInfoNull, ErrSetInfoUnexpected},
		{engine.ErrSetInfo(13), ErrSetInfoUnexpected},
	}
	for _, tt := range tests {
		if got := mapSetInfoError(tt.code); !errors.Is(got, tt.want) {
			t.Errorf("mapSetInfoError(%d) = %v, want %v", tt.code, got, tt.want)
		}
	}
}

// TestSentinelsAreDistinct guards against two families sharing a sentinel
func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrOptionsAllocationFailed, ErrOptionsUnexpected,
		ErrProxyHostMissing, ErrProxyHostTooLong, ErrProxyPortMissing,
		ErrSavedataDataMissing,
		ErrNewNullArgument, ErrNewAllocationFailed, ErrNewPortBindingFailed,
		ErrNewProxyTypeInvalid, ErrNewProxyHostInvalid, ErrNewProxyPortInvalid,
		ErrNewProxyHostUnresolvable, ErrNewSavedataEncrypted, ErrNewSavedataMalformed,
		ErrNewUnexpected,
		ErrBootstrapNullArgument, ErrBootstrapHostInvalid, ErrBootstrapPortInvalid,
		ErrBootstrapUnexpected,
		ErrInfoTooLong, ErrSetInfoUnexpected,
		ErrBufferTooSmall, ErrToxKilled,
	}

	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel %v matches %v", a, b)
			}
		}
	}
}
