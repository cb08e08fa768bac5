package enginetest

import (
	"testing"

	"github.com/opd-ai/toxbind/engine"
)

func newInstance(t *testing.T, b *Backend) engine.Handle {
	t.Helper()
	opts, code := b.OptionsNew()
	if code != engine.OptionsNewOK {
		t.Fatalf("OptionsNew() code = %d", code)
	}
	h, newCode := b.New(opts)
	if newCode != engine.NewOK {
		t.Fatalf("New() code = %d", newCode)
	}
	return h
}

// TestOwnershipAccounting tests the options transfer rules: success
// consumes, failure leaves the caller to free
func TestOwnershipAccounting(t *testing.T) {
	b := New()

	h := newInstance(t, b)
	if live := b.LiveOptions(); live != 0 {
		t.Errorf("LiveOptions() = %d after successful New, want 0", live)
	}

	b.FailNew = engine.NewPortAlloc
	opts, _ := b.OptionsNew()
	if _, code := b.New(opts); code != engine.NewPortAlloc {
		t.Fatalf("New() code = %d, want scripted failure", code)
	}
	if live := b.LiveOptions(); live != 1 {
		t.Errorf("LiveOptions() = %d after failed New, want 1", live)
	}
	b.OptionsFree(opts)
	if live := b.LiveOptions(); live != 0 {
		t.Errorf("LiveOptions() = %d after free, want 0", live)
	}

	b.Kill(h)
	if live := b.LiveInstances(); live != 0 {
		t.Errorf("LiveInstances() = %d, want 0", live)
	}
}

// TestEmitDeliversInsideIterate tests synchronous in-order delivery to the
// registered callback
func TestEmitDeliversInsideIterate(t *testing.T) {
	b := New()
	h := newInstance(t, b)
	defer b.Kill(h)

	var got []uint64
	var gotUser any
	b.RegisterCallback(h, engine.SlotFriendName, func(args []engine.Value, user any) {
		got = append(got, args[0].Uint)
		gotUser = user
	})

	b.Emit(engine.SlotFriendName, engine.Value{Uint: 1})
	b.Emit(engine.SlotFriendName, engine.Value{Uint: 2})
	if len(got) != 0 {
		t.Fatal("events delivered before Iterate")
	}

	marker := &struct{}{}
	b.Iterate(h, marker)
	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("delivered %v, want [1 2] in order", got)
	}
	if gotUser != marker {
		t.Error("user context not threaded through")
	}

	b.Iterate(h, nil)
	if len(got) != 2 {
		t.Error("queue not drained after delivery")
	}
}

// TestUseAfterKillPanics tests the misuse guard that stands in for the
// real engine's undefined behavior
func TestUseAfterKillPanics(t *testing.T) {
	b := New()
	h := newInstance(t, b)
	b.Kill(h)

	defer func() {
		if recover() == nil {
			t.Error("Iterate on a killed handle did not panic")
		}
	}()
	b.Iterate(h, nil)
}

// TestSavedataRoundTrip tests that a full-save payload round-trips through
// export
func TestSavedataRoundTrip(t *testing.T) {
	b := New()
	opts, _ := b.OptionsNew()
	opts.SavedataType = engine.SavedataToxSave
	opts.SavedataData = []byte("persisted state")

	h, code := b.New(opts)
	if code != engine.NewOK {
		t.Fatalf("New() code = %d", code)
	}
	defer b.Kill(h)

	size := b.SavedataSize(h)
	if int(size) != len("persisted state") {
		t.Fatalf("SavedataSize() = %d", size)
	}
	out := make([]byte, size)
	b.SavedataExport(h, out)
	if string(out) != "persisted state" {
		t.Errorf("SavedataExport() = %q", out)
	}
}
