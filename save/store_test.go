package save

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "save.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenRequiresPath(t *testing.T) {
	if _, err := Open("  "); err == nil {
		t.Fatal("expected error for empty path")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	want := Data{
		Position: mgl32.Vec3{1.5, 20, -3.25},
		Rotation: mgl32.QuatRotate(mgl32.DegToRad(45), mgl32.Vec3{0, 1, 0}),
	}

	if err := s.Save(ctx, "main", want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, ok, err := s.Load(ctx, "main")
	if err != nil || !ok {
		t.Fatalf("load: ok=%v err=%v", ok, err)
	}
	if got.Position.Sub(want.Position).Len() > 1e-5 || got.Rotation.Sub(want.Rotation).Len() > 1e-5 {
		t.Fatalf("loaded %+v, want %+v", got, want)
	}
}

func TestSaveOverwritesSlot(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	_ = s.Save(ctx, "main", Data{Position: mgl32.Vec3{1, 1, 1}, Rotation: mgl32.QuatIdent()})
	_ = s.Save(ctx, "main", Data{Position: mgl32.Vec3{2, 2, 2}, Rotation: mgl32.QuatIdent()})

	got, _, err := s.Load(ctx, "main")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Position != (mgl32.Vec3{2, 2, 2}) {
		t.Fatalf("position = %v, want the second save", got.Position)
	}
}

func TestLoadMissingSlot(t *testing.T) {
	s := openTestStore(t)
	_, ok, err := s.Load(context.Background(), "nothing")
	if err != nil || ok {
		t.Fatalf("missing slot: ok=%v err=%v", ok, err)
	}
}

func TestSlotNameRequired(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	if err := s.Save(ctx, "", Data{}); !errors.Is(err, ErrSlotRequired) {
		t.Fatalf("save error = %v", err)
	}
	if _, _, err := s.Load(ctx, " "); !errors.Is(err, ErrSlotRequired) {
		t.Fatalf("load error = %v", err)
	}
}

func TestSlotsNewestFirst(t *testing.T) {
	s := openTestStore(t)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	s.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	ctx := context.Background()
	for _, slot := range []string{"a", "b", "c"} {
		if err := s.Save(ctx, slot, Data{Rotation: mgl32.QuatIdent()}); err != nil {
			t.Fatalf("save %s: %v", slot, err)
		}
	}

	slots, err := s.Slots(ctx)
	if err != nil {
		t.Fatalf("slots: %v", err)
	}
	want := []string{"c", "b", "a"}
	if len(slots) != len(want) {
		t.Fatalf("slots = %v, want %v", slots, want)
	}
	for i := range want {
		if slots[i] != want[i] {
			t.Fatalf("slots = %v, want %v", slots, want)
		}
	}
}

func TestCanceledContext(t *testing.T) {
	s := openTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := s.Save(ctx, "main", Data{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("save with canceled context = %v", err)
	}
}
