package system

import (
	"context"
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/milk9111/spacesurvival/ecs"
	"github.com/milk9111/spacesurvival/ecs/component"
	"github.com/milk9111/spacesurvival/save"
)

type memoryStore struct {
	slots map[string]save.Data
	saves int
	err   error
}

func (m *memoryStore) Save(_ context.Context, slot string, data save.Data) error {
	if m.err != nil {
		return m.err
	}
	if m.slots == nil {
		m.slots = map[string]save.Data{}
	}
	m.slots[slot] = data
	m.saves++
	return nil
}

func (m *memoryStore) Load(_ context.Context, slot string) (save.Data, bool, error) {
	if m.err != nil {
		return save.Data{}, false, m.err
	}
	d, ok := m.slots[slot]
	return d, ok, nil
}

func addPlayer(t *testing.T, w *ecs.World) ecs.Entity {
	t.Helper()
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.PlayerTagComponent.Kind(), &component.PlayerTag{})
	_ = ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{Rotation: mgl32.QuatIdent()})
	_ = ecs.Add(w, e, component.CameraRigComponent.Kind(), &component.CameraRig{})
	_ = ecs.Add(w, e, component.MotorComponent.Kind(), &component.Motor{})
	return e
}

func TestPlayerStateRoundTrip(t *testing.T) {
	w := ecs.NewWorld()
	e := addPlayer(t, w)

	rot := (&component.CameraRig{Yaw: 60, Pitch: 15}).Rotation()
	if !ApplyPlayerState(w, mgl32.Vec3{4, 5, 6}, rot) {
		t.Fatal("apply should find the player")
	}
	pos, got, ok := PlayerState(w)
	if !ok || pos != (mgl32.Vec3{4, 5, 6}) {
		t.Fatalf("position = %v ok=%v", pos, ok)
	}
	if got.Rotate(component.Forward).Sub(rot.Rotate(component.Forward)).Len() > 1e-4 {
		t.Fatalf("facing = %v, want %v", got.Rotate(component.Forward), rot.Rotate(component.Forward))
	}
	m, _ := ecs.Get(w, e, component.MotorComponent.Kind())
	if f := m.Orientation.Rotate(component.Forward); !mgl32.FloatEqualThreshold(f.Y(), 0, 1e-5) {
		t.Fatal("motor orientation is yaw only")
	}
}

func TestPlayerStateWithoutPlayer(t *testing.T) {
	w := ecs.NewWorld()
	if _, _, ok := PlayerState(w); ok {
		t.Fatal("no player")
	}
	if ApplyPlayerState(w, mgl32.Vec3{}, mgl32.QuatIdent()) {
		t.Fatal("no player to apply to")
	}
}

func TestPersistenceAutosaveInterval(t *testing.T) {
	w := ecs.NewWorld()
	addPlayer(t, w)
	store := &memoryStore{}
	p := NewPersistenceSystem(store, "main", 3, nil)

	for i := 0; i < 7; i++ {
		p.Update(w)
	}
	if store.saves != 2 {
		t.Fatalf("saves = %d, want 2 after 7 frames at interval 3", store.saves)
	}
}

func TestPersistenceRestore(t *testing.T) {
	w := ecs.NewWorld()
	addPlayer(t, w)
	store := &memoryStore{slots: map[string]save.Data{
		"main": {Position: mgl32.Vec3{1, 2, 3}, Rotation: mgl32.QuatIdent()},
	}}
	p := NewPersistenceSystem(store, "main", 0, nil)

	ok, err := p.Restore(context.Background(), w)
	if err != nil || !ok {
		t.Fatalf("restore ok=%v err=%v", ok, err)
	}
	if pos, _, _ := PlayerState(w); pos != (mgl32.Vec3{1, 2, 3}) {
		t.Fatalf("position = %v", pos)
	}

	empty := NewPersistenceSystem(&memoryStore{}, "main", 0, nil)
	if ok, err := empty.Restore(context.Background(), w); ok || err != nil {
		t.Fatalf("empty slot: ok=%v err=%v", ok, err)
	}

	boom := errors.New("disk gone")
	failing := NewPersistenceSystem(&memoryStore{err: boom}, "main", 0, nil)
	if _, err := failing.Restore(context.Background(), w); !errors.Is(err, boom) {
		t.Fatalf("restore error = %v", err)
	}
}
