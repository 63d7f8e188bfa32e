package asteroids

import (
	"hash/fnv"

	"github.com/vmihailenco/msgpack/v5"

	"github.com/vovakirdan/astroidz/internal/core"
)

// ShipView is the ship's pose in a Snapshot.
type ShipView struct {
	Pos     core.Vec2 `msgpack:"pos"`
	Vel     core.Vec2 `msgpack:"vel"`
	Heading float64   `msgpack:"heading"`
	Thrust  bool      `msgpack:"thrust"`
	Radius  float64   `msgpack:"radius"`
	Grace   int       `msgpack:"grace"`
}

// AsteroidView is one asteroid in a Snapshot.
type AsteroidView struct {
	Pos    core.Vec2 `msgpack:"pos"`
	Size   int       `msgpack:"size"`
	Radius float64   `msgpack:"radius"` // Collision radius against bullets
	Angle  float64   `msgpack:"angle"`
	Shape  []float64 `msgpack:"shape"`
}

// ParticleView is one particle in a Snapshot. Fade runs from 1 (new) to
// near 0 (about to expire).
type ParticleView struct {
	Pos   core.Vec2  `msgpack:"pos"`
	Fade  float64    `msgpack:"fade"`
	Color core.Color `msgpack:"color"`
}

// Snapshot is an immutable copy of one tick's frame. It shares no memory
// with the simulation, so it may be handed to another goroutine.
type Snapshot struct {
	Tick      uint64         `msgpack:"tick"`
	World     core.Vec2      `msgpack:"world"`
	Ship      ShipView       `msgpack:"ship"`
	Bullets   []core.Vec2    `msgpack:"bullets"`
	Asteroids []AsteroidView `msgpack:"asteroids"`
	Particles []ParticleView `msgpack:"particles"`
	State     core.GameState `msgpack:"state"`
}

// Snapshot copies the current frame.
func (s *Simulation) Snapshot() Snapshot {
	ship := s.store.Ship
	snap := Snapshot{
		Tick:  s.tick,
		World: core.V(s.cfg.World.Width, s.cfg.World.Height),
		Ship: ShipView{
			Pos:     ship.Pos,
			Vel:     ship.Vel,
			Heading: ship.Heading,
			Thrust:  ship.Thrust,
			Radius:  ship.Radius,
			Grace:   ship.Grace,
		},
		Bullets:   make([]core.Vec2, len(s.store.Bullets)),
		Asteroids: make([]AsteroidView, len(s.store.Asteroids)),
		Particles: make([]ParticleView, len(s.store.Particles)),
		State:     s.summary(),
	}

	for i, b := range s.store.Bullets {
		snap.Bullets[i] = b.Pos
	}
	for i, a := range s.store.Asteroids {
		snap.Asteroids[i] = AsteroidView{
			Pos:    a.Pos,
			Size:   a.Size,
			Radius: float64(a.Size) * s.cfg.Asteroids.HitScale,
			Angle:  a.Angle,
			Shape:  append([]float64(nil), a.Shape...),
		}
	}
	for i, p := range s.store.Particles {
		snap.Particles[i] = ParticleView{
			Pos:   p.Pos,
			Fade:  float64(p.Life) / float64(p.MaxLife),
			Color: p.Color,
		}
	}
	return snap
}

// summary returns the platform-facing game state.
func (s *Simulation) summary() core.GameState {
	return core.GameState{
		Phase:        s.state.Phase(),
		Score:        s.state.Score(),
		Lives:        s.state.Lives(),
		Level:        s.state.Level(),
		ServerStatus: s.serverStatus,
	}
}

// Encode serializes the snapshot with MessagePack.
func (snap Snapshot) Encode() ([]byte, error) {
	return msgpack.Marshal(&snap)
}

// Hash returns an FNV-64a digest of the encoded snapshot.
// Equal games produce equal hashes.
func (snap Snapshot) Hash() uint64 {
	data, err := snap.Encode()
	if err != nil {
		// Snapshot holds only plain values; encoding cannot fail.
		panic(err)
	}
	h := fnv.New64a()
	h.Write(data)
	return h.Sum64()
}

// DecodeSnapshot parses a snapshot produced by Encode.
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var snap Snapshot
	err := msgpack.Unmarshal(data, &snap)
	return snap, err
}
