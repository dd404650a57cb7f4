package prefabs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/spacesurvival/ecs/component"
	"github.com/milk9111/spacesurvival/harvest"
	"github.com/milk9111/spacesurvival/voxel"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

var layerNames = map[string]uint32{
	"default":  component.LayerDefault,
	"player":   component.LayerPlayer,
	"resource": component.LayerResource,
	"terrain":  component.LayerTerrain,
	"all":      component.LayerAll,
}

// ParseLayers ORs named layers into a mask. No names means every layer.
func ParseLayers(names []string) (uint32, error) {
	if len(names) == 0 {
		return component.LayerAll, nil
	}
	var mask uint32
	for _, n := range names {
		bit, ok := layerNames[strings.ToLower(strings.TrimSpace(n))]
		if !ok {
			return 0, fmt.Errorf("prefabs: unknown layer %q", n)
		}
		mask |= bit
	}
	return mask, nil
}

type ToolSpec struct {
	Name             string   `yaml:"name"`
	Damage           float32  `yaml:"damage"`
	HitRadius        float32  `yaml:"hit_radius"`
	Range            float32  `yaml:"range"`
	Layers           []string `yaml:"layers"`
	Tier             int      `yaml:"tier"`
	Type             string   `yaml:"type"`
	HarvestVoxel     bool     `yaml:"harvest_voxel"`
	SwingDelayFrames int      `yaml:"swing_delay_frames"`
	CooldownFrames   int      `yaml:"cooldown_frames"`
}

var ErrNegativeFrames = errors.New("prefabs: frame counts must not be negative")

// HarvestTool converts the spec into a validated tool component.
func (s ToolSpec) HarvestTool() (component.HarvestTool, error) {
	kind, err := harvest.ParseType(s.Type)
	if err != nil {
		return component.HarvestTool{}, fmt.Errorf("tool %s: %w", s.Name, err)
	}
	mask, err := ParseLayers(s.Layers)
	if err != nil {
		return component.HarvestTool{}, fmt.Errorf("tool %s: %w", s.Name, err)
	}
	tool := harvest.Tool{
		Damage:       s.Damage,
		HitRadius:    s.HitRadius,
		Range:        s.Range,
		Mask:         mask,
		Tier:         s.Tier,
		Type:         kind,
		HarvestVoxel: s.HarvestVoxel,
	}
	if err := tool.Validate(); err != nil {
		return component.HarvestTool{}, fmt.Errorf("tool %s: %w", s.Name, err)
	}
	if s.SwingDelayFrames < 0 || s.CooldownFrames < 0 {
		return component.HarvestTool{}, fmt.Errorf("tool %s: %w", s.Name, ErrNegativeFrames)
	}
	return component.HarvestTool{
		Name:             s.Name,
		Tool:             tool,
		SwingDelayFrames: s.SwingDelayFrames,
		CooldownFrames:   s.CooldownFrames,
	}, nil
}

func LoadToolSpec(name string) (component.HarvestTool, error) {
	spec, err := LoadSpec[ToolSpec](name)
	if err != nil {
		return component.HarvestTool{}, err
	}
	return spec.HarvestTool()
}

type BoxSpec struct {
	Min [3]float32 `yaml:"min"`
	Max [3]float32 `yaml:"max"`
}

func (b BoxSpec) BBox() cube.BBox {
	return cube.Box(b.Min[0], b.Min[1], b.Min[2], b.Max[0], b.Max[1], b.Max[2])
}

type ResourceSpec struct {
	Name     string    `yaml:"name"`
	Health   float32   `yaml:"health"`
	Type     string    `yaml:"type"`
	MinTier  int       `yaml:"min_tier"`
	Collider []BoxSpec `yaml:"collider"`
}

func (s ResourceSpec) Resource() (component.Resource, error) {
	kind, err := harvest.ParseType(s.Type)
	if err != nil {
		return component.Resource{}, fmt.Errorf("resource %s: %w", s.Name, err)
	}
	if s.Health <= 0 {
		return component.Resource{}, fmt.Errorf("resource %s: health must be positive", s.Name)
	}
	if s.MinTier < 0 {
		return component.Resource{}, fmt.Errorf("resource %s: %w", s.Name, harvest.ErrNegativeTier)
	}
	return component.Resource{
		Name:      s.Name,
		Health:    s.Health,
		MaxHealth: s.Health,
		Type:      kind,
		MinTier:   s.MinTier,
	}, nil
}

func (s ResourceSpec) Boxes() []cube.BBox {
	out := make([]cube.BBox, 0, len(s.Collider))
	for _, b := range s.Collider {
		out = append(out, b.BBox())
	}
	return out
}

type LayerSpec struct {
	From     int    `yaml:"from"`
	To       int    `yaml:"to"`
	Material string `yaml:"material"`
}

type ChunkSpec struct {
	Origin [3]int      `yaml:"origin"`
	Layers []LayerSpec `yaml:"layers"`
}

// Build creates the chunk with its layers filled.
func (s ChunkSpec) Build() (*voxel.Chunk, error) {
	chunk := voxel.NewChunk(cube.Pos{s.Origin[0], s.Origin[1], s.Origin[2]})
	for _, l := range s.Layers {
		m, err := voxel.ParseMaterial(l.Material)
		if err != nil {
			return nil, err
		}
		to := l.To
		if to < l.From {
			to = l.From
		}
		for y := l.From; y <= to; y++ {
			chunk.FillLayer(y, m)
		}
	}
	return chunk, nil
}

type PlacementSpec struct {
	Prefab   string     `yaml:"prefab"`
	Position [3]float32 `yaml:"position"`
}

func (p PlacementSpec) Vec3() mgl32.Vec3 {
	return mgl32.Vec3{p.Position[0], p.Position[1], p.Position[2]}
}

type WorldSpec struct {
	Spawn     [3]float32      `yaml:"spawn"`
	Chunks    []ChunkSpec     `yaml:"chunks"`
	Resources []PlacementSpec `yaml:"resources"`
	Cutscene  string          `yaml:"cutscene"`
}

func (w WorldSpec) SpawnPoint() mgl32.Vec3 {
	return mgl32.Vec3{w.Spawn[0], w.Spawn[1], w.Spawn[2]}
}

func LoadWorldSpec() (WorldSpec, error) {
	return LoadSpec[WorldSpec]("world.yaml")
}
