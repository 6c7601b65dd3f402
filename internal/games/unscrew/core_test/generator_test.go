package core_test

import (
	"reflect"
	"testing"

	"github.com/vovakirdan/tui-unscrew/internal/games/unscrew/core"
)

func TestGenerateLayoutShape(t *testing.T) {
	r := core.DefaultRules()
	p := core.DefaultGenParams()
	world := r.World()

	for seed := uint64(1); seed <= 30; seed++ {
		layout := core.GenerateLayout(r, p, core.NewRNG(seed))

		if len(layout.Layers) != r.LayerCount {
			t.Fatalf("seed %d: expected %d layers, got %d", seed, r.LayerCount, len(layout.Layers))
		}
		if layout.Total()%3 != 0 {
			t.Errorf("seed %d: total %d not padded to a multiple of 3", seed, layout.Total())
		}
		if !layout.Colored() {
			t.Errorf("seed %d: every piece should be colored", seed)
		}
		if err := layout.Validate(r); err != nil {
			t.Errorf("seed %d: generated layout invalid: %v", seed, err)
		}
		for i, ls := range layout.Layers {
			if ls.Rect.Intersect(world) != ls.Rect {
				t.Errorf("seed %d: layer %d %v escapes the world", seed, i, ls.Rect)
			}
			if ls.Rect.W < p.MinWidth || ls.Rect.W > p.MaxWidth {
				t.Errorf("seed %d: layer %d width %d out of range", seed, i, ls.Rect.W)
			}
			for _, pc := range ls.Pieces {
				if !ls.Rect.Contains(pc.Pos) {
					t.Errorf("seed %d: piece %d at %v outside its layer %v", seed, pc.ID, pc.Pos, ls.Rect)
				}
			}
		}
	}
}

func TestGenerateLayoutDeterministic(t *testing.T) {
	r := core.DefaultRules()
	a := core.GenerateLayout(r, core.DefaultGenParams(), core.NewRNG(123))
	b := core.GenerateLayout(r, core.DefaultGenParams(), core.NewRNG(123))
	if !reflect.DeepEqual(a, b) {
		t.Error("same seed should produce the same layout")
	}
	c := core.GenerateLayout(r, core.DefaultGenParams(), core.NewRNG(124))
	if reflect.DeepEqual(a, c) {
		t.Error("different seeds should differ")
	}
}

func TestPadLayout(t *testing.T) {
	layout := core.Layout{
		World: core.R(0, 0, 800, 480),
		Layers: []core.LayerSpec{
			{Rect: core.R(0, 0, 200, 100), Pieces: row(0, 20, 20, core.NoColor, core.NoColor, core.NoColor, core.NoColor)},
		},
	}
	core.PadLayout(&layout, 20, core.NewRNG(5))
	if layout.Total() != 6 {
		t.Fatalf("expected 6 pieces after padding, got %d", layout.Total())
	}
	ids := make(map[int]bool)
	for _, pc := range layout.Layers[0].Pieces {
		if ids[pc.ID] {
			t.Errorf("duplicate id %d after padding", pc.ID)
		}
		ids[pc.ID] = true
	}
	added := layout.Layers[0].Pieces[4:]
	for _, pc := range added {
		if pc.Pos.X < 20 || pc.Pos.X > 180 || pc.Pos.Y < 20 || pc.Pos.Y > 80 {
			t.Errorf("padded piece %v not inset", pc.Pos)
		}
	}

	if !layout.Uncolored() {
		t.Fatal("padding must not assign colors")
	}
	core.AssignColors(&layout, core.Palette(8), core.NewRNG(5))
	if err := layout.Validate(core.DefaultRules()); err != nil {
		t.Errorf("colored layout invalid: %v", err)
	}
}

func TestGenParamsScale(t *testing.T) {
	p := core.DefaultGenParams().Scale(400, 240)
	if p.MinWidth != 80 || p.MaxWidth != 139 || p.Inset != 10 {
		t.Errorf("unexpected scaled params %+v", p)
	}
	tiny := core.DefaultGenParams().Scale(40, 24)
	if tiny.MinWidth < 2*tiny.Inset+1 || tiny.MaxWidth < tiny.MinWidth {
		t.Errorf("scaled widths too small for the inset: %+v", tiny)
	}
}

func TestRandomLevelStartsPlayable(t *testing.T) {
	for seed := uint64(1); seed <= 30; seed++ {
		lv, err := core.NewRandomLevel(core.DefaultRules(), core.DefaultGenParams(), core.NewRNG(seed))
		if err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
		if lv.Total() == 0 || lv.Total()%3 != 0 {
			t.Errorf("seed %d: bad total %d", seed, lv.Total())
		}
		if lv.Pool().Total() != lv.Total() {
			t.Errorf("seed %d: pool %d != total %d", seed, lv.Pool().Total(), lv.Total())
		}
		left, right := lv.Lanes().LeftColor(), lv.Lanes().RightColor()
		if left == right {
			t.Errorf("seed %d: starting lanes share %v", seed, left)
		}
		if lv.Pool().Modules(left) == 0 || lv.Pool().Modules(right) == 0 {
			t.Errorf("seed %d: starting lane color without modules", seed)
		}
	}
}
