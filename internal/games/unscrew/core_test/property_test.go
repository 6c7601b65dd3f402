package core_test

import (
	"strings"
	"testing"

	"github.com/vovakirdan/tui-unscrew/internal/games/unscrew/core"
)

// playOut clicks clickable pieces chosen by pick until the round ends or stalls.
// It checks the level invariants after every click.
func playOut(t *testing.T, e *core.Engine, pick core.Random) {
	t.Helper()
	lv := e.Level()
	slots := lv.Lanes().Slots()
	radius := lv.Rules().PieceRadius
	for step := 0; step < lv.Total()+1; step++ {
		if e.State().Terminal() || e.Stalled() {
			return
		}
		// Only click pieces whose center is not shadowed by another hit region.
		var hits []core.Hit
		for _, h := range lv.ClickablePieces() {
			if got, ok := lv.Stack().HitTest(h.Piece.Pos, radius); ok && got.Piece.ID == h.Piece.ID {
				hits = append(hits, h)
			}
		}
		if len(hits) == 0 {
			return
		}
		h := hits[pick.Intn(len(hits))]
		res := e.HandleClick(h.Piece.Pos)
		if !res.Outcome.Changed() && res.Outcome != core.OutcomeOverflow {
			t.Fatalf("step %d: clicking a clickable piece gave %v", step, res.Outcome)
		}

		if !lv.Conserved() {
			t.Fatalf("step %d: resident %d + queued %d + absorbed %d != total %d",
				step, lv.Resident(), lv.Queue().Size(), lv.Absorbed(), lv.Total())
		}
		if lv.Queue().Size() > lv.Queue().Capacity() {
			t.Fatalf("step %d: queue size %d over capacity", step, lv.Queue().Size())
		}
		for _, side := range []core.Side{core.Left, core.Right} {
			if n := lv.Lanes().Lane(side).Filled; n < 0 || n >= slots {
				t.Fatalf("step %d: %v lane observed at %d/%d", step, side, n, slots)
			}
		}
		if lv.Pool().Total() != lv.Resident()+lv.Queue().Size() {
			t.Fatalf("step %d: pool %d does not match resident+queued %d",
				step, lv.Pool().Total(), lv.Resident()+lv.Queue().Size())
		}
	}
	t.Fatal("round did not finish within total clicks")
}

func TestInvariantsOverRandomRounds(t *testing.T) {
	policies := []core.PolicyKind{core.PolicyModule, core.PolicyRandom}
	for _, policy := range policies {
		r := core.DefaultRules()
		r.RefreshPolicy = policy
		var won, lost, stalled int
		for seed := uint64(1); seed <= 60; seed++ {
			lv, err := core.NewRandomLevel(r, core.DefaultGenParams(), core.NewRNG(seed))
			if err != nil {
				t.Fatalf("seed %d: %v", seed, err)
			}
			e := core.NewEngine(lv, nil)
			playOut(t, e, core.NewRNG(seed*7919))

			switch {
			case e.State() == core.Won:
				won++
				if !lv.Cleared() {
					t.Errorf("seed %d: won with pieces left", seed)
				}
			case e.State() == core.Lost:
				lost++
			case e.Stalled():
				stalled++
			}
		}
		t.Logf("%s policy: won=%d lost=%d stalled=%d", policy, won, lost, stalled)
	}
}

func TestRenderASCII(t *testing.T) {
	layout, _, _ := twoLayerLayout()
	e, _ := newEngine(t, core.DefaultRules(), layout)
	out := core.RenderASCII(e.View(), 80, 24)

	for _, want := range []string{"lanes: C1 0/3 | C0 0/3", "queue: [] 0/4", "pieces: 6 resident", "state: playing"} {
		if !strings.Contains(out, want) {
			t.Errorf("render missing %q:\n%s", want, out)
		}
	}
	if !strings.Contains(out, "#") {
		t.Error("covered pieces should render as #")
	}
	if !strings.Contains(out, "1") {
		t.Error("clickable C1 pieces should render their digit")
	}
}

func TestViewSnapshot(t *testing.T) {
	layout, bottom, _ := twoLayerLayout()
	e, _ := newEngine(t, core.DefaultRules(), layout)
	v := e.View()

	if len(v.Layers) != 2 || v.Total != 6 || v.Resident != 6 {
		t.Fatalf("unexpected view %+v", v)
	}
	for _, pv := range v.Layers[0].Pieces {
		if pv.Clickable {
			t.Errorf("bottom piece %d should not be clickable", pv.ID)
		}
	}
	if v.Remaining[core.C0] != 3 || v.Remaining[core.C1] != 3 {
		t.Errorf("unexpected remaining %v", v.Remaining)
	}

	v.Layers[0].Pieces[0].Color = core.C7
	if e.Level().Stack().Layer(0).Pieces[0].Color != bottom[0].Color {
		t.Error("view must not share storage with the level")
	}
}
