package growth

import (
	"math"
	"testing"
)

func TestRegisterSanitizesParams(t *testing.T) {
	r := NewOriginRegistry()
	cases := []struct {
		name string
		p    OriginParams
		want Origin
	}{
		{"infinite cap", OriginParams{InitialRadius: 3, ExpansionRate: 1, MaxRadius: math.Inf(1), MaturationRate: 1},
			Origin{Radius: 0, ExpansionRate: 1, MaxRadius: 0, MaturationRate: 1}},
		{"nan rates", OriginParams{InitialRadius: math.NaN(), ExpansionRate: math.NaN(), MaxRadius: 4, MaturationRate: math.Inf(1)},
			Origin{Radius: 0, ExpansionRate: 0, MaxRadius: 4, MaturationRate: 0}},
		{"negative", OriginParams{InitialRadius: -1, ExpansionRate: -2, MaxRadius: -3, MaturationRate: -4},
			Origin{}},
		{"radius above cap", OriginParams{InitialRadius: 9, ExpansionRate: 1, MaxRadius: 4, MaturationRate: 1},
			Origin{Radius: 4, ExpansionRate: 1, MaxRadius: 4, MaturationRate: 1}},
	}
	for _, tc := range cases {
		id := r.Register(Vec3{}, tc.p)
		got, _ := r.At(id)
		if got.Radius != tc.want.Radius || got.ExpansionRate != tc.want.ExpansionRate ||
			got.MaxRadius != tc.want.MaxRadius || got.MaturationRate != tc.want.MaturationRate {
			t.Fatalf("%s: registered %+v, want %+v", tc.name, got, tc.want)
		}
	}
}

func TestInfiniteCapOriginCompletes(t *testing.T) {
	w := NewWorld(testConfig())
	params := w.DefaultOriginParams()
	params.MaxRadius = math.Inf(1)
	id := w.DesignateWith(Vec3{}, params)

	w.Step()
	o, _ := w.Origin(id)
	if !o.ExpansionComplete || o.Starved {
		t.Fatalf("origin with a non-finite cap should complete as capped: %+v", o)
	}
}
