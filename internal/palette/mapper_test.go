package palette

import (
	"image/color"
	"testing"
)

// allMappers builds one instance of every strategy with the default parameters.
func allMappers(t *testing.T) map[Kind]Mapper {
	t.Helper()
	out := make(map[Kind]Mapper)
	for _, k := range Kinds() {
		m, err := New(k, DefaultParams())
		if err != nil {
			t.Fatalf("New(%s) failed: %v", k, err)
		}
		out[k] = m
	}
	return out
}

func TestMap_InteriorIsBlack(t *testing.T) {
	params := []Params{
		DefaultParams(),
		{Factor: 0.5, Phase: -3, Delta: 2.2},
		{Factor: 0, Phase: 0, Delta: 0, LinearMin: "#FFFFFF", LinearMax: "#102030", Salt: "x"},
	}

	for _, p := range params {
		for _, k := range Kinds() {
			m, err := New(k, p)
			if err != nil {
				t.Fatalf("New(%s) failed: %v", k, err)
			}
			for _, max := range []int{0, 1, 100, 5000} {
				if got := m.Map(max, max); got != Black {
					t.Errorf("%s: Map(%d, %d) = %+v, want black", k, max, max, got)
				}
			}
		}
	}
}

func TestLinear_Map(t *testing.T) {
	l := NewLinear(DefaultLinearMin, DefaultLinearMax)

	tests := []struct {
		count int
		want  Color
	}{
		{0, Color{255, 255, 0}},
		{50, Color{127, 127, 127}},
		{99, Color{2, 2, 252}},
	}

	for _, tt := range tests {
		if got := l.Map(tt.count, 100); got != tt.want {
			t.Errorf("Map(%d, 100): got %+v, want %+v", tt.count, got, tt.want)
		}
	}
}

func TestSlider_Map(t *testing.T) {
	s := NewSlider()
	if got := s.Map(0, 100); got != (Color{0, 0, 255}) {
		t.Errorf("Map(0): got %+v, want {0 0 255}", got)
	}
	if got := s.Map(50, 100); got != (Color{127, 127, 127}) {
		t.Errorf("Map(50): got %+v, want {127 127 127}", got)
	}
}

func TestSine_Map(t *testing.T) {
	s := NewSine(0.02, 1.0, 1.0)

	tests := []struct {
		count int
		want  Color
	}{
		{0, Color{233, 242, 144}},
		{10, Color{245, 229, 119}},
		{25, Color{253, 203, 82}},
	}

	for _, tt := range tests {
		if got := s.Map(tt.count, 500); got != tt.want {
			t.Errorf("Map(%d): got %+v, want %+v", tt.count, got, tt.want)
		}
	}
}

func TestGrey_Map(t *testing.T) {
	g := NewGrey(0.02, 1.0)

	tests := []struct {
		count int
		want  uint8
	}{
		{0, 233},
		{10, 245},
		{25, 253},
	}

	for _, tt := range tests {
		got := g.Map(tt.count, 500)
		if got != Gray(tt.want) {
			t.Errorf("Map(%d): got %+v, want grey %d", tt.count, got, tt.want)
		}
		if got.Index() != tt.want {
			t.Errorf("Map(%d).Index(): got %d, want %d", tt.count, got.Index(), tt.want)
		}
	}
}

func TestHash_Map(t *testing.T) {
	h := Hash{Salt: DefaultHashSalt}

	tests := []struct {
		count int
		want  Color
	}{
		{0, Color{35, 134, 50}},
		{1, Color{51, 38, 125}},
		{7, Color{157, 19, 24}},
		{42, Color{110, 82, 141}},
	}

	for _, tt := range tests {
		if got := h.Map(tt.count, 100); got != tt.want {
			t.Errorf("Map(%d): got %+v, want %+v", tt.count, got, tt.want)
		}
	}

	if got := (Hash{Salt: "salt"}).Map(5, 100); got != (Color{178, 61, 242}) {
		t.Errorf("custom salt: got %+v, want {178 61 242}", got)
	}
}

func TestHue_Map(t *testing.T) {
	tests := []struct {
		name  string
		phase float64
		want  Color
	}{
		{"red", 0, Color{255, 0, 0}},
		{"cyan", 0.5, Color{0, 255, 255}},
		{"negative phase wraps", -0.5, Color{0, 255, 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHue(0, tt.phase)
			if got := h.Map(3, 10); got != tt.want {
				t.Errorf("Map: got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestMap_Memoized(t *testing.T) {
	for k, m := range allMappers(t) {
		mem, ok := m.(Memoizer)
		if k == KindHash {
			if ok {
				t.Error("hash strategy should not memoize")
			}
			continue
		}
		if !ok {
			t.Fatalf("%s does not memoize", k)
		}

		first := m.Map(17, 100)
		cache := mem.Cache()
		if cache.Len() != 1 || cache.Misses() != 1 || cache.Hits() != 0 {
			t.Fatalf("%s after first call: len=%d misses=%d hits=%d", k, cache.Len(), cache.Misses(), cache.Hits())
		}

		second := m.Map(17, 100)
		if second != first {
			t.Errorf("%s: second call %+v differs from first %+v", k, second, first)
		}
		if cache.Len() != 1 || cache.Hits() != 1 {
			t.Errorf("%s after second call: len=%d hits=%d", k, cache.Len(), cache.Hits())
		}

		// the interior sentinel never reaches the cache
		m.Map(100, 100)
		if cache.Len() != 1 {
			t.Errorf("%s: interior count was cached", k)
		}
	}
}

func TestMap_CacheKeyIsCount(t *testing.T) {
	l := NewLinear(DefaultLinearMin, DefaultLinearMax)
	first := l.Map(10, 100)
	// maxIterations is fixed for a run; a changed value does not invalidate the entry
	if got := l.Map(10, 20); got != first {
		t.Errorf("cached color changed: got %+v, want %+v", got, first)
	}
}

func TestMappers_DoNotShareCaches(t *testing.T) {
	a := NewSine(0.02, 1, 1)
	b := NewSine(0.5, 0, 2)
	a.Map(5, 100)
	if b.Cache().Len() != 0 {
		t.Error("independent mappers share a cache")
	}
	if a.Map(5, 100) == b.Map(5, 100) {
		t.Error("different parameters produced the same color")
	}
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		p    Params
	}{
		{"unknown kind", Kind("plasma"), DefaultParams()},
		{"bad linear min", KindLinear, Params{LinearMin: "#GG0000"}},
		{"bad linear max", KindLinear, Params{LinearMax: "zzz"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.kind, tt.p); err == nil {
				t.Error("New should fail")
			}
		})
	}
}

func TestNew_LinearEndpoints(t *testing.T) {
	m, err := New(KindLinear, Params{LinearMin: "#000000", LinearMax: "FFFFFF"})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	l := m.(*Linear)
	if l.Min != (Color{}) || l.Max != (Color{255, 255, 255}) {
		t.Errorf("endpoints: got %+v..%+v", l.Min, l.Max)
	}
}

func TestColor_ImplementsColor(t *testing.T) {
	var c color.Color = Color{R: 10, G: 20, B: 30}
	got := color.RGBAModel.Convert(c).(color.RGBA)
	if got != (color.RGBA{10, 20, 30, 255}) {
		t.Errorf("RGBA conversion: got %+v", got)
	}
}

func TestColor_Index(t *testing.T) {
	for v := 0; v < 256; v++ {
		if got := Gray(uint8(v)).Index(); got != uint8(v) {
			t.Fatalf("Gray(%d).Index(): got %d", v, got)
		}
	}
}

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    Color
		wantErr bool
	}{
		{"#FF8040", Color{255, 128, 64}, false},
		{"ff8040", Color{255, 128, 64}, false},
		{"#fff", Color{255, 255, 255}, false},
		{"#12", Color{}, true},
		{"", Color{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHex(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseHex(%q): got %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestColor_Hex(t *testing.T) {
	if got := (Color{255, 128, 64}).Hex(); got != "#FF8040" {
		t.Errorf("Hex: got %s, want #FF8040", got)
	}
}

func TestMap_StructLiterals(t *testing.T) {
	tests := []struct {
		name string
		lit  Mapper
		ctor Mapper
	}{
		{"linear", &Linear{Min: DefaultLinearMin, Max: DefaultLinearMax}, NewLinear(DefaultLinearMin, DefaultLinearMax)},
		{"slider", &Slider{}, NewSlider()},
		{"sine", &Sine{Factor: 0.02, Phase: 1, Delta: 1}, NewSine(0.02, 1, 1)},
		{"grey", &Grey{Factor: 0.02, Phase: 1}, NewGrey(0.02, 1)},
		{"hue", &Hue{Factor: 0.1}, NewHue(0.1, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, n := range []int{0, 3, 3, 9, 10} {
				if got, want := tt.lit.Map(n, 10), tt.ctor.Map(n, 10); got != want {
					t.Errorf("Map(%d): got %+v, want %+v", n, got, want)
				}
			}
			if c := tt.lit.(Memoizer).Cache(); c != nil {
				t.Errorf("literal strategy has a cache with %d entries", c.Len())
			}
		})
	}
}
