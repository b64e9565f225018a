package engine

import (
	"testing"

	zygo "github.com/glycerine/zygomys/zygo"
	"github.com/golang/geo/r3"
)

// ---------------------------------------------------------------------------
// Preprocessing tests
// ---------------------------------------------------------------------------

func TestPreprocessKeywords(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{
			name:   "simple keyword",
			input:  `(sphere :radius 0.5)`,
			expect: `(sphere "__kw_radius" 0.5)`,
		},
		{
			name:   "multiple keywords",
			input:  `(cone :height 1.5 :radius 0.5)`,
			expect: `(cone "__kw_height" 1.5 "__kw_radius" 0.5)`,
		},
		{
			name:   "keyword in string preserved",
			input:  `"thing with :keyword inside"`,
			expect: `"thing with :keyword inside"`,
		},
		{
			name:   "assignment operator preserved",
			input:  `(def x := 10)`,
			expect: `(def x := 10)`,
		},
		{
			name:   "kebab-case identifier",
			input:  `(merge cone-a cone-b)`,
			expect: `(merge cone_a cone_b)`,
		},
		{
			name:   "hyphen in keyword preserved",
			input:  `(sphere :theta-res 32)`,
			expect: `(sphere "__kw_theta-res" 32)`,
		},
		{
			name:   "minus operator preserved",
			input:  `(- 10 5)`,
			expect: `(- 10 5)`,
		},
		{
			name:   "negative literal preserved",
			input:  `(vec3 1 0.5 -2)`,
			expect: `(vec3 1 0.5 -2)`,
		},
		{
			name:   "comment converted to // style",
			input:  `;; comment with :keyword`,
			expect: `// comment with :keyword`,
		},
		{
			name:   "single semicolon comment",
			input:  `; simple comment`,
			expect: `// simple comment`,
		},
	}
	for _, tc := range tests {
		if got := preprocessSource(tc.input); got != tc.expect {
			t.Errorf("%s: preprocessSource(%q) = %q, want %q", tc.name, tc.input, got, tc.expect)
		}
	}
}

// ---------------------------------------------------------------------------
// Argument parsing tests
// ---------------------------------------------------------------------------

func TestIsKW(t *testing.T) {
	name, ok := isKW(&zygo.SexpStr{S: "__kw_radius"})
	if !ok || name != "radius" {
		t.Errorf("isKW = (%q, %v), want (radius, true)", name, ok)
	}

	if _, ok := isKW(&zygo.SexpStr{S: "plain string"}); ok {
		t.Error("plain string should not be a keyword")
	}
	if _, ok := isKW(&zygo.SexpInt{Val: 3}); ok {
		t.Error("non-string sexp should not be a keyword")
	}
}

func TestParseArgs(t *testing.T) {
	args := []zygo.Sexp{
		&zygo.SexpStr{S: "name"},
		&zygo.SexpStr{S: "__kw_radius"},
		&zygo.SexpFloat{Val: 0.5},
		&zygo.SexpInt{Val: 7},
	}
	pa := parseArgs(args)
	if len(pa.positional) != 2 {
		t.Fatalf("positional count = %d, want 2", len(pa.positional))
	}
	v, ok := pa.kw["radius"]
	if !ok {
		t.Fatal("keyword 'radius' missing")
	}
	f, err := toFloat64(v)
	if err != nil || f != 0.5 {
		t.Errorf("radius = %v (%v), want 0.5", f, err)
	}
}

func TestValueExtraction(t *testing.T) {
	if f, err := toFloat64(&zygo.SexpInt{Val: 3}); err != nil || f != 3 {
		t.Errorf("toFloat64(int 3) = %v, %v", f, err)
	}
	if _, err := toFloat64(&zygo.SexpStr{S: "x"}); err == nil {
		t.Error("toFloat64 should reject strings")
	}
	if _, err := toInt(&zygo.SexpFloat{Val: 1.5}); err == nil {
		t.Error("toInt should reject floats")
	}
	if _, err := toMesh(zygo.SexpNull); err == nil {
		t.Error("toMesh should reject null")
	}
	if _, err := toCurve(&zygo.SexpInt{Val: 1}); err == nil {
		t.Error("toCurve should reject integers")
	}

	v := &sexpVec3{v: r3.Vector{X: 1, Y: 2, Z: 3}}
	got, err := toVec3(v)
	if err != nil || got != (r3.Vector{X: 1, Y: 2, Z: 3}) {
		t.Errorf("toVec3 = %v, %v", got, err)
	}
}
