package set

import (
	"sort"
	"testing"
)

const N = 1000

var uniq, dups []string

func init() {
	uniq, dups = make([]string, N), make([]string, N)
	for i := 0; i < N; i++ {
		var s string
		for j := i; j < i+N; j++ {
			s += string(rune(j))
		}
		uniq[i] = s
		if dupit(i) {
			s = uniq[i-1]
		}
		dups[i] = s
	}
}

func dupit(i int) bool { return i%2 != 0 }

func TestSliceInsert(t *testing.T) {
	var a Slice[string]
	for i, s := range uniq {
		j, ok := a.Insert(s)
		if !ok {
			t.Fatalf("Insert(uniq[%v]) failed", i)
		}
		if i != j {
			t.Fatalf("Insert(uniq[%v]) inserted at %v", i, j)
		}
		if !sort.StringsAreSorted(a) {
			t.Fatal("sort.StringsAreSorted returned false")
		}
	}
	if have, want := len(a), len(uniq); have != want {
		t.Fatalf("Unexpected len after inserts; have %v, want %v.", have, want)
	}

	var b Slice[string]
	for i, s := range dups {
		j, ok := b.Insert(s)
		if dupit(i) && ok {
			t.Fatalf("Inserted at %v when expecting dup at %v.", j, i)
		}
		if !sort.StringsAreSorted(b) {
			t.Fatal("sort.StringsAreSorted returned false")
		}
	}
	if have, want := len(b), N/2; have != want {
		t.Fatalf("Unexpected len after dup inserts; have %v, want %v.", have, want)
	}
}

func TestSliceHas(t *testing.T) {
	a := Of("XR_KHR_opengl_enable", "XR_EXT_debug_utils", "XR_KHR_opengl_enable")
	if len(a) != 2 {
		t.Fatalf("have len %v, want 2", len(a))
	}
	for _, s := range []string{"XR_KHR_opengl_enable", "XR_EXT_debug_utils"} {
		if !a.Has(s) {
			t.Errorf("Has(%q) returned false", s)
		}
	}
	if a.Has("XR_KHR_vulkan_enable") {
		t.Error("Has returned true for missing value")
	}
	var empty Slice[string]
	if empty.Has("") {
		t.Error("empty slice Has returned true")
	}
}

func TestSimpleUpsert(t *testing.T) {
	var (
		keys Slice[uint32]
		vals Simple[string]
	)
	for _, k := range []uint32{30, 10, 20, 10} {
		i, ok := keys.Insert(k)
		vals.Upsert(string(rune('a'+k/10)), i, ok)
	}
	if have, want := len(keys), 3; have != want {
		t.Fatalf("have %v keys, want %v", have, want)
	}
	for i, want := range []string{"b", "c", "d"} {
		if vals[i] != want {
			t.Errorf("vals[%v] = %q, want %q", i, vals[i], want)
		}
	}
}

func TestFilter(t *testing.T) {
	a := []int{3, 1, 2, 3, 1}
	Filter(&a)
	if len(a) != 3 || a[0] != 1 || a[1] != 2 || a[2] != 3 {
		t.Fatalf("have %v, want [1 2 3]", a)
	}
}

func BenchmarkSliceFilter(b *testing.B) {
	z := make([]string, len(dups))
	copy(z, dups)
	a := Slice[string](z[:0])

	b.ReportAllocs()
	b.ResetTimer()

	for _, x := range z {
		a.Insert(x)
	}
	if len(a) != N/2 {
		b.Fail()
	}
}

func BenchmarkSliceInsertUniq(b *testing.B) {
	b.ReportAllocs()
	for n := 0; n < b.N; n++ {
		var a Slice[string]
		for _, s := range uniq {
			a.Insert(s)
		}
	}
}

func BenchmarkMapStringInsertUniq(b *testing.B) {
	b.ReportAllocs()
	for n := 0; n < b.N; n++ {
		m := make(map[string]struct{})
		for _, s := range uniq {
			m[s] = struct{}{}
		}
	}
}
