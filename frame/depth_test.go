package frame

import (
	"errors"
	"testing"

	"dasa.cc/minxr/geom"
)

func TestDepthCache(t *testing.T) {
	var (
		c       DepthCache
		created int
	)
	create := func(color uint32) (uint32, error) {
		created++
		return color + 100, nil
	}

	for _, color := range []uint32{7, 3, 7, 9, 3, 1} {
		d, err := c.Lookup(color, create)
		if err != nil {
			t.Fatal(err)
		}
		if d != color+100 {
			t.Errorf("Lookup(%v) = %v, want %v", color, d, color+100)
		}
	}
	if created != 4 || c.Len() != 4 {
		t.Fatalf("created %v depth textures for %v pairs, want 4", created, c.Len())
	}

	seen := make(map[uint32]bool)
	for _, d := range c.Depths() {
		if seen[d] {
			t.Errorf("depth texture %v paired twice", d)
		}
		seen[d] = true
	}
}

func TestDepthCacheFailure(t *testing.T) {
	var c DepthCache
	fail := errors.New("out of memory")
	if _, err := c.Lookup(1, func(uint32) (uint32, error) { return 0, fail }); err != fail {
		t.Fatalf("have %v, want %v", err, fail)
	}
	if c.Len() != 0 {
		t.Fatalf("failed create cached a pair")
	}
	d, err := c.Lookup(1, func(uint32) (uint32, error) { return 5, nil })
	if err != nil || d != 5 {
		t.Fatalf("have %v %v, want 5", d, err)
	}
	c.Reset()
	if c.Len() != 0 {
		t.Fatal("reset kept pairs")
	}
}

func TestSceneModels(t *testing.T) {
	s := NewScene(3)
	if n := len(s.Models()); n != 9 {
		t.Fatalf("have %v models, want 9", n)
	}
	p := geom.PoseIdent
	s.Hands[1] = &p
	if n := len(s.Models()); n != 10 {
		t.Fatalf("have %v models with one hand, want 10", n)
	}
}
