package cycle

import (
	"reflect"
	"testing"
)

func held(r *R) (p []int) {
	r.Do(func(i int) { p = append(p, i) })
	return p
}

func TestNew(t *testing.T) {
	if _, err := New(0); err == nil {
		t.Fatal("New(0) succeeded")
	}
	r, err := New(3)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if r.Len() != 3 || r.Held() != 0 || r.Right() != 0 {
		t.Fatalf("have len=%v held=%v right=%v", r.Len(), r.Held(), r.Right())
	}
}

func TestCycle(t *testing.T) {
	r, _ := New(3)

	var order []int
	for k := 0; k < 7; k++ {
		i, err := r.Take()
		if err != nil {
			t.Fatalf("take %v: %v", k, err)
		}
		if w, err := r.Wait(); err != nil || w != i {
			t.Fatalf("wait %v: have %v, %v", k, w, err)
		}
		if j, err := r.Return(); err != nil || j != i {
			t.Fatalf("return %v: have %v, %v", k, j, err)
		}
		order = append(order, i)
	}

	if want := []int{0, 1, 2, 0, 1, 2, 0}; !reflect.DeepEqual(want, order) {
		t.Fatalf("want %v, have %v", want, order)
	}
	if r.Held() != 0 {
		t.Fatalf("held %v after returning everything", r.Held())
	}
}

func TestFull(t *testing.T) {
	r, _ := New(3)
	r.Take()
	r.Wait()
	r.Return()

	for k := 0; k < 3; k++ {
		if _, err := r.Take(); err != nil {
			t.Fatalf("take %v: %v", k, err)
		}
	}
	if want, have := []int{1, 2, 0}, held(r); !reflect.DeepEqual(want, have) {
		t.Fatalf("want %v, have %v", want, have)
	}
	if _, err := r.Take(); err == nil {
		t.Fatal("take succeeded with every slot held")
	}

	if i, _ := r.Wait(); i != 1 {
		t.Fatalf("waited %v, want oldest 1", i)
	}
	r.Return()
	if i, err := r.Take(); err != nil || i != 1 {
		t.Fatalf("take after return: have %v, %v", i, err)
	}
}

func TestOrder(t *testing.T) {
	r, _ := New(2)
	if _, err := r.Wait(); err == nil {
		t.Fatal("wait succeeded with nothing held")
	}
	if _, err := r.Return(); err == nil {
		t.Fatal("return succeeded with nothing held")
	}

	r.Take()
	if _, err := r.Return(); err == nil {
		t.Fatal("return succeeded before wait")
	}
	r.Wait()
	if _, err := r.Wait(); err == nil {
		t.Fatal("second wait succeeded before return")
	}
	if !r.Waited() {
		t.Fatal("not waited")
	}
}
