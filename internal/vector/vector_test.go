package vector

import (
	"errors"
	"slices"
	"strconv"
	"testing"
)

func TestVector_SetThenAt(t *testing.T) {
	v := WithSize[int](10)
	for i := 0; i < v.Len(); i++ {
		if err := v.Set(i, i*i); err != nil {
			t.Fatalf("Set(%d): %v", i, err)
		}
		got, err := v.At(i)
		if err != nil {
			t.Fatalf("At(%d): %v", i, err)
		}
		if got != i*i {
			t.Errorf("At(%d) = %d, want %d", i, got, i*i)
		}
	}
}

func TestVector_OutOfRange(t *testing.T) {
	v := Of(1, 2, 3)

	tests := []struct {
		name string
		err  error
	}{
		{"at past end", func() error { _, err := v.At(3); return err }()},
		{"at negative", func() error { _, err := v.At(-1); return err }()},
		{"set past end", v.Set(5, 0)},
		{"ref past end", func() error { _, err := v.Ref(3); return err }()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, ErrOutOfRange) {
				t.Fatalf("expected ErrOutOfRange, got %v", tt.err)
			}
			var re *RangeError
			if !errors.As(tt.err, &re) {
				t.Fatalf("expected *RangeError, got %T", tt.err)
			}
			if re.Len != 3 {
				t.Errorf("RangeError.Len = %d, want 3", re.Len)
			}
		})
	}
}

func TestVector_EmptyEnds(t *testing.T) {
	v := New[string]()

	if _, err := v.Front(); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Front on empty: %v", err)
	}
	if _, err := v.Back(); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("Back on empty: %v", err)
	}
	if err := v.PopBack(); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("PopBack on empty: %v", err)
	}
	if err := v.PopFront(); !errors.Is(err, ErrOutOfRange) {
		t.Errorf("PopFront on empty: %v", err)
	}
	if got := v.PopBack().Error(); got != "vector: pop back on empty vector" {
		t.Errorf("error text = %q", got)
	}
}

func TestVector_GetPanics(t *testing.T) {
	v := Of(1)
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrOutOfRange) {
			t.Errorf("expected range panic, got %v", r)
		}
	}()
	v.Get(1)
}

func TestVector_PushPop(t *testing.T) {
	v := New[int]()
	for i := 0; i < 10; i++ {
		v.PushBack(i)
	}
	for i := 0; i < 5; i++ {
		if err := v.PopBack(); err != nil {
			t.Fatal(err)
		}
	}
	v.PushFront(-1)
	if err := v.PopFront(); err != nil {
		t.Fatal(err)
	}
	if err := v.PopFront(); err != nil {
		t.Fatal(err)
	}

	if got, want := v.Slice(), []int{1, 2, 3, 4}; !slices.Equal(got, want) {
		t.Errorf("contents = %v, want %v", got, want)
	}
	front, _ := v.Front()
	back, _ := v.Back()
	if front != 1 || back != 4 {
		t.Errorf("front/back = %d/%d, want 1/4", front, back)
	}
}

func TestVector_Constructors(t *testing.T) {
	tests := []struct {
		name    string
		v       *Vector[int]
		wantLen int
		wantCap int
	}{
		{"new", New[int](), 0, MinCapacity},
		{"with size zero", WithSize[int](0), 0, MinCapacity},
		{"with size", WithSize[int](20), 20, 20},
		{"literal", Of(1, 2, 3), 3, MinCapacity},
		{"from slice", FromSlice(make([]int, 12)), 12, 12},
		{"from sized", FromSized(9, func(i int) int { return i }), 9, 9},
		{"collect", Collect(slices.Values([]int{1, 2, 3})), 3, MinCapacity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.v.Len() != tt.wantLen {
				t.Errorf("Len() = %d, want %d", tt.v.Len(), tt.wantLen)
			}
			if tt.v.Cap() != tt.wantCap {
				t.Errorf("Cap() = %d, want %d", tt.v.Cap(), tt.wantCap)
			}
		})
	}
}

func TestVector_Convert(t *testing.T) {
	src := Of(1, 2, 3)
	dst := Convert(src, func(x int) string { return strconv.Itoa(x * 10) })

	if got, want := dst.Slice(), []string{"10", "20", "30"}; !slices.Equal(got, want) {
		t.Errorf("Convert = %v, want %v", got, want)
	}
}

func TestVector_CloneIsIndependent(t *testing.T) {
	src := Of(1, 2, 3)
	c := src.Clone()
	if err := c.Set(0, 99); err != nil {
		t.Fatal(err)
	}

	if got, _ := src.At(0); got != 1 {
		t.Errorf("clone shares storage with source: src[0] = %d", got)
	}
}

func TestVector_CopyFrom(t *testing.T) {
	dst := Of(7, 7, 7, 7, 7)
	src := Of(1, 2)
	dst.CopyFrom(src)

	if got, want := dst.Slice(), []int{1, 2}; !slices.Equal(got, want) {
		t.Errorf("CopyFrom = %v, want %v", got, want)
	}

	dst.CopyFrom(dst)
	if dst.Len() != 2 {
		t.Errorf("self copy changed length to %d", dst.Len())
	}
}

func TestVector_Move(t *testing.T) {
	src := Of(1, 2, 3)
	before := Instances()
	moved := src.Move()

	if Instances() != before+1 {
		t.Errorf("Move should count as one construction")
	}
	if src.Len() != 0 || src.Cap() != 0 {
		t.Errorf("source not emptied: len=%d cap=%d", src.Len(), src.Cap())
	}
	if got := moved.Slice(); !slices.Equal(got, []int{1, 2, 3}) {
		t.Errorf("moved = %v", got)
	}

	// a moved-from vector is reusable
	src.PushBack(4)
	if got, _ := src.Back(); got != 4 {
		t.Errorf("reuse after move: back = %d", got)
	}
}

func TestVector_MoveFrom(t *testing.T) {
	dst := Of(9)
	src := Of(1, 2, 3)
	before := Instances()
	dst.MoveFrom(src)

	if Instances() != before {
		t.Errorf("MoveFrom should not construct")
	}
	if got := dst.Slice(); !slices.Equal(got, []int{1, 2, 3}) {
		t.Errorf("dst = %v", got)
	}
	if src.Len() != 0 {
		t.Errorf("src.Len() = %d, want 0", src.Len())
	}
	src.Release()
	src.Release()
}

func TestVector_ZeroValue(t *testing.T) {
	var v Vector[float64]
	v.PushFront(2)
	v.PushBack(3)
	v.PushFront(1)

	if got := v.Slice(); !slices.Equal(got, []float64{1, 2, 3}) {
		t.Errorf("zero value vector = %v", got)
	}
}

func TestVector_Backward(t *testing.T) {
	v := Of("a", "b", "c")
	var got []string
	for i, s := range v.Backward() {
		got = append(got, strconv.Itoa(i)+s)
	}
	if want := []string{"2c", "1b", "0a"}; !slices.Equal(got, want) {
		t.Errorf("Backward = %v, want %v", got, want)
	}
}

func TestVector_ReleaseClearsSlots(t *testing.T) {
	x := new(int)
	v := Of(x)
	storage := v.buf
	v.Release()

	if storage[0] != nil {
		t.Error("released slot still references element")
	}
	if v.Len() != 0 || v.Cap() != 0 {
		t.Errorf("released vector len=%d cap=%d", v.Len(), v.Cap())
	}
}

func TestInstances(t *testing.T) {
	before := Instances()
	a := New[int]()
	_ = WithSize[int](3)
	_ = a.Clone()
	_ = Convert(a, func(x int) int64 { return int64(x) })

	if got := Instances() - before; got != 4 {
		t.Errorf("constructed %d vectors, want 4", got)
	}

	before = Instances()
	a.PushBack(1)
	_ = a.PopBack()
	a.CopyFrom(Of(1, 2))
	if got := Instances() - before; got != 1 {
		t.Errorf("mutations constructed %d vectors, want 1 (the Of literal)", got)
	}
}
