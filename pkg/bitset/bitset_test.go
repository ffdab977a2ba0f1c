package bitset

import "testing"

func TestSetGetRoundTrip(t *testing.T) {
	s := New(200)
	for _, i := range []int{0, 1, 63, 64, 65, 127, 128, 199} {
		s.Set(i, true)
		if !s.Get(i) {
			t.Errorf("Get(%d) = false after Set(%d, true)", i, i)
		}
		s.Set(i, false)
		if s.Get(i) {
			t.Errorf("Get(%d) = true after Set(%d, false)", i, i)
		}
	}
}

func TestClear(t *testing.T) {
	s := New(128)
	for i := 0; i < 128; i++ {
		s.Set(i, true)
	}
	s.Clear()
	for i := 0; i < 128; i++ {
		if s.Get(i) {
			t.Errorf("bit %d still set after Clear", i)
		}
	}
}

func TestIndependentBits(t *testing.T) {
	s := New(128)
	s.Set(5, true)
	s.Set(70, true)
	for i := 0; i < 128; i++ {
		want := i == 5 || i == 70
		if got := s.Get(i); got != want {
			t.Errorf("Get(%d) = %v, want %v", i, got, want)
		}
	}
}
