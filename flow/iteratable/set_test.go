package iteratable

import "testing"

func TestAddDuringIteration(t *testing.T) {
	s := NewSet(0)
	s.Add(1)
	seen := []int{}
	s.IterateOnce()
	for s.Next() {
		v := s.Item().(int)
		seen = append(seen, v)
		if v == 1 {
			s.Add(2)
		}
		if v == 2 {
			s.Add(3)
		}
	}
	if len(seen) != 3 || seen[0] != 1 || seen[1] != 2 || seen[2] != 3 {
		t.Fatalf("expected worklist to pick up items added mid-iteration, got %v", seen)
	}
}

func TestRemoveDuringIteration(t *testing.T) {
	s := NewSet(0)
	s.Add("a")
	s.Add("b")
	s.Remove("a")
	if s.Contains("a") {
		t.Fatal("expected 'a' to be removed")
	}
	if s.Size() != 1 {
		t.Fatalf("expected size 1, got %d", s.Size())
	}
	s.IterateOnce()
	count := 0
	for s.Next() {
		count++
	}
	if count != 1 {
		t.Fatalf("expected one live element after removal, got %d", count)
	}
}

func TestSubsetAndDifference(t *testing.T) {
	s := NewSet(0)
	for _, v := range []int{1, 2, 3, 4} {
		s.Add(v)
	}
	evens := s.Subset(func(e interface{}) bool { return e.(int)%2 == 0 })
	if evens.Size() != 2 {
		t.Fatalf("expected 2 evens, got %d", evens.Size())
	}
	odds := s.Difference(evens)
	if odds.Size() != 2 {
		t.Fatalf("expected 2 odds, got %d", odds.Size())
	}
}

func TestUnion(t *testing.T) {
	a := NewSet(0)
	a.Add(1)
	b := NewSet(0)
	b.Add(1)
	b.Add(2)
	a.Union(b)
	if a.Size() != 2 {
		t.Fatalf("expected union size 2, got %d", a.Size())
	}
}
