package doc

import "testing"

func TestRange(t *testing.T) {
	t.Run("basic properties", func(t *testing.T) {
		r := NewRange(10, 15)

		if r.Len() != 5 {
			t.Errorf("expected length 5, got %d", r.Len())
		}
		if r.IsEmpty() {
			t.Error("range should not be empty")
		}
		if !r.IsValid() {
			t.Error("range should be valid")
		}
		if !r.Contains(10) || r.Contains(15) {
			t.Error("range should contain start, not end")
		}
		if r.String() != "[10:15)" {
			t.Errorf("unexpected string: %s", r.String())
		}
	})

	t.Run("empty and invalid", func(t *testing.T) {
		if !NewRange(7, 7).IsEmpty() {
			t.Error("point range should be empty")
		}
		if NewRange(9, 3).IsValid() {
			t.Error("reversed range should be invalid")
		}
		if NewRange(-1, 3).IsValid() {
			t.Error("negative range should be invalid")
		}
	})

	t.Run("shift", func(t *testing.T) {
		r := NewRange(10, 15).Shift(-3)
		if r.Start != 7 || r.End != 12 {
			t.Errorf("expected [7:12), got %s", r)
		}
	})
}

func TestEdit(t *testing.T) {
	t.Run("insert", func(t *testing.T) {
		e := NewInsert(5, "hi")
		if !e.IsInsert() || e.IsDelete() || e.IsNoOp() {
			t.Error("expected a pure insertion")
		}
		if e.Delta() != 2 {
			t.Errorf("expected delta 2, got %d", e.Delta())
		}
	})

	t.Run("delete", func(t *testing.T) {
		e := NewDelete(5, 9)
		if !e.IsDelete() || e.IsInsert() {
			t.Error("expected a pure deletion")
		}
		if e.Delta() != -4 {
			t.Errorf("expected delta -4, got %d", e.Delta())
		}
	})

	t.Run("no-op", func(t *testing.T) {
		e := NewEdit(NewRange(3, 3), "")
		if !e.IsNoOp() {
			t.Error("expected a no-op")
		}
		if e.Delta() != 0 {
			t.Errorf("expected delta 0, got %d", e.Delta())
		}
	})
}

func TestDiff(t *testing.T) {
	// apply replays an edit against the text it was computed from.
	apply := func(text string, e Edit) string {
		return text[:e.Range.Start] + e.NewText + text[e.Range.End:]
	}

	cases := []struct {
		name string
		old  string
		new  string
	}{
		{"insert at end", "hello", "hello world"},
		{"insert at start", "world", "hello world"},
		{"insert in middle", "hello world", "hello brave world"},
		{"delete at end", "hello world", "hello"},
		{"delete at start", "hello world", "world"},
		{"replace in middle", "hello cruel world", "hello kind world"},
		{"replace everything", "abc", "xyz"},
		{"from empty", "", "abc"},
		{"to empty", "abc", ""},
		{"repeated text", "aaaa", "aaaaa"},
		{"multibyte boundary", "naïve", "nave"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			edit, changed := Diff(tc.old, tc.new)
			if !changed {
				t.Fatal("expected a change")
			}
			if !edit.Range.IsValid() {
				t.Fatalf("invalid edit range %s", edit.Range)
			}
			if got := apply(tc.old, edit); got != tc.new {
				t.Errorf("applying %s to %q: expected %q, got %q", edit, tc.old, tc.new, got)
			}
		})
	}

	t.Run("identical text reports no change", func(t *testing.T) {
		if _, changed := Diff("same", "same"); changed {
			t.Error("expected no change")
		}
	})
}
