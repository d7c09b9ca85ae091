package dedup

import (
	"errors"
	"testing"

	"github.com/nao1215/dupmeta/internal/model"
)

// page is a small constructor for test pages.
func page(url, title, h1, meta string) model.Page {
	return model.Page{URL: url, Title: title, H1: h1, MetaDescription: meta}
}

// urlsOfGroup returns the member URLs of a group in order.
func urlsOfGroup(g model.Group) []string {
	urls := make([]string, len(g.Pages))
	for i, p := range g.Pages {
		urls[i] = p.URL
	}
	return urls
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// TestNormalize tests value normalization.
func TestNormalize(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		input    string
		expected string
	}{
		{"empty", "", ""},
		{"whitespace only", "   ", ""},
		{"tabs and newlines", "\t\n ", ""},
		{"surrounding spaces", "  Home Page  ", "Home Page"},
		{"inner spaces kept", "Home  Page", "Home  Page"},
		{"case kept", "HOME page", "HOME page"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := Normalize(tc.input)
			if got != tc.expected {
				t.Errorf("Normalize(%q) = %q, expected %q", tc.input, got, tc.expected)
			}
			if again := Normalize(got); again != got {
				t.Errorf("Normalize is not idempotent: %q -> %q", got, again)
			}
		})
	}
}

// TestBuildKey tests composite key construction.
func TestBuildKey(t *testing.T) {
	t.Parallel()

	t.Run("joins normalized values in field order", func(t *testing.T) {
		t.Parallel()

		p := page("https://example.com/", " Home ", "Welcome", " About us ")
		key, err := BuildKey(p, model.AllFields)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if key != "Home|Welcome|About us" {
			t.Errorf("got %q", key)
		}

		reversed, err := BuildKey(p, []model.Field{model.FieldMetaDescription, model.FieldTitle})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if reversed != "About us|Home" {
			t.Errorf("got %q", reversed)
		}
	})

	t.Run("equal normalized tuples give equal keys", func(t *testing.T) {
		t.Parallel()

		a := page("a", "Title", "  H1", "")
		b := page("b", "Title  ", "H1", "   ")
		fields := model.AllFields

		ka, err := BuildKey(a, fields)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		kb, err := BuildKey(b, fields)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if ka != kb {
			t.Errorf("expected equal keys, got %q and %q", ka, kb)
		}
	})

	t.Run("different tuples give different keys", func(t *testing.T) {
		t.Parallel()

		a := page("a", "Title", "H1", "x")
		b := page("b", "Title", "H1", "y")

		ka, _ := BuildKey(a, model.AllFields)
		kb, _ := BuildKey(b, model.AllFields)
		if ka == kb {
			t.Errorf("expected different keys, both were %q", ka)
		}
	})

	t.Run("rejects unknown field", func(t *testing.T) {
		t.Parallel()

		_, err := BuildKey(page("a", "t", "h", "m"), []model.Field{model.Field(42)})
		if !errors.Is(err, model.ErrInvalidFieldSelector) {
			t.Errorf("expected ErrInvalidFieldSelector, got %v", err)
		}
	})
}

// TestGroupByFields tests multi-field grouping.
func TestGroupByFields(t *testing.T) {
	t.Parallel()

	t.Run("groups identical pages and drops singletons", func(t *testing.T) {
		t.Parallel()

		ds := model.NewDataset("test", []model.Page{
			page("/a", "T", "H", "M"),
			page("/b", "Other", "H", "M"),
			page("/c", " T ", "H", "M "),
		})

		groups, err := GroupByFields(ds, model.AllFields, true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(groups) != 1 {
			t.Fatalf("expected 1 group, got %d", len(groups))
		}
		if groups[0].ID != 1 {
			t.Errorf("expected group ID 1, got %d", groups[0].ID)
		}
		if !equalStrings(urlsOfGroup(groups[0]), []string{"/a", "/c"}) {
			t.Errorf("unexpected members %v", urlsOfGroup(groups[0]))
		}
	})

	t.Run("skips pages with empty fields when required", func(t *testing.T) {
		t.Parallel()

		ds := model.NewDataset("test", []model.Page{
			page("/a", "", "Same", "M1"),
			page("/b", "", "Same", "M2"),
		})

		fields := []model.Field{model.FieldTitle, model.FieldH1}
		groups, err := GroupByFields(ds, fields, true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(groups) != 0 {
			t.Errorf("expected no groups, got %d", len(groups))
		}

		loose, err := GroupByFields(ds, fields, false)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(loose) != 1 {
			t.Errorf("expected empty titles to match when not required, got %d groups", len(loose))
		}
	})

	t.Run("numbers groups in first-encounter order", func(t *testing.T) {
		t.Parallel()

		ds := model.NewDataset("test", []model.Page{
			page("/1", "B", "x", "m"),
			page("/2", "A", "x", "m"),
			page("/3", "A", "x", "m"),
			page("/4", "B", "x", "m"),
			page("/5", "C", "x", "m"),
		})

		groups, err := GroupByFields(ds, []model.Field{model.FieldTitle}, true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(groups) != 2 {
			t.Fatalf("expected 2 groups, got %d", len(groups))
		}
		if groups[0].Key != "B" || groups[0].ID != 1 {
			t.Errorf("expected group 1 to be B, got %d %q", groups[0].ID, groups[0].Key)
		}
		if groups[1].Key != "A" || groups[1].ID != 2 {
			t.Errorf("expected group 2 to be A, got %d %q", groups[1].ID, groups[1].Key)
		}
		if !equalStrings(urlsOfGroup(groups[0]), []string{"/1", "/4"}) {
			t.Errorf("unexpected members %v", urlsOfGroup(groups[0]))
		}
	})

	t.Run("every member has non-empty selected fields", func(t *testing.T) {
		t.Parallel()

		ds := model.NewDataset("test", []model.Page{
			page("/a", "T", "H", ""),
			page("/b", "T", "H", ""),
			page("/c", "T", "H", "M"),
			page("/d", "T", "H", "M"),
			page("/e", "T", " ", "M"),
		})

		groups, err := GroupByFields(ds, model.AllFields, true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		for _, g := range groups {
			if g.Size() < MinGroupSize {
				t.Errorf("group %d has %d members", g.ID, g.Size())
			}
			for _, p := range g.Pages {
				for _, f := range model.AllFields {
					v, _ := p.Value(f)
					if IsEmpty(v) {
						t.Errorf("page %s has empty %s", p.URL, f)
					}
				}
			}
		}
	})

	t.Run("empty dataset yields no groups", func(t *testing.T) {
		t.Parallel()

		groups, err := GroupByFields(model.NewDataset("empty", nil), model.AllFields, true)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(groups) != 0 {
			t.Errorf("expected no groups, got %d", len(groups))
		}
	})

	t.Run("rejects invalid field list", func(t *testing.T) {
		t.Parallel()

		ds := model.NewDataset("test", nil)
		if _, err := GroupByFields(ds, []model.Field{model.Field(-1)}, true); !errors.Is(err, model.ErrInvalidFieldSelector) {
			t.Errorf("expected ErrInvalidFieldSelector, got %v", err)
		}
		if _, err := GroupByFields(ds, nil, true); !errors.Is(err, model.ErrInvalidFieldSelector) {
			t.Errorf("expected ErrInvalidFieldSelector for empty field list, got %v", err)
		}
	})
}

// TestGroupBySingleField tests the single-field variant.
func TestGroupBySingleField(t *testing.T) {
	t.Parallel()

	t.Run("applies exclusions before grouping", func(t *testing.T) {
		t.Parallel()

		ds := model.NewDataset("test", []model.Page{
			page("/a", "Same", "h1", "m1"),
			page("/b", "Same", "h2", "m2"),
			page("/c", "Same", "h3", "m3"),
			page("/d", "", "h4", "m4"),
		})

		groups, stats, err := GroupBySingleField(ds, model.FieldTitle, NewExclusionSet("/a"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(groups) != 1 {
			t.Fatalf("expected 1 group, got %d", len(groups))
		}
		if !equalStrings(urlsOfGroup(groups[0]), []string{"/b", "/c"}) {
			t.Errorf("unexpected members %v", urlsOfGroup(groups[0]))
		}
		if groups[0].Key != "Same" {
			t.Errorf("expected key to be the normalized value, got %q", groups[0].Key)
		}
		if stats.RowsTotal != 4 || stats.RowsAfterExclusion != 3 || stats.RowsNonEmpty != 2 {
			t.Errorf("unexpected stats %+v", stats)
		}
	})

	t.Run("excluding a member can dissolve a group", func(t *testing.T) {
		t.Parallel()

		ds := model.NewDataset("test", []model.Page{
			page("/a", "x", "Dup", "m"),
			page("/b", "y", "Dup", "m"),
		})

		groups, _, err := GroupBySingleField(ds, model.FieldH1, NewExclusionSet("/b"))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(groups) != 0 {
			t.Errorf("expected no groups, got %d", len(groups))
		}
	})

	t.Run("rejects invalid field", func(t *testing.T) {
		t.Parallel()

		_, _, err := GroupBySingleField(model.NewDataset("test", nil), model.Field(9), ExclusionSet{})
		if !errors.Is(err, model.ErrInvalidFieldSelector) {
			t.Errorf("expected ErrInvalidFieldSelector, got %v", err)
		}
	})
}

// TestExclusionSet tests the exclusion tracker.
func TestExclusionSet(t *testing.T) {
	t.Parallel()

	t.Run("zero value is empty", func(t *testing.T) {
		t.Parallel()

		var s ExclusionSet
		if s.Len() != 0 || s.Contains("/a") {
			t.Error("expected empty set")
		}
	})

	t.Run("union does not modify operands", func(t *testing.T) {
		t.Parallel()

		a := NewExclusionSet("/a")
		b := NewExclusionSet("/b", "/a")

		u := a.Union(b)
		if u.Len() != 2 {
			t.Errorf("expected 2 URLs, got %d", u.Len())
		}
		if a.Len() != 1 || a.Contains("/b") {
			t.Error("union modified the receiver")
		}
		if !equalStrings(u.sorted(), []string{"/a", "/b"}) {
			t.Errorf("unexpected URLs %v", u.sorted())
		}
	})

	t.Run("collects URLs of all groups", func(t *testing.T) {
		t.Parallel()

		groups := []model.Group{
			{ID: 1, Pages: []model.Page{page("/a", "", "", ""), page("/b", "", "", "")}},
			{ID: 2, Pages: []model.Page{page("/c", "", "", ""), page("/d", "", "", "")}},
		}
		s := URLsOf(groups)
		if !equalStrings(s.sorted(), []string{"/a", "/b", "/c", "/d"}) {
			t.Errorf("unexpected URLs %v", s.sorted())
		}
	})
}
