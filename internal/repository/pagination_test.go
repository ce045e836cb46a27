package repository

import (
	"testing"
)

func TestCursorRoundTrip(t *testing.T) {
	original := Cursor{Value: "2020-01-01 00:00:00+00", ID: 42}
	decoded, err := DecodeCursor(EncodeCursor(original))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if decoded.Value != original.Value || decoded.ID != original.ID {
		t.Fatalf("round trip = %+v, want %+v", decoded, original)
	}
}

func TestDecodeCursorRejectsGarbage(t *testing.T) {
	for _, token := range []string{"not base64!!", "bm90IGpzb24="} {
		if _, err := DecodeCursor(token); err == nil {
			t.Fatalf("DecodeCursor(%q) accepted garbage", token)
		}
	}
	// The empty token is the "no cursor" sentinel, not an error.
	cursor, err := DecodeCursor("")
	if cursor != nil || err != nil {
		t.Fatalf("DecodeCursor(\"\") = %v, %v; want nil, nil", cursor, err)
	}
}

func TestSortColumnMapping(t *testing.T) {
	tests := []struct {
		name     string
		fn       func(*string) (sortColumn, error)
		sortBy   *string
		wantExpr string
		wantErr  bool
	}{
		{"movie default", movieSortColumn, nil, "release_date", false},
		{"movie title", movieSortColumn, ptr("TITLE"), "title", false},
		{"movie critic score", movieSortColumn, ptr("CRITIC_SCORE"), "COALESCE(critic_score, -1)", false},
		{"movie unknown", movieSortColumn, ptr("BUDGET"), "", true},
		{"review default", reviewSortColumn, nil, "post_time", false},
		{"review thank count", reviewSortColumn, ptr("THANK_COUNT"), "thank_count", false},
		{"review unknown", reviewSortColumn, ptr("LENGTH"), "", true},
		{"collection default", collectionSortColumn, nil, "name", false},
		{"collection likes", collectionSortColumn, ptr("LIKE_COUNT"), "like_count", false},
		{"collection unknown", collectionSortColumn, ptr("SIZE"), "", true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			col, err := tc.fn(tc.sortBy)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %v", tc.sortBy)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if col.expr != tc.wantExpr {
				t.Fatalf("expr = %q, want %q", col.expr, tc.wantExpr)
			}
		})
	}
}

func TestResolveDirection(t *testing.T) {
	dir, err := resolveDirection(nil)
	if err != nil || dir != SortDesc {
		t.Fatalf("default direction = %v, %v; want DESC", dir, err)
	}
	dir, err = resolveDirection(ptr("ASC"))
	if err != nil || dir != SortAsc {
		t.Fatalf("ASC direction = %v, %v", dir, err)
	}
	if _, err := resolveDirection(ptr("SIDEWAYS")); err == nil {
		t.Fatalf("expected error for unknown direction")
	}
}

func TestKeysetPredicate(t *testing.T) {
	col := sortColumn{expr: "score", cast: "int"}
	cursor := &Cursor{Value: "7", ID: 12}

	args := []any{int64(1)}
	pred := keysetPredicate(col, SortDesc, cursor, &args)
	if pred != "(score, id) < ($2::int, $3)" {
		t.Fatalf("desc predicate = %q", pred)
	}
	if len(args) != 3 {
		t.Fatalf("args = %d, want 3", len(args))
	}

	args = []any{}
	pred = keysetPredicate(col, SortAsc, cursor, &args)
	if pred != "(score, id) > ($1::int, $2)" {
		t.Fatalf("asc predicate = %q", pred)
	}
}

func TestClampLimit(t *testing.T) {
	tests := []struct{ in, want int32 }{
		{0, 20},
		{-5, 20},
		{15, 15},
		{100, 100},
		{500, 100},
	}
	for _, tc := range tests {
		if got := clampLimit(tc.in); got != tc.want {
			t.Fatalf("clampLimit(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func FuzzDecodeCursor(f *testing.F) {
	f.Add(EncodeCursor(Cursor{Value: "abc", ID: 1}))
	f.Add("garbage")
	f.Add("")

	f.Fuzz(func(t *testing.T, token string) {
		cursor, err := DecodeCursor(token)
		if err != nil || cursor == nil {
			return
		}
		// Anything that decodes must round-trip through encode.
		again, err := DecodeCursor(EncodeCursor(*cursor))
		if err != nil {
			t.Fatalf("re-decode failed: %v", err)
		}
		if again.ID != cursor.ID || again.Value != cursor.Value {
			t.Fatalf("round trip changed cursor: %+v vs %+v", cursor, again)
		}
	})
}

func ptr(s string) *string { return &s }
