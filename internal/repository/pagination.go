package repository

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// SortDirection mirrors the API's SortDirection enum.
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// sortColumn is the SQL side of a sort key. expr must, combined with the row
// id as tiebreaker, impose a total order: nullable columns are wrapped in
// COALESCE so keyset comparisons never hit NULL semantics. cast is the type
// the cursor's text value is cast back to in the keyset predicate.
type sortColumn struct {
	expr string
	cast string
}

// Cursor is an opaque pagination token: the sort expression's value (as
// text) and the id of the last row of the previous page.
type Cursor struct {
	Value string `json:"v"`
	ID    int64  `json:"id"`
}

// EncodeCursor serializes a cursor into its opaque wire form.
func EncodeCursor(c Cursor) string {
	payload, _ := json.Marshal(c)
	return base64.StdEncoding.EncodeToString(payload)
}

// DecodeCursor parses an opaque cursor token. An empty token decodes to nil.
func DecodeCursor(token string) (*Cursor, error) {
	if token == "" {
		return nil, nil
	}
	data, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid cursor: %w", err)
	}
	var cursor Cursor
	if err := json.Unmarshal(data, &cursor); err != nil {
		return nil, fmt.Errorf("invalid cursor payload: %w", err)
	}
	return &cursor, nil
}

// ListPage is one page of a keyset-paginated listing. Cursors holds the
// opaque token for each item, so connection edges can expose per-edge
// cursors without recomputing sort values.
type ListPage[T any] struct {
	Items   []T
	Cursors []string
	HasNext bool
}

// resolveDirection applies the default (descending) when no explicit
// direction is given.
func resolveDirection(direction *string) (SortDirection, error) {
	if direction == nil {
		return SortDesc, nil
	}
	switch SortDirection(*direction) {
	case SortAsc:
		return SortAsc, nil
	case SortDesc:
		return SortDesc, nil
	default:
		return "", fmt.Errorf("unknown sort direction %q", *direction)
	}
}

// movieSortColumn maps a MovieSortBy enum value to its sort column. A nil
// sortBy selects the entity default (release date).
func movieSortColumn(sortBy *string) (sortColumn, error) {
	if sortBy == nil {
		return sortColumn{expr: "release_date", cast: "date"}, nil
	}
	switch *sortBy {
	case "TITLE":
		return sortColumn{expr: "title", cast: "text"}, nil
	case "RELEASE_DATE":
		return sortColumn{expr: "release_date", cast: "date"}, nil
	case "CRITIC_SCORE":
		return sortColumn{expr: "COALESCE(critic_score, -1)", cast: "float8"}, nil
	case "REGULAR_SCORE":
		return sortColumn{expr: "COALESCE(regular_score, -1)", cast: "float8"}, nil
	case "VIEWED_USER_COUNT":
		return sortColumn{expr: "viewed_user_count", cast: "int4"}, nil
	default:
		return sortColumn{}, fmt.Errorf("unknown movie sort key %q", *sortBy)
	}
}

// reviewSortColumn maps a ReviewSortBy enum value to its sort column. A nil
// sortBy selects the entity default (post time).
func reviewSortColumn(sortBy *string) (sortColumn, error) {
	if sortBy == nil {
		return sortColumn{expr: "post_time", cast: "timestamptz"}, nil
	}
	switch *sortBy {
	case "POST_TIME":
		return sortColumn{expr: "post_time", cast: "timestamptz"}, nil
	case "SCORE":
		return sortColumn{expr: "score", cast: "int4"}, nil
	case "THANK_COUNT":
		return sortColumn{expr: "thank_count", cast: "int4"}, nil
	case "COMMENT_COUNT":
		return sortColumn{expr: "comment_count", cast: "int4"}, nil
	default:
		return sortColumn{}, fmt.Errorf("unknown review sort key %q", *sortBy)
	}
}

// collectionSortColumn maps a CollectionSortBy enum value to its sort
// column. A nil sortBy selects the entity default (name).
func collectionSortColumn(sortBy *string) (sortColumn, error) {
	if sortBy == nil {
		return sortColumn{expr: "name", cast: "text"}, nil
	}
	switch *sortBy {
	case "NAME":
		return sortColumn{expr: "name", cast: "text"}, nil
	case "CREATION_DATE":
		return sortColumn{expr: "creation_time", cast: "timestamptz"}, nil
	case "LIKE_COUNT":
		return sortColumn{expr: "like_count", cast: "int4"}, nil
	default:
		return sortColumn{}, fmt.Errorf("unknown collection sort key %q", *sortBy)
	}
}

// orderByClause renders the total order for a sort column: the sort
// expression plus the row id as tiebreaker, both in the same direction.
func orderByClause(col sortColumn, dir SortDirection) string {
	d := "DESC"
	if dir == SortAsc {
		d = "ASC"
	}
	return fmt.Sprintf(" ORDER BY %s %s, id %s", col.expr, d, d)
}

// keysetPredicate renders the WHERE fragment that resumes after a cursor,
// appending the cursor's value and id to args. Comparison covers the full
// (sort value, id) pair so duplicate sort values cannot skip or repeat rows.
func keysetPredicate(col sortColumn, dir SortDirection, cursor *Cursor, args *[]any) string {
	*args = append(*args, cursor.Value)
	valArg := len(*args)
	*args = append(*args, cursor.ID)
	idArg := len(*args)

	op := "<"
	if dir == SortAsc {
		op = ">"
	}
	return fmt.Sprintf("(%s, id) %s ($%d::%s, $%d)", col.expr, op, valArg, col.cast, idArg)
}

// clampLimit normalizes a requested page size.
func clampLimit(limit int32) int32 {
	if limit <= 0 {
		return 20
	}
	if limit > 100 {
		return 100
	}
	return limit
}

// idCursor encodes an id-ordered cursor (used by join-table connections that
// page over the joined entity's id only).
func idCursor(id int64) string {
	return EncodeCursor(Cursor{ID: id})
}

func itoa(n int) string { return strconv.Itoa(n) }

// prefixColumns qualifies each name in a column list with a table alias, for
// queries that join against other tables.
func prefixColumns(cols, alias string) string {
	parts := strings.Split(cols, ",")
	for i, part := range parts {
		parts[i] = " " + alias + "." + strings.TrimSpace(part)
	}
	return strings.Join(parts, ",")
}
