package gql

import (
	"encoding/base64"
	"strconv"
	"strings"

	graphql "github.com/graph-gophers/graphql-go"

	"github.com/cinegraph/cinegraph/internal/domain"
)

// Object IDs on the wire are opaque: base64 of "<Type>:<row id>". Decoding
// checks the type tag so an ID minted for one entity cannot address another.

const (
	typeUser       = "User"
	typeMovie      = "Movie"
	typeReview     = "Review"
	typeComment    = "Comment"
	typeCollection = "Collection"
	typeCrewMember = "CrewMember"
	typeGenre      = "Genre"
	typeCompany    = "Company"
)

func encodeID(typ string, id int64) graphql.ID {
	raw := typ + ":" + strconv.FormatInt(id, 10)
	return graphql.ID(base64.StdEncoding.EncodeToString([]byte(raw)))
}

// decodeID parses a global ID and verifies it addresses the expected type.
// Malformed or mistyped IDs report NotFound rather than leaking which part
// of the ID failed.
func decodeID(typ string, id graphql.ID) (int64, error) {
	raw, err := base64.StdEncoding.DecodeString(string(id))
	if err != nil {
		return 0, domain.NotFound("")
	}
	tag, num, ok := strings.Cut(string(raw), ":")
	if !ok || tag != typ {
		return 0, domain.NotFound("")
	}
	parsed, err := strconv.ParseInt(num, 10, 64)
	if err != nil {
		return 0, domain.NotFound("")
	}
	return parsed, nil
}

func itoa64(n int64) string { return strconv.FormatInt(n, 10) }

func decodeIDs(typ string, ids []graphql.ID) ([]int64, error) {
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		n, err := decodeID(typ, id)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
