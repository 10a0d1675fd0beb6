// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"go.mongodb.org/mongo-driver/mongo/options"
)

// DefaultLimit is the page size used when the client does not ask for one.
const DefaultLimit = 50

// MaxLimit caps how many rows a single request may fetch.
const MaxLimit = 200

// Params holds the limit/offset window for a paged list query.
type Params struct {
	Limit  int64
	Offset int64
}

// FromRequest reads the "limit" and "offset" query parameters and clamps
// them to sane bounds. Missing or malformed values fall back to defaults
// rather than erroring; a list endpoint should never 400 on paging noise.
func FromRequest(r *http.Request) Params {
	limit := intParam(r, "limit", DefaultLimit)
	if limit < 1 || limit > MaxLimit {
		limit = DefaultLimit
	}
	offset := intParam(r, "offset", 0)
	if offset < 0 {
		offset = 0
	}
	return Params{Limit: int64(limit), Offset: int64(offset)}
}

// ApplyToFind sets the window on a Mongo FindOptions.
func (p Params) ApplyToFind(find *options.FindOptions) *options.FindOptions {
	return find.SetLimit(p.Limit).SetSkip(p.Offset)
}

func intParam(r *http.Request, name string, def int) int {
	s := r.URL.Query().Get(name)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
