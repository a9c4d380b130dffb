// Package services implements the application-level operations of the
// marketplace client. Each service wraps the shared HTTP client (and, for
// messaging, the websocket client) and maps backend responses onto the
// wire types.
package services

import (
	"net/url"
	"strconv"

	"github.com/fant-market/client/types"
)

// pageQuery renders the common paging parameters. Page is always sent
// (zero is a valid first page); size and sort only when set.
func pageQuery(p types.Pageable) url.Values {
	values := url.Values{}
	values.Set("page", strconv.Itoa(p.Page))
	if p.Size > 0 {
		values.Set("size", strconv.Itoa(p.Size))
	}
	if p.Sort != "" {
		values.Set("sort", p.Sort)
	}
	return values
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
