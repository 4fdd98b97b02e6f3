package id

import "github.com/teris-io/shortid"

// ShortId generates a short url-safe identifier.
func ShortId() string {
	id, err := shortid.Generate()
	if err != nil {
		return ""
	}
	return id
}
