package domain

// Download is the content fetched from a mirror.
type Download struct {
	// URL is the effective URL after redirects.
	URL string

	// Data is the response body.
	Data []byte
}
