package domain

import "time"

// IndexDocument is served for the bundle root.
const IndexDocument = "index.html"

// Asset is one file of the static web bundle.
type Asset struct {
	Name        string
	ContentType string
	// ETag is a strong entity tag derived from the content digest, including quotes.
	ETag    string
	ModTime time.Time
	Data    []byte
}
