package core

// HTTP-related constants for REST operations.
// These constants provide type-safe header names, content types and status codes.

// HTTP Header Names
const (
	HeaderAccept      = "Accept"
	HeaderContentType = "Content-Type"
	HeaderUserAgent   = "User-Agent"
	// HeaderNextToken carries the pagination continuation token on list
	// responses. It is sent back as the "token" request parameter to fetch
	// the next page.
	HeaderNextToken = "x-next-token"
)

// HTTP Content Types
const (
	ContentTypeJSON = "application/json"
)

// Purity status codes outside the standard HTTP set.
const (
	// StatusVersionIncompatible is returned by the array when the REST API
	// version used for the request is not compatible with the Purity version
	// currently running. The session renegotiates its REST version when
	// allowed to.
	StatusVersionIncompatible = 450
)
