package core

import (
	_ "embed"
	"strings"
)

//go:embed version
var clientVersion string

// ClientVersion returns the version of this client library.
func ClientVersion() string {
	return strings.TrimSpace(clientVersion)
}
