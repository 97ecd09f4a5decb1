package core

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	version "github.com/hashicorp/go-version"
)

// supportedRestVersions is the ordered set of REST API versions this library
// implements, newest first. Version selection always compares parsed
// versions, never raw strings: "1.9" orders before "1.10".
var supportedRestVersions = []string{
	"1.19",
	"1.18",
	"1.17",
	"1.16",
	"1.15",
	"1.14",
	"1.13",
	"1.12",
	"1.11",
	"1.10",
	"1.9",
	"1.8",
	"1.7",
	"1.6",
	"1.5",
	"1.4",
	"1.3",
	"1.2",
	"1.1",
	"1.0",
}

// SupportedRestVersions returns a copy of the REST API versions this library
// implements.
func SupportedRestVersions() []string {
	out := make([]string, len(supportedRestVersions))
	copy(out, supportedRestVersions)
	return out
}

// listAvailableRestVersions returns the REST API versions advertised by the
// array. The version-discovery endpoint is unversioned and unauthenticated,
// so the request goes out with session re-establishment disabled.
func (s *ArraySession) listAvailableRestVersions(ctx context.Context) ([]string, error) {
	url := fmt.Sprintf("https://%s/api/api_version", s.config.Target)
	response, err := s.request(ctx, http.MethodGet, url, nil, false)
	if err != nil {
		return nil, err
	}
	record, ok := response.Record()
	if !ok {
		return nil, fmt.Errorf("unexpected response type %T from version discovery", response.Renderable)
	}
	rawVersions, ok := record["version"].([]any)
	if !ok {
		return nil, fmt.Errorf("version list missing in version discovery response")
	}
	versions := make([]string, 0, len(rawVersions))
	for _, raw := range rawVersions {
		versions = append(versions, fmt.Sprintf("%v", raw))
	}
	return versions, nil
}

// chooseRestVersion returns the newest REST API version supported by both
// the target array and this library.
func (s *ArraySession) chooseRestVersion(ctx context.Context) (*version.Version, error) {
	advertised, err := s.listAvailableRestVersions(ctx)
	if err != nil {
		return nil, err
	}
	var chosen *version.Version
	for _, raw := range advertised {
		if !contains(s.supportedVersions, raw) {
			continue
		}
		parsed, parseErr := version.NewVersion(raw)
		if parseErr != nil {
			continue
		}
		if chosen == nil || parsed.GreaterThan(chosen) {
			chosen = parsed
		}
	}
	if chosen == nil {
		return nil, errors.New(
			"library is incompatible with all REST API versions supported by the target array")
	}
	return chosen, nil
}

// checkRestVersion validates a caller-supplied REST API version against the
// library's supported set (no network call) and then against the versions
// advertised by the array.
func (s *ArraySession) checkRestVersion(ctx context.Context, requested string) (*version.Version, error) {
	if !contains(s.supportedVersions, requested) {
		return nil, fmt.Errorf("library is incompatible with REST API version %s", requested)
	}
	advertised, err := s.listAvailableRestVersions(ctx)
	if err != nil {
		return nil, err
	}
	if !contains(advertised, requested) {
		return nil, fmt.Errorf("array is incompatible with REST API version %s", requested)
	}
	return version.NewVersion(requested)
}
