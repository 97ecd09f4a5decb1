package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	urlpkg "net/url"
	"reflect"
	"strings"
)

// formatPath composes the full URL for a relative resource path:
// https://{target}/api/{restVersion}/{path}. Paths that already carry a
// scheme (the version-discovery endpoint, caller-constructed full URLs) are
// passed through unchanged.
func formatPath(target, restVersion, path string) (string, error) {
	if isAbsoluteURL(path) {
		return path, nil
	}
	pathAndQuery, err := urlpkg.ParseRequestURI("/" + strings.TrimPrefix(path, "/"))
	if err != nil {
		return "", fmt.Errorf("invalid relative URL: %w", err)
	}
	joinedPath, err := urlpkg.JoinPath("api", restVersion, strings.Trim(pathAndQuery.Path, "/"))
	if err != nil {
		return "", err
	}
	fullURL := &urlpkg.URL{
		Scheme:   "https",
		Host:     target,
		Path:     joinedPath,
		RawQuery: pathAndQuery.RawQuery,
	}
	return fullURL.String(), nil
}

// isAbsoluteURL reports whether the input already carries a URL scheme.
func isAbsoluteURL(input string) bool {
	parsedURL, err := urlpkg.Parse(input)
	return err == nil && parsedURL.Scheme != ""
}

// appendQuery attaches an encoded query string to a path that may or may not
// already carry one.
func appendQuery(path, query string) string {
	if query == "" {
		return path
	}
	if strings.Contains(path, "?") {
		return path + "&" + query
	}
	return path + "?" + query
}

// convertMapToQuery converts a map[string]any to a URL query string.
// Slice and array values are joined with commas; everything else is
// stringified with fmt.Sprint.
func convertMapToQuery(params Params) string {
	values := urlpkg.Values{}
	for k, v := range params {
		rv := reflect.ValueOf(v)
		if v != nil && (rv.Kind() == reflect.Slice || rv.Kind() == reflect.Array) {
			parts := make([]string, rv.Len())
			for i := 0; i < rv.Len(); i++ {
				parts[i] = fmt.Sprint(rv.Index(i).Interface())
			}
			values.Set(k, strings.Join(parts, ","))
			continue
		}
		values.Set(k, fmt.Sprint(v))
	}
	return values.Encode()
}

// getResponseBodyAsStr reads and returns the HTTP response body as a string.
// If the response body contains valid JSON, it returns a pretty-printed
// version. If the JSON indentation fails or the body is not JSON, it returns
// the raw body as a string. If the response is nil or an error occurs during
// reading, it returns an empty string.
//
// Note: This function consumes and closes the response body.
func getResponseBodyAsStr(r *http.Response) string {
	var b bytes.Buffer
	if r == nil {
		return ""
	}
	defer r.Body.Close()
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return ""
	}
	//Let's try to make it a pretty json if not we will just dump the body
	err = json.Indent(&b, body, "", "  ")
	if err == nil {
		return b.String()
	}
	return string(body)
}
