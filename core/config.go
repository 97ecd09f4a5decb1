package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"runtime"
	"time"
)

// FlashArrayConfig represents the configuration required to create an array session.
type FlashArrayConfig struct {
	Target         string         // IP address or domain name of the target array's management interface.
	Username       string         // Username of the user with which to log in (used with Password).
	Password       string         // Password of the user with which to log in (used with Username).
	ApiToken       string         // API token of the user with which to log in (alternative to Username/Password).
	RestVersion    string         // Optional explicit REST API version. When set, version renegotiation is disabled.
	VerifyHTTPS    bool           // Enable SSL certificate verification for HTTPS requests.
	SslCert        string         // Path to an SSL certificate or CA bundle file. Ignored unless VerifyHTTPS is true.
	UserAgent      string         // Optional custom User-Agent header to use in HTTP requests. If empty, a default is applied.
	Timeout        *time.Duration // HTTP client timeout. If nil, a default is applied by validators.
	MaxConnections int            // Maximum number of concurrent HTTP connections.
	PageSize       int            // Default page size for PageIterator when none is given.
	// Context is an optional external context for controlling HTTP request lifecycle.
	// When provided, it is used as the parent context for all HTTP requests made by the client.
	Context context.Context

	// BeforeRequestFn is an optional function hook executed before an API request is sent.
	// It allows for request inspection, mutation, or logging.
	//
	// Parameters:
	//   - ctx: The request context for managing deadlines and cancellations.
	//   - req: Request object
	//   - verb: The HTTP method (e.g., GET, POST, PUT).
	//   - url: The target URL.
	//   - body: The request body reader, typically containing JSON payload.
	//
	// Return:
	//   - error: Any error returned will abort the request.
	BeforeRequestFn func(ctx context.Context, req *http.Request, verb, url string, body io.Reader) error

	// AfterRequestFn is an optional function hook executed after receiving an API response.
	// It can be used for post-processing, transformation, or logging of the response.
	AfterRequestFn func(ctx context.Context, response Renderable) (Renderable, error)

	// FillFn optionally overrides the default function used to populate structs
	// from generic Record maps. If provided, this function is invoked instead of
	// the default JSON-based marshal/unmarshal logic.
	FillFn func(r Record, container any) error
}

// FlashArrayConfigFunc defines a function that can modify or validate a FlashArrayConfig.
type FlashArrayConfigFunc func(*FlashArrayConfig) error

// Validate applies the given FlashArrayConfigFunc validators to the config.
// The first validator error is returned; no network calls are made.
func (config *FlashArrayConfig) Validate(validators ...FlashArrayConfigFunc) error {
	for _, fn := range validators {
		if err := fn(config); err != nil {
			return err
		}
	}
	return nil
}

// WithTimeout returns a FlashArrayConfigFunc that sets a default timeout if none is provided.
func WithTimeout(timeout time.Duration) FlashArrayConfigFunc {
	return func(config *FlashArrayConfig) error {
		if config.Timeout == nil {
			config.Timeout = &timeout
		}
		return nil
	}
}

// WithMaxConnections returns a FlashArrayConfigFunc that sets the maximum number
// of connections if not explicitly provided.
func WithMaxConnections(maxConnections int) FlashArrayConfigFunc {
	return func(config *FlashArrayConfig) error {
		if config.MaxConnections == 0 {
			config.MaxConnections = maxConnections
		}
		return nil
	}
}

// WithTarget validates that the Target field is not empty.
func WithTarget(config *FlashArrayConfig) error {
	if config.Target == "" {
		return errors.New("target cannot be empty string")
	}
	return nil
}

// WithAuth validates the authentication arguments: either a username/password
// pair or an API token must be provided, but not both. Supplying only one of
// username/password is likewise a caller error.
func WithAuth(config *FlashArrayConfig) error {
	hasUserPass := config.Username != "" && config.Password != ""
	hasToken := config.ApiToken != ""
	if hasToken && (config.Username != "" || config.Password != "") {
		return errors.New("specify only api token or both username and password")
	}
	if !hasToken && !hasUserPass {
		return errors.New("must specify api token or both username and password")
	}
	return nil
}

// WithUserAgent sets a default User-Agent header if none is provided in the
// config. This helps identify the client in HTTP requests.
func WithUserAgent(config *FlashArrayConfig) error {
	if config.UserAgent == "" {
		config.UserAgent = fmt.Sprintf(
			"%s,os:%s,arch:%s",
			fmt.Sprintf("pure-go-client-%s", ClientVersion()),
			runtime.GOOS,
			runtime.GOARCH,
		)
	}
	return nil
}

// WithPageSize returns a FlashArrayConfigFunc that sets a default page size
// for iterators if none is provided.
func WithPageSize(pageSize int) FlashArrayConfigFunc {
	return func(config *FlashArrayConfig) error {
		if config.PageSize == 0 {
			config.PageSize = pageSize
		}
		return nil
	}
}

// WithFillFn installs a custom FillFn into the global fillFunc used by the
// Record.Fill method.
func WithFillFn(config *FlashArrayConfig) error {
	if config.FillFn != nil {
		fillFunc = config.FillFn
	}
	return nil
}
