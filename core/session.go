package core

import (
	"bytes"
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"sync"

	version "github.com/hashicorp/go-version"
)

// RESTSession is the transport-facing interface of an array session. Every
// operation of every resource sub-client funnels through one of its verb
// methods and thereby through the session's dispatch/retry logic.
type RESTSession interface {
	Get(context.Context, string, Params) (*Response, error)
	Post(context.Context, string, Params) (*Response, error)
	Put(context.Context, string, Params) (*Response, error)
	Delete(context.Context, string, Params) (*Response, error)
	GetConfig() *FlashArrayConfig
	RestVersion() string
	InvalidateSession(context.Context) error
}

// ArraySession represents an authenticated management session against a
// single FlashArray. It owns the negotiated REST version, the API token and
// the session cookie jar, and transparently recovers from two well-known
// failure modes: session expiry (401) and REST version incompatibility (450).
//
// The cookie jar and the active REST version are mutated in place by every
// request, so a per-session mutex is held for one full dispatch, including
// any nested recovery retries.
type ArraySession struct {
	config      *FlashArrayConfig
	client      *http.Client
	restVersion *version.Version
	renegotiate bool
	apiToken    string
	cookies     map[string]string

	// supportedVersions defaults to the compiled-in supported set; kept as a
	// field so the negotiation logic stays testable against small sets.
	supportedVersions []string

	mu sync.Mutex
}

type sessionMethod func(context.Context, string, Params) (*Response, error)

// NewArraySession creates a session against the configured target: it
// negotiates (or validates) the REST API version, obtains an API token when
// username/password were supplied, and establishes the session cookie.
// The config must have been validated beforehand (see FlashArrayConfig.Validate).
func NewArraySession(config *FlashArrayConfig) (*ArraySession, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	tlsConfig := &tls.Config{InsecureSkipVerify: !config.VerifyHTTPS}
	if config.VerifyHTTPS && config.SslCert != "" {
		pem, err := os.ReadFile(config.SslCert)
		if err != nil {
			return nil, fmt.Errorf("failed to read ssl certificate %s: %w", config.SslCert, err)
		}
		pool := x509.NewCertPool()
		if !pool.AppendCertsFromPEM(pem) {
			return nil, fmt.Errorf("no certificates found in %s", config.SslCert)
		}
		tlsConfig.RootCAs = pool
	}
	transport.TLSClientConfig = tlsConfig
	transport.MaxConnsPerHost = config.MaxConnections
	client := &http.Client{Transport: transport}
	if config.Timeout != nil {
		client.Timeout = *config.Timeout
	}

	session := &ArraySession{
		config:            config,
		client:            client,
		cookies:           map[string]string{},
		supportedVersions: supportedRestVersions,
	}

	ctx := config.Context
	if ctx == nil {
		ctx = context.Background()
	}

	// REST version selection runs exactly once. An explicit version disables
	// renegotiation for the life of the session.
	var err error
	if config.RestVersion != "" {
		if session.restVersion, err = session.checkRestVersion(ctx, config.RestVersion); err != nil {
			return nil, err
		}
		session.renegotiate = false
	} else {
		if session.restVersion, err = session.chooseRestVersion(ctx); err != nil {
			return nil, err
		}
		session.renegotiate = true
	}

	if config.ApiToken != "" {
		session.apiToken = config.ApiToken
	} else {
		if session.apiToken, err = session.obtainApiToken(ctx, config.Username, config.Password); err != nil {
			return nil, err
		}
	}
	if err = session.startSession(ctx); err != nil {
		return nil, err
	}
	return session, nil
}

// GetConfig returns the session configuration.
func (s *ArraySession) GetConfig() *FlashArrayConfig {
	return s.config
}

// RestVersion returns the REST API version currently in use by this session.
func (s *ArraySession) RestVersion() string {
	if s.restVersion == nil {
		return ""
	}
	return s.restVersion.Original()
}

// Get issues a GET request to the given resource path. Params are encoded
// into the URL query string.
func (s *ArraySession) Get(ctx context.Context, path string, params Params) (*Response, error) {
	if len(params) > 0 {
		path = appendQuery(path, params.ToQuery())
	}
	return s.dispatch(ctx, http.MethodGet, path, nil)
}

// Post issues a POST request with the given body to the resource path.
func (s *ArraySession) Post(ctx context.Context, path string, body Params) (*Response, error) {
	return s.dispatch(ctx, http.MethodPost, path, body)
}

// Put issues a PUT request with the given body to the resource path.
func (s *ArraySession) Put(ctx context.Context, path string, body Params) (*Response, error) {
	return s.dispatch(ctx, http.MethodPut, path, body)
}

// Delete issues a DELETE request to the resource path. Purity DELETE
// endpoints accept a body for flags like {"eradicate": true}.
func (s *ArraySession) Delete(ctx context.Context, path string, body Params) (*Response, error) {
	return s.dispatch(ctx, http.MethodDelete, path, body)
}

// InvalidateSession ends the REST API session by invalidating the current
// session cookie. Any subsequent call establishes a new cookie, so this is
// intended to be called when the session is no longer needed.
func (s *ArraySession) InvalidateSession(ctx context.Context) error {
	_, err := s.dispatch(ctx, http.MethodDelete, "auth/session", nil)
	return err
}

// dispatch is the exported-surface entry point: it resolves the context,
// takes the per-session lock for the duration of one logical call (including
// nested recovery retries) and runs the request state machine.
func (s *ArraySession) dispatch(ctx context.Context, verb, path string, body Params) (*Response, error) {
	if ctx == nil {
		ctx = s.config.Context
	}
	if ctx == nil {
		ctx = context.Background()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.request(ctx, verb, path, body, true)
}

// request performs one logical REST operation.
//
// A dispatch attempt builds the URL (absolute overrides pass through
// unchanged), serializes the body as JSON, attaches headers and the current
// cookie jar, and issues the call. Three response classes are handled:
//
//   - 200: decode JSON into Record/RecordSet, replace the cookie jar
//     wholesale with the response cookies (or clear it when the response
//     carries none) and attach the response headers to the payload.
//   - 401 with reestablishSession: re-run the session bootstrap with the
//     existing token, then re-issue the same request once with retry
//     disabled. A second 401 surfaces as an ApiError.
//   - 450 with renegotiation enabled: recompute the REST version. A
//     renegotiation that lands on the version just rejected is surfaced as
//     an ApiError; otherwise the request is re-issued against the new
//     version. Each successful renegotiation strictly changes the version,
//     so this retry needs no depth limit beyond the equality check.
//
// Transport-level failures (DNS, connection refused) are wrapped as generic
// errors and never retried by this layer. Bootstrap calls run with
// reestablishSession=false to avoid recursive session re-establishment.
func (s *ArraySession) request(ctx context.Context, verb, path string, body Params, reestablishSession bool) (*Response, error) {
	url, err := formatPath(s.config.Target, s.RestVersion(), path)
	if err != nil {
		return nil, err
	}

	// Purity expects a JSON body on every verb; a nil body serializes to null.
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, verb, url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set(HeaderContentType, ContentTypeJSON)
	req.Header.Set(HeaderAccept, ContentTypeJSON)
	if s.config.UserAgent != "" {
		req.Header.Set(HeaderUserAgent, s.config.UserAgent)
	}
	for name, value := range s.cookies {
		req.AddCookie(&http.Cookie{Name: name, Value: value})
	}

	if logLevel != "" {
		beforeRequestLog(verb, url, bytes.NewReader(payload))
	}
	if s.config.BeforeRequestFn != nil {
		if err = s.config.BeforeRequestFn(ctx, req, verb, url, bytes.NewReader(payload)); err != nil {
			return nil, err
		}
	}

	response, responseErr := s.client.Do(req)
	if responseErr != nil {
		// error outside the scope of HTTP status codes, e.g. unable to
		// resolve the domain name
		return nil, fmt.Errorf("failed to perform %s request to %s: %w", verb, url, responseErr)
	}

	switch {
	case response.StatusCode == http.StatusOK:
		return s.decodeResponse(ctx, response)

	case response.StatusCode == http.StatusUnauthorized && reestablishSession:
		response.Body.Close()
		if err = s.startSession(ctx); err != nil {
			return nil, err
		}
		return s.request(ctx, verb, path, body, false)

	case response.StatusCode == StatusVersionIncompatible && s.renegotiate:
		// Capture the rejection before renegotiating, the body is consumed.
		apiErr := s.newApiError(response)
		chosen, chooseErr := s.chooseRestVersion(ctx)
		if chooseErr != nil {
			return nil, chooseErr
		}
		if chosen.Equal(s.restVersion) {
			// The array rejected the very version it advertises as
			// supported. Surface the rejection rather than loop.
			return nil, apiErr
		}
		s.restVersion = chosen
		return s.request(ctx, verb, path, body, reestablishSession)

	default:
		return nil, s.newApiError(response)
	}
}

// decodeResponse turns a 200 response into a Response envelope and updates
// the session cookie jar as a side effect: cookies carried by the response
// replace the jar wholesale, a response without cookies invalidates the
// session by clearing it.
func (s *ArraySession) decodeResponse(ctx context.Context, response *http.Response) (*Response, error) {
	if !strings.Contains(response.Header.Get(HeaderContentType), ContentTypeJSON) {
		return nil, fmt.Errorf("response not in JSON: %s", getResponseBodyAsStr(response))
	}

	if responseCookies := response.Cookies(); len(responseCookies) > 0 {
		jar := make(map[string]string, len(responseCookies))
		for _, cookie := range responseCookies {
			jar[cookie.Name] = cookie.Value
		}
		s.cookies = jar
	} else {
		s.cookies = map[string]string{}
	}

	payload, err := unmarshalToRecordUnion(response)
	if err != nil {
		return nil, err
	}
	if logLevel != "" {
		afterRequestLog(payload)
	}
	if s.config.AfterRequestFn != nil {
		if payload, err = s.config.AfterRequestFn(ctx, payload); err != nil {
			return nil, err
		}
	}
	return &Response{Renderable: payload, Headers: response.Header}, nil
}

// newApiError builds an ApiError from a non-200 response, consuming its body.
func (s *ArraySession) newApiError(response *http.Response) *ApiError {
	requestURL := "<unknown URL>"
	method := "<unknown method>"
	if response.Request != nil {
		if response.Request.URL != nil {
			requestURL = response.Request.URL.String()
		}
		method = response.Request.Method
	}
	return &ApiError{
		Target:      s.config.Target,
		RestVersion: s.RestVersion(),
		Method:      method,
		URL:         requestURL,
		StatusCode:  response.StatusCode,
		Headers:     response.Header,
		Body:        getResponseBodyAsStr(response),
	}
}

//  ######################################################
//              SESSION BOOTSTRAP
//  ######################################################

// obtainApiToken uses username and password to obtain and return an API
// token. Only invoked when the caller supplied credentials instead of a
// token. Runs without session re-establishment semantics.
func (s *ArraySession) obtainApiToken(ctx context.Context, username, password string) (string, error) {
	response, err := s.request(ctx, http.MethodPost, "auth/apitoken",
		Params{"username": username, "password": password}, false)
	if err != nil {
		return "", err
	}
	record, ok := response.Record()
	if !ok {
		return "", fmt.Errorf("unexpected response type %T from auth/apitoken", response.Renderable)
	}
	token, ok := record["api_token"].(string)
	if !ok || token == "" {
		return "", fmt.Errorf("api token missing in auth/apitoken response")
	}
	return token, nil
}

// startSession posts the API token to the session endpoint. On success the
// dispatch layer stores the issued session cookie as a side effect. Invoked
// once at construction and again transparently whenever dispatch sees a
// session-expired response.
func (s *ArraySession) startSession(ctx context.Context) error {
	_, err := s.request(ctx, http.MethodPost, "auth/session",
		Params{"api_token": s.apiToken}, false)
	return err
}

//  ######################################################
//              GENERIC RESOURCE REQUEST
//  ######################################################

// Request sends one logical operation through the resource's session and
// casts the decoded payload to the requested record type. A Record payload
// is promoted to a single-element RecordSet when T is RecordSet, eliminating
// the list/object discrepancy some endpoints exhibit.
func Request[T RecordUnion](ctx context.Context, r PureResourceAPI, verb, path string, params, body Params) (T, error) {
	var method sessionMethod
	if ctx == nil {
		ctx = context.Background()
	}
	verb = strings.ToUpper(verb)
	session := r.Session()

	switch verb {
	case http.MethodGet:
		method = func(ctx context.Context, path string, _ Params) (*Response, error) {
			return session.Get(ctx, path, params)
		}
	case http.MethodPost:
		method = session.Post
	case http.MethodPut:
		method = session.Put
	case http.MethodDelete:
		method = session.Delete
	default:
		return nil, fmt.Errorf("unknown verb: %s", verb)
	}

	response, err := method(ctx, path, body)
	if err != nil {
		return nil, err
	}

	payload := response.Renderable
	if typeMatch[Record](payload) {
		var zero T
		if typeMatch[RecordSet](Renderable(zero)) {
			if !payload.(Record).Empty() {
				payload = RecordSet{payload.(Record)}
			} else {
				payload = RecordSet{}
			}
		}
	}

	resultVal, ok := payload.(T)
	if !ok {
		return nil, fmt.Errorf(
			"unexpected response type for request to %s: got %T, expected %T",
			path, payload, *new(T),
		)
	}
	return resultVal, nil
}
