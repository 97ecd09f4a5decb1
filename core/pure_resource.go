package core

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// PureRest is the facade interface a resource points back to for its session
// and default context.
type PureRest interface {
	GetSession() RESTSession
	GetCtx() context.Context
	SetCtx(context.Context)
}

// PureResourceAPI defines the interface for standard operations on a
// name-addressed array resource ({resource}/{name} paths).
type PureResourceAPI interface {
	Session() RESTSession
	GetResourceType() string
	GetResourcePath() string

	List(Params) (RecordSet, error)
	Get(string, Params) (Record, error)
	Create(string, Params) (Record, error)
	Set(string, Params) (Record, error)
	Delete(string, Params) (Record, error)
	// Resource-level mutex lock for concurrent access control
	Lock(...any) func()
}

// PureResourceAPIWithContext extends PureResourceAPI with context-aware
// variants of every operation.
type PureResourceAPIWithContext interface {
	PureResourceAPI
	ListWithContext(context.Context, Params) (RecordSet, error)
	GetWithContext(context.Context, string, Params) (Record, error)
	CreateWithContext(context.Context, string, Params) (Record, error)
	SetWithContext(context.Context, string, Params) (Record, error)
	DeleteWithContext(context.Context, string, Params) (Record, error)
}

//  ######################################################
//              ARRAY RESOURCES BASE OPS
//  ######################################################

// PureResource implements PureResourceAPI and provides common behavior for
// name-addressed FlashArray resources. Resource-specific operations are
// declared on the embedding types in the rest package.
type PureResource struct {
	resourcePath string
	resourceType string
	Rest         PureRest
	mu           *KeyLocker
}

func NewPureResource(resourcePath, resourceType string, rest PureRest) *PureResource {
	return &PureResource{
		resourcePath: resourcePath,
		resourceType: resourceType,
		Rest:         rest,
		mu:           NewKeyLocker(),
	}
}

// Session returns the ArraySession associated with the resource.
func (e *PureResource) Session() RESTSession {
	return e.Rest.GetSession()
}

func (e *PureResource) GetResourceType() string {
	return e.resourceType
}

func (e *PureResource) GetResourcePath() string {
	return strings.Trim(e.resourcePath, "/")
}

// NamePath builds the path addressing one instance of this resource,
// with optional sub-resource segments:
// NamePath("vol1", "pgroup", "pg1") -> "volume/vol1/pgroup/pg1".
func (e *PureResource) NamePath(name string, segments ...string) string {
	parts := append([]string{e.GetResourcePath(), name}, segments...)
	return strings.Join(parts, "/")
}

// Lock acquires a named lock scoped to this resource type plus the given
// keys and returns the unlock function.
func (e *PureResource) Lock(keys ...any) func() {
	return e.mu.Lock(append([]any{e.resourceType}, keys...)...)
}

// ListWithContext lists instances of the resource matching the given query
// parameters.
func (e *PureResource) ListWithContext(ctx context.Context, params Params) (RecordSet, error) {
	return Request[RecordSet](ctx, e, http.MethodGet, e.GetResourcePath(), params, nil)
}

// GetWithContext returns the named instance of the resource.
func (e *PureResource) GetWithContext(ctx context.Context, name string, params Params) (Record, error) {
	return Request[Record](ctx, e, http.MethodGet, e.NamePath(name), params, nil)
}

// CreateWithContext creates a named instance of the resource with the given
// body.
func (e *PureResource) CreateWithContext(ctx context.Context, name string, body Params) (Record, error) {
	return Request[Record](ctx, e, http.MethodPost, e.NamePath(name), nil, body)
}

// SetWithContext updates attributes of the named instance.
func (e *PureResource) SetWithContext(ctx context.Context, name string, body Params) (Record, error) {
	return Request[Record](ctx, e, http.MethodPut, e.NamePath(name), nil, body)
}

// DeleteWithContext deletes the named instance. The optional body carries
// flags like {"eradicate": true}.
func (e *PureResource) DeleteWithContext(ctx context.Context, name string, body Params) (Record, error) {
	return Request[Record](ctx, e, http.MethodDelete, e.NamePath(name), nil, body)
}

func (e *PureResource) List(params Params) (RecordSet, error) {
	return e.ListWithContext(e.Rest.GetCtx(), params)
}

func (e *PureResource) Get(name string, params Params) (Record, error) {
	return e.GetWithContext(e.Rest.GetCtx(), name, params)
}

func (e *PureResource) Create(name string, body Params) (Record, error) {
	return e.CreateWithContext(e.Rest.GetCtx(), name, body)
}

func (e *PureResource) Set(name string, body Params) (Record, error) {
	return e.SetWithContext(e.Rest.GetCtx(), name, body)
}

func (e *PureResource) Delete(name string, body Params) (Record, error) {
	return e.DeleteWithContext(e.Rest.GetCtx(), name, body)
}

// GetIteratorWithContext returns a PageIterator over the resource's list
// endpoint. A pageSize <= 0 falls back to the session's configured PageSize.
func (e *PureResource) GetIteratorWithContext(ctx context.Context, params Params, pageSize int) (*PageIterator, error) {
	if pageSize <= 0 {
		pageSize = e.Session().GetConfig().PageSize
	}
	if pageSize <= 0 {
		return nil, fmt.Errorf("page size must be positive for resource %q iteration", e.resourceType)
	}
	fetch := func(ctx context.Context, p Params) (*Response, error) {
		return e.Session().Get(ctx, e.GetResourcePath(), p)
	}
	return NewPageIterator(ctx, fetch, params, pageSize), nil
}

// GetIterator returns a PageIterator using the facade's default context.
func (e *PureResource) GetIterator(params Params, pageSize int) (*PageIterator, error) {
	return e.GetIteratorWithContext(e.Rest.GetCtx(), params, pageSize)
}
