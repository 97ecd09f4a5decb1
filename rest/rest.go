package rest

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/PureStorage-OpenConnect/rest-client/core"
)

// FlashArrayRest is the main entry point of the client. It owns the array
// session and exposes one sub-client per resource family. Every sub-client
// operation funnels through the session's dispatch logic, so session
// re-establishment and REST version renegotiation are transparent to callers.
type FlashArrayRest struct {
	ctx         context.Context
	Session     core.RESTSession
	resourceMap map[string]core.PureResourceAPI

	Array             *Array
	Volumes           *Volume
	Hosts             *Host
	HostGroups        *HostGroup
	ProtectionGroups  *ProtectionGroup
	Alerts            *Alert
	Messages          *Message
	Admins            *Admin
	NetworkInterfaces *NetworkInterface
	Ports             *Port
	Drives            *Drive
}

// NewFlashArrayRest validates the configuration, establishes the array
// session (REST version negotiation, token and session cookie bootstrap) and
// wires up the resource sub-clients.
func NewFlashArrayRest(config *core.FlashArrayConfig) (*FlashArrayRest, error) {
	if err := config.Validate(
		core.WithAuth,
		core.WithTarget,
		core.WithUserAgent,
		core.WithTimeout(time.Second*30),
		core.WithMaxConnections(10),
		core.WithPageSize(500),
		core.WithFillFn,
	); err != nil {
		return nil, err
	}
	session, err := core.NewArraySession(config)
	if err != nil {
		return nil, err
	}
	rest := &FlashArrayRest{
		Session:     session,
		resourceMap: make(map[string]core.PureResourceAPI),
	}

	// Fill in each resource, pointing back to the same rest
	// NOTE: to add a new type you need to update the PureResourceType generic
	rest.Array = newResource[Array](rest, "array")
	rest.Volumes = newResource[Volume](rest, "volume")
	rest.Hosts = newResource[Host](rest, "host")
	rest.HostGroups = newResource[HostGroup](rest, "hgroup")
	rest.ProtectionGroups = newResource[ProtectionGroup](rest, "pgroup")
	rest.Alerts = newResource[Alert](rest, "alert")
	rest.Messages = newResource[Message](rest, "message")
	rest.Admins = newResource[Admin](rest, "admin")
	rest.NetworkInterfaces = newResource[NetworkInterface](rest, "network")
	rest.Ports = newResource[Port](rest, "port")
	rest.Drives = newResource[Drive](rest, "drive")

	return rest, nil
}

// GetSession returns the underlying array session.
func (rest *FlashArrayRest) GetSession() core.RESTSession {
	return rest.Session
}

// GetCtx returns the default context used by non-context resource methods.
func (rest *FlashArrayRest) GetCtx() context.Context {
	return rest.ctx
}

// SetCtx sets the default context used by non-context resource methods.
func (rest *FlashArrayRest) SetCtx(ctx context.Context) {
	rest.ctx = ctx
}

// GetResourceMap returns the registered resources keyed by resource type.
func (rest *FlashArrayRest) GetResourceMap() map[string]core.PureResourceAPI {
	return rest.resourceMap
}

// RestVersion returns the REST API version being used by this client.
func (rest *FlashArrayRest) RestVersion() string {
	return rest.Session.RestVersion()
}

// InvalidateSession ends the REST API session by invalidating the current
// session cookie. Calling any other method afterwards creates a new cookie,
// so this is intended to be called when the client is no longer needed.
func (rest *FlashArrayRest) InvalidateSession(ctx context.Context) error {
	return rest.Session.InvalidateSession(ctx)
}

func newResource[T PureResourceType](rest *FlashArrayRest, resourcePath string) *T {
	resourceType := reflect.TypeOf(T{}).Name()
	resource := &T{core.NewPureResource(resourcePath, resourceType, rest)}
	if res, ok := any(resource).(core.PureResourceAPI); ok {
		rest.resourceMap[resourceType] = res
	} else {
		panic(fmt.Sprintf("resource %s doesn't implement the PureResource interface", resourceType))
	}
	return resource
}
