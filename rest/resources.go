package rest

import (
	"net/http"
	"strconv"

	"github.com/PureStorage-OpenConnect/rest-client/core"
)

// PureResourceType is the set of resource sub-clients the facade wires up.
// Each one embeds *core.PureResource, which provides the standard
// List/Get/Create/Set/Delete operations; only resource-specific operations
// are declared here.
type PureResourceType interface {
	Array | Volume | Host | HostGroup | ProtectionGroup |
		Alert | Message | Admin | NetworkInterface | Port | Drive
}

//  ######################################################
//              ARRAY
//  ######################################################

// Array exposes array-wide attributes and maintenance toggles. Unlike the
// name-addressed resources this is a singleton endpoint; the embedded Get/Set
// operations address its sub-endpoints (console_lock, phonehome, ...).
type Array struct {
	*core.PureResource
}

// GetAttributes returns the high level attributes of the array. Monitoring
// and space information can be requested with params like
// {"action": "monitor"} or {"space": true}.
func (a *Array) GetAttributes(params core.Params) (core.Record, error) {
	return core.Request[core.Record](a.Rest.GetCtx(), a, http.MethodGet, a.GetResourcePath(), params, nil)
}

// SetAttributes updates the attributes of the array.
func (a *Array) SetAttributes(body core.Params) (core.Record, error) {
	return core.Request[core.Record](a.Rest.GetCtx(), a, http.MethodPut, a.GetResourcePath(), nil, body)
}

// Rename changes the name of the array.
func (a *Array) Rename(name string) (core.Record, error) {
	return a.SetAttributes(core.Params{"name": name})
}

// EnableConsoleLock enables root lockout from the array at the physical
// console.
func (a *Array) EnableConsoleLock() (core.Record, error) {
	return a.Set("console_lock", core.Params{"enabled": true})
}

// DisableConsoleLock disables root lockout from the array at the physical
// console.
func (a *Array) DisableConsoleLock() (core.Record, error) {
	return a.Set("console_lock", core.Params{"enabled": false})
}

// GetConsoleLock returns the console-lock status of the array.
func (a *Array) GetConsoleLock() (core.Record, error) {
	return a.Get("console_lock", nil)
}

// EnablePhoneHome enables hourly phonehome reporting.
func (a *Array) EnablePhoneHome() (core.Record, error) {
	return a.Set("phonehome", core.Params{"enabled": true})
}

// DisablePhoneHome disables hourly phonehome reporting.
func (a *Array) DisablePhoneHome() (core.Record, error) {
	return a.Set("phonehome", core.Params{"enabled": false})
}

// GetPhoneHome returns the current manual phonehome state.
func (a *Array) GetPhoneHome() (core.Record, error) {
	return a.Get("phonehome", nil)
}

// GetEula returns the end user license agreement and its acceptance status.
func (a *Array) GetEula() (core.Record, error) {
	return a.Get("eula", nil)
}

// SignEula accepts the end user license agreement. Purity expects the
// signatory's name, title and company in params.
func (a *Array) SignEula(params core.Params) (core.Record, error) {
	return a.Set("eula", params)
}

// Connect establishes a replication connection to another array.
func (a *Array) Connect(address, connectionKey, connectionType string, params core.Params) (core.Record, error) {
	body := params.Copy()
	body["management_address"] = address
	body["connection_key"] = connectionKey
	body["type"] = connectionType
	return a.Create("connection", body)
}

// Disconnect breaks the replication connection to the array at the given
// management address.
func (a *Array) Disconnect(address string) (core.Record, error) {
	return core.Request[core.Record](a.Rest.GetCtx(), a, http.MethodDelete, a.NamePath("connection", address), nil, nil)
}

// ListConnections lists the replication connections to other arrays.
func (a *Array) ListConnections(params core.Params) (core.RecordSet, error) {
	return core.Request[core.RecordSet](a.Rest.GetCtx(), a, http.MethodGet, a.NamePath("connection"), params, nil)
}

// EnableRemoteAssist establishes a remote assist session.
func (a *Array) EnableRemoteAssist() (core.Record, error) {
	return a.Set("remoteassist", core.Params{"action": "connect"})
}

// DisableRemoteAssist disconnects the remote assist session.
func (a *Array) DisableRemoteAssist() (core.Record, error) {
	return a.Set("remoteassist", core.Params{"action": "disconnect"})
}

// GetRemoteAssist returns the remote assist status.
func (a *Array) GetRemoteAssist() (core.Record, error) {
	return a.Get("remoteassist", nil)
}

//  ######################################################
//              VOLUME
//  ######################################################

type Volume struct {
	*core.PureResource
}

// Rename changes the name of a volume.
func (v *Volume) Rename(volume, name string) (core.Record, error) {
	return v.Set(volume, core.Params{"name": name})
}

// Extend grows the volume to the given size. The size may be an integer byte
// count or a string with a unit suffix ("500G").
func (v *Volume) Extend(volume string, size any) (core.Record, error) {
	return v.Set(volume, core.Params{"size": size})
}

// Truncate shrinks the volume to the given size. Data beyond the new size is
// irretrievably lost.
func (v *Volume) Truncate(volume string, size any) (core.Record, error) {
	return v.Set(volume, core.Params{"size": size, "truncate": true})
}

// Copy clones the source volume (or volume snapshot) onto dest. Overwriting
// an existing dest requires {"overwrite": true} in params.
func (v *Volume) Copy(source, dest string, params core.Params) (core.Record, error) {
	body := params.Copy()
	body["source"] = source
	return core.Request[core.Record](v.Rest.GetCtx(), v, http.MethodPost, v.NamePath(dest), nil, body)
}

// CreateSnapshot takes a snapshot of a single volume. An optional
// {"suffix": ...} in params names the snapshot.
func (v *Volume) CreateSnapshot(volume string, params core.Params) (core.Record, error) {
	snaps, err := v.CreateSnapshots([]string{volume}, params)
	if err != nil {
		return nil, err
	}
	if len(snaps) == 0 {
		return core.Record{}, nil
	}
	return snaps[0], nil
}

// CreateSnapshots takes simultaneous snapshots of the given volumes.
func (v *Volume) CreateSnapshots(volumes []string, params core.Params) (core.RecordSet, error) {
	body := params.Copy()
	body["snap"] = true
	body["source"] = volumes
	return core.Request[core.RecordSet](v.Rest.GetCtx(), v, http.MethodPost, v.GetResourcePath(), nil, body)
}

// Destroy moves the volume (or volume snapshot) to the destroyed bucket,
// where it remains recoverable for 24 hours.
func (v *Volume) Destroy(volume string) (core.Record, error) {
	return v.Delete(volume, nil)
}

// Eradicate permanently removes a destroyed volume. Its data cannot be
// recovered afterwards.
func (v *Volume) Eradicate(volume string) (core.Record, error) {
	return v.Delete(volume, core.Params{"eradicate": true})
}

// Recover pulls a volume back out of the destroyed bucket.
func (v *Volume) Recover(volume string) (core.Record, error) {
	return v.Set(volume, core.Params{"action": "recover"})
}

// ListPrivateConnections lists the host connections of the volume.
func (v *Volume) ListPrivateConnections(volume string, params core.Params) (core.RecordSet, error) {
	return core.Request[core.RecordSet](v.Rest.GetCtx(), v, http.MethodGet, v.NamePath(volume, "host"), params, nil)
}

// ListSharedConnections lists the host group connections of the volume.
func (v *Volume) ListSharedConnections(volume string, params core.Params) (core.RecordSet, error) {
	return core.Request[core.RecordSet](v.Rest.GetCtx(), v, http.MethodGet, v.NamePath(volume, "hgroup"), params, nil)
}

// AddToProtectionGroup adds the volume to a protection group.
func (v *Volume) AddToProtectionGroup(volume, pgroup string) (core.Record, error) {
	return core.Request[core.Record](v.Rest.GetCtx(), v, http.MethodPost, v.NamePath(volume, "pgroup", pgroup), nil, nil)
}

// RemoveFromProtectionGroup removes the volume from a protection group.
func (v *Volume) RemoveFromProtectionGroup(volume, pgroup string) (core.Record, error) {
	return core.Request[core.Record](v.Rest.GetCtx(), v, http.MethodDelete, v.NamePath(volume, "pgroup", pgroup), nil, nil)
}

//  ######################################################
//              HOST
//  ######################################################

type Host struct {
	*core.PureResource
}

// Rename changes the name of a host.
func (h *Host) Rename(host, name string) (core.Record, error) {
	return h.Set(host, core.Params{"name": name})
}

// ConnectVolume makes the volume visible to the host. A shared LUN can be
// requested with {"lun": n} in params.
func (h *Host) ConnectVolume(host, volume string, params core.Params) (core.Record, error) {
	return core.Request[core.Record](h.Rest.GetCtx(), h, http.MethodPost, h.NamePath(host, "volume", volume), nil, params)
}

// DisconnectVolume breaks the connection between the host and the volume.
func (h *Host) DisconnectVolume(host, volume string) (core.Record, error) {
	return core.Request[core.Record](h.Rest.GetCtx(), h, http.MethodDelete, h.NamePath(host, "volume", volume), nil, nil)
}

// ListConnections lists the volumes connected to the host.
func (h *Host) ListConnections(host string, params core.Params) (core.RecordSet, error) {
	return core.Request[core.RecordSet](h.Rest.GetCtx(), h, http.MethodGet, h.NamePath(host, "volume"), params, nil)
}

// AddToProtectionGroup adds the host to a protection group.
func (h *Host) AddToProtectionGroup(host, pgroup string) (core.Record, error) {
	return core.Request[core.Record](h.Rest.GetCtx(), h, http.MethodPost, h.NamePath(host, "pgroup", pgroup), nil, nil)
}

// RemoveFromProtectionGroup removes the host from a protection group.
func (h *Host) RemoveFromProtectionGroup(host, pgroup string) (core.Record, error) {
	return core.Request[core.Record](h.Rest.GetCtx(), h, http.MethodDelete, h.NamePath(host, "pgroup", pgroup), nil, nil)
}

//  ######################################################
//              HOST GROUP
//  ######################################################

type HostGroup struct {
	*core.PureResource
}

// Rename changes the name of a host group.
func (hg *HostGroup) Rename(hgroup, name string) (core.Record, error) {
	return hg.Set(hgroup, core.Params{"name": name})
}

// SetHosts replaces the host group's member list.
func (hg *HostGroup) SetHosts(hgroup string, hosts []string) (core.Record, error) {
	return hg.Set(hgroup, core.Params{"hostlist": hosts})
}

// AddHosts adds hosts to the host group.
func (hg *HostGroup) AddHosts(hgroup string, hosts []string) (core.Record, error) {
	return hg.Set(hgroup, core.Params{"addhostlist": hosts})
}

// RemoveHosts removes hosts from the host group.
func (hg *HostGroup) RemoveHosts(hgroup string, hosts []string) (core.Record, error) {
	return hg.Set(hgroup, core.Params{"remhostlist": hosts})
}

// ConnectVolume makes the volume visible to every host in the group.
func (hg *HostGroup) ConnectVolume(hgroup, volume string, params core.Params) (core.Record, error) {
	return core.Request[core.Record](hg.Rest.GetCtx(), hg, http.MethodPost, hg.NamePath(hgroup, "volume", volume), nil, params)
}

// DisconnectVolume breaks the shared connection between the host group and
// the volume.
func (hg *HostGroup) DisconnectVolume(hgroup, volume string) (core.Record, error) {
	return core.Request[core.Record](hg.Rest.GetCtx(), hg, http.MethodDelete, hg.NamePath(hgroup, "volume", volume), nil, nil)
}

// ListConnections lists the volumes connected to the host group.
func (hg *HostGroup) ListConnections(hgroup string, params core.Params) (core.RecordSet, error) {
	return core.Request[core.RecordSet](hg.Rest.GetCtx(), hg, http.MethodGet, hg.NamePath(hgroup, "volume"), params, nil)
}

// AddToProtectionGroup adds the host group to a protection group.
func (hg *HostGroup) AddToProtectionGroup(hgroup, pgroup string) (core.Record, error) {
	return core.Request[core.Record](hg.Rest.GetCtx(), hg, http.MethodPost, hg.NamePath(hgroup, "pgroup", pgroup), nil, nil)
}

// RemoveFromProtectionGroup removes the host group from a protection group.
func (hg *HostGroup) RemoveFromProtectionGroup(hgroup, pgroup string) (core.Record, error) {
	return core.Request[core.Record](hg.Rest.GetCtx(), hg, http.MethodDelete, hg.NamePath(hgroup, "pgroup", pgroup), nil, nil)
}

//  ######################################################
//              PROTECTION GROUP
//  ######################################################

type ProtectionGroup struct {
	*core.PureResource
}

// Rename changes the name of a protection group.
func (pg *ProtectionGroup) Rename(pgroup, name string) (core.Record, error) {
	return pg.Set(pgroup, core.Params{"name": name})
}

// CreateSnapshot takes a snapshot of a single protection group.
func (pg *ProtectionGroup) CreateSnapshot(pgroup string, params core.Params) (core.Record, error) {
	snaps, err := pg.CreateSnapshots([]string{pgroup}, params)
	if err != nil {
		return nil, err
	}
	if len(snaps) == 0 {
		return core.Record{}, nil
	}
	return snaps[0], nil
}

// CreateSnapshots takes simultaneous snapshots of the given protection
// groups.
func (pg *ProtectionGroup) CreateSnapshots(pgroups []string, params core.Params) (core.RecordSet, error) {
	body := params.Copy()
	body["snap"] = true
	body["source"] = pgroups
	return core.Request[core.RecordSet](pg.Rest.GetCtx(), pg, http.MethodPost, pg.GetResourcePath(), nil, body)
}

// Destroy moves the protection group to the destroyed bucket, where it
// remains recoverable for 24 hours.
func (pg *ProtectionGroup) Destroy(pgroup string) (core.Record, error) {
	return pg.Delete(pgroup, nil)
}

// Eradicate permanently removes a destroyed protection group.
func (pg *ProtectionGroup) Eradicate(pgroup string) (core.Record, error) {
	return pg.Delete(pgroup, core.Params{"eradicate": true})
}

// Recover pulls a protection group back out of the destroyed bucket.
func (pg *ProtectionGroup) Recover(pgroup string) (core.Record, error) {
	return pg.Set(pgroup, core.Params{"action": "recover"})
}

// EnableSnapshots enables the protection group's snapshot schedule.
func (pg *ProtectionGroup) EnableSnapshots(pgroup string) (core.Record, error) {
	return pg.Set(pgroup, core.Params{"snap_enabled": true})
}

// DisableSnapshots disables the protection group's snapshot schedule.
func (pg *ProtectionGroup) DisableSnapshots(pgroup string) (core.Record, error) {
	return pg.Set(pgroup, core.Params{"snap_enabled": false})
}

// EnableReplication enables the protection group's replication schedule.
func (pg *ProtectionGroup) EnableReplication(pgroup string) (core.Record, error) {
	return pg.Set(pgroup, core.Params{"replicate_enabled": true})
}

// DisableReplication disables the protection group's replication schedule.
func (pg *ProtectionGroup) DisableReplication(pgroup string) (core.Record, error) {
	return pg.Set(pgroup, core.Params{"replicate_enabled": false})
}

//  ######################################################
//              ALERT
//  ######################################################

// Alert manages the array's alert recipient addresses. The standard Create,
// Get and Delete operations address one recipient by email address.
type Alert struct {
	*core.PureResource
}

// EnableRecipient resumes alert delivery to the given address.
func (a *Alert) EnableRecipient(address string) (core.Record, error) {
	return a.Set(address, core.Params{"enabled": true})
}

// DisableRecipient suspends alert delivery to the given address.
func (a *Alert) DisableRecipient(address string) (core.Record, error) {
	return a.Set(address, core.Params{"enabled": false})
}

// Test sends a test alert to every recipient.
func (a *Alert) Test() (core.RecordSet, error) {
	return core.Request[core.RecordSet](a.Rest.GetCtx(), a, http.MethodPut, a.GetResourcePath(), nil, core.Params{"action": "test"})
}

// TestRecipient sends a test alert to the given address only.
func (a *Alert) TestRecipient(address string) (core.Record, error) {
	return a.Set(address, core.Params{"action": "test"})
}

//  ######################################################
//              MESSAGE
//  ######################################################

// Message lists the array's audit trail and alert events. Filtering flags
// such as {"audit": true}, {"open": true} or {"flagged": true} go in the
// List params.
type Message struct {
	*core.PureResource
}

// Flag marks the message identified by id as flagged.
func (m *Message) Flag(id int64) (core.Record, error) {
	return m.Set(strconv.FormatInt(id, 10), core.Params{"flagged": true})
}

// Unflag clears the flagged mark from the message identified by id.
func (m *Message) Unflag(id int64) (core.Record, error) {
	return m.Set(strconv.FormatInt(id, 10), core.Params{"flagged": false})
}

//  ######################################################
//              ADMIN
//  ######################################################

type Admin struct {
	*core.PureResource
}

// SetPassword changes the admin's password. The current password must be
// supplied alongside the new one.
func (a *Admin) SetPassword(admin, newPassword, oldPassword string) (core.Record, error) {
	return a.Set(admin, core.Params{"password": newPassword, "old_password": oldPassword})
}

// CreateApiToken issues a new API token for the admin. Fails if the admin
// already has one.
func (a *Admin) CreateApiToken(admin string) (core.Record, error) {
	return core.Request[core.Record](a.Rest.GetCtx(), a, http.MethodPost, a.NamePath(admin, "apitoken"), nil, nil)
}

// GetApiToken returns the admin's API token record.
func (a *Admin) GetApiToken(admin string) (core.Record, error) {
	return core.Request[core.Record](a.Rest.GetCtx(), a, http.MethodGet, a.NamePath(admin, "apitoken"), nil, nil)
}

// DeleteApiToken revokes the admin's API token.
func (a *Admin) DeleteApiToken(admin string) (core.Record, error) {
	return core.Request[core.Record](a.Rest.GetCtx(), a, http.MethodDelete, a.NamePath(admin, "apitoken"), nil, nil)
}

//  ######################################################
//              NETWORK INTERFACE
//  ######################################################

type NetworkInterface struct {
	*core.PureResource
}

// Enable brings the named network interface up.
func (n *NetworkInterface) Enable(iface string) (core.Record, error) {
	return n.Set(iface, core.Params{"enabled": true})
}

// Disable brings the named network interface down.
func (n *NetworkInterface) Disable(iface string) (core.Record, error) {
	return n.Set(iface, core.Params{"enabled": false})
}

//  ######################################################
//              PORT / DRIVE
//  ######################################################

// Port lists the array's target ports. {"initiators": true} in the List
// params returns initiator to target port mappings instead.
type Port struct {
	*core.PureResource
}

// Drive lists the flash, NVRAM and cache modules installed in the array,
// addressed by location ("SH0.BAY0").
type Drive struct {
	*core.PureResource
}
