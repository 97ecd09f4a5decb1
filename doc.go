/*
Package purestorage provides a convenient interface to interact with the
Pure Storage FlashArray REST API.

It wraps raw HTTP operations in a structured API, exposing high-level methods
to manage array resources like volumes, hosts, host groups, protection groups,
alerts, and more. Each resource is available as a sub-client that supports
common operations (List, Get, Create, Set, Delete) plus resource-specific
actions such as snapshots and host connections.

The main entry point is the FlashArrayRest client, which is initialized using
a FlashArrayConfig configuration struct. This configuration allows
customization of connection parameters, credentials (API token or
username/password), SSL behavior, request timeouts, and request/response
hooks. The client negotiates a mutually supported REST API version with the
target array at construction time and transparently re-establishes its session
when the array invalidates it.
*/
package purestorage
