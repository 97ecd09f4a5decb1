package purestorage

import (
	"github.com/PureStorage-OpenConnect/rest-client/core"
	"github.com/PureStorage-OpenConnect/rest-client/rest"
)

type (
	FlashArrayConfig           = core.FlashArrayConfig
	Params                     = core.Params
	Record                     = core.Record
	RecordSet                  = core.RecordSet
	Renderable                 = core.Renderable
	Response                   = core.Response
	ApiError                   = core.ApiError
	PageIterator               = core.PageIterator
	FlashArrayRest             = rest.FlashArrayRest
	PureResourceAPI            = core.PureResourceAPI
	PureResourceAPIWithContext = core.PureResourceAPIWithContext
)

func NewFlashArrayRest(config *FlashArrayConfig) (*FlashArrayRest, error) {
	return rest.NewFlashArrayRest(config)
}

// SupportedRestVersions lists the REST API versions this client can speak,
// newest first.
func SupportedRestVersions() []string {
	return core.SupportedRestVersions()
}
