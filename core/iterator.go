package core

import (
	"context"
)

// PageFunc is one paginatable operation: it accepts a parameter bag carrying
// "limit" (and, on pages after the first, "token") and returns the decoded
// page with its response headers.
type PageFunc func(ctx context.Context, params Params) (*Response, error)

// PageIterator walks all pages of a REST operation that honors the
// limit/token pagination contract: each page is requested with the
// configured limit and the continuation token read from the previous page's
// x-next-token response header.
//
// A failed pull returns the error and leaves the continuation token
// untouched, so the next pull repeats the same request unless the consumer
// supplies an alternate token via SetToken. The sequence ends when the array
// returns an empty page.
//
// Pagination requires REST API 1.7 or later and only works with operations
// that accept limit as a parameter.
type PageIterator struct {
	ctx      context.Context
	fetch    PageFunc
	params   Params
	pageSize int
	token    string
	done     bool
}

// NewPageIterator creates an iterator over all pages of the given operation,
// retrieving pageSize elements per pull.
func NewPageIterator(ctx context.Context, fetch PageFunc, params Params, pageSize int) *PageIterator {
	if ctx == nil {
		ctx = context.Background()
	}
	if params == nil {
		params = Params{}
	} else {
		params = params.Copy()
	}
	params["limit"] = pageSize
	return &PageIterator{
		ctx:      ctx,
		fetch:    fetch,
		params:   params,
		pageSize: pageSize,
	}
}

// Next pulls one page. It returns (nil, nil) once the sequence is exhausted.
// On error the continuation token is left unchanged, so calling Next again
// retries the same page.
func (it *PageIterator) Next() (*Response, error) {
	if it.done {
		return nil, nil
	}
	params := it.params.Copy()
	if it.token != "" {
		params["token"] = it.token
	}
	page, err := it.fetch(it.ctx, params)
	if err != nil {
		return nil, err
	}
	it.token = page.Headers.Get(HeaderNextToken)
	if page.Empty() {
		it.done = true
		return nil, nil
	}
	return page, nil
}

// SetToken overrides the continuation token used by the next pull. This is
// the escape hatch for consumers that want to skip a persistently failing
// page or resume from a previously recorded position.
func (it *PageIterator) SetToken(token string) {
	it.token = token
}

// Token returns the continuation token the next pull will use.
func (it *PageIterator) Token() string {
	return it.token
}

// Done reports whether the sequence is exhausted.
func (it *PageIterator) Done() bool {
	return it.done
}

// PageSize returns the configured page size.
func (it *PageIterator) PageSize() int {
	return it.pageSize
}

// All drains the iterator and returns the records of all remaining pages as
// a single RecordSet. Use with caution for large datasets.
func (it *PageIterator) All() (RecordSet, error) {
	var allRecords RecordSet
	for {
		page, err := it.Next()
		if err != nil {
			return nil, err
		}
		if page == nil {
			return allRecords, nil
		}
		if rs, ok := page.RecordSet(); ok {
			allRecords = append(allRecords, rs...)
		} else if rec, ok := page.Record(); ok {
			allRecords = append(allRecords, rec)
		}
	}
}
