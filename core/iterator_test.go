package core

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func makePage(records RecordSet, nextToken string) *Response {
	headers := http.Header{}
	if nextToken != "" {
		headers.Set(HeaderNextToken, nextToken)
	}
	return &Response{Renderable: records, Headers: headers}
}

func namedRecords(names ...string) RecordSet {
	rs := make(RecordSet, len(names))
	for i, name := range names {
		rs[i] = Record{"name": name}
	}
	return rs
}

// TestIteratorWalksAllPages verifies the limit/token pull sequence: limit on
// every pull, token only after the first, termination on the empty page.
func TestIteratorWalksAllPages(t *testing.T) {
	pages := []*Response{
		makePage(namedRecords("v1", "v2"), "t1"),
		makePage(namedRecords("v3"), "t2"),
		makePage(RecordSet{}, ""),
	}
	var pulls []Params
	fetch := func(ctx context.Context, params Params) (*Response, error) {
		pulls = append(pulls, params)
		return pages[len(pulls)-1], nil
	}

	it := NewPageIterator(context.Background(), fetch, Params{"space": true}, 2)

	page, err := it.Next()
	if err != nil {
		t.Fatalf("first pull failed: %v", err)
	}
	records, _ := page.RecordSet()
	if len(records) != 2 {
		t.Errorf("expected 2 records on first page, got %d", len(records))
	}

	if page, err = it.Next(); err != nil {
		t.Fatalf("second pull failed: %v", err)
	}
	if records, _ = page.RecordSet(); len(records) != 1 {
		t.Errorf("expected 1 record on second page, got %d", len(records))
	}

	// Third pull sees the empty page and ends the sequence.
	if page, err = it.Next(); err != nil || page != nil {
		t.Fatalf("expected end of sequence, got page=%v err=%v", page, err)
	}
	if !it.Done() {
		t.Error("iterator should be done after an empty page")
	}
	// Further pulls are no-ops.
	if page, err = it.Next(); err != nil || page != nil {
		t.Errorf("expected exhausted iterator to return nil, got page=%v err=%v", page, err)
	}

	if len(pulls) != 3 {
		t.Fatalf("expected 3 pulls, got %d", len(pulls))
	}
	for i, params := range pulls {
		if params["limit"] != 2 {
			t.Errorf("pull %d limit = %v, want 2", i+1, params["limit"])
		}
		if params["space"] != true {
			t.Errorf("pull %d lost the caller params", i+1)
		}
	}
	if _, hasToken := pulls[0]["token"]; hasToken {
		t.Error("first pull must not carry a token")
	}
	if pulls[1]["token"] != "t1" || pulls[2]["token"] != "t2" {
		t.Errorf("token sequence wrong: %v, %v", pulls[1]["token"], pulls[2]["token"])
	}
}

// TestIteratorErrorKeepsToken verifies that a failed pull leaves the
// continuation token unchanged so the next pull repeats the same page.
func TestIteratorErrorKeepsToken(t *testing.T) {
	var pull int
	fetch := func(ctx context.Context, params Params) (*Response, error) {
		pull++
		switch pull {
		case 1:
			return makePage(namedRecords("v1"), "t1"), nil
		case 2:
			return nil, errors.New("array busy")
		default:
			if params["token"] != "t1" {
				return nil, fmt.Errorf("retry used token %v, want t1", params["token"])
			}
			return makePage(RecordSet{}, ""), nil
		}
	}

	it := NewPageIterator(context.Background(), fetch, nil, 1)
	if _, err := it.Next(); err != nil {
		t.Fatalf("first pull failed: %v", err)
	}
	if _, err := it.Next(); err == nil {
		t.Fatal("expected second pull to fail")
	}
	if it.Token() != "t1" {
		t.Errorf("token after failed pull = %q, want t1", it.Token())
	}
	if it.Done() {
		t.Error("iterator must not be done after a failed pull")
	}
	if _, err := it.Next(); err != nil {
		t.Fatalf("retry failed: %v", err)
	}
}

// TestIteratorSetToken verifies the consumer-supplied token override.
func TestIteratorSetToken(t *testing.T) {
	var gotToken any
	fetch := func(ctx context.Context, params Params) (*Response, error) {
		gotToken = params["token"]
		return makePage(RecordSet{}, ""), nil
	}

	it := NewPageIterator(context.Background(), fetch, nil, 10)
	it.SetToken("resume-here")
	if _, err := it.Next(); err != nil {
		t.Fatalf("pull failed: %v", err)
	}
	if gotToken != "resume-here" {
		t.Errorf("pull used token %v, want resume-here", gotToken)
	}
}

// TestIteratorAll verifies aggregation across pages.
func TestIteratorAll(t *testing.T) {
	pages := []*Response{
		makePage(namedRecords("v1", "v2"), "t1"),
		makePage(namedRecords("v3"), ""),
		makePage(RecordSet{}, ""),
	}
	var pull int
	fetch := func(ctx context.Context, params Params) (*Response, error) {
		pull++
		return pages[pull-1], nil
	}

	it := NewPageIterator(context.Background(), fetch, nil, 2)
	all, err := it.All()
	if err != nil {
		t.Fatalf("All failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 records, got %d", len(all))
	}
}

// TestIteratorDoesNotMutateCallerParams verifies the params bag handed to the
// iterator is copied, not aliased.
func TestIteratorDoesNotMutateCallerParams(t *testing.T) {
	params := Params{"space": true}
	fetch := func(ctx context.Context, p Params) (*Response, error) {
		return makePage(RecordSet{}, ""), nil
	}
	it := NewPageIterator(context.Background(), fetch, params, 5)
	if _, err := it.Next(); err != nil {
		t.Fatalf("pull failed: %v", err)
	}
	if _, ok := params["limit"]; ok {
		t.Error("caller params were mutated with the limit key")
	}
}
