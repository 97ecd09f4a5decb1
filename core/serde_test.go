package core

import (
	"io"
	"net/http"
	"strings"
	"testing"
)

func jsonResponse(body string) *http.Response {
	return &http.Response{
		StatusCode:    http.StatusOK,
		ContentLength: int64(len(body)),
		Body:          io.NopCloser(strings.NewReader(body)),
	}
}

func TestUnmarshalToRecordUnion(t *testing.T) {
	t.Run("object", func(t *testing.T) {
		payload, err := unmarshalToRecordUnion(jsonResponse(`{"name": "vol1", "size": 1024}`))
		if err != nil {
			t.Fatal(err)
		}
		record, ok := payload.(Record)
		if !ok {
			t.Fatalf("expected Record, got %T", payload)
		}
		if record["name"] != "vol1" {
			t.Errorf("unexpected record: %v", record)
		}
	})

	t.Run("array of objects", func(t *testing.T) {
		payload, err := unmarshalToRecordUnion(jsonResponse(`[{"name": "v1"}, {"name": "v2"}]`))
		if err != nil {
			t.Fatal(err)
		}
		records, ok := payload.(RecordSet)
		if !ok {
			t.Fatalf("expected RecordSet, got %T", payload)
		}
		if len(records) != 2 || records[1]["name"] != "v2" {
			t.Errorf("unexpected record set: %v", records)
		}
	})

	t.Run("array of scalars", func(t *testing.T) {
		payload, err := unmarshalToRecordUnion(jsonResponse(`["1.0", "1.1"]`))
		if err != nil {
			t.Fatal(err)
		}
		records, ok := payload.(RecordSet)
		if !ok {
			t.Fatalf("expected RecordSet, got %T", payload)
		}
		if len(records) != 2 || records[0][customRawKey] != "1.0" {
			t.Errorf("unexpected record set: %v", records)
		}
	})

	t.Run("empty body", func(t *testing.T) {
		payload, err := unmarshalToRecordUnion(jsonResponse(""))
		if err != nil {
			t.Fatal(err)
		}
		record, ok := payload.(Record)
		if !ok || !record.Empty() {
			t.Errorf("expected empty Record, got %T %v", payload, payload)
		}
	})

	t.Run("unsupported format", func(t *testing.T) {
		if _, err := unmarshalToRecordUnion(jsonResponse("42")); err == nil {
			t.Error("expected error for bare scalar body")
		}
	})
}

func TestResponseAccessors(t *testing.T) {
	headers := http.Header{}
	headers.Set(HeaderNextToken, "t1")

	response := &Response{Renderable: Record{"name": "vol1"}, Headers: headers}
	if record, ok := response.Record(); !ok || record["name"] != "vol1" {
		t.Errorf("Record accessor failed: %v", response.Renderable)
	}
	if _, ok := response.RecordSet(); ok {
		t.Error("RecordSet accessor should fail for a Record payload")
	}
	if response.Empty() {
		t.Error("non-empty record reported as empty")
	}
	if response.Headers.Get(HeaderNextToken) != "t1" {
		t.Error("response headers not carried")
	}

	response = &Response{Renderable: RecordSet{}, Headers: http.Header{}}
	if !response.Empty() {
		t.Error("empty record set should report empty")
	}
}

func TestParamsOperations(t *testing.T) {
	params := Params{"a": 1, "b": 2}

	cp := params.Copy()
	cp["a"] = 10
	if params["a"] != 1 {
		t.Error("Copy must not alias the original map")
	}

	params.Update(Params{"a": 100, "c": 3}, false)
	if params["a"] != 1 || params["c"] != 3 {
		t.Errorf("Update without override wrong: %v", params)
	}
	params.Update(Params{"a": 100}, true)
	if params["a"] != 100 {
		t.Errorf("Update with override wrong: %v", params)
	}

	params.Without("b", "c")
	if _, ok := params["b"]; ok {
		t.Error("Without did not remove key")
	}
}

func TestNewParamsFromStruct(t *testing.T) {
	type createVolume struct {
		Name     string   `json:"name"`
		Size     int64    `json:"size"`
		Sources  []string `json:"sources,omitempty"`
		Internal string   `json:"-"`
	}
	params, err := NewParamsFromStruct(createVolume{Name: "vol1", Size: 1024, Internal: "x"})
	if err != nil {
		t.Fatal(err)
	}
	if params["name"] != "vol1" || params["size"] != int64(1024) {
		t.Errorf("unexpected params: %v", params)
	}
	if _, ok := params["sources"]; ok {
		t.Error("omitempty field should be dropped")
	}
	if _, ok := params["-"]; ok {
		t.Error("json:\"-\" field should be dropped")
	}
}

func TestRecordFill(t *testing.T) {
	type volume struct {
		Name   string `json:"name"`
		Size   int64  `json:"size"`
		Serial string `json:"serial"`
	}
	record := Record{"name": "vol1", "size": float64(1024), "serial": 12345}

	var v volume
	if err := record.Fill(&v); err != nil {
		t.Fatal(err)
	}
	if v.Name != "vol1" || v.Size != 1024 {
		t.Errorf("unexpected fill result: %+v", v)
	}
	// Numeric serial converted to the string field by FlexibleUnmarshal.
	if v.Serial != "12345" {
		t.Errorf("serial = %q, want 12345", v.Serial)
	}

	if err := record.Fill(volume{}); err == nil {
		t.Error("Fill must reject non-pointer containers")
	}
}

func TestRecordSetFill(t *testing.T) {
	type volume struct {
		Name string `json:"name"`
	}
	records := RecordSet{{"name": "v1"}, {"name": "v2"}}

	var volumes []volume
	if err := records.Fill(&volumes); err != nil {
		t.Fatal(err)
	}
	if len(volumes) != 2 || volumes[1].Name != "v2" {
		t.Errorf("unexpected fill result: %+v", volumes)
	}
}

func TestRecordAccessors(t *testing.T) {
	record := Record{"name": "vol1", "id": float64(42)}
	if record.RecordName() != "vol1" {
		t.Errorf("RecordName = %q", record.RecordName())
	}
	if record.RecordID() != 42 {
		t.Errorf("RecordID = %d", record.RecordID())
	}

	record.SetMissingValue("name", "other")
	if record["name"] != "vol1" {
		t.Error("SetMissingValue must not override existing keys")
	}
	record.SetMissingValue("size", 1024)
	if record["size"] != 1024 {
		t.Error("SetMissingValue did not set a missing key")
	}
}

func TestTypeMatch(t *testing.T) {
	if !typeMatch[Record](Record{}) {
		t.Error("Record should match Record")
	}
	if typeMatch[RecordSet](Record{}) {
		t.Error("Record should not match RecordSet")
	}
	if !typeMatch[RecordSet](RecordSet{}) {
		t.Error("RecordSet should match RecordSet")
	}
}

func TestRecordPrettyTableSmoke(t *testing.T) {
	record := Record{"name": "vol1", "size": 1024, "custom": "x"}
	table := record.PrettyTable()
	if !strings.Contains(table, "vol1") {
		t.Errorf("rendered table missing values:\n%s", table)
	}
	if (Record{}).PrettyTable() != "<>" {
		t.Error("empty record should render as <>")
	}
	if (RecordSet{}).PrettyTable() != "[]" {
		t.Error("empty record set should render as []")
	}
}
