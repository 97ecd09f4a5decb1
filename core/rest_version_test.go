package core

import (
	"context"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
)

// bareSession builds an un-bootstrapped session against the test array so
// negotiation logic can be exercised in isolation, optionally against a
// reduced supported set.
func bareSession(t *testing.T, array *testArray, supported []string) *ArraySession {
	t.Helper()
	server := httptest.NewTLSServer(array)
	t.Cleanup(server.Close)
	if supported == nil {
		supported = supportedRestVersions
	}
	return &ArraySession{
		config:            &FlashArrayConfig{Target: server.Listener.Addr().String()},
		client:            server.Client(),
		cookies:           map[string]string{},
		supportedVersions: supported,
	}
}

// TestChooseRestVersionIntersection verifies that negotiation picks the
// newest version present in both the advertised and the supported set.
func TestChooseRestVersionIntersection(t *testing.T) {
	array := newTestArray("0.1", "1.1", "1.0", "1.2")
	session := bareSession(t, array, []string{"1.0", "1.1"})

	chosen, err := session.chooseRestVersion(context.Background())
	if err != nil {
		t.Fatalf("negotiation failed: %v", err)
	}
	if chosen.Original() != "1.1" {
		t.Errorf("expected 1.1, got %s", chosen.Original())
	}
}

// TestChooseRestVersionNumericOrdering verifies numeric version comparison:
// "1.9" orders before "1.10".
func TestChooseRestVersionNumericOrdering(t *testing.T) {
	array := newTestArray("1.9", "1.10", "1.2")
	session := bareSession(t, array, nil)

	chosen, err := session.chooseRestVersion(context.Background())
	if err != nil {
		t.Fatalf("negotiation failed: %v", err)
	}
	if chosen.Original() != "1.10" {
		t.Errorf("expected 1.10, got %s", chosen.Original())
	}
}

// TestChooseRestVersionNoOverlap verifies the error when the array and the
// library share no version.
func TestChooseRestVersionNoOverlap(t *testing.T) {
	array := newTestArray("0.1", "0.2")
	session := bareSession(t, array, nil)

	_, err := session.chooseRestVersion(context.Background())
	if err == nil || !strings.Contains(err.Error(), "incompatible with all REST API versions") {
		t.Fatalf("expected incompatibility error, got %v", err)
	}
}

// TestCheckRestVersionUnsupported verifies that a version outside the
// library's supported set is rejected without calling the array.
func TestCheckRestVersionUnsupported(t *testing.T) {
	array := newTestArray("1.19")
	session := bareSession(t, array, nil)

	_, err := session.checkRestVersion(context.Background(), "0.1")
	if err == nil || !strings.Contains(err.Error(), "library is incompatible with REST API version 0.1") {
		t.Fatalf("expected library incompatibility error, got %v", err)
	}
	if got := atomic.LoadInt32(&array.requests); got != 0 {
		t.Errorf("expected no HTTP requests, got %d", got)
	}
}

// TestCheckRestVersionNotAdvertised verifies that a supported version the
// array does not advertise is rejected.
func TestCheckRestVersionNotAdvertised(t *testing.T) {
	array := newTestArray("1.0", "1.1")
	session := bareSession(t, array, nil)

	_, err := session.checkRestVersion(context.Background(), "1.19")
	if err == nil || !strings.Contains(err.Error(), "array is incompatible with REST API version 1.19") {
		t.Fatalf("expected array incompatibility error, got %v", err)
	}
}

// TestCheckRestVersionAccepted verifies the happy path.
func TestCheckRestVersionAccepted(t *testing.T) {
	array := newTestArray("1.0", "1.1", "1.2")
	session := bareSession(t, array, nil)

	parsed, err := session.checkRestVersion(context.Background(), "1.1")
	if err != nil {
		t.Fatalf("expected version to be accepted: %v", err)
	}
	if parsed.Original() != "1.1" {
		t.Errorf("expected 1.1, got %s", parsed.Original())
	}
}

// TestSupportedRestVersionsCopy verifies callers cannot mutate the internal
// supported set.
func TestSupportedRestVersionsCopy(t *testing.T) {
	versions := SupportedRestVersions()
	if len(versions) == 0 {
		t.Fatal("supported version list must not be empty")
	}
	versions[0] = "tampered"
	if SupportedRestVersions()[0] == "tampered" {
		t.Error("SupportedRestVersions must return a copy")
	}
}
