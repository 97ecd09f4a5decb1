package core

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

var logLevel string

func init() {
	logLevel = strings.ToLower(os.Getenv("PURE_LOG"))
}

// ######################################################
//
//	REQUEST/RESPONSE LOGGING
//
// ######################################################

// beforeRequestLog logs HTTP request details before sending the request.
// In debug mode, it includes the request body (if present).
// In info mode, it only logs the HTTP method and URL.
func beforeRequestLog(verb, url string, body io.Reader) {
	requestInfo := fmt.Sprintf("http request start: [%s] %s", verb, url)
	var bodyMsg string

	// In debug mode, read and format the request body
	if body != nil && logLevel == "debug" {
		bodyBytes, err := io.ReadAll(body)
		if err != nil {
			log.Printf("ERROR: failed to read request body: %v", err)
			return
		}

		trimmed := bytes.TrimSpace(bodyBytes)
		if len(trimmed) > 0 && !bytes.Equal(trimmed, []byte("null")) {
			var compact bytes.Buffer
			if err := json.Compact(&compact, trimmed); err == nil {
				bodyMsg = compact.String()
			} else {
				bodyMsg = string(trimmed)
			}
		}
	}

	if bodyMsg == "" {
		log.Printf("INFO: %s", requestInfo)
	} else {
		log.Printf("DEBUG: %s | body: %s", requestInfo, bodyMsg)
	}
}

// afterRequestLog logs response details after a successful decode.
// In debug mode, it pretty-prints the full response data using PrettyJson.
// In info mode, it only logs a summary.
func afterRequestLog(response Renderable) {
	if logLevel == "debug" {
		log.Printf("DEBUG: response\n%s", response.PrettyJson("  "))
		return
	}
	var responseStr string
	switch resp := response.(type) {
	case Record:
		responseStr = "Record received"
	case RecordSet:
		responseStr = fmt.Sprintf("RecordSet with %d record(s)", len(resp))
	default:
		responseStr = "Response received"
	}
	log.Printf("INFO: response | %s", responseStr)
}
