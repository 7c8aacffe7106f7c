package utils

import (
	"log"
	"strings"
)

// LogEvent prints a standardized log line with module/action/request_id.
// Callers summarize; payloads and tokens are never passed in.
func LogEvent(requestID, module, action, message string) {
	req := strings.TrimSpace(requestID)
	log.Printf("[%s] action=%s request_id=%s msg=%s", strings.ToUpper(module), action, req, message)
}

// LogError is LogEvent for failures.
func LogError(requestID, module, action string, err error) {
	if err == nil {
		return
	}
	LogEvent(requestID, module, action, "error="+err.Error())
}
