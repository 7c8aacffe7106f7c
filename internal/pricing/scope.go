package pricing

import (
	"regexp"
	"strings"
)

var pinCodePattern = regexp.MustCompile(`\b\d{6}\b`)

// DefaultSrinagarPins are the postal codes treated as inside the service area.
var DefaultSrinagarPins = []string{
	"190001", "190002", "190003", "190004", "190005",
	"190006", "190007", "190008", "190009", "190010",
}

// ServiceArea classifies trips by the postal codes found in their endpoints.
type ServiceArea struct {
	pins map[string]struct{}
}

func NewServiceArea(pins []string) ServiceArea {
	set := make(map[string]struct{}, len(pins))
	for _, p := range pins {
		p = strings.TrimSpace(p)
		if p != "" {
			set[p] = struct{}{}
		}
	}
	return ServiceArea{pins: set}
}

// Empty reports whether no pins were configured.
func (a ServiceArea) Empty() bool {
	return len(a.pins) == 0
}

func (a ServiceArea) Contains(pin string) bool {
	_, ok := a.pins[pin]
	return ok
}

// Classify returns ScopeSrinagar when both endpoints are inside the area.
// An endpoint without a pin code counts as inside.
func (a ServiceArea) Classify(start, end string) Scope {
	startPin := ExtractPinCode(start)
	endPin := ExtractPinCode(end)
	if startPin == "" && endPin == "" {
		return ScopeSrinagar
	}
	startIn := startPin == "" || a.Contains(startPin)
	endIn := endPin == "" || a.Contains(endPin)
	if startIn && endIn {
		return ScopeSrinagar
	}
	return ScopeOutsideSrinagar
}

// ExtractPinCode returns the last standalone six-digit group in location.
func ExtractPinCode(location string) string {
	matches := pinCodePattern.FindAllString(location, -1)
	if len(matches) == 0 {
		return ""
	}
	return matches[len(matches)-1]
}
