package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// FlexNumber tolerates JSON numbers and numeric strings ("16000", " 0.1 ").
// Anything else is kept as Invalid so validation can report the field.
type FlexNumber struct {
	Value   float64
	Set     bool
	Invalid bool
}

func (n *FlexNumber) UnmarshalJSON(b []byte) error {
	*n = FlexNumber{}
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		return nil
	}
	n.Set = true
	raw := string(b)
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			n.Invalid = true
			return nil
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			n.Set = false
			return nil
		}
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		n.Invalid = true
		return nil
	}
	n.Value = f
	return nil
}

func (n FlexNumber) MarshalJSON() ([]byte, error) {
	if !n.Set || n.Invalid {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value)
}

// Num builds a set FlexNumber, mostly for callers constructing payloads in code.
func Num(v float64) FlexNumber {
	return FlexNumber{Value: v, Set: true}
}

// CarPayload is the admin create/update body for a car.
type CarPayload struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Category  string     `json:"category"`
	BasePrice FlexNumber `json:"base_price"`
	PerKm     FlexNumber `json:"per_km"`
	ImageURL  *string    `json:"image_url"`
	Active    *bool      `json:"active"`
}

// PriceRulePayload is the admin create/update body for a price rule.
type PriceRulePayload struct {
	ID       string     `json:"id"`
	RuleName string     `json:"rule_name"`
	Type     string     `json:"type"`
	Scope    string     `json:"scope"`
	Value    FlexNumber `json:"value"`
	Active   *bool      `json:"active"`
}

// EstimateRequest is the customer estimate body. Scope may be omitted when
// pickup/dropoff are supplied; it is then derived from their pin codes.
type EstimateRequest struct {
	CarID   string     `json:"carId"`
	Kms     FlexNumber `json:"kms"`
	Scope   string     `json:"scope"`
	DateISO string     `json:"dateISO"`
	Pickup  string     `json:"pickup"`
	Dropoff string     `json:"dropoff"`
}

// IDPayload is the legacy delete body ({"id": "..."}).
type IDPayload struct {
	ID string `json:"id"`
}

// QuoteRequest is an estimate request plus the enquiry details shared with
// the operator over WhatsApp or as a PDF.
type QuoteRequest struct {
	EstimateRequest
	FullName         string `json:"fullName"`
	Phone            string `json:"phone"`
	Email            string `json:"email"`
	EnquiryType      string `json:"enquiryType"`
	ServiceType      string `json:"serviceType"`
	EventDate        string `json:"eventDate"`
	EventTime        string `json:"eventTime"`
	DrivingOption    string `json:"drivingOption"`
	WantDecoration   string `json:"wantDecoration"`
	DecorationType   string `json:"decorationType"`
	WantNamePlate    string `json:"wantNamePlate"`
	NamePlateDetails string `json:"namePlateDetails"`
	SpecialRequests  string `json:"specialRequests"`
}
