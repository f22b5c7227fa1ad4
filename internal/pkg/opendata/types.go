package opendata

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// RawLicense is the wire shape of one business-licence record from the
// municipal open-data API. Every field arrives as a string; anything the
// source omits is empty.
type RawLicense struct {
	LicenceNumber string `json:"licencenumber"`
	TradeName     string `json:"tradename"`
	Address       string `json:"address"`
	Community     string `json:"comdistnm"`
	LicenceTypes  string `json:"licencetypes"`
	FirstIssued   string `json:"first_iss_dt"`
	Latitude      string `json:"latitude"`
	Longitude     string `json:"longitude"`
}

// License is a validated, typed business-licence record.
type License struct {
	ExternalID  string
	Name        string
	Address     string
	Community   string
	LicenseType string
	FirstIssued time.Time
	Latitude    *float64
	Longitude   *float64
}

// MapError reports why a single raw record could not be mapped. One bad
// record never aborts the surrounding batch.
type MapError struct {
	ExternalID string
	Field      string
	Message    string
}

func (e *MapError) Error() string {
	id := e.ExternalID
	if id == "" {
		id = "<unknown>"
	}
	return fmt.Sprintf("record %s: invalid %s: %s", id, e.Field, e.Message)
}

// Timestamp layouts observed on the open-data endpoint.
var dateLayouts = []string{
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Map validates a raw record and converts it to a typed License.
func Map(raw RawLicense) (*License, error) {
	externalID := strings.TrimSpace(raw.LicenceNumber)
	if externalID == "" {
		return nil, &MapError{Field: "licencenumber", Message: "missing required field"}
	}

	name := strings.TrimSpace(raw.TradeName)
	if name == "" {
		return nil, &MapError{ExternalID: externalID, Field: "tradename", Message: "missing required field"}
	}

	issuedRaw := strings.TrimSpace(raw.FirstIssued)
	if issuedRaw == "" {
		return nil, &MapError{ExternalID: externalID, Field: "first_iss_dt", Message: "missing required field"}
	}
	issued, err := parseDate(issuedRaw)
	if err != nil {
		return nil, &MapError{ExternalID: externalID, Field: "first_iss_dt", Message: fmt.Sprintf("unparseable date %q", issuedRaw)}
	}

	lic := &License{
		ExternalID:  externalID,
		Name:        name,
		Address:     strings.TrimSpace(raw.Address),
		Community:   strings.TrimSpace(raw.Community),
		LicenseType: strings.TrimSpace(raw.LicenceTypes),
		FirstIssued: issued,
	}

	// Coordinates are optional; a malformed pair degrades to "no location"
	// rather than failing the record.
	if lat, err := strconv.ParseFloat(strings.TrimSpace(raw.Latitude), 64); err == nil {
		if lng, err := strconv.ParseFloat(strings.TrimSpace(raw.Longitude), 64); err == nil {
			lic.Latitude = &lat
			lic.Longitude = &lng
		}
	}

	return lic, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("no matching date layout for %q", s)
}
