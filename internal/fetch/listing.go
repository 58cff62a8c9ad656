package fetch

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/jonathan/jobmarket/internal/types"
)

// SearchResponse is one page of search results.
type SearchResponse struct {
	Count   int       `json:"count"`
	Results []Listing `json:"results"`
}

// FlexString decodes a JSON string or number into a string.
type FlexString string

// UnmarshalJSON implements json.Unmarshaler.
func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("id is neither string nor number: %s", string(data))
	}
	*f = FlexString(n.String())
	return nil
}

// Listing is one job advertisement as returned by the API.
type Listing struct {
	ID           FlexString      `json:"id"`
	Title        string          `json:"title"`
	Description  string          `json:"description"`
	SalaryMin    *float64        `json:"salary_min"`
	SalaryMax    *float64        `json:"salary_max"`
	Latitude     *float64        `json:"latitude"`
	Longitude    *float64        `json:"longitude"`
	Location     json.RawMessage `json:"location"`
	Company      labeled         `json:"company"`
	Category     labeled         `json:"category"`
	Created      string          `json:"created"`
	RedirectURL  string          `json:"redirect_url"`
	ContractType string          `json:"contract_type"`
}

type labeled struct {
	DisplayName string `json:"display_name"`
	Label       string `json:"label"`
	Tag         string `json:"tag"`
}

// Record converts the listing into a JobRecord stamped with jobType.
// Markup in title and description is reduced to plain text.
func (l Listing) Record(jobType string) types.JobRecord {
	return types.JobRecord{
		ID:           string(l.ID),
		JobType:      jobType,
		Title:        PlainText(l.Title),
		Description:  PlainText(l.Description),
		SalaryMin:    l.SalaryMin,
		SalaryMax:    l.SalaryMax,
		Latitude:     l.Latitude,
		Longitude:    l.Longitude,
		Location:     compactLocation(l.Location),
		Company:      l.Company.DisplayName,
		Created:      l.Created,
		RedirectURL:  l.RedirectURL,
		Category:     firstNonEmpty(l.Category.Tag, l.Category.Label),
		ContractType: l.ContractType,
	}
}

// compactLocation returns the location object as compact JSON, or the raw
// string content when the API sent a string.
func compactLocation(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return ""
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			return s
		}
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
