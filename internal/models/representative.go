package models

import "strings"

// Representative is an elected official resolved from the civic API.
// Identity is the (Name, OCDID) pair and is fixed at creation; every other
// attribute is replaced wholesale on each reconciliation pass, including being
// set back to nil when the latest payload lacks it.
type Representative struct {
	ID       string  `json:"id,omitempty"`
	Name     string  `json:"name"`
	OCDID    string  `json:"ocdid"`
	Title    string  `json:"title"`
	Street   *string `json:"street"`
	City     *string `json:"city"`
	State    *string `json:"state"`
	Zip      *string `json:"zip"`
	Party    *string `json:"party"`
	PhotoURL *string `json:"photo_url"`
}

// FullAddress joins the known address parts with commas. Returns a
// placeholder when no part of the address is known.
func (r *Representative) FullAddress() string {
	var parts []string
	for _, p := range []*string{r.Street, r.City, r.State, r.Zip} {
		if p != nil && *p != "" {
			parts = append(parts, *p)
		}
	}
	if len(parts) == 0 {
		return "Address not available"
	}
	return strings.Join(parts, ", ")
}
