package civic

// Response is the subset of a representatives lookup that this service
// consumes: two lists joined only by position. Every other upstream field is
// ignored.
type Response struct {
	Offices   []Office   `json:"offices"`
	Officials []Official `json:"officials"`
}

// Office is a role ("Senator") tied to a jurisdiction. OfficialIndices are
// zero-based positions into the response's officials list; that positional
// join is the only relation between the two lists.
type Office struct {
	Name            string `json:"name"`
	DivisionID      string `json:"divisionId"`
	OfficialIndices []int  `json:"officialIndices"`
}

// Official is one person from a lookup response. Party and PhotoURL are
// frequently absent; addresses beyond the first are never used.
type Official struct {
	Name     string    `json:"name"`
	Address  []Address `json:"address"`
	Party    *string   `json:"party"`
	PhotoURL *string   `json:"photoUrl"`
}

// FirstAddress returns the official's first listed address, or nil when the
// official has none.
func (o *Official) FirstAddress() *Address {
	if len(o.Address) == 0 {
		return nil
	}
	return &o.Address[0]
}

// Address is a single postal address.
type Address struct {
	Line1 string `json:"line1"`
	City  string `json:"city"`
	State string `json:"state"`
	Zip   string `json:"zip"`
}
