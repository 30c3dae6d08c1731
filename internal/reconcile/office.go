package reconcile

import "actionmap/internal/civic"

// OfficeInfo is the resolved (title, division) pair for one official's
// position. The zero value — both fields empty — is the sentinel for an
// official no office claims; downstream treats that as a blank title and a
// blank division id, never as an error.
type OfficeInfo struct {
	Name       string
	DivisionID string
}

// ResolveOffice returns the office info for the official at the given
// zero-based position. Offices are scanned in input order and the first one
// whose OfficialIndices contains the position wins; index sets are not
// guaranteed disjoint and the first-match tie-break is load-bearing.
//
// When no office claims the position, the empty OfficeInfo is returned. Note
// that two unmatched officials with the same name then share the
// (name, "") identity key and collapse into one representative row; that
// collision is long-standing behavior and is kept as is.
func ResolveOffice(offices []civic.Office, position int) OfficeInfo {
	for _, office := range offices {
		for _, idx := range office.OfficialIndices {
			if idx == position {
				return OfficeInfo{Name: office.Name, DivisionID: office.DivisionID}
			}
		}
	}
	return OfficeInfo{}
}
