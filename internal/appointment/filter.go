package appointment

import "strings"

// Criteria narrows a list. Zero-value fields match everything.
type Criteria struct {
	Status      Status      `json:"status,omitempty"`
	ServiceType ServiceType `json:"serviceType,omitempty"`
	Search      string      `json:"search,omitempty"`
}

// Filter returns the appointments matching every set criterion. Search is a
// case-insensitive substring match on pet or owner name, where a missing name
// reads as "Unknown". The input slice is never modified.
func Filter(list []Appointment, c Criteria) []Appointment {
	term := strings.ToLower(strings.TrimSpace(c.Search))

	out := make([]Appointment, 0, len(list))
	for _, a := range list {
		if c.Status != "" && a.Status != c.Status {
			continue
		}
		if c.ServiceType != "" && a.ServiceType != c.ServiceType {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(a.DisplayPetName()), term) &&
			!strings.Contains(strings.ToLower(a.DisplayOwnerName()), term) {
			continue
		}
		out = append(out, a)
	}
	return out
}
