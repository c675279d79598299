package address

import "strings"

// Address is a postal address. Every field is optional.
type Address struct {
	Street     string `json:"street,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Country    string `json:"country,omitempty"`
}

// IsZero reports whether no field is set.
func (a Address) IsZero() bool {
	return a == Address{}
}

// Lines renders the address as printable lines, skipping empty parts.
func (a Address) Lines() []string {
	var lines []string

	if a.Street != "" {
		lines = append(lines, a.Street)
	}

	cityLine := strings.TrimSpace(strings.Join(nonEmpty(a.PostalCode, a.City, a.State), " "))
	if cityLine != "" {
		lines = append(lines, cityLine)
	}

	if a.Country != "" {
		lines = append(lines, a.Country)
	}

	return lines
}

func nonEmpty(parts ...string) []string {
	out := parts[:0:0]
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}

	return out
}
