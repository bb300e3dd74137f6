package mprlist

import (
	"fmt"

	"github.com/openndn/mprlist/name"
)

// Delegation is one forwarding alternative: a name to forward toward and
// its preference rank. Lower preference values rank higher.
type Delegation struct {
	Preference uint64
	Name       name.Name
}

// Compare orders delegations by preference ascending, then by the name's
// canonical order.
func (d Delegation) Compare(other Delegation) int {
	if d.Preference != other.Preference {
		if d.Preference < other.Preference {
			return -1
		}
		return 1
	}
	return d.Name.Compare(other.Name)
}

func (d Delegation) Equal(other Delegation) bool {
	return d.Preference == other.Preference && d.Name.Equal(other.Name)
}

func (d Delegation) String() string {
	return fmt.Sprintf("%d,%s", d.Preference, d.Name)
}
