// Package render turns a computed transaction into the ordered ledger lines
// shared by the live preview and the printed page.
package render

// Role tags the meaning of a rendered line so presenters can style it.
type Role string

// Line roles. The set is closed; presenters may rely on it.
const (
	RoleHeader          Role = "header"
	RoleBatch           Role = "batch"
	RoleWeightSummary   Role = "weight-summary"
	RoleTare            Role = "tare"
	RoleNetTimesRate    Role = "net-times-rate"
	RoleSeparator       Role = "separator"
	RoleAmount          Role = "amount"
	RoleLabour          Role = "labour"
	RoleRunningSubtotal Role = "running-subtotal"
	RoleAdjustment      Role = "adjustment"
	RoleFinal           Role = "final"
	RoleTerminator      Role = "terminator"
)

// Terminator is the closing literal of every ledger.
const Terminator = "00000 = 00"

// Line is one row of the ledger with left- and right-aligned text.
type Line struct {
	Role  Role   `json:"role"`
	Left  string `json:"left,omitempty"`
	Right string `json:"right,omitempty"`
}

// Document is the canonical rendering of one transaction.
type Document struct {
	Lines []Line `json:"lines"`
}

// Roles lists the role of every line in order.
func (d Document) Roles() []Role {
	out := make([]Role, len(d.Lines))
	for i, l := range d.Lines {
		out[i] = l.Role
	}
	return out
}

// Find returns every line with the given role.
func (d Document) Find(role Role) []Line {
	var out []Line
	for _, l := range d.Lines {
		if l.Role == role {
			out = append(out, l)
		}
	}
	return out
}
