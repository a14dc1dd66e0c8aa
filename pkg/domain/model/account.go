package model

import (
	"encoding/json"
	"strings"
)

// AttributeValue holds the values of one directory attribute. A value with
// exactly one element is a single string, otherwise it is an ordered list.
type AttributeValue struct {
	values []string
}

// NewSingleValue creates a single-string attribute value
func NewSingleValue(v string) AttributeValue {
	return AttributeValue{values: []string{v}}
}

// NewListValue creates a list attribute value. A list with one element is
// still reported as a single value, matching how the directory returns it.
func NewListValue(vs ...string) AttributeValue {
	copied := make([]string, len(vs))
	copy(copied, vs)
	return AttributeValue{values: copied}
}

// IsList reports whether the attribute had more than one value
func (v AttributeValue) IsList() bool {
	return len(v.values) > 1
}

// String returns the single value, or the first element of a list
func (v AttributeValue) String() string {
	if len(v.values) == 0 {
		return ""
	}
	return v.values[0]
}

// Values returns a copy of all values in directory order
func (v AttributeValue) Values() []string {
	copied := make([]string, len(v.values))
	copy(copied, v.values)
	return copied
}

// MarshalJSON encodes a single value as a string and a list as an array
func (v AttributeValue) MarshalJSON() ([]byte, error) {
	if v.IsList() {
		return json.Marshal(v.values)
	}
	return json.Marshal(v.String())
}

// Account represents one directory entry of interest. Only the attributes
// requested from the directory and present on the entry are set.
type Account struct {
	DN         string
	Attributes map[string]AttributeValue

	// InviteLink is the redemption URL of a pending Grafana invitation, set by
	// link population. Empty means no pending invitation was found.
	InviteLink string
}

// NewAccount builds an Account from raw entry attributes, copying only the
// requested attribute names. Names are matched case-insensitively and stored
// under the requested spelling.
func NewAccount(dn string, raw map[string][]string, requested []string) *Account {
	account := &Account{
		DN:         dn,
		Attributes: make(map[string]AttributeValue, len(requested)),
	}

	for _, name := range requested {
		values := lookupFold(raw, name)
		if len(values) == 0 {
			continue
		}
		account.Attributes[name] = NewListValue(values...)
	}

	return account
}

func lookupFold(raw map[string][]string, name string) []string {
	if values, ok := raw[name]; ok {
		return values
	}
	for key, values := range raw {
		if strings.EqualFold(key, name) {
			return values
		}
	}
	return nil
}

// Get returns the attribute value and whether it is present
func (a *Account) Get(name string) (AttributeValue, bool) {
	v, ok := a.Attributes[name]
	return v, ok
}

// Value returns the attribute as a single string, or "" when absent
func (a *Account) Value(name string) string {
	v, ok := a.Attributes[name]
	if !ok {
		return ""
	}
	return v.String()
}

// HasInviteLink reports whether a pending invitation link was attached
func (a *Account) HasInviteLink() bool {
	return a.InviteLink != ""
}

// SetInviteLink attaches a pending invitation link
func (a *Account) SetInviteLink(url string) {
	a.InviteLink = url
}

// MarshalJSON encodes the attributes as a flat object, plus dn and
// inviteLink when present
func (a *Account) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(a.Attributes)+2)
	for name, v := range a.Attributes {
		out[name] = v
	}
	if a.DN != "" {
		out["dn"] = a.DN
	}
	if a.HasInviteLink() {
		out["inviteLink"] = a.InviteLink
	}
	return json.Marshal(out)
}

// RawAttributes returns the attributes as name to values, the shape directory
// libraries expect
func (a *Account) RawAttributes() map[string][]string {
	raw := make(map[string][]string, len(a.Attributes))
	for name, v := range a.Attributes {
		raw[name] = v.Values()
	}
	return raw
}
