package directory

import (
	"strconv"
	"strings"

	ber "github.com/go-asn1-ber/asn1-ber"
	"github.com/go-ldap/ldap/v3"
	"github.com/m-mizutani/goerr/v2"
)

// Filter is a compiled LDAP search filter evaluated locally against entries
type Filter struct {
	raw    string
	packet *ber.Packet
}

// CompileFilter parses an RFC 4515 filter string
func CompileFilter(filter string) (*Filter, error) {
	packet, err := ldap.CompileFilter(filter)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to compile LDAP filter", goerr.V("filter", filter))
	}
	return &Filter{raw: filter, packet: packet}, nil
}

// Match reports whether the entry satisfies the filter. Values are compared
// case-insensitively, as most directory attributes use caseIgnoreMatch.
func (f *Filter) Match(entry *ldap.Entry) (bool, error) {
	return matchPacket(f.packet, entry)
}

func matchPacket(p *ber.Packet, entry *ldap.Entry) (bool, error) {
	switch p.Tag {
	case ldap.FilterAnd:
		for _, child := range p.Children {
			ok, err := matchPacket(child, entry)
			if err != nil || !ok {
				return false, err
			}
		}
		return true, nil

	case ldap.FilterOr:
		for _, child := range p.Children {
			ok, err := matchPacket(child, entry)
			if err != nil {
				return false, err
			}
			if ok {
				return true, nil
			}
		}
		return false, nil

	case ldap.FilterNot:
		if len(p.Children) != 1 {
			return false, goerr.New("malformed NOT filter")
		}
		ok, err := matchPacket(p.Children[0], entry)
		return !ok, err

	case ldap.FilterPresent:
		return len(valuesOf(entry, packetString(p))) > 0, nil

	case ldap.FilterEqualityMatch, ldap.FilterApproxMatch:
		attr, want, err := assertion(p)
		if err != nil {
			return false, err
		}
		for _, v := range valuesOf(entry, attr) {
			if strings.EqualFold(v, want) {
				return true, nil
			}
		}
		return false, nil

	case ldap.FilterGreaterOrEqual, ldap.FilterLessOrEqual:
		attr, want, err := assertion(p)
		if err != nil {
			return false, err
		}
		for _, v := range valuesOf(entry, attr) {
			c := compareValues(v, want)
			if (p.Tag == ldap.FilterGreaterOrEqual && c >= 0) || (p.Tag == ldap.FilterLessOrEqual && c <= 0) {
				return true, nil
			}
		}
		return false, nil

	case ldap.FilterSubstrings:
		if len(p.Children) != 2 {
			return false, goerr.New("malformed substrings filter")
		}
		attr := packetString(p.Children[0])
		for _, v := range valuesOf(entry, attr) {
			if matchSubstrings(strings.ToLower(v), p.Children[1].Children) {
				return true, nil
			}
		}
		return false, nil

	default:
		return false, goerr.New("unsupported LDAP filter type for local evaluation",
			goerr.V("tag", p.Tag),
			goerr.V("description", p.Description))
	}
}

func assertion(p *ber.Packet) (string, string, error) {
	if len(p.Children) != 2 {
		return "", "", goerr.New("malformed attribute value assertion", goerr.V("tag", p.Tag))
	}
	return packetString(p.Children[0]), packetString(p.Children[1]), nil
}

func matchSubstrings(value string, parts []*ber.Packet) bool {
	rest := value
	for _, part := range parts {
		s := strings.ToLower(packetString(part))
		switch part.Tag {
		case ldap.FilterSubstringsInitial:
			if !strings.HasPrefix(rest, s) {
				return false
			}
			rest = rest[len(s):]
		case ldap.FilterSubstringsAny:
			idx := strings.Index(rest, s)
			if idx < 0 {
				return false
			}
			rest = rest[idx+len(s):]
		case ldap.FilterSubstringsFinal:
			if !strings.HasSuffix(rest, s) {
				return false
			}
			rest = ""
		}
	}
	return true
}

func compareValues(a, b string) int {
	ai, aErr := strconv.ParseInt(a, 10, 64)
	bi, bErr := strconv.ParseInt(b, 10, 64)
	if aErr == nil && bErr == nil {
		switch {
		case ai < bi:
			return -1
		case ai > bi:
			return 1
		default:
			return 0
		}
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func valuesOf(entry *ldap.Entry, attr string) []string {
	var values []string
	for _, a := range entry.Attributes {
		if strings.EqualFold(a.Name, attr) {
			values = append(values, a.Values...)
		}
	}
	return values
}

func packetString(p *ber.Packet) string {
	if s, ok := p.Value.(string); ok {
		return s
	}
	if p.Data != nil {
		return p.Data.String()
	}
	return ""
}
