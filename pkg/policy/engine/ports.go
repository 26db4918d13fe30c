package engine

import (
	"fmt"
	"strconv"
	"strings"
)

// portRange is one inclusive range of ports. A single port is a range with
// lo == hi.
type portRange struct {
	lo uint16
	hi uint16
}

// portSet is a pre-parsed port membership set built from syntax like
// "22,80,1000-2000". Ranges may overlap; membership is a linear scan over
// what is in practice a handful of ranges.
type portSet struct {
	ranges []portRange
}

// parsePortSet parses single/list/range port syntax into a portSet.
func parsePortSet(spec string) (portSet, error) {
	var set portSet

	for _, entry := range strings.Split(spec, ",") {
		token := strings.TrimSpace(entry)
		if token == "" {
			return portSet{}, fmt.Errorf("port pattern must not contain empty entries")
		}

		if lo, hi, isRange := strings.Cut(token, "-"); isRange {
			start, err := parsePort(lo)
			if err != nil {
				return portSet{}, fmt.Errorf("invalid port range start %q", strings.TrimSpace(lo))
			}
			end, err := parsePort(hi)
			if err != nil {
				return portSet{}, fmt.Errorf("invalid port range end %q", strings.TrimSpace(hi))
			}
			if start > end {
				return portSet{}, fmt.Errorf("invalid port range (start > end): %q", token)
			}
			set.ranges = append(set.ranges, portRange{lo: start, hi: end})
			continue
		}

		port, err := parsePort(token)
		if err != nil {
			return portSet{}, fmt.Errorf("invalid port value %q", token)
		}
		set.ranges = append(set.ranges, portRange{lo: port, hi: port})
	}

	if len(set.ranges) == 0 {
		return portSet{}, fmt.Errorf("port pattern must not be empty")
	}

	return set, nil
}

// contains reports whether port falls inside any range of the set.
func (s portSet) contains(port uint16) bool {
	for _, r := range s.ranges {
		if r.lo <= port && port <= r.hi {
			return true
		}
	}
	return false
}

func parsePort(value string) (uint16, error) {
	parsed, err := strconv.ParseUint(strings.TrimSpace(value), 10, 16)
	if err != nil {
		return 0, err
	}
	return uint16(parsed), nil
}
