package domain

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// ReduceToHighest keeps, for every identity, only the label carrying the highest version.
//
// Each label is split on delimiter; the segment at nameIndex is the identity and
// the following segment, when present, is the version. Groups are emitted in the
// lexicographic order of their first label. Versions compare numerically when
// both are integers, so "Bug_10" beats "Bug_9".
func ReduceToHighest(labels []string, delimiter string, nameIndex int) ([]string, error) {
	if nameIndex < 0 {
		return nil, fmt.Errorf("%w: negative identity index %d", ErrMalformedLabel, nameIndex)
	}
	if len(labels) == 0 {
		return []string{}, nil
	}

	sorted := append([]string(nil), labels...)
	sort.Strings(sorted)

	type group struct {
		label   string
		version string
	}
	var order []string
	best := make(map[string]*group, len(sorted))

	for _, label := range sorted {
		segments := strings.Split(label, delimiter)
		if len(segments) <= nameIndex {
			return nil, fmt.Errorf("%w: %q has %d segments, need %d", ErrMalformedLabel, label, len(segments), nameIndex+1)
		}
		identity := segments[nameIndex]
		version := ""
		if len(segments) > nameIndex+1 {
			version = segments[nameIndex+1]
		}

		g, ok := best[identity]
		if !ok {
			best[identity] = &group{label: label, version: version}
			order = append(order, identity)
			continue
		}
		if compareVersions(version, g.version) > 0 {
			g.label = label
			g.version = version
		}
	}

	result := make([]string, 0, len(order))
	for _, identity := range order {
		result = append(result, best[identity].label)
	}
	return result, nil
}

// compareVersions orders two version segments. An empty version ranks lowest.
func compareVersions(a, b string) int {
	if a == b {
		return 0
	}
	if a == "" {
		return -1
	}
	if b == "" {
		return 1
	}
	na, errA := strconv.Atoi(strings.TrimSpace(a))
	nb, errB := strconv.Atoi(strings.TrimSpace(b))
	if errA == nil && errB == nil {
		switch {
		case na < nb:
			return -1
		case na > nb:
			return 1
		}
	}
	return strings.Compare(a, b)
}
