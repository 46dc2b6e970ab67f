package kafkaadmin

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// Accepted characters in Kafka topic names.
	topicNormalChar = regexp.MustCompile(`[a-zA-Z0-9._\-]`)
)

// StringsToRegex takes a []string of topic names and returns a []*regexp.Regexp.
// The values are either a string literal and become ^value$ or are regex and
// compiled then added.
func StringsToRegex(names []string) ([]*regexp.Regexp, error) {
	var out []*regexp.Regexp

	for _, t := range names {
		// Update string literals to ^value$ regex.
		if !containsRegex(t) {
			t = fmt.Sprintf(`^%s$`, regexp.QuoteMeta(t))
		}

		r, err := regexp.Compile(t)
		if err != nil {
			return nil, ErrInvalidArgument{Message: fmt.Sprintf("invalid regex pattern: %s", t)}
		}

		out = append(out, r)
	}

	return out, nil
}

// containsRegex takes a topic name string and returns whether or not
// it should be interpreted as regex.
func containsRegex(t string) bool {
	// Check each character of the topic name. If it doesn't contain a legal Kafka
	// topic name character, we're going to assume it's regex.
	for _, c := range t {
		if !topicNormalChar.MatchString(string(c)) {
			return true
		}
	}

	return false
}

// MatchesAny returns whether name matches at least one of the patterns.
func MatchesAny(name string, patterns []*regexp.Regexp) bool {
	for _, r := range patterns {
		if r.MatchString(name) {
			return true
		}
	}
	return false
}

// ParseReplicaAssignment parses a replica assignment in the form
// "1001:1002,1002:1003": partitions are separated by commas, and the broker
// IDs of each partition by colons. The first broker listed is the preferred
// leader.
func ParseReplicaAssignment(s string) (ReplicaAssignment, error) {
	var ra ReplicaAssignment

	for p, part := range strings.Split(s, ",") {
		var replicas []int32
		seen := map[int32]bool{}

		for _, id := range strings.Split(part, ":") {
			n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 32)
			if err != nil {
				return nil, ErrInvalidArgument{Message: fmt.Sprintf("invalid broker ID %q for partition %d", id, p)}
			}
			if seen[int32(n)] {
				return nil, ErrInvalidArgument{Message: fmt.Sprintf("duplicate broker ID %d for partition %d", n, p)}
			}
			seen[int32(n)] = true
			replicas = append(replicas, int32(n))
		}

		if p > 0 && len(replicas) != len(ra[0]) {
			return nil, ErrInvalidArgument{Message: fmt.Sprintf("partition %d has %d replicas, expected %d", p, len(replicas), len(ra[0]))}
		}

		ra = append(ra, replicas)
	}

	return ra, nil
}
