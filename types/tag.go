package types

import "strings"

// Tag is a coarse resource category used to express cache-invalidation
// dependencies without naming specific entity ids.
//
// Every read operation provides one or more tags; every write operation
// invalidates one or more tags. A cached read becomes stale when the tags
// it provides intersect the tags a successful write invalidates.
type Tag uint8

const (
	// TagUsers covers user profile data.
	TagUsers Tag = iota

	// TagTeams covers teams and their member lists, including the derived
	// per-member task counts.
	TagTeams

	// TagProjects covers projects.
	TagProjects

	// TagTasks covers tasks and filtered task lists.
	TagTasks

	// TagActivityLogs covers the append-only reassignment log.
	TagActivityLogs

	// TagDashboard covers the aggregated dashboard statistics.
	TagDashboard

	numTags
)

// String returns the string representation of the tag.
func (t Tag) String() string {
	switch t {
	case TagUsers:
		return "Users"
	case TagTeams:
		return "Teams"
	case TagProjects:
		return "Projects"
	case TagTasks:
		return "Tasks"
	case TagActivityLogs:
		return "ActivityLogs"
	case TagDashboard:
		return "Dashboard"
	default:
		return "Unknown"
	}
}

// TagSet is an immutable set of tags, represented as a bitmask.
//
// The zero value is the empty set. Set operations never mutate the
// receiver, so TagSet values can be shared freely between goroutines.
type TagSet uint8

// NewTagSet builds a set from the given tags.
func NewTagSet(tags ...Tag) TagSet {
	var s TagSet
	for _, t := range tags {
		s |= 1 << t
	}

	return s
}

// Has reports whether the set contains the tag.
func (s TagSet) Has(t Tag) bool {
	return s&(1<<t) != 0
}

// Intersects reports whether the two sets share at least one tag.
//
// This is the entire invalidation predicate: a cached read is marked stale
// after a write exactly when providedTags.Intersects(invalidatedTags).
func (s TagSet) Intersects(other TagSet) bool {
	return s&other != 0
}

// Union returns the combination of both sets.
func (s TagSet) Union(other TagSet) TagSet {
	return s | other
}

// Empty reports whether the set contains no tags.
func (s TagSet) Empty() bool {
	return s == 0
}

// Tags returns the tags in the set in declaration order.
func (s TagSet) Tags() []Tag {
	tags := make([]Tag, 0, numTags)
	for t := Tag(0); t < numTags; t++ {
		if s.Has(t) {
			tags = append(tags, t)
		}
	}

	return tags
}

// String returns a stable, human-readable rendering like "[Tasks Teams]".
func (s TagSet) String() string {
	if s.Empty() {
		return "[]"
	}

	var b strings.Builder
	b.WriteByte('[')
	for i, t := range s.Tags() {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(t.String())
	}
	b.WriteByte(']')

	return b.String()
}
