package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTag_String(t *testing.T) {
	tests := []struct {
		tag  Tag
		want string
	}{
		{TagUsers, "Users"},
		{TagTeams, "Teams"},
		{TagProjects, "Projects"},
		{TagTasks, "Tasks"},
		{TagActivityLogs, "ActivityLogs"},
		{TagDashboard, "Dashboard"},
		{Tag(99), "Unknown"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, tt.tag.String())
	}
}

func TestTagSet_Intersects(t *testing.T) {
	tasks := NewTagSet(TagTasks, TagTeams)
	dashboard := NewTagSet(TagDashboard, TagProjects, TagTasks, TagTeams)
	users := NewTagSet(TagUsers)

	require.True(t, tasks.Intersects(dashboard))
	require.True(t, dashboard.Intersects(tasks))
	require.False(t, tasks.Intersects(users))
	require.False(t, users.Intersects(tasks))
	require.False(t, TagSet(0).Intersects(tasks))
	require.False(t, tasks.Intersects(TagSet(0)))
}

func TestTagSet_HasAndUnion(t *testing.T) {
	s := NewTagSet(TagTasks)

	require.True(t, s.Has(TagTasks))
	require.False(t, s.Has(TagTeams))

	u := s.Union(NewTagSet(TagTeams))
	require.True(t, u.Has(TagTasks))
	require.True(t, u.Has(TagTeams))

	// Union does not mutate the receiver.
	require.False(t, s.Has(TagTeams))
}

func TestTagSet_Tags(t *testing.T) {
	s := NewTagSet(TagDashboard, TagUsers, TagTasks)

	// Declaration order, not insertion order.
	require.Equal(t, []Tag{TagUsers, TagTasks, TagDashboard}, s.Tags())
}

func TestTagSet_String(t *testing.T) {
	require.Equal(t, "[]", TagSet(0).String())
	require.Equal(t, "[Teams Tasks]", NewTagSet(TagTeams, TagTasks).String())
}

func TestTagSet_Empty(t *testing.T) {
	require.True(t, TagSet(0).Empty())
	require.False(t, NewTagSet(TagUsers).Empty())
}
