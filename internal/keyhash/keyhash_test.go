package keyhash

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nhnasim333/smart-task-manager/types"
)

func TestKey_NilArgs(t *testing.T) {
	key, err := Key("getTeams", nil)

	require.NoError(t, err)
	require.Equal(t, "getTeams", key)
}

func TestKey_Stable(t *testing.T) {
	filter := types.TaskFilter{ProjectID: "p1", Status: "Pending"}

	a, err := Key("getTasks", filter)
	require.NoError(t, err)

	b, err := Key("getTasks", filter)
	require.NoError(t, err)

	require.Equal(t, a, b)
}

func TestKey_DistinguishesArgs(t *testing.T) {
	a, err := Key("getTasks", types.TaskFilter{ProjectID: "p1"})
	require.NoError(t, err)

	b, err := Key("getTasks", types.TaskFilter{ProjectID: "p2"})
	require.NoError(t, err)

	require.NotEqual(t, a, b)
}

func TestKey_DistinguishesOperations(t *testing.T) {
	a, err := Key("getTask", "id-1")
	require.NoError(t, err)

	b, err := Key("deleteTask", "id-1")
	require.NoError(t, err)

	require.NotEqual(t, a, b)
}

func TestKey_MapArgsOrderIndependent(t *testing.T) {
	// encoding/json sorts map keys, so construction order must not matter.
	a, err := Key("op", map[string]string{"x": "1", "y": "2"})
	require.NoError(t, err)

	b, err := Key("op", map[string]string{"y": "2", "x": "1"})
	require.NoError(t, err)

	require.Equal(t, a, b)
}

func TestKey_UnserializableArgs(t *testing.T) {
	_, err := Key("op", func() {})

	require.Error(t, err)
}
