// Package keyhash computes stable cache keys for (operation, arguments)
// pairs.
//
// Arguments are normalized through encoding/json, which writes struct
// fields in declaration order and map keys sorted, so equal argument
// values always hash to the same key. The digest is a 64-bit XXH3 hash,
// cheap enough to compute on every subscription.
package keyhash

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/zeebo/xxh3"
)

// Key returns the cache key for an operation and its normalized arguments.
//
// A nil argument value hashes to the bare operation name, so argument-less
// queries share one key per operation.
//
// Parameters:
//   - operation: Operation identifier (unique per endpoint operation)
//   - args: Arguments distinguishing calls to the same operation; must be
//     JSON-serializable
//
// Returns:
//   - string: Stable cache key
//   - error: When the arguments cannot be serialized
func Key(operation string, args any) (string, error) {
	if args == nil {
		return operation, nil
	}

	normalized, err := json.Marshal(args)
	if err != nil {
		return "", fmt.Errorf("normalize cache key arguments: %w", err)
	}

	return operation + "#" + strconv.FormatUint(xxh3.Hash(normalized), 16), nil
}
