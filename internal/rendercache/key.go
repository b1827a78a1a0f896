package rendercache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/user/pagesmith/internal/schema"
)

// Key hashes the canonical JSON of cfg together with the render target.
// Equal configurations yield equal keys regardless of where they came from.
func Key(cfg schema.PageConfig, target string) (string, error) {
	data, err := json.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("failed to marshal cache key config: %w", err)
	}

	h := sha256.New()
	h.Write([]byte(target))
	h.Write([]byte{0})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}
