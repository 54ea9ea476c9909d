package highscore

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// playerIDFile is the file under the config directory holding the local ID.
const playerIDFile = "player_id"

// namespace scopes name-derived IDs of remote players.
var namespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/vovakirdan/depthscraper"))

// LoadOrCreatePlayerID returns the ID stored in dir, creating and persisting
// a random one on first use.
func LoadOrCreatePlayerID(dir string) (string, error) {
	path := filepath.Join(dir, playerIDFile)

	data, err := os.ReadFile(path)
	if err == nil {
		if id, perr := uuid.Parse(strings.TrimSpace(string(data))); perr == nil {
			return id.String(), nil
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("highscore: read player id: %w", err)
	}

	id := uuid.NewString()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("highscore: create %s: %w", dir, err)
	}
	if err := os.WriteFile(path, []byte(id+"\n"), 0o600); err != nil {
		return "", fmt.Errorf("highscore: write player id: %w", err)
	}
	return id, nil
}

// PlayerIDForName returns a stable ID derived from a player name.
// Used for SSH sessions, which have no local file to persist a random ID.
func PlayerIDForName(name string) string {
	return uuid.NewSHA1(namespace, []byte(SanitizeName(name))).String()
}
