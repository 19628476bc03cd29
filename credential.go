package shodan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	clienterrors "github.com/netscout/shodan/internal/errors"
)

// LoadAPIKey reads an API key from the file at path.
//
// Surrounding whitespace (a trailing newline, typically) is trimmed. A
// missing file yields an error matching ErrCredentialNotFound; an unreadable,
// empty, or non-UTF-8 file yields ErrCredentialRead. Both are configuration
// errors.
func LoadAPIKey(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", clienterrors.NewConfigError("load_api_key", fmt.Errorf("%w: %s", clienterrors.ErrCredentialNotFound, path))
		}
		return "", clienterrors.NewConfigError("load_api_key", fmt.Errorf("%w: %v", clienterrors.ErrCredentialRead, err))
	}
	if !utf8.Valid(data) {
		return "", clienterrors.NewConfigError("load_api_key", fmt.Errorf("%w: %s is not valid UTF-8", clienterrors.ErrCredentialRead, path))
	}
	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", clienterrors.NewConfigError("load_api_key", fmt.Errorf("%w: %s is empty", clienterrors.ErrCredentialRead, path))
	}
	return key, nil
}
