package sysconfig

import (
	"os"
	"path/filepath"
	"strings"
)

// credentialsDirEnv is set by the service manager when credentials were
// passed to the unit. See systemd.exec(5).
const credentialsDirEnv = "CREDENTIALS_DIRECTORY"

// ReadCredential returns the value of a pre-seeded credential, one file per
// name under the platform credentials directory. A missing directory or file
// means "not provided", never an error.
func ReadCredential(name string) (string, bool) {
	dir := os.Getenv(credentialsDirEnv)
	if dir == "" {
		return "", false
	}
	data, err := os.ReadFile(filepath.Join(dir, name))
	if err != nil {
		return "", false
	}
	// Credential files conventionally end with a newline that is not part
	// of the value.
	return strings.TrimRight(string(data), "\n"), true
}
