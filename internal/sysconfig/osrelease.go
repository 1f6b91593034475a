package sysconfig

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const fallbackBanner = "First Boot Setup"

// OSRelease holds the key/value pairs parsed from os-release.
type OSRelease map[string]string

// ReadOSRelease loads /etc/os-release under root, falling back to
// /usr/lib/os-release the way os-release(5) prescribes.
func ReadOSRelease(root string) (OSRelease, error) {
	paths := []string{
		filepath.Join(root, "/etc/os-release"),
		filepath.Join(root, "/usr/lib/os-release"),
	}
	var firstErr error
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		return parseOSRelease(data), nil
	}
	return nil, fmt.Errorf("sysconfig: read os-release: %w", firstErr)
}

// Banner derives the product name shown above every dialog. PRETTY_NAME is
// the normal source; when both vendor identification variables are set they
// override it so rebranded spins show their own name.
func Banner(root string) string {
	release, err := ReadOSRelease(root)
	if err != nil {
		return fallbackBanner
	}
	vendorName := release["VENDOR_NAME"]
	vendorVersion := release["VENDOR_VERSION"]
	if vendorName != "" && vendorVersion != "" {
		return vendorName + " " + vendorVersion
	}
	if pretty := release["PRETTY_NAME"]; pretty != "" {
		return pretty
	}
	return fallbackBanner
}

func parseOSRelease(data []byte) OSRelease {
	release := OSRelease{}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, found := strings.Cut(line, "=")
		if !found {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		release[key] = unquote(strings.TrimSpace(value))
	}
	return release
}

func unquote(value string) string {
	if len(value) >= 2 {
		if (value[0] == '"' && value[len(value)-1] == '"') ||
			(value[0] == '\'' && value[len(value)-1] == '\'') {
			return value[1 : len(value)-1]
		}
	}
	return value
}
