// plugins/discovery.go
//
// Two-directory module discovery. The override directory is scanned first,
// then the default directory; for each basename the first-seen entry wins,
// so a site definition shadows the stock one and the stock one is never
// evaluated. A symlink pointing at the null device disables its module name
// outright, builtins included.

package plugins

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jsrain/jeos-firstboot/internal/logging"
	"github.com/jsrain/jeos-firstboot/internal/module"
)

// candidate is one definition file found during the directory scan.
type candidate struct {
	name string
	path string
	ext  string
}

// RegisterDiscovered scans both module definition directories and installs
// everything loadable into the registry. A definition that fails to load is
// logged and skipped; one broken module never aborts discovery of the rest.
// The call is a no-op once discovery already ran in this process.
func RegisterDiscovered(reg *module.Registry, log *logging.Logger, overrideDir, defaultDir string) error {
	if reg == nil {
		return nil
	}
	if reg.DiscoveryDone() {
		return nil
	}
	candidates, err := listCandidates(overrideDir)
	if err != nil {
		return err
	}
	defaults, err := listCandidates(defaultDir)
	if err != nil {
		return err
	}
	candidates = append(candidates, defaults...)
	// Stable by name: ties between the directories keep the override first.
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].name < candidates[j].name })

	seen := make(map[string]struct{}, len(candidates))
	for _, cand := range candidates {
		if _, dup := seen[cand.name]; dup {
			continue
		}
		seen[cand.name] = struct{}{}
		disabled, err := isNullLink(cand.path)
		if err != nil {
			log.Printf("plugin: skip %s: %v", cand.path, err)
			continue
		}
		if disabled {
			log.Printf("plugin: module %s disabled by %s", cand.name, cand.path)
			reg.Disable(cand.name)
			continue
		}
		desc, err := loadCandidate(cand)
		if err != nil {
			log.Printf("plugin: skip %s: %v", cand.path, err)
			continue
		}
		if err := reg.Override(desc); err != nil {
			log.Printf("plugin: skip %s: %v", cand.path, err)
		}
	}
	reg.MarkDiscovered()
	return nil
}

// listCandidates enumerates definition files in one directory. A missing
// directory yields zero candidates, not an error.
func listCandidates(dir string) ([]candidate, error) {
	trimmed := strings.TrimSpace(dir)
	if trimmed == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(trimmed)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("plugin: read %s: %w", trimmed, err)
	}
	var candidates []candidate
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		base := entry.Name()
		ext := strings.ToLower(filepath.Ext(base))
		candidates = append(candidates, candidate{
			name: strings.TrimSuffix(base, ext),
			path: filepath.Join(trimmed, base),
			ext:  ext,
		})
	}
	return candidates, nil
}

func loadCandidate(cand candidate) (*module.Descriptor, error) {
	switch cand.ext {
	case ".yaml", ".yml":
		return loadYAMLDefinitionFile(cand.name, cand.path)
	case ".go":
		return loadGoDefinitionFile(cand.name, cand.path)
	default:
		return nil, fmt.Errorf("plugin: unsupported definition type %q", cand.ext)
	}
}

// isNullLink reports whether path is a symbolic link to the null device,
// the marker administrators use to disable a module by name.
func isNullLink(path string) (bool, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return false, err
	}
	if info.Mode()&os.ModeSymlink == 0 {
		return false, nil
	}
	target, err := os.Readlink(path)
	if err != nil {
		return false, err
	}
	return target == os.DevNull, nil
}
