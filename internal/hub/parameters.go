package hub

import (
	"context"
	"fmt"
	"path/filepath"

	"golang.org/x/mod/semver"

	"github.com/steveyegge/observe/internal/types"
)

// LatestParameters returns the highest-version parameter config on disk.
// When none exists the documented defaults apply; a malformed file is
// reported through Warnf and likewise falls back to defaults. This call
// never fails the caller over config content.
func (h *Hub) LatestParameters(ctx context.Context) (types.ParameterSet, error) {
	version, err := h.latestParameterVersion()
	if err != nil {
		return types.ParameterSet{}, err
	}
	if version == "" {
		return types.DefaultParameters(), nil
	}

	var ps types.ParameterSet
	if err := readJSON(h.parameterPath(version), &ps, "parameters", version); err != nil {
		cfgErr := &types.ConfigError{Path: h.parameterPath(version), Err: err}
		h.warnf("warning: %v (falling back to defaults)", cfgErr)
		return types.DefaultParameters(), nil
	}
	return ps, nil
}

// WriteParameters persists a new parameter config version. The version must
// be valid semver and strictly greater than the current latest on disk; the
// check is repeated by the exclusive create on the version-named file, so a
// concurrent writer racing on the same version loses with ConflictError.
func (h *Hub) WriteParameters(ctx context.Context, ps *types.ParameterSet) error {
	if err := ps.Validate(); err != nil {
		return err
	}
	if !semver.IsValid(ps.Version) {
		return &types.ValidationError{Entity: "parameter set", Issues: []string{fmt.Sprintf("version %q is not valid semver", ps.Version)}}
	}

	// Re-read the latest immediately before the guarded write.
	latest, err := h.latestParameterVersion()
	if err != nil {
		return err
	}
	if latest != "" && semver.Compare(ps.Version, latest) <= 0 {
		return &types.ValidationError{
			Entity: "parameter set",
			Issues: []string{fmt.Sprintf("version %s does not increase on current latest %s", ps.Version, latest)},
		}
	}

	data, err := marshalIndent(ps)
	if err != nil {
		return err
	}
	if err := writeFileExclusive(h.parameterPath(ps.Version), data); err != nil {
		if types.IsConflict(err) {
			return &types.ConflictError{Kind: "parameters", ID: ps.Version, Reason: "version already written"}
		}
		return err
	}
	return nil
}

// GetParameters returns the parameter config stored under the exact version.
func (h *Hub) GetParameters(ctx context.Context, version string) (types.ParameterSet, error) {
	var ps types.ParameterSet
	if err := readJSON(h.parameterPath(version), &ps, "parameters", version); err != nil {
		return types.ParameterSet{}, err
	}
	return ps, nil
}

// ListParameterVersions returns all stored config versions, oldest first.
func (h *Hub) ListParameterVersions(ctx context.Context) ([]string, error) {
	versions, err := h.parameterVersions()
	if err != nil {
		return nil, err
	}
	semver.Sort(versions)
	return versions, nil
}

// EnsureDefaultParameters writes the default config as the first version if
// the parameter store is empty. Returns true when it seeded the store.
func (h *Hub) EnsureDefaultParameters(ctx context.Context) (bool, error) {
	latest, err := h.latestParameterVersion()
	if err != nil {
		return false, err
	}
	if latest != "" {
		return false, nil
	}
	ps := types.DefaultParameters()
	now := h.now().UTC()
	ps.Created = &now
	if err := h.WriteParameters(ctx, &ps); err != nil {
		// A concurrent init seeding the same version is fine.
		if types.IsConflict(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// parameterVersions lists valid semver version names in the parameter
// directory. Files that are not version-named are skipped with a warning,
// never treated as the latest config.
func (h *Hub) parameterVersions() ([]string, error) {
	names, err := listJSONNames(filepath.Join(h.root, dirParameters))
	if err != nil {
		return nil, err
	}
	var versions []string
	for _, name := range names {
		if !semver.IsValid(name) {
			h.warnf("warning: ignoring non-semver parameter file %s.json", name)
			continue
		}
		versions = append(versions, name)
	}
	return versions, nil
}

func (h *Hub) latestParameterVersion() (string, error) {
	versions, err := h.parameterVersions()
	if err != nil {
		return "", err
	}
	latest := ""
	for _, v := range versions {
		if latest == "" || semver.Compare(v, latest) > 0 {
			latest = v
		}
	}
	return latest, nil
}
