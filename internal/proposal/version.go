package proposal

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/mod/semver"

	"github.com/steveyegge/observe/internal/types"
)

// fallbackVersion is written when the current version string cannot be
// parsed; bumping from garbage restarts the line at a recognizable point.
const fallbackVersion = "v0.2.0"

// BumpVersion computes the next parameter config version. Low impact bumps
// the patch component; medium and high bump the minor component and reset
// patch. A bare X.Y.Z gains the canonical v prefix; anything unparseable
// falls back to v0.2.0. The result always compares greater than any valid
// input under semver ordering.
func BumpVersion(current string, impact types.ImpactLevel) string {
	v := current
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return fallbackVersion
	}

	parts := strings.SplitN(strings.TrimPrefix(semver.Canonical(v), "v"), ".", 3)
	major, _ := strconv.Atoi(parts[0])
	minor, _ := strconv.Atoi(parts[1])
	patch, _ := strconv.Atoi(parts[2])

	if impact == types.ImpactLow {
		patch++
	} else {
		minor++
		patch = 0
	}
	return fmt.Sprintf("v%d.%d.%d", major, minor, patch)
}
