// Package verdict classifies a single run record into a ship/no-ship
// verdict using a fixed check registry. Evaluation is pure: it reads the
// record, writes nothing, and always produces the same verdict for the
// same record.
package verdict

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"github.com/steveyegge/observe/internal/types"
)

// CheckID identifies one registered check.
type CheckID string

const (
	CheckBuildSuccess CheckID = "build_success"
	CheckTestsPassing CheckID = "tests_passing"
	CheckLintClean    CheckID = "lint_clean"
	CheckTypeClean    CheckID = "type_clean"
)

// CheckSeverity distinguishes checks that block shipping from advisory ones.
type CheckSeverity string

const (
	SeverityBlocking CheckSeverity = "blocking"
	SeverityAdvisory CheckSeverity = "advisory"
)

// Outcome is the overall verdict for a run.
type Outcome string

const (
	OutcomePass Outcome = "pass" // every check passed
	OutcomeWarn Outcome = "warn" // only advisory checks failed
	OutcomeFail Outcome = "fail" // at least one blocking check failed
)

// CheckResult is the evaluation of one registered check against a record.
type CheckResult struct {
	ID       CheckID       `json:"id"`
	Severity CheckSeverity `json:"severity"`
	Passed   bool          `json:"passed"`
	Detail   string        `json:"detail"`
}

// Verdict is the full classification of one run record.
type Verdict struct {
	RunID            string        `json:"run_id"`
	Outcome          Outcome       `json:"outcome"`
	Checks           []CheckResult `json:"checks"`
	RetryEligible    bool          `json:"retry_eligible"`
	FailureSignature string        `json:"failure_signature,omitempty"`
	FixHints         []string      `json:"fix_hints,omitempty"`
}

// check is one registry entry. eval returns pass/fail plus a short detail
// line; hint tells a human where to start when the check fails.
type check struct {
	id       CheckID
	severity CheckSeverity
	eval     func(r *types.RunRecord) (bool, string)
	hint     string
}

// registry runs in order: blocking checks first, advisory after, so the
// first failure a reader sees is the one that blocks shipping.
var registry = []check{
	{
		id:       CheckBuildSuccess,
		severity: SeverityBlocking,
		eval: func(r *types.RunRecord) (bool, string) {
			if r.BuildSuccess {
				return true, "build succeeded"
			}
			return false, "build failed"
		},
		hint: "inspect the build log for the first compile or packaging error",
	},
	{
		id:       CheckTestsPassing,
		severity: SeverityBlocking,
		eval: func(r *types.RunRecord) (bool, string) {
			if r.TestsFailed == 0 {
				return true, fmt.Sprintf("%d test(s) passed, none failed", r.TestsPassed)
			}
			return false, fmt.Sprintf("%d test(s) failed", r.TestsFailed)
		},
		hint: "rerun the failing tests locally before anything else",
	},
	{
		id:       CheckTypeClean,
		severity: SeverityBlocking,
		eval: func(r *types.RunRecord) (bool, string) {
			if r.TypeErrors == 0 {
				return true, "no type errors"
			}
			return false, fmt.Sprintf("%d type error(s)", r.TypeErrors)
		},
		hint: "type errors ship broken interfaces; fix them before retrying",
	},
	{
		id:       CheckLintClean,
		severity: SeverityAdvisory,
		eval: func(r *types.RunRecord) (bool, string) {
			if r.LintErrors == 0 {
				return true, "no lint errors"
			}
			return false, fmt.Sprintf("%d lint error(s)", r.LintErrors)
		},
		hint: "lint findings are advisory; clean them up in a follow-up",
	},
}

// Evaluate runs every registered check against the record and classifies
// the outcome. Checks never short-circuit: a failed blocking check still
// lets the rest run so the verdict reports every problem at once.
func Evaluate(r *types.RunRecord) Verdict {
	v := Verdict{RunID: r.RunID, Outcome: OutcomePass}

	var failedBlocking []string
	for _, c := range registry {
		passed, detail := c.eval(r)
		v.Checks = append(v.Checks, CheckResult{
			ID:       c.id,
			Severity: c.severity,
			Passed:   passed,
			Detail:   detail,
		})
		if passed {
			continue
		}
		v.FixHints = append(v.FixHints, fmt.Sprintf("%s: %s", c.id, c.hint))
		if c.severity == SeverityBlocking {
			failedBlocking = append(failedBlocking, string(c.id))
			v.Outcome = OutcomeFail
		} else if v.Outcome == OutcomePass {
			v.Outcome = OutcomeWarn
		}
	}

	if len(failedBlocking) > 0 {
		v.FailureSignature = signature(failedBlocking)
		// A failure the pipeline got through unattended may clear on a
		// retry; one that already needed a human will not.
		v.RetryEligible = !r.ManualIntervention
	}
	return v
}

// signature is a stable fingerprint of which blocking checks failed, for
// grouping recurring failure shapes across runs.
func signature(failed []string) string {
	sorted := make([]string, len(failed))
	copy(sorted, failed)
	sort.Strings(sorted)
	sum := sha256.Sum256([]byte(strings.Join(sorted, "|")))
	return hex.EncodeToString(sum[:])[:16]
}
