package terminal

import (
	"os"
	"strings"

	"golang.org/x/term"
)

// ciEnvVars contains common CI environment variables
var ciEnvVars = []string{
	"CI",                     // Generic CI indicator
	"CONTINUOUS_INTEGRATION", // Generic CI indicator
	"GITHUB_ACTIONS",         // GitHub Actions
	"TRAVIS",                 // Travis CI
	"CIRCLECI",               // Circle CI
	"JENKINS_URL",            // Jenkins
	"BUILD_NUMBER",           // Jenkins/TeamCity/etc
	"GITLAB_CI",              // GitLab CI
	"APPVEYOR",               // AppVeyor
	"BUILDKITE",              // Buildkite
	"DRONE",                  // Drone CI
	"TF_BUILD",               // Azure DevOps
}

// isTerminalFn reports whether a file descriptor refers to a terminal.
// Package-level so tests can substitute a deterministic implementation.
var isTerminalFn = term.IsTerminal

// stderrIsTerminal probes whether stderr is connected to a terminal.
//
// Stdout is deliberately ignored: a prompt generator runs inside command
// substitution (PS1="$(xprompt ps1 ...)"), where stdout is always a pipe
// even though the user is sitting at a terminal. Stderr is inherited from
// the interactive shell and remains the reliable signal.
func stderrIsTerminal() bool {
	return isTerminalFn(int(os.Stderr.Fd()))
}

// inCIEnvironment reports whether the process runs under a CI/CD system.
// The first indicator found decides; CI itself must be truthy (CI=false
// and CI=0 are common ways to opt out).
func inCIEnvironment() bool {
	for _, envVar := range ciEnvVars {
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}
		if envVar == "CI" {
			return isCITruthy(value)
		}
		return true
	}
	return false
}

func isCITruthy(value string) bool {
	lower := strings.ToLower(strings.TrimSpace(value))
	return lower != "false" && lower != "0" && lower != "no"
}
