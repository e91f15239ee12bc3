package terminal

import (
	"os"
	"testing"
)

// setupCleanEnv gives a test full control over every environment variable the
// terminal package consults, setting only the specified ones. Without this,
// results would depend on the environment of whoever runs the tests.
func setupCleanEnv(t *testing.T, envVars map[string]string) {
	t.Helper()

	// NO_COLOR is checked with os.LookupEnv: empty but set still means
	// "no color", so it must be truly unset unless the test asks for it.
	existenceCheckedVars := []string{"NO_COLOR"}

	// The rest are checked with os.Getenv, where empty and unset are
	// equivalent.
	valueCheckedVars := []string{
		"CLICOLOR", "CLICOLOR_FORCE", "TERM",
		// CI indicators consulted by the interactive detector
		"CI", "CONTINUOUS_INTEGRATION", "GITHUB_ACTIONS", "TRAVIS",
		"CIRCLECI", "JENKINS_URL", "BUILD_NUMBER", "GITLAB_CI",
		"APPVEYOR", "BUILDKITE", "DRONE", "TF_BUILD",
	}

	for _, v := range existenceCheckedVars {
		if value, specified := envVars[v]; specified {
			t.Setenv(v, value)
		} else if current, set := os.LookupEnv(v); set {
			// t.Setenv registers the restore, then the variable is
			// removed for the duration of the test.
			t.Setenv(v, current)
			os.Unsetenv(v)
		}
	}

	for _, v := range valueCheckedVars {
		if value, specified := envVars[v]; specified {
			t.Setenv(v, value)
		} else {
			t.Setenv(v, "")
		}
	}
}
