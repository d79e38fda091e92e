package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/PolarWolf314/cipherlab/internal/configs"
)

// testEnv is a temporary workspace with a corpus and a config file pointing at it.
type testEnv struct {
	dir        string
	configPath string
	auditPath  string
}

// setupTestEnvironment writes a small corpus and config into a temp directory
// and clears CIPHERLAB_* variables for the duration of the test.
func setupTestEnvironment(t *testing.T) testEnv {
	t.Helper()
	ResetGlobalState()
	t.Cleanup(ResetGlobalState)

	for _, key := range []string{
		configs.EnvAddr, configs.EnvExcerpts, configs.EnvPasswords, configs.EnvUsername,
		configs.EnvKeyMode, configs.EnvArtifactDir, configs.EnvArtifactInMemory,
		configs.EnvArtifactTTL, configs.EnvRateLimitEnabled, configs.EnvRateLimitRPS,
		configs.EnvRateLimitBurst, configs.EnvRateLimitIdleTTL, configs.EnvAuditPath,
	} {
		t.Setenv(key, "")
	}
	t.Setenv("NO_COLOR", "1")

	dir := t.TempDir()
	excerpts := filepath.Join(dir, "excerpts.json")
	passwords := filepath.Join(dir, "passwords.txt")
	writeTestFile(t, excerpts, `[{"excerpt": "hello world"}, {"excerpt": "abc"}]`)
	writeTestFile(t, passwords, "password\nletmein\ndragon\nsunshine\nqwerty\n")

	env := testEnv{
		dir:        dir,
		configPath: filepath.Join(dir, "cipherlab.toml"),
		auditPath:  filepath.Join(dir, "audit.jsonl"),
	}

	settings := configs.Defaults()
	settings.Corpus.ExcerptsPath = excerpts
	settings.Corpus.PasswordsPath = passwords
	settings.Audit.Path = env.auditPath
	if err := configs.SaveSettings(env.configPath, settings); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return env
}

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

// createTestCLI builds a fresh root command with every subcommand attached.
func createTestCLI(stdout *bytes.Buffer) *cobra.Command {
	root := &cobra.Command{
		Use:           "cipherlab",
		SilenceErrors: true,
		SilenceUsage:  true,
	}
	Attach(root)
	root.SetOut(stdout)
	root.SetErr(stdout)
	return root
}

// runCLI executes args against a fresh CLI using env's config file.
func runCLI(t *testing.T, env testEnv, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := createTestCLI(&out)
	root.SetArgs(append([]string{"--config", env.configPath, "--env-file", filepath.Join(env.dir, ".env")}, args...))
	err := root.Execute()
	return out.String(), err
}
