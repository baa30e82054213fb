package e2e

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// buildSrcmatchBinary builds cmd/srcmatch into a temporary directory
func buildSrcmatchBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "srcmatch")

	// Build from the project root, one level up from the e2e directory
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/srcmatch")
	projectRoot, err := filepath.Abs("..")
	if err != nil {
		t.Fatalf("Failed to get project root: %v", err)
	}
	cmd.Dir = projectRoot

	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("Failed to build srcmatch binary: %v\n%s", err, out)
	}
	return binaryPath
}

// createTestConfigFile creates a .srcmatch.toml in testDir that directs
// report files to outputDir
func createTestConfigFile(t *testing.T, testDir, outputDir string) {
	t.Helper()
	configFile := filepath.Join(testDir, ".srcmatch.toml")
	configContent := fmt.Sprintf("[output]\ndirectory = %q\n", filepath.ToSlash(outputDir))
	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}
}

func createTestFile(t *testing.T, dir, filename, content string) string {
	t.Helper()
	path := filepath.Join(dir, filename)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to create test file: %v", err)
	}
	return path
}
