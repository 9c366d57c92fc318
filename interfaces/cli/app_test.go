package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/merchantlab/consult-go/interfaces/cli"
)

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	app := cli.New().WithOutput(&stdout, &stderr)

	if err := app.ExecuteWithArgs(context.Background(), []string{"version"}); err != nil {
		t.Fatalf("ExecuteWithArgs() error = %v", err)
	}
	if !strings.Contains(stdout.String(), "advisor version") {
		t.Errorf("output = %q", stdout.String())
	}
}

func writeMockConfig(t *testing.T) string {
	t.Helper()

	dir := t.TempDir()
	profiles := filepath.Join(dir, "profiles.json")
	err := os.WriteFile(profiles, []byte(`[
		{"id": "store-001", "core": {"basic_info": {
			"store_name": "고향만두", "masked_name": "고향***",
			"industry": "분식", "district": "성동구"
		}}}
	]`), 0o600)
	if err != nil {
		t.Fatalf("write profiles: %v", err)
	}

	path := filepath.Join(dir, "config.yaml")
	cfg := `llm:
  provider: mock
data:
  profiles_json: ` + profiles + "\n"
	if err := os.WriteFile(path, []byte(cfg), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestAskCommandWithMockProvider(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	app := cli.New().WithOutput(&stdout, &stderr)

	args := []string{"ask", "-c", writeMockConfig(t), "안녕하세요"}
	if err := app.ExecuteWithArgs(context.Background(), args); err != nil {
		t.Fatalf("ExecuteWithArgs() error = %v", err)
	}
	if strings.TrimSpace(stdout.String()) == "" {
		t.Error("ask produced no output")
	}
}

func TestStoresCommandListsProfiles(t *testing.T) {
	t.Parallel()

	var stdout, stderr bytes.Buffer
	app := cli.New().WithOutput(&stdout, &stderr)

	args := []string{"stores", "-c", writeMockConfig(t)}
	if err := app.ExecuteWithArgs(context.Background(), args); err != nil {
		t.Fatalf("ExecuteWithArgs() error = %v", err)
	}
	if !strings.Contains(stdout.String(), "고향만두") {
		t.Errorf("output missing seeded store:\n%s", stdout.String())
	}
}

func TestAskRejectsUnknownConfig(t *testing.T) {
	t.Parallel()

	app := cli.New().WithOutput(&bytes.Buffer{}, &bytes.Buffer{})
	err := app.ExecuteWithArgs(context.Background(), []string{"ask", "-c", "/nope/missing.yaml", "hi"})
	if err == nil {
		t.Fatal("missing config file accepted")
	}
}
