package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestRunWithoutArgsPrintsUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run(nil, &stdout, &stderr)
	if code != ExitUsage {
		t.Fatalf("exit = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(stdout.String(), "connections <command>") {
		t.Errorf("usage missing from output:\n%s", stdout.String())
	}
}

func TestRunHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run([]string{"--help"}, &stdout, &stderr)
	if code != ExitOK {
		t.Fatalf("exit = %d, want %d", code, ExitOK)
	}
	for _, name := range []string{"run", "rank", "models", "validate"} {
		if !strings.Contains(stdout.String(), name) {
			t.Errorf("usage missing command %q", name)
		}
	}
}

func TestRunUnknownCommand(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run([]string{"bogus"}, &stdout, &stderr)
	if code != ExitUsage {
		t.Fatalf("exit = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(stderr.String(), "Unknown command: bogus") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestCommandHelp(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := Run([]string{"run", "--help"}, &stdout, &stderr)
	if code != ExitOK {
		t.Fatalf("exit = %d, want %d", code, ExitOK)
	}
	if !strings.Contains(stdout.String(), "connections run") {
		t.Errorf("command usage missing:\n%s", stdout.String())
	}
}

const fixtureCatalogYAML = `puzzles:
  - id: 1
    date: "2024-06-01"
    difficulty: 2.5
    words: [APPLE, BANANA, CHERRY, DATE, ANT, BEE, CAT, DOG, RED, BLUE, CYAN, TEAL, NORTH, SOUTH, EAST, WEST]
    groups:
      - name: fruit
        color: yellow
        words: [APPLE, BANANA, CHERRY, DATE]
      - name: animal
        color: green
        words: [ANT, BEE, CAT, DOG]
      - name: color
        color: blue
        words: [RED, BLUE, CYAN, TEAL]
      - name: direction
        color: purple
        words: [NORTH, SOUTH, EAST, WEST]
`

const fixtureModelsYAML = `models:
  thinking:
    deepthink: provider/deepthink-v1
  non_thinking:
    quickchat: provider/quickchat-v1
`

// writeFixtures lays out a working config directory and returns the
// config path.
func writeFixtures(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"puzzles.yml":  fixtureCatalogYAML,
		"models.yml":   fixtureModelsYAML,
		"template.xml": "Solve this puzzle.\nWords: {{WORDS}}\n",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	configYAML := "inputs:\n" +
		"  puzzles_file: " + filepath.Join(dir, "puzzles.yml") + "\n" +
		"  prompt_file: " + filepath.Join(dir, "template.xml") + "\n" +
		"  models_file: " + filepath.Join(dir, "models.yml") + "\n" +
		"output_dir: " + filepath.Join(dir, "out") + "\n" +
		"log_dir: " + filepath.Join(dir, "logs") + "\n"
	configPath := filepath.Join(dir, ".connections.yml")
	if err := os.WriteFile(configPath, []byte(configYAML), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return configPath
}
