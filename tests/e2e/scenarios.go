package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/grovetools/tend/pkg/assert"
	"github.com/grovetools/tend/pkg/command"
	"github.com/grovetools/tend/pkg/fs"
	"github.com/grovetools/tend/pkg/harness"
)

const mockTranscript = `{"type":"user","message":{"role":"user","content":"Check the repo"},"timestamp":"2025-01-01T12:00:00Z"}
{"type":"assistant","message":{"role":"assistant","content":[{"type":"tool_use","id":"t1","name":"Bash","input":{"command":"git status"}}]},"timestamp":"2025-01-01T12:00:01Z"}
{"type":"assistant","message":{"role":"assistant","content":[{"type":"tool_use","id":"t2","name":"Bash","input":{"command":"git status"}},{"type":"tool_use","id":"t3","name":"Read","input":{"file_path":"/repo/README.md"}}]},"timestamp":"2025-01-01T12:00:02Z"}
{"type":"assistant","message":{"role":"assistant","content":[{"type":"tool_use","id":"t4","name":"Bash","input":{"command":"npm install foo"}}]},"timestamp":"2025-01-01T12:00:03Z"}
{"type":"assistant","message":{"role":"assistant","content":[{"type":"tool_use","id":"t5","name":"Bash","inp`

type suggestOutput struct {
	SessionFile string `json:"session_file"`
	Suggestions map[string]struct {
		Count    int      `json:"count"`
		Examples []string `json:"examples"`
	} `json:"suggestions"`
	TotalUniqueRules int    `json:"total_unique_rules"`
	Error            string `json:"error"`
}

// projectDirName mirrors how session directories are named after the
// working directory of the agent.
func projectDirName(cwd string) string {
	return "-" + strings.TrimPrefix(strings.ReplaceAll(filepath.ToSlash(cwd), "/", "-"), "-")
}

// setupMockClaudeDir creates a mock ~/.claude/projects tree with one
// transcript for the harness working directory.
func setupMockClaudeDir(ctx *harness.Context) error {
	homeDir := ctx.NewDir("home")

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	projectDir := filepath.Join(homeDir, ".claude", "projects", projectDirName(cwd))
	if err := fs.CreateDir(projectDir); err != nil {
		return err
	}

	transcriptPath := filepath.Join(projectDir, "session-alpha.jsonl")
	if err := fs.WriteString(transcriptPath, mockTranscript); err != nil {
		return fmt.Errorf("failed to write session-alpha.jsonl: %w", err)
	}

	ctx.Set("mock_home", homeDir)
	ctx.Set("transcript_path", transcriptPath)
	return nil
}

type runResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

func runAgperms(ctx *harness.Context, args ...string) (runResult, error) {
	binary, err := FindProjectBinary()
	if err != nil {
		return runResult{}, err
	}
	cmd := command.New(binary, args...).Env("HOME=" + ctx.GetString("mock_home"))
	result := cmd.Run()
	ctx.ShowCommandOutput(cmd.String(), result.Stdout, result.Stderr)
	return runResult{Stdout: result.Stdout, Stderr: result.Stderr, ExitCode: result.ExitCode}, nil
}

func checkScenarioOutput(stdout string) error {
	var out suggestOutput
	if err := json.Unmarshal([]byte(stdout), &out); err != nil {
		return fmt.Errorf("failed to parse JSON output: %w", err)
	}
	if out.TotalUniqueRules != 2 {
		return fmt.Errorf("expected 2 unique rules, got %d", out.TotalUniqueRules)
	}
	if got := out.Suggestions["Bash(git status*)"].Count; got != 2 {
		return fmt.Errorf("expected git status count 2, got %d", got)
	}
	if got := out.Suggestions["Bash(npm install*)"].Count; got != 1 {
		return fmt.Errorf("expected npm install count 1, got %d", got)
	}
	return nil
}

// SuggestExplicitFileScenario analyses a transcript passed as an argument.
func SuggestExplicitFileScenario() *harness.Scenario {
	return &harness.Scenario{
		Name: "agperms-suggest-explicit-file",
		Steps: []harness.Step{
			harness.NewStep("Setup mock Claude directory", setupMockClaudeDir),
			harness.NewStep("Run 'agperms <session_file>'", func(ctx *harness.Context) error {
				result, err := runAgperms(ctx, ctx.GetString("transcript_path"))
				if err != nil {
					return err
				}
				if result.ExitCode != 0 {
					return fmt.Errorf("agperms failed: %s", result.Stderr)
				}
				if err := assert.NotContains(result.Stdout, "Read", "Read calls should not produce rules"); err != nil {
					return err
				}
				return checkScenarioOutput(result.Stdout)
			}),
			harness.NewStep("Run 'agperms --format table <session_file>'", func(ctx *harness.Context) error {
				result, err := runAgperms(ctx, "--format", "table", ctx.GetString("transcript_path"))
				if err != nil {
					return err
				}
				if result.ExitCode != 0 {
					return fmt.Errorf("agperms --format table failed: %s", result.Stderr)
				}
				if err := assert.Contains(result.Stdout, "RULE", "Should print table header"); err != nil {
					return err
				}
				return assert.Contains(result.Stdout, "Bash(npm install*)", "Should list npm rule")
			}),
		},
	}
}

// SuggestCurrentProjectScenario resolves the newest transcript of the
// working directory's project.
func SuggestCurrentProjectScenario() *harness.Scenario {
	return &harness.Scenario{
		Name: "agperms-suggest-current-project",
		Steps: []harness.Step{
			harness.NewStep("Setup mock Claude directory", setupMockClaudeDir),
			harness.NewStep("Run 'agperms'", func(ctx *harness.Context) error {
				result, err := runAgperms(ctx)
				if err != nil {
					return err
				}
				if result.ExitCode != 0 {
					return fmt.Errorf("agperms failed: %s", result.Stderr)
				}
				if err := assert.Contains(result.Stdout, "session-alpha.jsonl", "Should report the resolved session file"); err != nil {
					return err
				}
				return checkScenarioOutput(result.Stdout)
			}),
		},
	}
}

// SuggestNotFoundScenario checks the error document and exit status when
// nothing resolves.
func SuggestNotFoundScenario() *harness.Scenario {
	return &harness.Scenario{
		Name: "agperms-suggest-not-found",
		Steps: []harness.Step{
			harness.NewStep("Setup empty home", func(ctx *harness.Context) error {
				ctx.Set("mock_home", ctx.NewDir("empty-home"))
				return nil
			}),
			harness.NewStep("Run 'agperms' without sessions", func(ctx *harness.Context) error {
				result, err := runAgperms(ctx)
				if err != nil {
					return err
				}
				if result.ExitCode != 1 {
					return fmt.Errorf("expected exit code 1, got %d", result.ExitCode)
				}
				var out suggestOutput
				if err := json.Unmarshal([]byte(result.Stdout), &out); err != nil {
					return fmt.Errorf("failed to parse JSON output: %w", err)
				}
				return assert.Contains(out.Error, "Could not find session file", "Should print the error document")
			}),
		},
	}
}

// ListScenario tests the 'agperms list' command.
func ListScenario() *harness.Scenario {
	return &harness.Scenario{
		Name: "agperms-list-command",
		Steps: []harness.Step{
			harness.NewStep("Setup mock Claude directory", setupMockClaudeDir),
			harness.NewStep("Run 'agperms list'", func(ctx *harness.Context) error {
				result, err := runAgperms(ctx, "list")
				if err != nil {
					return err
				}
				if result.ExitCode != 0 {
					return fmt.Errorf("agperms list failed: %s", result.Stderr)
				}
				if err := assert.Contains(result.Stdout, "SESSION ID", "Should print table header"); err != nil {
					return err
				}
				return assert.Contains(result.Stdout, "session-alpha", "Should list session-alpha")
			}),
			harness.NewStep("Run 'agperms list --json'", func(ctx *harness.Context) error {
				result, err := runAgperms(ctx, "list", "--json")
				if err != nil {
					return err
				}
				if result.ExitCode != 0 {
					return fmt.Errorf("agperms list --json failed: %s", result.Stderr)
				}

				var logs []map[string]interface{}
				if err := json.Unmarshal([]byte(result.Stdout), &logs); err != nil {
					return fmt.Errorf("failed to parse JSON output: %w", err)
				}
				if len(logs) != 1 {
					return fmt.Errorf("expected 1 session in JSON output, got %d", len(logs))
				}
				for _, field := range []string{"sessionId", "logFilePath", "modifiedAt"} {
					if _, ok := logs[0][field]; !ok {
						return fmt.Errorf("missing %s field in JSON output", field)
					}
				}
				return nil
			}),
		},
	}
}
