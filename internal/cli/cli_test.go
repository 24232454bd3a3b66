package cli

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/temirov/projtree/internal/projecttree"
)

const testProjectRoot = "/project"

type recordingCopier struct {
	copied []string
	err    error
}

func (copier *recordingCopier) Copy(text string) error {
	copier.copied = append(copier.copied, text)
	return copier.err
}

type failingOpenFs struct {
	afero.Fs
	failingPath string
}

func (fileSystem failingOpenFs) Open(name string) (afero.File, error) {
	if name == fileSystem.failingPath {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
	}
	return fileSystem.Fs.Open(name)
}

func newTestProject(t *testing.T) afero.Fs {
	t.Helper()
	fileSystem := afero.NewMemMapFs()
	for _, relativePath := range []string{
		".git/config",
		"node_modules/pkg/index.js",
		"src/main.js",
		"src/fixtures/sample.json",
		"package.json",
	} {
		fullPath := filepath.Join(testProjectRoot, relativePath)
		if err := fileSystem.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
			t.Fatalf("mkdir: %v", err)
		}
		if err := afero.WriteFile(fileSystem, fullPath, []byte("{}"), 0o644); err != nil {
			t.Fatalf("write %s: %v", fullPath, err)
		}
	}
	return fileSystem
}

func executeCommand(t *testing.T, dependencies Dependencies, input string, arguments ...string) (string, error) {
	t.Helper()
	command := NewRootCommand(dependencies)
	var outputBuffer bytes.Buffer
	command.SetOut(&outputBuffer)
	command.SetErr(io.Discard)
	command.SetIn(strings.NewReader(input))
	command.SetArgs(normalizeBooleanFlagArguments(command, arguments))
	executionError := command.Execute()
	return outputBuffer.String(), executionError
}

func TestRootCommandArgumentMode(t *testing.T) {
	testCases := []struct {
		name      string
		arguments []string
		expected  string
	}{
		{
			name:      "default_space_style",
			arguments: []string{testProjectRoot, "nodejs"},
			expected: "/project/\n" +
				"    package.json\n" +
				"    src/\n" +
				"        main.js\n" +
				"        fixtures/\n" +
				"            sample.json\n",
		},
		{
			name:      "tree_style",
			arguments: []string{testProjectRoot, "nodejs", "tree"},
			expected: "/project/\n" +
				"└── package.json\n" +
				"└── src/\n" +
				"│   └── main.js\n" +
				"│   └── fixtures/\n" +
				"│   │   └── sample.json\n",
		},
		{
			name:      "exclusion_flag",
			arguments: []string{"-e", "fixtures", testProjectRoot, "nodejs", "dash"},
			expected: "/project/\n" +
				"----package.json\n" +
				"----src/\n" +
				"--------main.js\n",
		},
		{
			name:      "unknown_type_keeps_dependencies",
			arguments: []string{testProjectRoot, "elixir", "dot"},
			expected: "/project/\n" +
				"....package.json\n" +
				"....node_modules/\n" +
				"........pkg/\n" +
				"............index.js\n" +
				"....src/\n" +
				"........main.js\n" +
				"........fixtures/\n" +
				"............sample.json\n",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			output, err := executeCommand(t, Dependencies{FileSystem: newTestProject(t)}, "", testCase.arguments...)
			if err != nil {
				t.Fatalf("execute: %v", err)
			}
			if output != testCase.expected {
				t.Fatalf("expected:\n%s\ngot:\n%s", testCase.expected, output)
			}
		})
	}
}

func TestRootCommandIndentStyleFromEnvironment(t *testing.T) {
	t.Setenv("PROJTREE_INDENT_STYLE", "dash")
	output, err := executeCommand(t, Dependencies{FileSystem: newTestProject(t)}, "", testProjectRoot, "nodejs")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(output, "\n----package.json\n") {
		t.Fatalf("expected dash indentation from environment, got:\n%s", output)
	}

	explicit, err := executeCommand(t, Dependencies{FileSystem: newTestProject(t)}, "", testProjectRoot, "nodejs", "space")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.Contains(explicit, "\n    package.json\n") {
		t.Fatalf("positional indent style must override environment, got:\n%s", explicit)
	}
}

func TestRootCommandInteractiveMode(t *testing.T) {
	for _, arguments := range [][]string{{}, {testProjectRoot}} {
		output, err := executeCommand(t, Dependencies{FileSystem: newTestProject(t)}, testProjectRoot+"\nnodejs\ndash\n", arguments...)
		if err != nil {
			t.Fatalf("execute %v: %v", arguments, err)
		}
		expected := interactiveBanner + "\n" +
			projectPathPrompt + projectTypePrompt + indentStylePrompt +
			"/project/\n" +
			"----package.json\n" +
			"----src/\n" +
			"--------main.js\n" +
			"--------fixtures/\n" +
			"------------sample.json\n"
		if output != expected {
			t.Fatalf("arguments %v: expected:\n%s\ngot:\n%s", arguments, expected, output)
		}
	}
}

func TestRootCommandMissingPath(t *testing.T) {
	output, err := executeCommand(t, Dependencies{FileSystem: afero.NewMemMapFs()}, "", "/absent", "python", "tree")
	if err != nil {
		t.Fatalf("missing path must not fail the command: %v", err)
	}
	if output != pathNotFoundMessage+"\n" {
		t.Fatalf("expected only the error message, got %q", output)
	}
}

func TestRootCommandTraversalFailure(t *testing.T) {
	fileSystem := failingOpenFs{Fs: newTestProject(t), failingPath: filepath.Join(testProjectRoot, "src")}
	output, err := executeCommand(t, Dependencies{FileSystem: fileSystem}, "", testProjectRoot, "nodejs")
	var traversalError *projecttree.TraversalError
	if !errors.As(err, &traversalError) {
		t.Fatalf("expected TraversalError, got %v", err)
	}
	if strings.Contains(output, "/project/") {
		t.Fatalf("no tree lines may be printed after a traversal failure, got %q", output)
	}
}

func TestRootCommandCopiesToClipboard(t *testing.T) {
	copier := &recordingCopier{}
	output, err := executeCommand(t, Dependencies{FileSystem: newTestProject(t), Copier: copier}, "", "--copy", "yes", testProjectRoot, "nodejs")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(copier.copied) != 1 || copier.copied[0] != output {
		t.Fatalf("expected clipboard to receive the printed tree, got %q", copier.copied)
	}

	silentCopier := &recordingCopier{}
	if _, err := executeCommand(t, Dependencies{FileSystem: newTestProject(t), Copier: silentCopier}, "", testProjectRoot, "nodejs"); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(silentCopier.copied) != 0 {
		t.Fatalf("clipboard must not be used without --copy")
	}
}

func TestRootCommandClipboardFailureIsNotFatal(t *testing.T) {
	copier := &recordingCopier{err: errors.New("no clipboard")}
	output, err := executeCommand(t, Dependencies{FileSystem: newTestProject(t), Copier: copier}, "", "--copy", testProjectRoot, "nodejs")
	if err != nil {
		t.Fatalf("clipboard failure must not fail the command: %v", err)
	}
	if !strings.HasPrefix(output, "/project/\n") {
		t.Fatalf("tree must still be printed, got %q", output)
	}
}

func TestRootCommandVerboseRaisesLogLevel(t *testing.T) {
	logLevel := zap.NewAtomicLevelAt(zapcore.InfoLevel)
	dependencies := Dependencies{FileSystem: newTestProject(t), LogLevel: &logLevel}
	if _, err := executeCommand(t, dependencies, "", "--verbose", testProjectRoot, "nodejs"); err != nil {
		t.Fatalf("execute: %v", err)
	}
	if logLevel.Level() != zapcore.DebugLevel {
		t.Fatalf("expected debug level after --verbose, got %s", logLevel.Level())
	}
}

func TestRootCommandRejectsExtraArguments(t *testing.T) {
	if _, err := executeCommand(t, Dependencies{FileSystem: newTestProject(t)}, "", testProjectRoot, "nodejs", "tree", "extra"); err == nil {
		t.Fatalf("expected error for four positional arguments")
	}
}

func TestRootCommandVersion(t *testing.T) {
	output, err := executeCommand(t, Dependencies{FileSystem: newTestProject(t)}, "", "--version")
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if !strings.HasPrefix(output, "projtree version: ") {
		t.Fatalf("unexpected version output %q", output)
	}
}
