package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	interactiveBanner         = "Interactive mode: Please enter the details."
	projectPathPrompt         = "Enter project path: "
	projectTypePrompt         = "Enter project type (python, nodejs, vue, react, ruby, rails): "
	indentStylePrompt         = "Enter indent style (space, dash, dot, tree): "
	minimumPositionalArgs     = 2
	indentStyleArgumentIndex  = 2
	errorReadInputFormat      = "reading %s: %w"
	errorArgumentCountFormat  = "expected at least %d arguments, got %d"
	projectPathInputLabel     = "project path"
	projectTypeInputLabel     = "project type"
	indentStyleInputLabel     = "indent style"
	interactiveLineTerminator = "\r\n"
)

var errInputEnded = errors.New("input ended before a value was entered")

// Settings carries the three values that drive a rendering run.
type Settings struct {
	ProjectPath string
	ProjectType string
	IndentStyle string
}

// SettingsSource supplies Settings; the renderer does not depend on which source was used.
type SettingsSource interface {
	ReadSettings() (Settings, error)
}

// ArgumentSource reads settings from positional arguments: path, project type and an optional indent style.
type ArgumentSource struct {
	Arguments          []string
	DefaultIndentStyle string
}

// ReadSettings implements SettingsSource.
func (source ArgumentSource) ReadSettings() (Settings, error) {
	if len(source.Arguments) < minimumPositionalArgs {
		return Settings{}, fmt.Errorf(errorArgumentCountFormat, minimumPositionalArgs, len(source.Arguments))
	}
	settings := Settings{
		ProjectPath: source.Arguments[0],
		ProjectType: source.Arguments[1],
		IndentStyle: source.DefaultIndentStyle,
	}
	if len(source.Arguments) > indentStyleArgumentIndex {
		settings.IndentStyle = source.Arguments[indentStyleArgumentIndex]
	}
	return settings, nil
}

// InteractiveSource prompts for each setting on Writer and reads one line per answer from Reader.
// An empty indent style answer selects DefaultIndentStyle.
type InteractiveSource struct {
	Reader             io.Reader
	Writer             io.Writer
	DefaultIndentStyle string
}

// ReadSettings implements SettingsSource.
func (source InteractiveSource) ReadSettings() (Settings, error) {
	lineReader := bufio.NewReader(source.Reader)
	if _, writeError := fmt.Fprintln(source.Writer, interactiveBanner); writeError != nil {
		return Settings{}, writeError
	}

	projectPath, pathError := source.prompt(lineReader, projectPathPrompt)
	if pathError != nil {
		return Settings{}, fmt.Errorf(errorReadInputFormat, projectPathInputLabel, pathError)
	}
	projectType, typeError := source.prompt(lineReader, projectTypePrompt)
	if typeError != nil && !errors.Is(typeError, errInputEnded) {
		return Settings{}, fmt.Errorf(errorReadInputFormat, projectTypeInputLabel, typeError)
	}
	indentStyle, styleError := source.prompt(lineReader, indentStylePrompt)
	if styleError != nil && !errors.Is(styleError, errInputEnded) {
		return Settings{}, fmt.Errorf(errorReadInputFormat, indentStyleInputLabel, styleError)
	}
	if indentStyle == "" {
		indentStyle = source.DefaultIndentStyle
	}

	return Settings{
		ProjectPath: projectPath,
		ProjectType: projectType,
		IndentStyle: indentStyle,
	}, nil
}

// prompt writes message and returns the next line without its terminator.
// It returns errInputEnded when the reader is exhausted before any character arrives.
func (source InteractiveSource) prompt(lineReader *bufio.Reader, message string) (string, error) {
	if _, writeError := io.WriteString(source.Writer, message); writeError != nil {
		return "", writeError
	}
	line, readError := lineReader.ReadString('\n')
	if readError != nil {
		if !errors.Is(readError, io.EOF) {
			return "", readError
		}
		if line == "" {
			return "", errInputEnded
		}
	}
	return strings.TrimRight(line, interactiveLineTerminator), nil
}
