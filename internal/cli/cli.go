// Package cli provides the command line interface.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/temirov/projtree/internal/config"
	"github.com/temirov/projtree/internal/output"
	"github.com/temirov/projtree/internal/projecttree"
	"github.com/temirov/projtree/internal/services/clipboard"
	"github.com/temirov/projtree/internal/utils"
)

const (
	rootUse              = "projtree <project_path> <project_type> [indent_style]"
	rootShortDescription = "print a project's directory tree without generated and dependency files"
	versionTemplate      = "projtree version: {{.Version}}\n"
	rootUsageExample     = `  # Render a Node.js project with tree glyphs
  projtree ./web nodejs tree

  # Render a Python project, also hiding fixtures, and copy the result
  projtree --copy -e fixtures ./service python

  # Prompt for every value
  projtree`

	exclusionFlagName        = "exclude"
	exclusionFlagShorthand   = "e"
	copyFlagName             = "copy"
	verboseFlagName          = "verbose"
	exclusionFlagDescription = "additional ignore substring (repeatable)"
	copyFlagDescription      = "also copy the rendered tree to the clipboard"
	verboseFlagDescription   = "log traversal details to stderr"
	maximumPositionalArgs    = 3

	// pathNotFoundMessage is printed to standard output when the project path is missing.
	pathNotFoundMessage = "Error: Project path does not exist"

	debugSettingsMessage   = "resolved settings"
	warningCopyFailMessage = "failed to copy tree to clipboard"
	errorRenderFormat      = "rendering %s: %w"
	errorWriteOutputFormat = "writing tree: %w"
)

// Dependencies are the collaborators used by a run. Zero values select the host
// filesystem, the system clipboard and a no-op logger.
type Dependencies struct {
	FileSystem afero.Fs
	Logger     *zap.Logger
	// LogLevel, when set, is raised to debug by --verbose.
	LogLevel *zap.AtomicLevel
	Copier   clipboard.Copier
}

// Execute runs the projtree application with the process arguments.
func Execute(dependencies Dependencies) error {
	rootCommand := NewRootCommand(dependencies)
	rootCommand.SetArgs(normalizeBooleanFlagArguments(rootCommand, os.Args[1:]))
	return rootCommand.Execute()
}

// NewRootCommand builds the projtree Cobra command.
func NewRootCommand(dependencies Dependencies) *cobra.Command {
	if dependencies.Logger == nil {
		dependencies.Logger = zap.NewNop()
	}
	if dependencies.Copier == nil {
		dependencies.Copier = clipboard.NewService()
	}

	var exclusionPatterns []string
	var copyEnabled bool
	var verboseEnabled bool

	rootCommand := &cobra.Command{
		Use:           rootUse,
		Short:         rootShortDescription,
		Long:          rootLongDescription(),
		Example:       rootUsageExample,
		Version:       utils.GetApplicationVersion(),
		Args:          cobra.MaximumNArgs(maximumPositionalArgs),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(command *cobra.Command, arguments []string) error {
			reader, readerError := config.NewReader(command.Flags())
			if readerError != nil {
				return readerError
			}
			return run(command, arguments, config.Load(reader), dependencies)
		},
	}
	rootCommand.SetVersionTemplate(versionTemplate)
	rootCommand.Flags().StringArrayVarP(&exclusionPatterns, exclusionFlagName, exclusionFlagShorthand, nil, exclusionFlagDescription)
	registerBooleanFlag(rootCommand.Flags(), &copyEnabled, copyFlagName, false, copyFlagDescription)
	registerBooleanFlag(rootCommand.Flags(), &verboseEnabled, verboseFlagName, false, verboseFlagDescription)
	return rootCommand
}

// run resolves settings, renders the tree and writes it to the command's output.
func run(command *cobra.Command, arguments []string, defaults config.Defaults, dependencies Dependencies) error {
	if defaults.Verbose && dependencies.LogLevel != nil {
		dependencies.LogLevel.SetLevel(zapcore.DebugLevel)
	}
	logger := dependencies.Logger
	standardOutput := command.OutOrStdout()

	var source SettingsSource
	if len(arguments) < minimumPositionalArgs {
		source = InteractiveSource{
			Reader:             command.InOrStdin(),
			Writer:             standardOutput,
			DefaultIndentStyle: defaults.IndentStyle,
		}
	} else {
		source = ArgumentSource{Arguments: arguments, DefaultIndentStyle: defaults.IndentStyle}
	}
	settings, settingsError := source.ReadSettings()
	if settingsError != nil {
		return settingsError
	}

	rules := projecttree.BuildIgnoreRuleSet(settings.ProjectType).WithPatterns(defaults.Exclude...)
	logger.Debug(debugSettingsMessage,
		zap.String("projectPath", settings.ProjectPath),
		zap.String("projectType", settings.ProjectType),
		zap.String("indentStyle", settings.IndentStyle),
		zap.Strings("ignorePatterns", rules.Patterns()),
	)

	renderer := projecttree.NewRenderer(dependencies.FileSystem, logger)
	lines, renderError := renderer.Render(settings.ProjectPath, rules, projecttree.IndentStyle(settings.IndentStyle))
	if renderError != nil {
		if errors.Is(renderError, projecttree.ErrPathNotFound) {
			_, printError := fmt.Fprintln(standardOutput, pathNotFoundMessage)
			return printError
		}
		return fmt.Errorf(errorRenderFormat, settings.ProjectPath, renderError)
	}

	if writeError := output.WriteLines(standardOutput, lines); writeError != nil {
		return fmt.Errorf(errorWriteOutputFormat, writeError)
	}
	if defaults.Copy {
		if copyError := dependencies.Copier.Copy(output.JoinLines(lines)); copyError != nil {
			logger.Warn(warningCopyFailMessage, zap.Error(copyError))
		}
	}
	return nil
}

func rootLongDescription() string {
	indentStyles := make([]string, 0, len(projecttree.KnownIndentStyles()))
	for _, indentStyle := range projecttree.KnownIndentStyles() {
		indentStyles = append(indentStyles, string(indentStyle))
	}
	return fmt.Sprintf(`projtree prints the directory tree of a project, omitting version control data,
editor settings and the generated or dependency directories of its ecosystem.

Project types with dedicated ignore patterns: %s. Any other type applies the common patterns only.
Indent styles: %s (default %s). Unknown styles indent with spaces.
With fewer than two arguments projtree prompts for each value.
Defaults may be set through %s_INDENT_STYLE, %s_EXCLUDE, %s_COPY and %s_VERBOSE.`,
		strings.Join(projecttree.KnownProjectTypes(), ", "),
		strings.Join(indentStyles, ", "),
		config.DefaultIndentStyle,
		config.EnvironmentPrefix, config.EnvironmentPrefix, config.EnvironmentPrefix, config.EnvironmentPrefix,
	)
}
