// Package config resolves command defaults from flags and PROJTREE_* environment variables.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/temirov/projtree/internal/utils"
)

const (
	// EnvironmentPrefix prefixes every environment variable consulted for defaults.
	EnvironmentPrefix = "PROJTREE"

	KeyIndentStyle = "indent_style"
	KeyExclude     = "exclude"
	KeyCopy        = "copy"
	KeyVerbose     = "verbose"

	// DefaultIndentStyle applies when neither an argument nor the environment selects a style.
	DefaultIndentStyle = "space"

	errorBindFlagFormat = "binding flag %s: %w"
)

// Defaults holds the values that shape a run when the caller does not supply them positionally.
type Defaults struct {
	IndentStyle string
	Exclude     []string
	Copy        bool
	Verbose     bool
}

// NewReader returns a viper instance reading PROJTREE_* variables. Flags present in flagSet
// are bound by name with dashes mapped to underscores; a changed flag takes precedence over
// the environment.
func NewReader(flagSet *pflag.FlagSet) (*viper.Viper, error) {
	reader := viper.New()
	reader.SetEnvPrefix(EnvironmentPrefix)
	reader.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	reader.AutomaticEnv()

	reader.SetDefault(KeyIndentStyle, DefaultIndentStyle)
	reader.SetDefault(KeyExclude, []string{})
	reader.SetDefault(KeyCopy, false)
	reader.SetDefault(KeyVerbose, false)

	if flagSet == nil {
		return reader, nil
	}
	var bindError error
	flagSet.VisitAll(func(flag *pflag.Flag) {
		if bindError != nil {
			return
		}
		key := strings.ReplaceAll(flag.Name, "-", "_")
		if err := reader.BindPFlag(key, flag); err != nil {
			bindError = fmt.Errorf(errorBindFlagFormat, flag.Name, err)
		}
	})
	if bindError != nil {
		return nil, bindError
	}
	return reader, nil
}

// Load reads the resolved defaults from reader.
func Load(reader *viper.Viper) Defaults {
	indentStyle := strings.TrimSpace(reader.GetString(KeyIndentStyle))
	if indentStyle == "" {
		indentStyle = DefaultIndentStyle
	}
	return Defaults{
		IndentStyle: indentStyle,
		Exclude:     utils.DeduplicatePatterns(utils.SplitPatternList(reader.GetStringSlice(KeyExclude))),
		Copy:        reader.GetBool(KeyCopy),
		Verbose:     reader.GetBool(KeyVerbose),
	}
}
