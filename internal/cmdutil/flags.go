package cmdutil

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// StringEnumFlag registers a string flag whose value must be one of the
// given options, with shell completion for them.
func StringEnumFlag(cmd *cobra.Command, p *string, name, shorthand, defaultValue string, options []string, usage string) *pflag.Flag {
	*p = defaultValue
	flag := cmd.Flags().VarPF(&enumValue{value: p, options: options}, name, shorthand,
		fmt.Sprintf("%s: one of %s", usage, strings.Join(options, "|")))
	_ = cmd.RegisterFlagCompletionFunc(name, func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return options, cobra.ShellCompDirectiveNoFileComp
	})
	return flag
}

type enumValue struct {
	value   *string
	options []string
}

func (e *enumValue) String() string { return *e.value }

func (e *enumValue) Set(v string) error {
	for _, opt := range e.options {
		if v == opt {
			*e.value = v
			return nil
		}
	}
	return fmt.Errorf("valid values are {%s}", strings.Join(e.options, "|"))
}

func (e *enumValue) Type() string { return "string" }
