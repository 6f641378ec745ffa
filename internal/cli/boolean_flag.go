package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/temirov/dumpo/internal/types"
)

const (
	booleanFlagTypeName               = "bool"
	booleanFlagTrueLiteral            = "true"
	booleanFlagAcceptedValuesListing  = "true, false, yes, no, on, off, 1, 0"
	booleanFlagInvalidValueErrorLabel = "invalid boolean value"
)

var booleanFlagLiterals = map[string]bool{
	"true":  true,
	"t":     true,
	"1":     true,
	"yes":   true,
	"y":     true,
	"on":    true,
	"false": false,
	"f":     false,
	"0":     false,
	"no":    false,
	"n":     false,
	"off":   false,
}

// booleanFlagValue is a bool flag that also accepts yes/no/on/off literals,
// either after "=" or as the following argument.
type booleanFlagValue struct {
	target   *bool
	flagName string
}

func (value *booleanFlagValue) Set(input string) error {
	if value == nil || value.target == nil {
		return fmt.Errorf("%w: %s %q", types.ErrConfig, booleanFlagInvalidValueErrorLabel, input)
	}
	parsed, ok := parseBooleanLiteral(input)
	if !ok {
		return fmt.Errorf("%w: %s %q for --%s; accepted values: %s", types.ErrConfig, booleanFlagInvalidValueErrorLabel, input, value.flagName, booleanFlagAcceptedValuesListing)
	}
	*value.target = parsed
	return nil
}

func parseBooleanLiteral(input string) (bool, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		normalized = booleanFlagTrueLiteral
	}
	parsed, ok := booleanFlagLiterals[normalized]
	return parsed, ok
}

func (value *booleanFlagValue) String() string {
	if value == nil || value.target == nil {
		return booleanFlagTrueLiteral
	}
	return strconv.FormatBool(*value.target)
}

func (value *booleanFlagValue) Type() string {
	return booleanFlagTypeName
}

func registerBooleanFlag(flagSet *pflag.FlagSet, target *bool, name string, defaultValue bool, usage string) {
	if flagSet == nil || target == nil {
		return
	}
	*target = defaultValue
	flagValue := &booleanFlagValue{
		target:   target,
		flagName: name,
	}
	flagSet.Var(flagValue, name, usage)
	if lookup := flagSet.Lookup(name); lookup != nil {
		lookup.DefValue = strconv.FormatBool(defaultValue)
		lookup.NoOptDefVal = booleanFlagTrueLiteral
	}
}

// normalizeBooleanFlagArguments joins "--flag value" into "--flag=value" for
// flags registered with registerBooleanFlag when value is a boolean literal.
// Without it pflag would treat the literal as a positional argument.
func normalizeBooleanFlagArguments(command *cobra.Command, arguments []string) []string {
	if command == nil || len(arguments) == 0 {
		return arguments
	}
	booleanFlags := map[string]struct{}{}
	collectBooleanFlagNames(command, booleanFlags)
	if len(booleanFlags) == 0 {
		return arguments
	}
	normalized := make([]string, 0, len(arguments))
	index := 0
	for index < len(arguments) {
		currentArgument := arguments[index]
		if currentArgument == "--" {
			normalized = append(normalized, arguments[index:]...)
			break
		}
		if strings.HasPrefix(currentArgument, "--") && !strings.Contains(currentArgument, "=") {
			flagName := strings.TrimPrefix(currentArgument, "--")
			if _, exists := booleanFlags[flagName]; exists && index+1 < len(arguments) {
				nextArgument := arguments[index+1]
				if !strings.HasPrefix(nextArgument, "-") {
					if _, valid := parseBooleanLiteral(nextArgument); valid && strings.TrimSpace(nextArgument) != "" {
						normalized = append(normalized, fmt.Sprintf("--%s=%s", flagName, nextArgument))
						index += 2
						continue
					}
				}
			}
		}
		normalized = append(normalized, currentArgument)
		index++
	}
	return normalized
}

func collectBooleanFlagNames(command *cobra.Command, target map[string]struct{}) {
	if command == nil || target == nil {
		return
	}
	visit := func(flagSet *pflag.FlagSet) {
		if flagSet == nil {
			return
		}
		flagSet.VisitAll(func(flag *pflag.Flag) {
			if flag == nil {
				return
			}
			if _, extended := flag.Value.(*booleanFlagValue); extended {
				target[flag.Name] = struct{}{}
			}
		})
	}
	visit(command.PersistentFlags())
	visit(command.Flags())
	for _, child := range command.Commands() {
		collectBooleanFlagNames(child, target)
	}
}
