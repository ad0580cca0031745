package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/ecs-abi/codegen"
	"github.com/wippyai/ecs-abi/component"
	"github.com/wippyai/ecs-abi/hooks"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "ecsgen",
		Short:        "Component code generator and layout inspector",
		Long:         `ecsgen turns TOML or YAML component declarations into Go types with fixed C-ABI layouts`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			verbose, err := cmd.Flags().GetBool("verbose")
			if err != nil {
				return err
			}
			if !verbose {
				return nil
			}
			l, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			codegen.SetLogger(l)
			component.SetLogger(l)
			hooks.SetLogger(l)
			return nil
		},
	}

	root.AddCommand(newGenCmd())
	root.AddCommand(newLayoutCmd())
	root.AddCommand(newInspectCmd())

	root.PersistentFlags().BoolP("verbose", "v", false, "log generator activity")
	root.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// useColor resolves the --color flag for output written to f.
func useColor(cmd *cobra.Command, f *os.File) bool {
	mode, _ := cmd.Flags().GetString("color")
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(f)
	}
}
