package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/focalpoint94/Quant-ShortTerm-Simulator/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Work with strategy configuration files",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the reference strategy configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigInit,
}

var configCheckCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Validate a strategy configuration file",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigCheck,
}

var configOutPath string

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configCheckCmd)

	configInitCmd.Flags().StringVarP(&configOutPath, "out", "o", "", "write to file instead of stdout")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	data, err := yaml.Marshal(config.Default())
	if err != nil {
		return err
	}
	if configOutPath == "" {
		fmt.Print(string(data))
		return nil
	}
	return os.WriteFile(configOutPath, data, 0o644)
}

func runConfigCheck(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadFromFile(args[0])
	if err != nil {
		return err
	}
	strat, err := cfg.Compile()
	if err != nil {
		return err
	}
	fmt.Printf("ok: strategy %q, %d max positions, %s entry\n",
		strat.Name, strat.MaxPositions, strat.Entry.Kind)
	return nil
}
