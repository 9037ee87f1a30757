package main

import (
	"github.com/spf13/cobra"
)

func NewRootCmd(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "wordvec",
		Short:         "Word-vector arithmetic from the command line",
		Long:          `Load pretrained word embeddings and answer analogy and similarity queries over them.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		Run: func(cmd *cobra.Command, _ []string) {
			_ = cmd.Help()
		},
	}

	addPersistentFlags(rootCmd)
	rootCmd.AddCommand(
		NewQueryCmd(),
		NewAnalogyCmd(),
		NewNearestCmd(),
		NewReplCmd(),
		NewInfoCmd(),
		NewConfigCmd(),
	)

	return rootCmd
}

func addPersistentFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().String("config", "", "Config file path")
	cmd.PersistentFlags().Bool("json", false, "Output in JSON format")
	cmd.PersistentFlags().Bool("strict", false, "Fail on malformed embedding rows")
	cmd.PersistentFlags().Int("dim", 0, "Expected vector dimension (0 = infer from the file)")
}
