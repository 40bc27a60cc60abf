package main

import "github.com/spf13/cobra"

func (a *app) exportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write the loaded vocabulary as YAML",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			c, err := a.rootConfig()
			if err != nil {
				return err
			}
			return c.WriteVocabulary(a.stdout)
		},
	}
}
