package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacoelho/xmlns"
)

func (a *app) tokensCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tokens",
		Short: "List the tokens of every kind with their ids",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			c, err := a.rootConfig()
			if err != nil {
				return err
			}
			pal := a.palette()
			for _, space := range []*xmlns.TokenSpace{c.URISpace(), c.PrefixSpace(), c.ElementSpace(), c.AttributeSpace()} {
				for _, tok := range space.Tokens() {
					if _, err := fmt.Fprintf(a.stdout, "%s %d %s\n", pal.label.Sprint(tok.Kind()), tok.ID(), tok.Text()); err != nil {
						return err
					}
				}
			}
			return nil
		},
	}
}
