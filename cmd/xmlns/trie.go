package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jacoelho/xmlns"
	"github.com/jacoelho/xmlns/internal/token"
)

func (a *app) trieCmd() *cobra.Command {
	var kind, out string
	cmd := &cobra.Command{
		Use:   "trie",
		Short: "Print trie statistics or write the encoded trie",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			k, err := token.ParseKind(kind)
			if err != nil {
				return err
			}
			c, err := a.rootConfig()
			if err != nil {
				return err
			}
			var set *xmlns.TokenSet
			switch k {
			case token.KindURI:
				set = c.URISet()
			case token.KindPrefix:
				set = c.PrefixSet()
			default:
				return fmt.Errorf("no trie is kept for %s tokens", k)
			}
			t := set.EncodeTrie()
			if out == "" {
				_, err := fmt.Fprintf(a.stdout, "kind=%s tokens=%d nodes=%d\n", k, t.Len(), len(t.Nodes()))
				return err
			}
			data, err := t.MarshalBinary()
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write trie: %w", err)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&kind, "kind", "uri", "token kind: uri or prefix")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write the binary trie to file")
	return cmd
}
