package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"formos/internal/sexp"
)

var hashCmd = &cobra.Command{
	Use:   "hash <expression>",
	Short: "Print the canonical form and content hash of an expression",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		expr, err := sexp.Parse(args[0])
		if err != nil {
			return err
		}
		fmt.Println(sexp.Encode(sexp.Canonicalize(expr)))
		fmt.Println(sexp.Hash(expr))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hashCmd)
}
