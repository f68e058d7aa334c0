package options

import (
	"github.com/spf13/cobra"
)

// FileOptions
type FileOptions struct {
	Out string
}

func AddOutArgs(cmd *cobra.Command, o *FileOptions) {
	cmd.Flags().StringVarP(&o.Out, "out", "o", "",
		"Write to this file instead of the default destination.")
}
