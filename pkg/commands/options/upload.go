package options

import (
	"github.com/spf13/cobra"
)

// UploadOptions carries the metadata shared by every file of a batch.
type UploadOptions struct {
	Author string
	Notes  string
	Quiet  bool
}

func AddUploadArgs(cmd *cobra.Command, o *UploadOptions) {
	cmd.Flags().StringVarP(&o.Author, "author", "a", "",
		"Who took the photos.")
	cmd.Flags().StringVarP(&o.Notes, "notes", "n", "",
		"A note attached to every photo, at most 500 characters.")
	cmd.Flags().BoolVarP(&o.Quiet, "quiet", "q", false,
		"Do not print upload progress.")
}
