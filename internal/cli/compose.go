package cli

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/apodwall/apodwall/pkg/caption"
	"github.com/apodwall/apodwall/pkg/caption/fonts"
	"github.com/apodwall/apodwall/pkg/destination"
	"github.com/apodwall/apodwall/pkg/errors"
)

// newComposeCmd captions a local image file: the compositor without the
// network, for checking fonts and band layout.
func newComposeCmd() *cobra.Command {
	var text, out, fontPath string

	cmd := &cobra.Command{
		Use:   "compose <image>",
		Short: "Caption a local image file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			data, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrap(errors.ErrCodeIO, err, "read %s", args[0])
			}

			var loader fonts.Loader
			if fontPath != "" {
				loader = fonts.FromFile(fontPath)
			} else {
				sys, err := fonts.Discover()
				if err != nil {
					return err
				}
				logger.Debug("using font", "path", sys.Path)
				loader = sys
			}

			composed, bounds, err := caption.Compose(data, text, loader)
			if err != nil {
				return err
			}

			if out == "" {
				out = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + ".captioned.jpg"
			}
			if err := destination.Write(out, composed); err != nil {
				return err
			}

			printSuccess("captioned %dx%d image", bounds.Dx(), bounds.Dy())
			printFile(out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&text, "text", "t", "", "caption text (required)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "output path (default: <image>.captioned.jpg)")
	cmd.Flags().StringVar(&fontPath, "font", "", "TTF font file (default: discover a system font)")
	_ = cmd.MarkFlagRequired("text")

	return cmd
}
