package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/apodwall/apodwall/pkg/destination"
)

// newPathsCmd shows how a configured save directory resolves, including
// the foreign-namespace translation and bridge availability check.
func newPathsCmd() *cobra.Command {
	var rulesFile, dateKey string

	cmd := &cobra.Command{
		Use:   "paths <dir>",
		Short: "Show how a save directory translates to a local path",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var rules destination.Rules
			if rulesFile != "" {
				var err error
				if rules, err = destination.LoadRules(rulesFile); err != nil {
					return err
				}
			}

			if dateKey == "" {
				dateKey = time.Now().Format("2006-01-02")
			}

			target, err := destination.NewResolver(rules).Resolve(args[0], dateKey)
			if err != nil {
				return err
			}

			printKeyValue("configured", args[0])
			printKeyValue("resolved", target)
			return nil
		},
	}

	cmd.Flags().StringVar(&rulesFile, "rules", "", "TOML translation rule file")
	cmd.Flags().StringVar(&dateKey, "date", "", "date key for the file name (default: today)")

	return cmd
}
