// SPDX-License-Identifier: Unlicense OR MIT

package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"gioui.org/x/gesturegate/locale"
)

var (
	localeDir      string
	localeURL      string
	localePlatform string
	localeJSON     bool
)

var localeCmd = &cobra.Command{
	Use:   "locale [tag]",
	Short: "Print the warning texts for a language tag",
	Long: `Print the warning texts for a language tag. Without a tag the
language of the environment is used. Records are looked up in --dir,
then --url, then the bundled records, falling back to English.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		c := cfg
		if localeDir != "" {
			c.Locales = localeDir
		}
		if localeURL != "" {
			c.LocalesURL = localeURL
		}
		if localePlatform != "" {
			c.Platform = localePlatform
		}
		tag := c.Locale
		if len(args) > 0 {
			tag = args[0]
		}
		p := c.platform()
		if tag == "" {
			tag = p.Language()
		}
		r := locale.Chain{Loader: c.loader(), Platform: p, Logger: logger}
		content := r.Resolve(cmd.Context(), tag)
		out := cmd.OutOrStdout()
		if localeJSON {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(content)
		}
		fmt.Fprintf(out, "tag:    %s\n", tag)
		fmt.Fprintf(out, "touch:  %s\n", content.Touch)
		fmt.Fprintf(out, "scroll: %s\n", content.Scroll)
		return nil
	},
}

func init() {
	localeCmd.Flags().StringVar(&localeDir, "dir", "", "directory of extra locale records")
	localeCmd.Flags().StringVar(&localeURL, "url", "", "base URL of extra locale records")
	localeCmd.Flags().StringVar(&localePlatform, "platform", "", "platform name, such as MacIntel")
	localeCmd.Flags().BoolVar(&localeJSON, "json", false, "output as JSON")
}
