package cmd

import (
	"context"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/truemediaorg/postgrab/i18n"
)

var (
	settingsEndpoint string
	settingsToken    string
	settingsLanguage string
)

func init() {
	settingsSetCmd.Flags().StringVar(&settingsEndpoint, "endpoint", "", `resolver base URL, or "demo" for the built-in mock`)
	settingsSetCmd.Flags().StringVar(&settingsToken, "token", "", "bearer token for the resolver")
	settingsSetCmd.Flags().StringVar(&settingsLanguage, "language", "", "interface language (zh or en)")

	settingsCmd.AddCommand(settingsShowCmd, settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Shows or changes the stored settings",
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Prints the stored settings with the token redacted",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		a := newApp(ctx, nil)
		defer a.Close()

		s, err := a.pipeline.Settings(ctx)
		if err != nil {
			log.Fatalf("error loading settings: %v", err)
		}
		printJSON(s.Redacted())
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Changes the given settings and stores them",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		a := newApp(ctx, nil)
		defer a.Close()

		s, err := a.pipeline.Settings(ctx)
		if err != nil {
			log.Fatalf("error loading settings: %v", err)
		}
		flags := cmd.Flags()
		if flags.Changed("endpoint") {
			s.Endpoint = settingsEndpoint
		}
		if flags.Changed("token") {
			s.Token = settingsToken
		}
		if flags.Changed("language") {
			if !i18n.Supported(settingsLanguage) {
				log.Fatalf("unsupported language %q, pick one of %v", settingsLanguage, i18n.Languages())
			}
			s.Language = settingsLanguage
		}

		saved, err := a.pipeline.SaveSettings(ctx, s)
		if err != nil {
			log.Fatalf("error saving settings: %v", err)
		}
		printJSON(saved.Redacted())
		log.Info(i18n.For(saved.Language).T(i18n.KeySettingsSaved))
	},
}
