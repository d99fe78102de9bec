package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/truemediaorg/postgrab/extract"
	"github.com/truemediaorg/postgrab/i18n"
	"github.com/truemediaorg/postgrab/model"
)

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

var analyzeCmd = &cobra.Command{
	Use:   "analyze <share text...>",
	Short: "Resolves the first link in the text and prints the post",
	Long:  `Resolves the first link in the text and prints the normalized post as JSON`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		a := newApp(ctx, nil)
		defer a.Close()

		post := a.analyze(ctx, strings.Join(args, " "))
		printJSON(post)
	},
}

// analyze resolves the text and writes a localized summary to stderr, keeping
// stdout for machine-readable output.
func (a *app) analyze(ctx context.Context, text string) *model.Post {
	tr := a.translator(ctx)
	log.Info(tr.T(i18n.KeyAnalyzing))

	post, err := a.pipeline.Analyze(ctx, text)
	if err != nil {
		if errors.Is(err, extract.ErrNoURL) {
			log.Fatal(tr.Failure(tr.T(i18n.KeyNoURL)))
		}
		log.Fatal(tr.Failure(fmt.Sprintf("%s (%v)", tr.T(i18n.KeyResolveFailed), err)))
	}

	demo := false
	if cfg, err := a.pipeline.ResolverConfig(ctx); err == nil {
		demo = cfg.IsDemo()
	}
	fmt.Fprint(os.Stderr, tr.Summary(*post, demo))
	return post
}
