package cmd

import (
	"context"
	"os/signal"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/truemediaorg/postgrab/download"
	"github.com/truemediaorg/postgrab/i18n"
	"github.com/truemediaorg/postgrab/model"
)

var onlyPosition int

func init() {
	downloadCmd.Flags().IntVar(&onlyPosition, "only", 0, "download only the asset at this 1-based position")
	rootCmd.AddCommand(downloadCmd)
}

var downloadCmd = &cobra.Command{
	Use:   "download <share text...>",
	Short: "Resolves the first link in the text and downloads its media",
	Long: `Resolves the first link in the text and downloads every asset of the post
into DOWNLOAD_DIR, one at a time. Assets that cannot be saved are opened in
the system browser instead.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, done := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer done()

		a := newApp(ctx, download.BrowserOpener{})
		defer a.Close()
		tr := a.translator(ctx)

		post := a.analyze(ctx, strings.Join(args, " "))
		if len(post.Media) == 0 {
			return
		}

		if onlyPosition != 0 {
			if onlyPosition < 1 || onlyPosition > len(post.Media) {
				log.Fatalf("--only must be between 1 and %d", len(post.Media))
			}
			outcome := a.pipeline.DownloadOne(ctx, post.Media[onlyPosition-1], onlyPosition-1)
			printJSON(outcome)
			reportOne(tr, outcome)
			return
		}

		log.WithField("dir", a.cfg.Download.Dir).Info(tr.T(i18n.KeyDownloading))
		batch, err := a.pipeline.DownloadAll(ctx, *post)
		if err != nil {
			log.Fatal(err)
		}
		printJSON(batch)
		if batch.Status == model.BatchStatusFailed {
			log.Error(tr.T(i18n.KeyBatchFailed))
			return
		}
		log.Info(tr.Tf(i18n.KeyBatchSucceeded, batch.Succeeded, len(batch.Items)))
	},
}

func reportOne(tr i18n.Translator, outcome model.AssetOutcome) {
	logger := log.WithField("filename", outcome.Filename)
	if outcome.Succeeded {
		logger.Info(tr.T(i18n.KeySaved))
		return
	}
	logger.Warn(tr.T(i18n.KeySaveFailed))
}
