package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/specdoc/specdoc/internal/chat"
	"github.com/specdoc/specdoc/internal/config"
	"github.com/specdoc/specdoc/internal/server"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the documentation assistant HTTP server",
	Long: `Starts the specdoc HTTP server: upload a spec to /upload-spec, then
read the markdown summary, search endpoints, browse the rendered docs
page, and chat about the API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if servePort > 0 {
			cfg.Port = servePort
		}

		db, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		ctx := context.Background()

		vectors, err := openVectorStore(ctx, cfg)
		if err != nil {
			return err
		}

		var answerer chat.Answerer
		if cfg.ChatModel != "" {
			apiKey := config.OpenAIKey()
			if apiKey == "" {
				fmt.Fprintln(os.Stderr, "Warning: chat_model is set but OPENAI_API_KEY is empty; chat stays rule-based")
			} else {
				answerer = chat.NewOpenAIAnswerer(apiKey, cfg.ChatModel)
			}
		}

		srv := server.New(server.Config{
			Port:            cfg.Port,
			AllowAll:        cfg.AllowAllOrigins,
			ExamplesDir:     cfg.ExamplesDir,
			ExamplesInclude: cfg.ExamplesInclude,
			ExamplesExclude: cfg.ExamplesExclude,
			SearchLimit:     cfg.SearchLimit,
			SearchThreshold: cfg.SearchThreshold,
		}, db, vectors, chat.NewBot(answerer))

		if err := srv.RestoreLatest(ctx); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not restore previous spec: %v\n", err)
		}

		shutdownCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		go func() {
			<-shutdownCtx.Done()
			fmt.Fprintln(os.Stderr, "\nShutting down server...")
			srv.Shutdown(context.Background())
		}()

		fmt.Fprintf(os.Stderr, "specdoc v%s listening on port %d\n", Version, cfg.Port)
		fmt.Fprintf(os.Stderr, "  Data dir: %s\n", cfg.DataDir)

		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}
