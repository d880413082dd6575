package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aretw0/varion"
	"github.com/aretw0/varion/internal/logging"
	httpAdapter "github.com/aretw0/varion/pkg/adapters/http"
	"github.com/aretw0/varion/pkg/adapters/memory"
	redisStore "github.com/aretw0/varion/pkg/adapters/redis"
	"github.com/aretw0/varion/pkg/ports"
	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve [script.va]",
	Short: "Start the HTTP server",
	Long: `Exposes the parser and, when a script is given, playback sessions over a
JSON API. Without a script only the stateless /parse and /validate
endpoints are mounted.`,
	Run: func(cmd *cobra.Command, args []string) {
		port, _ := cmd.Flags().GetString("port")
		redisAddr, _ := cmd.Flags().GetString("redis")
		logger := logging.New(slog.LevelInfo)

		opts := []httpAdapter.Option{httpAdapter.WithLogger(logger)}

		// The script argument is optional for serve.
		path, _ := cmd.Flags().GetString("file")
		if path == "" && len(args) > 0 {
			path = args[0]
		}
		if path != "" {
			var store ports.SessionStore = memory.NewStore()
			if redisAddr != "" {
				rs := redisStore.New(redisAddr, "", 0)
				if err := rs.Ping(cmd.Context()); err != nil {
					fmt.Printf("Cannot reach redis at %s: %v\n", redisAddr, err)
					os.Exit(1)
				}
				store = rs
			}

			engine, err := varion.New(path,
				varion.WithStore(store),
				varion.WithLogger(logger),
			)
			if err != nil {
				fmt.Printf("Error loading script: %v\n", err)
				os.Exit(1)
			}
			opts = append(opts, httpAdapter.WithEngine(engine.Engine))
		}

		handler := httpAdapter.NewHandler(varion.Parse, opts...)

		srv := &http.Server{
			Addr:    ":" + port,
			Handler: handler,
		}

		// Channel to listen for errors coming from the listener.
		serverErrors := make(chan error, 1)

		go func() {
			fmt.Printf("Starting Varion Server on %s\n", srv.Addr)
			if path != "" {
				fmt.Printf("Serving script: %s\n", path)
			}
			serverErrors <- srv.ListenAndServe()
		}()

		// Channel to listen for interrupt or terminate signals.
		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			fmt.Printf("Server error: %v\n", err)
			os.Exit(1)

		case sig := <-shutdown:
			fmt.Printf("\nStart shutdown... Signal: %v\n", sig)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				fmt.Printf("Graceful shutdown did not complete in %v: %v\n", 5*time.Second, err)
				if err := srv.Close(); err != nil {
					fmt.Printf("Error killing server: %v\n", err)
				}
			}
			fmt.Println("Varion Server stopped gracefully")
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringP("port", "p", "8080", "Port to listen on")
	serveCmd.Flags().String("redis", "", "Redis address for session persistence (default: in-memory)")
}
