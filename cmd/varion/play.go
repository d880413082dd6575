package main

import (
	"context"
	"fmt"
	"os"

	"github.com/aretw0/varion"
	"github.com/aretw0/varion/internal/logging"
	"github.com/aretw0/varion/internal/presentation/tui"
	"github.com/aretw0/varion/pkg/adapters/memory"
	redisStore "github.com/aretw0/varion/pkg/adapters/redis"
	"github.com/aretw0/varion/pkg/ports"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// playCmd represents the play command
var playCmd = &cobra.Command{
	Use:   "play [script.va]",
	Short: "Play a script interactively",
	Long:  `Starts an interactive playback session for the given script. Choices are picked by number; @next nodes continue on Enter.`,
	Run: func(cmd *cobra.Command, args []string) {
		path, err := scriptPath(cmd, args)
		if err != nil {
			fmt.Println(err)
			os.Exit(1)
		}
		plain, _ := cmd.Flags().GetBool("plain")
		sessionID, _ := cmd.Flags().GetString("session")
		redisAddr, _ := cmd.Flags().GetString("redis")

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
			varion.WithLogger(logging.NewNop()),
		)
		if err != nil {
			fmt.Printf("Error loading script: %v\n", err)
			os.Exit(1)
		}

		runner := &varion.Runner{
			Input:  os.Stdin,
			Output: os.Stdout,
		}

		// Only dress up the output when we are actually on a terminal.
		if !plain && term.IsTerminal(int(os.Stdout.Fd())) {
			tui.PrintBanner()
			runner.Renderer = tui.NewRenderer()
		}

		if err := runner.Run(context.Background(), engine, sessionID); err != nil {
			fmt.Printf("Error: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(playCmd)
	playCmd.Flags().Bool("plain", false, "Disable the TUI renderer and banner")
	playCmd.Flags().String("session", "local", "Session id used for persistence")
	playCmd.Flags().String("redis", "", "Redis address for session persistence (default: in-memory)")
}
