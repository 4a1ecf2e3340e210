package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/textmath/textmath/internal/chat"
	"github.com/textmath/textmath/internal/dependency"
	"github.com/textmath/textmath/internal/session"
	"github.com/textmath/textmath/internal/shared/cmdutils"
)

var (
	askMessage string
	askLogs    bool
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Ask a single question and print the answer",
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().StringVarP(&askMessage, "message", "m", "", "Question to ask")
	askCmd.Flags().BoolVar(&askLogs, "logs", false, "Show runtime logs")
}

// terminalSession builds the services and a single session for the
// terminal front-ends.
func terminalSession(logs bool) (*chat.Controller, *session.Session, error) {
	level := slog.LevelWarn
	if logs {
		level = slog.LevelDebug
	}
	setupLogging(level)

	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	container, err := dependency.New(cfg)
	if err != nil {
		return nil, nil, err
	}
	sess, err := container.Sessions().Create()
	if err != nil {
		return nil, nil, err
	}
	return container.Controller(), sess, nil
}

func printProgress(line string) {
	fmt.Fprintf(os.Stderr, "  ↳ %s\n", line)
}

func runAsk(_ *cobra.Command, args []string) error {
	question := askMessage
	if question == "" && len(args) > 0 {
		question = args[0]
	}

	controller, sess, err := terminalSession(askLogs)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	fmt.Fprintln(os.Stderr, "  ↳ Generating response...")
	reply, err := controller.Submit(ctx, sess, question, printProgress)
	if err != nil {
		return err
	}
	cmdutils.PrintResponse(os.Stdout, reply)
	return nil
}
