package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/textmath/textmath/internal/chat"
	"github.com/textmath/textmath/internal/shared/cmdutils"
)

var chatLogs bool

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Chat with the assistant in the terminal",
	RunE:  runChat,
}

func init() {
	chatCmd.Flags().BoolVar(&chatLogs, "logs", false, "Show runtime logs")
}

var exitCommands = map[string]bool{
	"exit":  true,
	"quit":  true,
	"/exit": true,
	"/quit": true,
	":q":    true,
}

// runChat starts the REPL: reads lines from stdin and submits each one to
// the same session, printing the reply before prompting again.
func runChat(_ *cobra.Command, _ []string) error {
	controller, sess, err := terminalSession(chatLogs)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	history := sess.Messages()
	if greeting, ok := history.Last(); ok {
		cmdutils.PrintResponse(os.Stdout, greeting.Content)
	}
	fmt.Printf("%s Interactive mode (type 'exit' or Ctrl+C to quit)\n\n", logo)

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("You: ")

		if !scanner.Scan() {
			fmt.Println("\nGoodbye!")
			return nil
		}

		line := strings.TrimSpace(scanner.Text())
		if exitCommands[strings.ToLower(line)] {
			fmt.Println("Goodbye!")
			return nil
		}

		reply, err := controller.Submit(ctx, sess, line, printProgress)
		switch {
		case errors.Is(err, chat.ErrEmptyInput):
			cmdutils.PrintWarning(os.Stdout, "Please enter a question before submitting.")
		case ctx.Err() != nil:
			fmt.Println("\nGoodbye!")
			return nil
		case err != nil:
			cmdutils.PrintError(os.Stdout, err)
		default:
			cmdutils.PrintResponse(os.Stdout, reply)
		}
	}
}
