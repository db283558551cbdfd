package cli

import (
	"bufio"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// exitKeywords end an interactive chat session.
var exitKeywords = map[string]bool{
	"bye":     true,
	"exit":    true,
	"goodbye": true,
	"quit":    true,
}

var chatCmd = &cobra.Command{
	Use:   "chat",
	Short: "Start an interactive chat session",
	Long: `Starts a conversational session over the indexed documents.
Follow-up questions see the conversation history. Type "reset" to
clear the history, or "bye", "exit", "goodbye" or "quit" to leave.`,
	Args: cobra.NoArgs,
	RunE: runChat,
}

func init() {
	rootCmd.AddCommand(chatCmd)
}

func runChat(cmd *cobra.Command, _ []string) error {
	if err := ensureChat(); err != nil {
		return err
	}

	if term.IsTerminal(int(os.Stdin.Fd())) {
		cmd.Println("Chat with your documents. Type \"reset\" to start over, \"bye\" to leave.")
		cmd.Println()
	}

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for {
		cmd.Print("You: ")
		if !scanner.Scan() {
			cmd.Println()
			return scanner.Err()
		}

		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}

		if exitKeywords[strings.ToLower(question)] {
			cmd.Println("Goodbye!")
			return nil
		}

		if strings.EqualFold(question, "reset") {
			chatService.Reset()
			cmd.Println("Conversation reset.")
			cmd.Println()
			continue
		}

		answer, err := chatService.Query(cmd.Context(), question)
		if err != nil {
			// Keep the session alive, the next question may succeed.
			cmd.PrintErrf("Error: %v\n\n", err)
			continue
		}

		cmd.Printf("DocVault: %s\n\n", answer)
	}
}
