// Package ask handles the natural-language question command
package ask

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"ledgerchat/cmd/root"
	"ledgerchat/internal/ledger"
	"ledgerchat/internal/query"
)

// Cmd represents the ask command
var Cmd = &cobra.Command{
	Use:   "ask",
	Short: "Ask questions about a categorized ledger",
	Long: `Answer natural-language questions about a categorized ledger, such
as "how much did I spend on food in March 2024" or "what were my top
expenses". With --question a single answer is printed; without it the
command reads questions from stdin until EOF or "exit".`,
	RunE: askFunc,
}

func init() {
	Cmd.Flags().StringVarP(&root.Question, "question", "q", "", "Single question to answer")
}

func askFunc(cmd *cobra.Command, args []string) error {
	input := root.SharedFlags.Input
	if input == "" {
		return cmd.Usage()
	}

	txs, err := ledger.LoadJSON(input)
	if err != nil {
		return err
	}
	root.Log.WithField("transactions", len(txs)).Debug("Loaded ledger")

	engine := query.NewEngine(txs)

	if root.Question != "" {
		fmt.Println(engine.Ask(root.Question))
		return nil
	}
	if len(args) > 0 {
		fmt.Println(engine.Ask(strings.Join(args, " ")))
		return nil
	}

	return interactiveLoop(engine)
}

// interactiveLoop reads one question per line until EOF or an exit word.
func interactiveLoop(engine *query.Engine) error {
	fmt.Println("Ask me about your transactions. Type 'exit' to quit.")
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		question := strings.TrimSpace(scanner.Text())
		if question == "" {
			continue
		}
		if isExit(question) {
			fmt.Println("Goodbye!")
			break
		}
		fmt.Println(engine.Ask(question))
	}
	return scanner.Err()
}

func isExit(question string) bool {
	switch strings.ToLower(question) {
	case "exit", "quit", "bye", "q":
		return true
	}
	return false
}
