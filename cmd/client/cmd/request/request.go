// cmd/client/cmd/request/request.go
package request

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var Cmd = &cobra.Command{
	Use:     "request",
	Aliases: []string{"req"},
	Short:   "Request credentials from someone else",
	Long: `A request works in the opposite direction of a share: you describe the
fields you need and get a fulfill link to hand out. The counterparty opens
the link, fills in the values, and you reveal them later with the secret
phrase you picked when creating the request.

The server stores the answers encrypted under a key only your phrase can
unlock.`,
}

func promptLine(label string) (string, error) {
	fmt.Printf("%s: ", label)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return "", scanner.Err()
	}
	return strings.TrimSpace(scanner.Text()), nil
}

func promptSecret(label string) (string, error) {
	fmt.Printf("%s: ", label)
	value, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read secret input: %w", err)
	}
	return string(value), nil
}
