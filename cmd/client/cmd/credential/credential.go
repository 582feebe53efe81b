// cmd/client/cmd/credential/credential.go
package credential

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var Cmd = &cobra.Command{
	Use:     "credential",
	Aliases: []string{"cred"},
	Short:   "Share and manage credentials",
	Long: `Sharing a credential encrypts it on the server and returns a one-time
link. The link carries half of the encryption key in its fragment; without
the link the credential cannot be decrypted, not even by the server.`,
}

// promptLine reads one line from stdin, echoed.
func promptLine(label string) (string, error) {
	fmt.Printf("%s: ", label)
	scanner := bufio.NewScanner(os.Stdin)
	if !scanner.Scan() {
		return "", scanner.Err()
	}
	return strings.TrimSpace(scanner.Text()), nil
}

// promptSecret reads one line from stdin without echo.
func promptSecret(label string) (string, error) {
	fmt.Printf("%s: ", label)
	value, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("read secret input: %w", err)
	}
	return string(value), nil
}
