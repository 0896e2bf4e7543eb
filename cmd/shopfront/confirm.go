package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"shopfront/internal/server"
)

// confirmDestructive prompts for interactive confirmation unless --yes was
// passed. The staged subject is echoed back so the user sees exactly what
// they are confirming.
func confirmDestructive(subject string, yes bool) (bool, error) {
	if yes {
		return true, nil
	}

	var gate server.ConfirmationGate
	gate.Arm(subject)

	fmt.Fprintf(os.Stderr, "%s? type \"yes\" to confirm: ", subject)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	if strings.TrimSpace(line) != "yes" {
		gate.Cancel()
		return false, nil
	}

	staged, err := gate.Confirm()
	if err != nil {
		return false, err
	}
	fmt.Fprintln(os.Stderr, "confirmed:", staged)
	return true, nil
}
