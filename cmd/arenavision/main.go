package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"arenavision/internal/services"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
			if services.NeedsIssueReport(err) {
				fmt.Fprintf(os.Stderr, "Please report the issue: %s\n", services.IssueURL)
			}
		}
		os.Exit(1)
	}
}
