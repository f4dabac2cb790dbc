package main

import (
	"context"
	"fmt"
	"os"

	"github.com/yungbote/speechcoach-backend/internal/cli"
)

func main() {
	if err := cli.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "speechcoach: %v\n", err)
		os.Exit(1)
	}
}
