package main

import (
	"context"

	"steamfeeds/internal/cli"
)

func main() {
	cli.ExecuteContext(context.Background())
}
