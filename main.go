package main

import "github.com/user/perplexity-mcp/cmd"

func main() {
	cmd.Execute()
}
