// Command voxrag serves the VoxRAG API and its command line tools.
package main

import "github.com/custodia-labs/voxrag/internal/adapters/driving/cli"

func main() {
	cli.Execute()
}
