// SPDX-License-Identifier: MIT

// Command lvstat runs PCA and hierarchical clustering on CSV tables.
package main

import "github.com/katalvlaran/lvstat/internal/cli"

func main() {
	cli.Execute()
}
