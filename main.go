// SPDX-License-Identifier: MPL-2.0

package main

import cmd "funcview-cli/cmd/funcview"

func main() {
	cmd.Execute()
}
