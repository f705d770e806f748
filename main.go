// SPDX-License-Identifier: MPL-2.0

package main

import "github.com/planbuild/planbuild/cmd/planbuild"

func main() {
	cmd.Execute()
}
