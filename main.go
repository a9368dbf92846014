// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/electroair/bundler/cmd/bundler"

func main() {
	cmd.Execute()
}
