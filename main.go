// SPDX-License-Identifier: MPL-2.0

package main

import cmd "github.com/apacker1/wix/cmd/wixc"

func main() {
	cmd.Execute()
}
