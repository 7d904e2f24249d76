// Copyright
// SPDX-License-Identifier: MIT
// headerscroll: collapsible header scroll container with inertial gestures
package main

import "headerscroll/cmd"

const Version = "0.1.0"

func main() {
	cmd.Execute(Version)
}
