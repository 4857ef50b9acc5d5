// Command track404 summarizes repeated 404s (or any other status) in access
// logs without exposing user data.
package main

import "github.com/bitfield/track404/internal/cmd"

func main() {
	cmd.Execute()
}
