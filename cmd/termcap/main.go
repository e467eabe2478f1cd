// Command termcap inspects the terminal capability store and the variable dispatcher.
package main

import "os"

func main() {
	os.Exit(execute(os.Args[1:]))
}
