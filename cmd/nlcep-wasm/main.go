//go:build js && wasm

package main

import (
	"syscall/js"
)

func main() {
	// Export functions to JavaScript
	js.Global().Set("nlcepParse", js.FuncOf(parse))
	js.Global().Set("nlcepParseAt", js.FuncOf(parseAt))

	// Keep WASM running
	<-make(chan struct{})
}
