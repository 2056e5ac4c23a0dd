package main

import (
	"github.com/zostay/go-mimemessage/tools/mimemsg/cmd"
)

func main() {
	cmd.Execute()
}
