package main

import "github.com/Dany7865/IITR-esummit07/internal/cmd"

func main() {
	cmd.Execute()
}
