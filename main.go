package main

import "github.com/vibast-solutions/ms-go-bootcamps/cmd"

func main() {
	cmd.Execute()
}
