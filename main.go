package main

import "quiqr-cms/cmd"

func main() {
	cmd.Execute()
}
