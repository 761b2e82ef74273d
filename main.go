package main

import "github.com/help-intl/aidcluster/cmd"

func main() {
	cmd.Execute()
}
