package main

import "github.com/dexterlegrand/threejs-asets-sub009/cmd"

func main() {
	cmd.Execute()
}
