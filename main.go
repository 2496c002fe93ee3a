/*
Copyright © 2026 JACOB ARTHURS
*/
package main

import "github.com/jacobarthurs/dremprof/cmd"

func main() {
	cmd.Execute()
}
