package main

import (
	"fmt"
	"os"

	"github.com/ostafen/splash/cmd/cmd"
	"github.com/ostafen/splash/internal/env"
)

func main() {
	PrintLogo()

	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func PrintLogo() {
	fmt.Println("           _           _     ")
	fmt.Println(" ___ _ __ | | __ _ ___| |__  ")
	fmt.Println("/ __| '_ \\| |/ _` / __| '_ \\ ")
	fmt.Println("\\__ \\ |_) | | (_| \\__ \\ | | |")
	fmt.Println("|___/ .__/|_|\\__,_|___/_| |_|")
	fmt.Println("    |_|                      ")
	fmt.Println()
	fmt.Println("Animated splash screen engine")
	fmt.Println()
	fmt.Printf("Version:   %s\n", env.Version)
	fmt.Printf("Commit:    %s\n", env.CommitHash)
	fmt.Printf("Build Time: %s\n", env.BuildTime)
	fmt.Println(" ")
}
