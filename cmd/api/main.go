package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/roommates/core/cmd/api/commands"
)

// @title Roommates API
// @version 1.0
// @description Generate and list roommates backed by a JSON file

// @host localhost:3000
// @BasePath /

func main() {
	rootCmd := &cobra.Command{
		Use:   "roommates",
		Short: "Roommates web application",
		Long:  `Roommates generates roommate records from randomuser.me and keeps them in a flat JSON file.`,
	}

	rootCmd.AddCommand(commands.NewServeCommand())
	rootCmd.AddCommand(commands.NewRoommateCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	if err := rootCmd.Execute(); err != nil {
		log.Printf("Command execution failed: %v", err)
		os.Exit(1)
	}
}
