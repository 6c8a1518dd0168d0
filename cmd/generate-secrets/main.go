package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/kennywood/park-api/internal/utils"
)

func main() {
	envOnly := flag.Bool("env", false, "print only KEY=value lines")
	flag.Parse()

	secrets, err := utils.GenerateJWTSecrets()
	if err != nil {
		log.Fatalf("Failed to generate secrets: %v", err)
	}

	if *envOnly {
		fmt.Printf("JWT_SECRET=%s\nJWT_REFRESH_SECRET=%s\n", secrets.Access, secrets.Refresh)
		return
	}

	fmt.Println("Add these to your .env file or deployment secrets:")
	fmt.Println()
	fmt.Printf("JWT_SECRET=%s\n", secrets.Access)
	fmt.Printf("JWT_REFRESH_SECRET=%s\n", secrets.Refresh)
	fmt.Println()
	fmt.Println("Keep these out of version control.")
}
