package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/openmol/drugforge/tests/helpers"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	flag.Parse()

	usage := `
Run a throwaway drugforge MariaDB container with the environment variables from the .env file.

Usage:

testdb [-h] [-f ENV_FILE_PATH]

ENV_FILE_PATH: path to the .env file

example
  testdb -f /path/to/something/.env
`
	// if -h flag print usage and return
	if showHelp {
		fmt.Println(usage)
		return
	}

	if envFilename != "" {
		log.Printf("Loading environment variables from %s\n", envFilename)
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v\n", err)
		}
	} else {
		log.Printf("No environment file specified, using current environment variables\n")
	}

	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGTSTP, syscall.SIGQUIT)

	var testDB *helpers.TestDatabase
	go func() {
		var err error
		testDB, err = helpers.CreateTestDatabase(nil)
		if err != nil {
			log.Fatalf("Failed to create test database: %v\n", err)
		}
		log.Printf("DB_HOST=%s DB_PORT=%s DB_DATABASE=%s DB_USER=%s\n",
			testDB.Host, testDB.Port, testDB.Database, testDB.User)
	}()

	sig := <-sigs
	log.Printf("\nReceived signal: %v, terminating test database...\n", sig)
	if testDB != nil {
		testDB.Terminate(nil)
	}
}
