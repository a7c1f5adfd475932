// Command sfmanifest generates Salesforce deployment manifests from the
// diff between two branches of a metadata repository.
package main

import (
	"github.com/joho/godotenv"

	"sfmanifest/cmd"
)

func main() {
	// A .env in the working directory can carry SFMANIFEST_* variables,
	// including the app password, without putting them in the config file.
	_ = godotenv.Load()

	cmd.Execute()
}
