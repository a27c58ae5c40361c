// Command hashpw prints the bcrypt hash of each password given on the
// command line. Useful for seeding users directly in the database.
package main

import (
	"fmt"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/taskdeck/taskdeck/internal/service/auth"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: hashpw <password> [password...]")
		os.Exit(1)
	}

	hasher := auth.NewBcryptHasher(bcrypt.DefaultCost)

	for _, password := range os.Args[1:] {
		hash, err := hasher.Hash(password)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error hashing %q: %v\n", password, err)
			os.Exit(1)
		}
		fmt.Println(hash)
	}
}
