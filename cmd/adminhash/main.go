// Command adminhash prints the bcrypt hash to put in ADMIN_PASSWORD_HASH.
// The password is read from the first line of stdin.
//
//	echo -n 's3cret' | go run ./cmd/adminhash -cost 12
package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/iliyamo/galaxy-cinema-booking/internal/utils"
)

func main() {
	cost := flag.Int("cost", bcrypt.DefaultCost, "bcrypt cost")
	flag.Parse()

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(os.Stderr, "adminhash: no password on stdin")
		os.Exit(1)
	}
	pw := strings.TrimRight(line, "\r\n")
	if pw == "" {
		fmt.Fprintln(os.Stderr, "adminhash: empty password")
		os.Exit(1)
	}

	hash, err := utils.HashPassword(pw, *cost)
	if err != nil {
		fmt.Fprintln(os.Stderr, "adminhash:", err)
		os.Exit(1)
	}
	fmt.Println(hash)
}
