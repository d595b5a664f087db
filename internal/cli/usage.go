package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
)

const usageText = `USAGE: passt -l <int> [-s] [-chars "<str>"] [-n <int>] [-hash]

-l      length of the generated password
-n      number of passwords to create (default: 1)
-s      use special characters
-chars  possible characters as a string, e.g. "abc012"
-hash   print an argon2id hash next to each password
-v      print the version
`

// Usage writes the version banner, an optional error line and the usage text.
func Usage(w io.Writer, version string, err error) {
	fmt.Fprintf(w, "passt v%s\n\n", version)
	if err != nil && !errors.Is(err, ErrNoArguments) && !errors.Is(err, flag.ErrHelp) {
		fmt.Fprintf(w, "Error: %v\n", err)
	}
	fmt.Fprint(w, usageText)
}
