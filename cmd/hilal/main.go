package main

import (
	"os"
	"strconv"
	"strings"

	"hilal/internal/cli"
)

// isMonthToken reports whether s looks like "<year>-<month>", e.g. "1445-9".
func isMonthToken(s string) bool {
	s = strings.TrimSpace(s)
	y, m, ok := strings.Cut(s, "-")
	if !ok || y == "" || m == "" {
		return false
	}
	if _, err := strconv.Atoi(y); err != nil {
		return false
	}
	_, err := strconv.Atoi(m)
	return err == nil
}

func rewriteDirectMonthArgs(argv []string) []string {
	// Convenience: `hilal 1445-9` works like `hilal show 1445-9`.
	//
	// Cobra treats the first non-flag token as a subcommand, so we rewrite argv before parsing.
	// Persistent flags may come first (e.g. `hilal --calendar hijra 1445-9`), so we look for
	// the first positional token rather than argv[1].
	if len(argv) < 2 {
		return argv
	}

	// Unknown flags are skipped without consuming a value so the month token is never eaten.
	valueFlags := map[string]bool{
		"--dir":        true,
		"--calendar":   true,
		"--week-start": true,
		"--format":     true,
	}
	boolFlags := map[string]bool{
		"--pretty":  true,
		"--verbose": true,
		"-v":        true,
	}

	insertShow := func(i int) []string {
		out := make([]string, 0, len(argv)+1)
		out = append(out, argv[:i]...)
		out = append(out, "show")
		out = append(out, argv[i:]...)
		return out
	}

	for i := 1; i < len(argv); i++ {
		a := strings.TrimSpace(argv[i])
		if a == "" {
			continue
		}
		if a == "--" {
			if i+1 < len(argv) && isMonthToken(argv[i+1]) {
				return insertShow(i + 1)
			}
			return argv
		}

		if strings.HasPrefix(a, "-") {
			if strings.Contains(a, "=") || boolFlags[a] {
				continue
			}
			if valueFlags[a] {
				i++
			}
			continue
		}

		if isMonthToken(a) {
			return insertShow(i)
		}
		return argv
	}

	return argv
}

func main() {
	os.Args = rewriteDirectMonthArgs(os.Args)

	cmd := cli.NewRootCmd()
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
