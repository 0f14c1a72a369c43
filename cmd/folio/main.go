package main

import (
	"os"
	"strings"

	"folio-cli/internal/cli"

	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"
)

// subcommandNames lists what cobra would route as a command, including the
// built-in help and completion commands.
func subcommandNames(root *cobra.Command) map[string]bool {
	names := map[string]bool{"help": true, "completion": true, "__complete": true, "__completeNoDesc": true}
	for _, c := range root.Commands() {
		names[c.Name()] = true
		for _, a := range c.Aliases {
			names[a] = true
		}
	}
	return names
}

// rewriteDirectProjectLookupArgs turns `folio <project-id>` into
// `folio show <project-id>`. Cobra treats the first non-flag token as a
// subcommand, so argv is rewritten before parsing. Persistent flags may come
// first, so the first positional token is located rather than argv[1].
func rewriteDirectProjectLookupArgs(argv []string, subcommands map[string]bool) []string {
	if len(argv) < 2 {
		return argv
	}

	valueFlags := map[string]bool{
		"--state-dir": true,
		"--backend":   true,
		"--content":   true,
		"--format":    true,
	}

	rewrite := func(i int) []string {
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
			if i+1 < len(argv) && !subcommands[argv[i+1]] {
				return rewrite(i + 1)
			}
			return argv
		}
		if strings.HasPrefix(a, "-") {
			if !strings.Contains(a, "=") && valueFlags[a] {
				i++
			}
			continue
		}
		if subcommands[a] {
			return argv
		}
		return rewrite(i)
	}
	return argv
}

func main() {
	cmd := cli.NewRootCmd()
	os.Args = rewriteDirectProjectLookupArgs(os.Args, subcommandNames(cmd))
	cmd.SetArgs(os.Args[1:])
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
