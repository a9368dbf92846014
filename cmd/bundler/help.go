// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/electroair/bundler/internal/directive"
)

// helpTokens request help anywhere on the command line; "help" only counts
// as the first token.
var helpTokens = []string{"--help", "-h", "--version", "-v"}

type helpSection struct {
	title string
	rows  [][2]string
}

var helpSections = []helpSection{
	{
		title: "GENERAL COMMANDS",
		rows: [][2]string{
			{"help, --help, -h", "Help file"},
			{"--version, -v", "Alias for --help"},
			{"--debug", "Enable extended debug output"},
		},
	},
	{
		title: "BUNDLING",
		rows: [][2]string{
			{"-f", "Relative paths to files"},
			{"-t", "Plain texts"},
			{"-tf", "Relative paths to text files in UTF-8 encoding"},
			{"-o", "Name and/or path for output file"},
		},
	},
}

const helpExample = `./bundler -f attachment.zip -f design.ai -t "Hello, world" -f package.json -tf message.txt -t HelloWorld`

// isHelpRequest reports whether the raw tokens ask for help.
func isHelpRequest(tokens []string) bool {
	if len(tokens) > 0 && tokens[0] == "help" {
		return true
	}
	return directive.Has(tokens, helpTokens...)
}

// printHelp writes the static help text.
func printHelp(w io.Writer) {
	var sb strings.Builder
	sb.WriteString("HELP\n")
	for _, section := range helpSections {
		sb.WriteString("\n" + SectionStyle.Render(section.title) + "\n")
		for _, row := range section.rows {
			fmt.Fprintf(&sb, "    %-19s %s\n", row[0], row[1])
		}
	}
	sb.WriteString("\n" + SectionStyle.Render("EXAMPLE COMMAND") + "\n")
	sb.WriteString("    " + helpExample + "\n")
	sb.WriteString("\n" + SubtitleStyle.Render("Made by Sominemo in 2019") + "\n")
	fmt.Fprint(w, sb.String())
}
