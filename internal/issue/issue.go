// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"github.com/charmbracelet/glamour"
)

type Id int

const (
	InvocationFailedId Id = iota + 1
	ItemsNotAccessibleId
	PackFailedId
	MetadataFailedId
	OutputFailedId
	NothingToPackId
	ConfigLoadFailedId
)

// DefaultStyle lets glamour pick a dark or light theme from the terminal.
const DefaultStyle = "auto"

type MarkdownMsg string

type Renderer interface {
	Render(in string, stylePath string) (string, error)
}

type Issue struct {
	id    Id          // ID used to lookup the issue
	mdMsg MarkdownMsg // Markdown text that will be rendered
}

func (i *Issue) Id() Id {
	return i.id
}

func (i *Issue) MarkdownMsg() MarkdownMsg {
	return i.mdMsg
}

func (i *Issue) Render(stylePath string) (string, error) {
	return render(string(i.mdMsg), stylePath)
}

var (
	render = glamour.Render

	invocationFailedIssue = &Issue{
		id: InvocationFailedId,
		mdMsg: `
# The command line could not be processed

The bundler failed before reading any item.

## Things you can try
- Check the arguments against the built-in help:
~~~
$ bundler help
~~~
- Quote values that contain spaces, e.g. ` + "`-t \"Hello, world\"`" + `.`,
	}

	itemsNotAccessibleIssue = &Issue{
		id: ItemsNotAccessibleId,
		mdMsg: `
# Some items can't be accessed

A file named by ` + "`-f`" + ` or ` + "`-tf`" + ` could not be read, or the flag
was the last argument and had no path.

## Things you can try
- Relative paths are resolved against the directory printed after
  "Running in". Check the path from there.
- Make sure the file is readable by the current user.
- Every ` + "`-f`" + ` and ` + "`-tf`" + ` needs a path right after it.`,
	}

	packFailedIssue = &Issue{
		id: PackFailedId,
		mdMsg: `
# Some items can't be packed

An item had no content to store. This happens when ` + "`-t`" + ` is the last
argument on the command line.

## Things you can try
- Put the text right after the flag:
~~~
$ bundler -t "Hello, world"
~~~
- Use ` + "`-t \"\"`" + ` for an intentionally empty text item.`,
	}

	metadataFailedIssue = &Issue{
		id: MetadataFailedId,
		mdMsg: `
# Failed to pack metadata

The bundle index (` + "`meta/files.json`" + `) or the bundle description
(` + "`meta/bundle.json`" + `) could not be written into the archive.

## Things you can try
- Run again with ` + "`--debug`" + ` and report the error chain.`,
	}

	outputFailedIssue = &Issue{
		id: OutputFailedId,
		mdMsg: `
# Failed to save the bundle

The archive was built but could not be written to its destination.

## Things you can try
- Make sure the destination directory exists and is writable.
- ` + "`-o`" + ` needs a path right after it; a trailing ` + "`-o`" + ` leaves
  the destination empty.
- For ` + "`s3://bucket/key`" + ` destinations, set ` + "`remote.endpoint`" + ` and
  the credentials in ` + "`bundler.cue`" + ` and check that the bucket exists.`,
	}

	nothingToPackIssue = &Issue{
		id: NothingToPackId,
		mdMsg: `
# No items specified

The command line did not contain any ` + "`-f`" + `, ` + "`-t`" + ` or ` + "`-tf`" + ` item.

## Example
~~~
$ bundler -f design.ai -t "Hello, world" -tf message.txt -o out.zip
~~~`,
	}

	configLoadFailedIssue = &Issue{
		id: ConfigLoadFailedId,
		mdMsg: `
# Failed to load bundler.cue

The configuration file in the working directory is not valid.

## Things you can try
- Check the field named in the error above.
- A minimal configuration looks like this:
~~~cue
output: "dist/bundle.zip"
compression: {
	method: "deflate"
	level:  9
}
~~~
- Remove the file to fall back to the defaults.`,
	}

	issues = map[Id]*Issue{
		invocationFailedIssue.Id():   invocationFailedIssue,
		itemsNotAccessibleIssue.Id(): itemsNotAccessibleIssue,
		packFailedIssue.Id():         packFailedIssue,
		metadataFailedIssue.Id():     metadataFailedIssue,
		outputFailedIssue.Id():       outputFailedIssue,
		nothingToPackIssue.Id():      nothingToPackIssue,
		configLoadFailedIssue.Id():   configLoadFailedIssue,
	}
)

func Get(id Id) *Issue {
	return issues[id]
}
