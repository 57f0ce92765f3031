package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/evgeniy-krivenko/flomo-relay/internal/entity"
	"github.com/evgeniy-krivenko/flomo-relay/internal/relayclient"
)

var errNoContent = errors.New("provide the note content, a file with -f, or --clipboard")

type contentSource struct {
	args          []string
	file          string
	fromClipboard bool
	stdin         io.Reader
}

// read returns the note text and a description of where it came from.
func (s contentSource) read() (string, string, error) {
	switch {
	case s.file != "":
		data, err := os.ReadFile(s.file)
		if errors.Is(err, fs.ErrNotExist) {
			return "", "", fmt.Errorf("file does not exist: %s", s.file)
		}
		if err != nil {
			return "", "", fmt.Errorf("read %s: %v", s.file, err)
		}

		content := string(data)
		return content, fmt.Sprintf("Read file: %s (%d characters)", s.file, utf8.RuneCountInString(content)), nil
	case s.fromClipboard:
		content, err := clipboard.ReadAll()
		if err != nil {
			return "", "", fmt.Errorf("read clipboard: %v", err)
		}

		return content, fmt.Sprintf("Read clipboard (%d characters)", utf8.RuneCountInString(content)), nil
	case len(s.args) == 1 && s.args[0] == "-":
		data, err := io.ReadAll(s.stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %v", err)
		}

		return string(data), "", nil
	case len(s.args) == 1:
		return s.args[0], "", nil
	default:
		return "", "", errNoContent
	}
}

func newWriteCmd(a *app) *cobra.Command {
	var (
		src      contentSource
		copyLink bool
	)

	cmd := &cobra.Command{
		Use:   "write [content]",
		Short: "Write a note to Flomo",
		Long: `Write a note to Flomo. The content is taken from the argument, from a file
given with -f, from the clipboard, or from stdin when the argument is "-".
Markdown and #tags are kept as is.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src.args = args
			src.stdin = cmd.InOrStdin()

			content, origin, err := src.read()
			if errors.Is(err, errNoContent) {
				a.printer.failure(err.Error())
				cmd.Usage()
				return errReported
			}
			if err != nil {
				a.printer.failure(err.Error())
				return errReported
			}
			if origin != "" {
				a.printer.info(origin)
			}

			if strings.TrimSpace(content) == "" {
				a.printer.failure("Content must not be empty")
				return errReported
			}

			var link string
			if a.direct {
				link, err = a.writeDirect(cmd, content)
			} else {
				link, err = a.writeViaRelay(cmd, content)
			}
			if err != nil {
				return err
			}

			if copyLink && link != "" {
				if err := clipboard.WriteAll(link); err != nil {
					a.printer.info(fmt.Sprintf("Could not copy the link: %v", err))
				} else {
					a.printer.info("Link copied to clipboard")
				}
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&src.file, "file", "f", "", "read the note from a file")
	cmd.Flags().BoolVar(&src.fromClipboard, "clipboard", false, "read the note from the clipboard")
	cmd.Flags().BoolVar(&copyLink, "copy", false, "copy the note link to the clipboard")
	cmd.MarkFlagsMutuallyExclusive("file", "clipboard")

	return cmd
}

func (a *app) writeViaRelay(cmd *cobra.Command, content string) (string, error) {
	c, err := a.relay(1)
	if err != nil {
		return "", err
	}

	reply, err := c.WriteNote(cmd.Context(), content)
	if err != nil {
		var statusErr *relayclient.StatusError
		if errors.As(err, &statusErr) {
			a.printer.failure("Failed to send the note: " + statusErr.Status)
			printBody(a.printer, statusErr)
			return "", errReported
		}

		return "", fatal(a.printer, "Request error", err)
	}

	link := memoURL(reply)
	a.reportSuccess(reply, link)

	return link, nil
}

func (a *app) writeDirect(cmd *cobra.Command, content string) (string, error) {
	uc, err := a.directNotes()
	if err != nil {
		return "", fatal(a.printer, "Invalid configuration", err)
	}

	res := uc.WriteNote(cmd.Context(), entity.Note{Content: content})
	if !res.OK() {
		a.printer.failure("Failed to send the note: " + res.ErrorMessage())
		a.printer.payload(res.Payload)
		return "", errReported
	}

	link := res.MemoURL()
	a.reportSuccess(res.Payload, link)

	return link, nil
}

func (a *app) reportSuccess(reply any, link string) {
	if a.printer.structured() {
		a.printer.payload(reply)
		return
	}

	a.printer.success("Note sent")
	if link != "" {
		a.printer.link("Note link", link)
	}
}

func memoURL(reply any) string {
	m, ok := reply.(map[string]any)
	if !ok {
		return ""
	}

	memo, ok := m["memo"].(map[string]any)
	if !ok {
		return ""
	}

	u, _ := memo["url"].(string)
	return u
}
