package app

import (
	"fmt"
	"io"
	"os"

	"github.com/ludo-technologies/srcmatch/domain"
)

// Names given to snippets that do not come from a file
const (
	StdinSnippetName = "<stdin>"
	TextSnippetName  = "<text>"
)

// SnippetArg names one snippet given on the command line
type SnippetArg struct {
	Source domain.SnippetSource
	Value  string // file path or literal text
}

// ResolveSnippets reads the snippets named by args. Files are checked
// through fileReader, stdin is read from in at most once.
//
// The order of args is kept, so batch results line up with the command
// line.
func ResolveSnippets(fileReader domain.CandidateReader, args []SnippetArg, in io.Reader) ([]domain.Snippet, error) {
	if len(args) == 0 {
		return nil, domain.NewInvalidInputError("no snippet given; use --snippet FILE, --text STRING or --stdin", nil)
	}

	snippets := make([]domain.Snippet, 0, len(args))
	stdinUsed := false
	texts := 0

	for _, arg := range args {
		switch arg.Source {
		case domain.SnippetSourceFile:
			snippet, err := readSnippetFile(fileReader, arg.Value)
			if err != nil {
				return nil, err
			}
			snippets = append(snippets, snippet)

		case domain.SnippetSourceStdin:
			if stdinUsed {
				return nil, domain.NewInvalidInputError("stdin can only be read once", nil)
			}
			stdinUsed = true
			if in == nil {
				return nil, domain.NewInvalidInputError("no stdin available", nil)
			}
			data, err := io.ReadAll(in)
			if err != nil {
				return nil, domain.NewReadError(StdinSnippetName, err)
			}
			snippets = append(snippets, domain.Snippet{
				Name:    StdinSnippetName,
				Source:  domain.SnippetSourceStdin,
				Content: string(data),
			})

		case domain.SnippetSourceText, domain.SnippetSourceInline:
			texts++
			name := TextSnippetName
			if texts > 1 {
				name = fmt.Sprintf("<text %d>", texts)
			}
			snippets = append(snippets, domain.Snippet{
				Name:    name,
				Source:  arg.Source,
				Content: arg.Value,
			})

		default:
			return nil, domain.NewInvalidInputError(fmt.Sprintf("unknown snippet source: %s", arg.Source), nil)
		}
	}

	return snippets, nil
}

func readSnippetFile(fileReader domain.CandidateReader, path string) (domain.Snippet, error) {
	exists, err := fileReader.FileExists(path)
	if err != nil {
		return domain.Snippet{}, domain.NewReadError(path, err)
	}
	if !exists {
		return domain.Snippet{}, domain.NewFileNotFoundError(path, fmt.Errorf("snippet file does not exist"))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Snippet{}, domain.NewReadError(path, err)
	}
	return domain.Snippet{
		Name:    path,
		Source:  domain.SnippetSourceFile,
		Content: string(data),
	}, nil
}
