package main

import (
	"strconv"
	"strings"

	"github.com/spf13/pflag"

	"github.com/ludo-technologies/srcmatch/app"
	"github.com/ludo-technologies/srcmatch/domain"
)

// snippetList collects --snippet, --text and --stdin in command line order
type snippetList struct {
	args []app.SnippetArg
}

func (l *snippetList) add(source domain.SnippetSource, value string) {
	l.args = append(l.args, app.SnippetArg{Source: source, Value: value})
}

func (l *snippetList) values(source domain.SnippetSource) []string {
	var values []string
	for _, arg := range l.args {
		if arg.Source == source {
			values = append(values, arg.Value)
		}
	}
	return values
}

// snippetValue is a repeatable string flag that appends to a shared list
type snippetValue struct {
	list   *snippetList
	source domain.SnippetSource
}

var _ pflag.Value = (*snippetValue)(nil)

func (v *snippetValue) Set(s string) error {
	v.list.add(v.source, s)
	return nil
}

func (v *snippetValue) String() string {
	return "[" + strings.Join(v.list.values(v.source), ",") + "]"
}

func (v *snippetValue) Type() string { return "stringArray" }

// stdinValue is a bool flag that adds stdin to the list once
type stdinValue struct {
	list *snippetList
	set  bool
}

var _ pflag.Value = (*stdinValue)(nil)

func (v *stdinValue) Set(s string) error {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	if b && !v.set {
		v.list.add(domain.SnippetSourceStdin, "")
		v.set = true
	}
	return nil
}

func (v *stdinValue) String() string { return strconv.FormatBool(v.set) }

func (v *stdinValue) Type() string { return "bool" }

func (v *stdinValue) IsBoolFlag() bool { return true }
