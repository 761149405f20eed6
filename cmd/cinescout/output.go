package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

const (
	ansiReset = "\x1b[0m"
	ansiBlue  = "\x1b[34m"
)

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func sectionHeader(writer io.Writer, title string) {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	if shouldColorize(writer) {
		line = ansiBlue + line + ansiReset
	}
	fmt.Fprintln(writer, line)
}
