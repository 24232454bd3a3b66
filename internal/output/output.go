// Package output writes rendered tree lines as plain text.
package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

const (
	lineTerminator = "\n"

	errorWriteLineFormat = "writing tree line: %w"
	errorFlushFormat     = "flushing tree output: %w"
)

// WriteLines writes each line to writer followed by a newline.
func WriteLines(writer io.Writer, lines []string) error {
	bufferedWriter := bufio.NewWriter(writer)
	for _, line := range lines {
		if _, writeError := bufferedWriter.WriteString(line + lineTerminator); writeError != nil {
			return fmt.Errorf(errorWriteLineFormat, writeError)
		}
	}
	if flushError := bufferedWriter.Flush(); flushError != nil {
		return fmt.Errorf(errorFlushFormat, flushError)
	}
	return nil
}

// JoinLines returns the text WriteLines would produce for lines.
func JoinLines(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return strings.Join(lines, lineTerminator) + lineTerminator
}
