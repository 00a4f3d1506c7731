package commands

import (
	"fmt"
	"io"

	"github.com/hay-kot/taskboard/internal/core/styles"
)

func successf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintln(w, styles.SuccessStyle.Render("✔ ")+fmt.Sprintf(format, args...))
}

func infof(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintln(w, styles.MutedStyle.Render("• ")+fmt.Sprintf(format, args...))
}

func errorf(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintln(w, styles.ErrorStyle.Render("✘ ")+fmt.Sprintf(format, args...))
}
