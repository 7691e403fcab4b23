// Package extfiles writes the machine's external artifact files: the restock
// alerts read by maintenance staff and the outgoing-payments record consumed
// by the payee clearing process. Both are append-only text files; a failed
// write is logged and never fails the operation that produced it.
package extfiles

import (
	"fmt"
	"os"
	"strings"

	"github.com/MikelBai/Bank-management-application/pkg/logger"
)

type AlertWriter struct {
	path string
}

func NewAlertWriter(path string) *AlertWriter {
	return &AlertWriter{path: path}
}

func (w *AlertWriter) NotifyLowStock(denominations []int) {
	var b strings.Builder
	b.WriteString("Need to restock:\n")
	for _, d := range denominations {
		fmt.Fprintf(&b, "$%d bills.\n", d)
	}

	if err := appendLine(w.path, b.String()); err != nil {
		logger.Log.Warn("error writing restock alert", logger.String("path", w.path), logger.Error(err))
	}
}

func appendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		return err
	}
	return nil
}
