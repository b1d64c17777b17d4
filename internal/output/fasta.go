package output

import (
	"bufio"
	"io"
)

// fastaLineWidth is the conventional wrap column for FASTA sequence lines.
const fastaLineWidth = 70

// FASTAWriter writes sequences as wrapped FASTA records.
type FASTAWriter struct {
	w     *bufio.Writer
	width int
}

// NewFASTAWriter creates a FASTA writer wrapping sequence lines at the
// conventional 70 columns.
func NewFASTAWriter(w io.Writer) *FASTAWriter {
	return &FASTAWriter{w: bufio.NewWriter(w), width: fastaLineWidth}
}

// Write writes one record: a ">" header line followed by the wrapped
// sequence.
func (fw *FASTAWriter) Write(header, seq string) error {
	if err := fw.w.WriteByte('>'); err != nil {
		return err
	}
	if _, err := fw.w.WriteString(header); err != nil {
		return err
	}
	if err := fw.w.WriteByte('\n'); err != nil {
		return err
	}

	for start := 0; start < len(seq); start += fw.width {
		end := start + fw.width
		if end > len(seq) {
			end = len(seq)
		}
		if _, err := fw.w.WriteString(seq[start:end]); err != nil {
			return err
		}
		if err := fw.w.WriteByte('\n'); err != nil {
			return err
		}
	}

	return nil
}

// Flush flushes any buffered data to the underlying writer.
func (fw *FASTAWriter) Flush() error {
	return fw.w.Flush()
}
