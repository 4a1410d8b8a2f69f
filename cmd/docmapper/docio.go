package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"docmapper/internal/document"
	"docmapper/internal/document/tree"
	"docmapper/internal/document/xmldoc"
	"docmapper/internal/mapping"
)

const stdio = "-"

var errFormatMismatch = errors.New("document does not match the requested format")

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if path == stdio {
		return io.ReadAll(stdin)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return data, nil
}

func parseDocument(data []byte, format mapping.Format) (document.Adapter, error) {
	switch format {
	case mapping.FormatJSON:
		return tree.ParseJSON(data)
	case mapping.FormatYAML:
		return tree.ParseYAML(data)
	default:
		return xmldoc.Parse(data)
	}
}

// loadDocument reads and parses path, or stdin for "-".
func loadDocument(cmd *cobra.Command, path string, format mapping.Format) (document.Adapter, error) {
	data, err := readInput(path, cmd.InOrStdin())
	if err != nil {
		return nil, err
	}

	doc, err := parseDocument(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return doc, nil
}

func newDocument(format mapping.Format) document.Adapter {
	if format == mapping.FormatXML {
		return xmldoc.New()
	}

	return tree.New()
}

func writeDocument(w io.Writer, doc document.Adapter, format mapping.Format) error {
	switch d := doc.(type) {
	case *xmldoc.Document:
		if format != mapping.FormatXML {
			return fmt.Errorf("%w: markup document written as %s", errFormatMismatch, format)
		}

		_, err := d.WriteTo(w)

		return err
	case *tree.Document:
		switch format {
		case mapping.FormatJSON:
			return d.EncodeJSON(w)
		case mapping.FormatYAML:
			return d.EncodeYAML(w)
		default:
			return fmt.Errorf("%w: nested document written as %s", errFormatMismatch, format)
		}
	default:
		return fmt.Errorf("unsupported document type %T", doc)
	}
}

// writeOutput writes doc to path, or to stdout for "-" and "".
func writeOutput(path string, stdout io.Writer, doc document.Adapter, format mapping.Format) error {
	if path == "" || path == stdio {
		return writeDocument(stdout, doc, format)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	if err := writeDocument(f, doc, format); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	return f.Close()
}
