package tree

import (
	"bytes"
	"fmt"
	"io"
	"strconv"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// EncodeYAML writes the document as YAML with two-space indentation.
func (d *Document) EncodeYAML(w io.Writer) error {
	if len(d.doc.Content) == 0 {
		return nil
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(d.doc); err != nil {
		return fmt.Errorf("failed to encode YAML: %w", err)
	}

	return enc.Close()
}

// EncodeJSON writes the document as indented JSON. Key order is kept.
func (d *Document) EncodeJSON(w io.Writer) error {
	compact, err := d.MarshalJSON()
	if err != nil {
		return err
	}

	var out bytes.Buffer
	if err := gojson.Indent(&out, compact, "", "  "); err != nil {
		return fmt.Errorf("failed to indent JSON: %w", err)
	}

	out.WriteByte('\n')

	_, err = out.WriteTo(w)

	return err
}

// MarshalJSON implements json.Marshaler. An empty document is null.
func (d *Document) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	if len(d.doc.Content) == 0 {
		buf.WriteString("null")
		return buf.Bytes(), nil
	}

	if err := writeJSON(&buf, d.doc.Content[0]); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func writeJSON(buf *bytes.Buffer, n *yaml.Node) error {
	n = deref(n)

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			buf.WriteString("null")
			return nil
		}

		return writeJSON(buf, n.Content[0])
	case yaml.MappingNode:
		buf.WriteByte('{')

		for i := 0; i+1 < len(n.Content); i += 2 {
			if i > 0 {
				buf.WriteByte(',')
			}

			if err := writeString(buf, n.Content[i].Value); err != nil {
				return err
			}

			buf.WriteByte(':')

			if err := writeJSON(buf, n.Content[i+1]); err != nil {
				return err
			}
		}

		buf.WriteByte('}')
	case yaml.SequenceNode:
		buf.WriteByte('[')

		for i, member := range n.Content {
			if i > 0 {
				buf.WriteByte(',')
			}

			if err := writeJSON(buf, member); err != nil {
				return err
			}
		}

		buf.WriteByte(']')
	case yaml.ScalarNode:
		return writeScalar(buf, n)
	default:
		return fmt.Errorf("cannot encode %s node as JSON", kindLabel(n.Kind))
	}

	return nil
}

func writeScalar(buf *bytes.Buffer, n *yaml.Node) error {
	switch n.ShortTag() {
	case nullTag:
		buf.WriteString("null")
		return nil
	case "!!bool":
		if b, err := strconv.ParseBool(n.Value); err == nil {
			buf.WriteString(strconv.FormatBool(b))
			return nil
		}
	case "!!int", "!!float":
		if gojson.Valid([]byte(n.Value)) {
			buf.WriteString(n.Value)
			return nil
		}
	}

	return writeString(buf, n.Value)
}

func writeString(buf *bytes.Buffer, s string) error {
	b, err := gojson.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to encode string: %w", err)
	}

	buf.Write(b)

	return nil
}
