package query

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Document is a query result as stored on disk or sent to the render API.
type Document struct {
	Fields Fields `json:"fields"`
	Data   []Row  `json:"data"`
}

// Response returns the document's query metadata.
func (d Document) Response() Response {
	return Response{Fields: d.Fields}
}

// ReadJSON decodes a query document from r.
//
// The input must be a JSON object with "fields" and "data" members. Rows are
// kept even when they lack some fields; missing cells coerce to zero during
// mapping. ReadJSON does not close r.
func ReadJSON(r io.Reader) (Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decode: %w", err)
	}
	for i, f := range doc.Fields.Ordered() {
		if f.Name == "" {
			return Document{}, fmt.Errorf("field %d: missing name", i)
		}
	}
	return doc, nil
}

// ImportJSON reads a query document from the file at path.
func ImportJSON(path string) (Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}

// WriteJSON encodes doc as indented JSON.
func WriteJSON(doc Document, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}
