package core

import (
	"fmt"
	"io"

	"github.com/beevik/etree"
)

// Source yields the raw records of one event archive in storage order. The
// archive is the XML rendering of an event log (the "wevtutil qe ...
// /f:renderedxml" export format), either an <Events> collection or a single
// <Event> document.
type Source struct {
	path    string
	records []*etree.Element
	pos     int
}

func OpenArchive(path string) (*Source, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("error opening archive %s: %v", path, err)
	}

	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("error opening archive %s: empty document", path)
	}

	source := &Source{path: path}

	switch root.Tag {
	case "Events":
		source.records = root.SelectElements("Event")
	case "Event":
		source.records = []*etree.Element{root}
	default:
		return nil, fmt.Errorf("error opening archive %s: unexpected root element <%s>", path, root.Tag)
	}

	return source, nil
}

// Next returns the next raw record, io.EOF once the archive is exhausted.
func (s *Source) Next() (*etree.Element, error) {
	if s.pos >= len(s.records) {
		return nil, io.EOF
	}
	rec := s.records[s.pos]
	s.pos++
	return rec, nil
}

// Reset restarts the sequence from the first record.
func (s *Source) Reset() {
	s.pos = 0
}

func (s *Source) Count() int {
	return len(s.records)
}

func (s *Source) Path() string {
	return s.path
}
