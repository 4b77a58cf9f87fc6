package manifest

import (
	"encoding/xml"
	"fmt"
	"io"
)

// Read parses a manifest written by Writer.
func Read(r io.Reader) (*Header, []Frame, error) {
	var doc struct {
		XMLName xml.Name `xml:"splash_export"`
		Version string   `xml:"version,attr"`
		Creator Creator  `xml:"creator"`
		Source  Source   `xml:"source"`
		Frames  []Frame  `xml:"frame"`
	}
	if err := xml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, nil, fmt.Errorf("manifest: decoding: %w", err)
	}

	hdr := &Header{
		Version: doc.Version,
		Creator: doc.Creator,
		Source:  doc.Source,
	}
	return hdr, doc.Frames, nil
}
