package anim

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

// Section indicators.
const (
	sExtension       = 0x21
	sImageDescriptor = 0x2C
	sTrailer         = 0x3B
)

// Extensions.
const (
	eText           = 0x01 // Plain Text
	eGraphicControl = 0xF9 // Graphic Control
	eComment        = 0xFE // Comment
	eApplication    = 0xFF // Application
)

// Masks
const (
	fColorTable         = 1 << 7
	fColorTableBitsMask = 7
)

var errMissingImageData = errors.New("gif: missing image data")

// Info is what Probe learns about a container without decoding pixels.
type Info struct {
	Version       string
	Width, Height int
	Frames        int

	// LoopCount is the raw NETSCAPE2.0 value, -1 when the extension is absent.
	LoopCount int

	HasGlobalColorTable bool
	BackgroundIndex     int

	// Size is the number of bytes up to and including the trailer.
	Size int64
}

type countingReader struct {
	r *bufio.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}

func (c *countingReader) ReadByte() (byte, error) {
	b, err := c.r.ReadByte()
	if err == nil {
		c.n++
	}
	return b, err
}

type prober struct {
	r    *countingReader
	info Info
	tmp  [1024]byte // must be at least 768 so we can read color table
}

// Probe walks the blocks of a GIF stream, validating the structure and
// collecting sequence metadata. LZW data is skipped, not decompressed.
func Probe(r io.Reader) (*Info, error) {
	p := prober{
		r:    &countingReader{r: bufio.NewReader(r)},
		info: Info{LoopCount: -1},
	}

	if err := p.readHeaderAndScreenDescriptor(); err != nil {
		return nil, err
	}

	for {
		c, err := readByte(p.r)
		if err != nil {
			return nil, fmt.Errorf("gif: reading frames: %w", err)
		}
		switch c {
		case sExtension:
			if err = p.readExtension(); err != nil {
				return nil, err
			}
		case sImageDescriptor:
			if err = p.readImageDescriptor(); err != nil {
				return nil, err
			}
			p.info.Frames++
		case sTrailer:
			if p.info.Frames == 0 {
				return nil, errMissingImageData
			}
			p.info.Size = p.r.n
			return &p.info, nil
		default:
			return nil, fmt.Errorf("gif: unknown block type: 0x%.2x", c)
		}
	}
}

func probeBytes(data []byte) (*Info, error) {
	return Probe(bytes.NewReader(data))
}

func (p *prober) readHeaderAndScreenDescriptor() error {
	if err := readFull(p.r, p.tmp[:13]); err != nil {
		return fmt.Errorf("gif: reading header: %w", err)
	}
	version := string(p.tmp[:6])
	if version != "GIF87a" && version != "GIF89a" {
		return fmt.Errorf("gif: can't recognize format %q", version)
	}
	p.info.Version = version
	p.info.Width = int(p.tmp[6]) + int(p.tmp[7])<<8
	p.info.Height = int(p.tmp[8]) + int(p.tmp[9])<<8

	if fields := p.tmp[10]; fields&fColorTable != 0 {
		p.info.HasGlobalColorTable = true
		p.info.BackgroundIndex = int(p.tmp[11])
		if err := p.skipColorTable(fields); err != nil {
			return err
		}
	}
	return nil
}

func (p *prober) readExtension() error {
	extension, err := readByte(p.r)
	if err != nil {
		return fmt.Errorf("gif: reading extension: %w", err)
	}
	size := 0
	switch extension {
	case eText:
		size = 13
	case eGraphicControl:
		return p.readGraphicControl()
	case eComment:
	case eApplication:
		b, err := readByte(p.r)
		if err != nil {
			return fmt.Errorf("gif: reading extension: %w", err)
		}
		// Adobe sometimes writes 10 instead of 11.
		size = int(b)
	default:
		return fmt.Errorf("gif: unknown extension 0x%.2x", extension)
	}
	if size > 0 {
		if err := readFull(p.r, p.tmp[:size]); err != nil {
			return fmt.Errorf("gif: reading extension: %w", err)
		}
	}

	if extension == eApplication && string(p.tmp[:size]) == "NETSCAPE2.0" {
		n, err := p.readBlock()
		if err != nil {
			return fmt.Errorf("gif: reading extension: %w", err)
		}
		if n == 0 {
			return nil
		}
		if n == 3 && p.tmp[0] == 1 {
			p.info.LoopCount = int(p.tmp[1]) | int(p.tmp[2])<<8
		}
	}
	for {
		n, err := p.readBlock()
		if err != nil {
			return fmt.Errorf("gif: reading extension: %w", err)
		}
		if n == 0 {
			return nil
		}
	}
}

func (p *prober) readGraphicControl() error {
	if err := readFull(p.r, p.tmp[:6]); err != nil {
		return fmt.Errorf("gif: can't read graphic control: %w", err)
	}
	if p.tmp[0] != 4 {
		return fmt.Errorf("gif: invalid graphic control extension block size: %d", p.tmp[0])
	}
	if p.tmp[5] != 0 {
		return fmt.Errorf("gif: invalid graphic control extension block terminator: %d", p.tmp[5])
	}
	return nil
}

func (p *prober) readImageDescriptor() error {
	if err := readFull(p.r, p.tmp[:9]); err != nil {
		return fmt.Errorf("gif: can't read image descriptor: %w", err)
	}
	left := int(p.tmp[0]) + int(p.tmp[1])<<8
	top := int(p.tmp[2]) + int(p.tmp[3])<<8
	width := int(p.tmp[4]) + int(p.tmp[5])<<8
	height := int(p.tmp[6]) + int(p.tmp[7])<<8
	fields := p.tmp[8]

	// left and top are never negative, only the far corner needs checking.
	if left+width > p.info.Width || top+height > p.info.Height {
		return errors.New("gif: frame bounds larger than image bounds")
	}

	if fields&fColorTable != 0 {
		if err := p.skipColorTable(fields); err != nil {
			return err
		}
	} else if !p.info.HasGlobalColorTable {
		return errors.New("gif: no color table")
	}

	litWidth, err := readByte(p.r)
	if err != nil {
		return fmt.Errorf("gif: reading image data: %w", err)
	}
	if litWidth < 2 || litWidth > 8 {
		return fmt.Errorf("gif: pixel size in decode out of range: %d", litWidth)
	}

	for {
		n, err := p.readBlock()
		if err != nil {
			return fmt.Errorf("gif: reading image data: %w", err)
		}
		if n == 0 {
			return nil
		}
	}
}

func (p *prober) readBlock() (int, error) {
	n, err := readByte(p.r)
	if n == 0 || err != nil {
		return 0, err
	}
	if err := readFull(p.r, p.tmp[:n]); err != nil {
		return 0, err
	}
	return int(n), nil
}

func (p *prober) skipColorTable(fields byte) error {
	n := 1 << (1 + uint(fields&fColorTableBitsMask))
	if err := readFull(p.r, p.tmp[:3*n]); err != nil {
		return fmt.Errorf("gif: reading color table: %w", err)
	}
	return nil
}

func readByte(r io.ByteReader) (byte, error) {
	b, err := r.ReadByte()
	if err == io.EOF {
		return 0, io.ErrUnexpectedEOF
	}
	return b, err
}

func readFull(r io.Reader, b []byte) error {
	_, err := io.ReadFull(r, b)
	if err == io.EOF {
		err = io.ErrUnexpectedEOF
	}
	return err
}
