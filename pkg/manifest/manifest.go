// Copyright (c) 2025 Stefano Scafiti
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

// Package manifest describes an exported splash animation in XML: where it
// came from and how every frame is laid out and timed.
package manifest

import (
	"encoding/xml"
	"os"
	"runtime"
	"time"
)

const Version = "1.0"

type Header struct {
	XMLName xml.Name `xml:"splash_export"`
	Version string   `xml:"version,attr,omitempty"`
	Creator Creator  `xml:"creator"`
	Source  Source   `xml:"source"`
}

type Creator struct {
	Package string  `xml:"package"`
	Version string  `xml:"version"`
	Env     ExecEnv `xml:"execution_environment"`
}

type ExecEnv struct {
	OS        string `xml:"os"`
	Arch      string `xml:"arch"`
	Host      string `xml:"host"`
	GoVersion string `xml:"go_version"`
	Start     string `xml:"start_time"`
}

// Source describes the animation the frames were rendered from.
type Source struct {
	Filename string `xml:"filename"`
	Size     int64  `xml:"size"`
	Format   string `xml:"format"`
	Width    int    `xml:"width"`
	Height   int    `xml:"height"`
	Frames   int    `xml:"frames"`

	// Repeat is 0 for an animation that loops forever.
	Repeat int `xml:"repeat"`
}

// Frame is one exported canvas. X, Y, Width and Height give the rectangle
// the frame updated on the canvas.
type Frame struct {
	XMLName  xml.Name `xml:"frame"`
	Index    int      `xml:"index,attr"`
	Filename string   `xml:"filename"`
	X        int      `xml:"x"`
	Y        int      `xml:"y"`
	Width    int      `xml:"width"`
	Height   int      `xml:"height"`
	Disposal string   `xml:"disposal"`
	DelayMs  int64    `xml:"delay_ms"`
}

func GetExecEnv() ExecEnv {
	host, err := os.Hostname()
	if err != nil {
		host = "unknown_host"
	}

	return ExecEnv{
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		Host:      host,
		GoVersion: runtime.Version(),
		Start:     time.Now().UTC().Format("2006-01-02T15:04:05Z"),
	}
}
