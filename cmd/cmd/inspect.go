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
package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/ostafen/splash/internal/anim"
	"github.com/ostafen/splash/pkg/util/format"
)

func DefineInspectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "inspect [resource]",
		Short:        "Print the structure of a splash animation",
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         RunInspect,
	}
	return cmd
}

func RunInspect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	resource, err := resourceArg(cfg, args)
	if err != nil {
		return err
	}

	info, err := anim.ProbeFile(resource)
	if err != nil {
		return fmt.Errorf("probing %s: %w", resource, err)
	}
	seq, err := anim.LoadFile(resource)
	if err != nil {
		return err
	}

	repeat := "forever"
	if !seq.Infinite() {
		repeat = fmt.Sprintf("%d times", seq.Repeat)
	}

	fmt.Fprintf(stdout, "Resource:   %s\n", resource)
	fmt.Fprintf(stdout, "Format:     %s\n", info.Version)
	fmt.Fprintf(stdout, "Size:       %s\n", format.FormatBytes(info.Size))
	fmt.Fprintf(stdout, "Canvas:     %dx%d\n", seq.Canvas.X, seq.Canvas.Y)
	fmt.Fprintf(stdout, "Frames:     %d\n", len(seq.Frames))
	fmt.Fprintf(stdout, "Plays:      %s\n", repeat)
	fmt.Fprintf(stdout, "Cycle:      %s\n", format.FormatDelay(seq.Duration()))
	if seq.Background != nil {
		r, g, b, _ := seq.Background.RGBA()
		fmt.Fprintf(stdout, "Background: #%02x%02x%02x\n", r>>8, g>>8, b>>8)
	}
	fmt.Fprintln(stdout)

	w := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tRECT\tDISPOSAL\tDELAY")
	for i := range seq.Frames {
		f := &seq.Frames[i]
		fmt.Fprintf(w, "%d\t%v\t%s\t%s\n", i, f.Bounds(), f.Disposal, format.FormatDelay(f.Delay))
	}
	return w.Flush()
}
