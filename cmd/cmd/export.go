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
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ostafen/splash/internal/anim"
	"github.com/ostafen/splash/internal/env"
	"github.com/ostafen/splash/internal/fuse"
	"github.com/ostafen/splash/pkg/manifest"
	osutils "github.com/ostafen/splash/pkg/util/os"
)

const manifestName = "manifest.xml"

func DefineExportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export [resource]",
		Short: "Write every composited frame of an animation as PNG",
		Long: `The 'export' command composites one cycle of the animation, exactly as the splash shows it,
and writes each frame as a PNG file together with a manifest.xml describing frame layout and timing.`,
		Args:         cobra.MaximumNArgs(1),
		SilenceUsage: true,
		RunE:         RunExport,
	}
	cmd.Flags().StringP("output-dir", "o", "", "directory where frames will be written")
	return cmd
}

func RunExport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	resource, err := resourceArg(cfg, args)
	if err != nil {
		return err
	}

	outDir, _ := cmd.Flags().GetString("output-dir")
	if outDir == "" {
		outDir = defaultDir(resource, "-frames")
	}
	if _, err := osutils.EmptyDir(outDir); err != nil {
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

	entries, err := fuse.EncodeFrames(seq, cfg.BackgroundColor())
	if err != nil {
		return err
	}

	log := consoleLogger()
	for _, e := range entries {
		path := filepath.Join(outDir, e.Name)
		log.Infof("writing frame %s", path)

		if err := os.WriteFile(path, e.Data, 0644); err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
	}

	if err := writeManifest(filepath.Join(outDir, manifestName), resource, info, seq); err != nil {
		return err
	}
	log.Infof("Exported %d frames to %s", len(entries), outDir)
	return nil
}

func writeManifest(path, resource string, info *anim.Info, seq *anim.Sequence) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := manifest.NewWriter(f)
	err = w.WriteHeader(manifest.Header{
		Creator: manifest.Creator{
			Package: env.AppName,
			Version: env.Version,
			Env:     manifest.GetExecEnv(),
		},
		Source: manifest.Source{
			Filename: filepath.Base(resource),
			Size:     info.Size,
			Format:   info.Version,
			Width:    seq.Canvas.X,
			Height:   seq.Canvas.Y,
			Frames:   len(seq.Frames),
			Repeat:   seq.Repeat,
		},
	})
	if err != nil {
		return err
	}

	for i := range seq.Frames {
		fr := &seq.Frames[i]
		err := w.WriteFrame(manifest.Frame{
			Index:    i,
			Filename: fuse.FrameName(i),
			X:        fr.Offset().X,
			Y:        fr.Offset().Y,
			Width:    fr.Size().X,
			Height:   fr.Size().Y,
			Disposal: fr.Disposal.String(),
			DelayMs:  fr.Delay.Milliseconds(),
		})
		if err != nil {
			return err
		}
	}
	if err := w.Close(); err != nil {
		return err
	}
	return f.Close()
}

// defaultDir derives a directory name from a file name by stripping the
// extension and appending suffix.
func defaultDir(name, suffix string) string {
	base := filepath.Base(name)
	return strings.TrimSuffix(base, filepath.Ext(base)) + suffix
}
