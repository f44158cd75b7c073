// gltfconv converts glTF assets between JSON and binary containers and
// moves buffer and image data between storage representations.
//
// Usage:
//
//	gltfconv [flags] FILE...
//
// Each FILE is loaded (compressed inputs are detected automatically),
// converted as requested and saved next to the input, or under --out-dir.
// With --inspect, a summary of every buffer and image is printed instead.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"text/tabwriter"

	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"github.com/meigma/gltf"
	"github.com/meigma/gltf/internal/fsutil"
)

type config struct {
	outDir      string
	format      string
	buffers     string
	images      string
	compression string
	overwrite   bool
	inspect     bool
	inspectFmt  string
	jobs        int
	verbose     bool
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	var cfg config
	flagSet := pflag.NewFlagSet("gltfconv", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.StringVarP(&cfg.outDir, "out-dir", "o", "", "directory for converted assets (default: next to each input)")
	flagSet.StringVarP(&cfg.format, "format", "f", "", "output container: gltf or glb (default: same as input)")
	flagSet.StringVar(&cfg.buffers, "buffers", "", "convert buffers to: datauri, blob or file")
	flagSet.StringVar(&cfg.images, "images", "", "convert images to: datauri, file or bufferview")
	flagSet.StringVar(&cfg.compression, "compress", "none", "compress output: none, gzip, zstd or lz4")
	flagSet.BoolVar(&cfg.overwrite, "overwrite", false, "replace existing output files")
	flagSet.BoolVar(&cfg.inspect, "inspect", false, "print buffers and images instead of converting")
	flagSet.StringVar(&cfg.inspectFmt, "inspect-format", "text", "inspect output: text or yaml")
	flagSet.IntVarP(&cfg.jobs, "jobs", "j", runtime.GOMAXPROCS(0), "number of files processed concurrently")
	flagSet.BoolVarP(&cfg.verbose, "verbose", "v", false, "log debug output")
	flagSet.Usage = func() {
		fmt.Fprintf(stderr, "Usage: gltfconv [flags] FILE...\n\nFlags:\n%s", flagSet.FlagUsages())
	}

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	inputs := flagSet.Args()
	if len(inputs) == 0 {
		flagSet.Usage()
		return errors.New("no input files")
	}

	job, err := newJob(cfg, stdout, stderr)
	if err != nil {
		return err
	}

	g := new(errgroup.Group)
	g.SetLimit(max(cfg.jobs, 1))
	var (
		mu   sync.Mutex
		errs []error
	)
	for _, input := range inputs {
		g.Go(func() error {
			if err := job.process(input); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%s: %w", input, err))
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()
	return errors.Join(errs...)
}

// job holds the parsed settings shared by every input.
type job struct {
	cfg         config
	binary      *bool
	buffers     gltf.BufferFormat
	images      gltf.ImageFormat
	compression gltf.Compression
	logger      *slog.Logger

	outMu  sync.Mutex
	stdout io.Writer
}

func newJob(cfg config, stdout, stderr io.Writer) (*job, error) {
	j := &job{cfg: cfg, stdout: stdout}

	switch strings.ToLower(cfg.format) {
	case "":
	case "gltf", "json":
		j.binary = new(bool)
	case "glb", "binary":
		binary := true
		j.binary = &binary
	default:
		return nil, fmt.Errorf("unknown format %q", cfg.format)
	}

	var err error
	if cfg.buffers != "" {
		if j.buffers, err = gltf.ParseBufferFormat(cfg.buffers); err != nil {
			return nil, err
		}
	}
	if cfg.images != "" {
		if j.images, err = gltf.ParseImageFormat(cfg.images); err != nil {
			return nil, err
		}
	}
	if j.compression, err = gltf.ParseCompression(cfg.compression); err != nil {
		return nil, err
	}
	switch cfg.inspectFmt {
	case "text", "yaml":
	default:
		return nil, fmt.Errorf("unknown inspect format %q", cfg.inspectFmt)
	}

	level := slog.LevelInfo
	if cfg.verbose {
		level = slog.LevelDebug
	}
	j.logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	return j, nil
}

func (j *job) process(input string) error {
	logger := j.logger.With("input", input)
	d, err := gltf.Load(input, gltf.WithLogger(logger))
	if err != nil {
		return err
	}

	if j.cfg.inspect {
		j.outMu.Lock()
		defer j.outMu.Unlock()
		if j.cfg.inspectFmt == "yaml" {
			return writeInspectionYAML(j.stdout, input, d)
		}
		return printInspection(j.stdout, input, d)
	}

	outDir := j.cfg.outDir
	if outDir == "" {
		outDir = filepath.Dir(input)
	}
	if err := relocate(d, outDir, j.cfg.overwrite); err != nil {
		return err
	}

	convert := gltf.ConvertWithOverwrite(j.cfg.overwrite)
	if j.buffers != 0 {
		if err := d.ConvertBuffers(j.buffers, convert); err != nil {
			return err
		}
	}
	if j.images != 0 {
		if err := d.ConvertImages(j.images, convert); err != nil {
			return err
		}
	}

	output := j.outputPath(input, outDir)
	opts := []gltf.SaveOption{
		gltf.SaveWithOverwrite(j.cfg.overwrite),
		gltf.SaveWithCompression(j.compression),
	}
	if j.binary != nil {
		opts = append(opts, gltf.SaveAsBinary(*j.binary))
	}
	if err := d.Save(output, opts...); err != nil {
		return err
	}
	logger.Info("converted", "output", output)
	return nil
}

// outputPath names the output after the input's stem with the extension
// of the requested container and compression.
func (j *job) outputPath(input, outDir string) string {
	base := filepath.Base(input)
	for _, ext := range []string{".gz", ".zst", ".lz4"} {
		base = strings.TrimSuffix(base, ext)
	}
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if j.binary != nil {
		ext = ".gltf"
		if *j.binary {
			ext = ".glb"
		}
	}
	return filepath.Join(outDir, stem+ext+j.compression.Extension())
}

// relocate copies file-backed buffers and images of d to outDir, keeping
// their relative paths, so the saved document keeps resolving them.
func relocate(d *gltf.Document, outDir string, overwrite bool) error {
	from, err := filepath.Abs(d.BaseDir())
	if err != nil {
		return err
	}
	to, err := filepath.Abs(outDir)
	if err != nil {
		return err
	}
	if from == to {
		return nil
	}

	for i, b := range d.Buffers {
		if b.Format != gltf.BufferBinFile {
			continue
		}
		data, err := d.BufferData(i)
		if err != nil {
			return err
		}
		uri, err := place(outDir, b.URI, data, overwrite)
		if err != nil {
			return fmt.Errorf("buffer %d: %w", i, err)
		}
		b.URI = uri
	}
	for i, img := range d.Images {
		if img.Format != gltf.ImageFile {
			continue
		}
		data, _, err := d.ImageData(i)
		if err != nil {
			return err
		}
		uri, err := place(outDir, img.URI, data, overwrite)
		if err != nil {
			return fmt.Errorf("image %d: %w", i, err)
		}
		img.URI = uri
	}
	d.SetBaseDir(outDir)
	return nil
}

// place writes data under outDir at the relative path uri names and
// returns the URI to reference it by. A URI that leaves the document's
// directory is flattened to its base name.
func place(outDir, uri string, data []byte, overwrite bool) (string, error) {
	rel, err := url.PathUnescape(uri)
	if err != nil {
		rel = uri
	}
	rel = filepath.Clean(filepath.FromSlash(rel))
	if filepath.IsAbs(rel) || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		rel = filepath.Base(rel)
		uri = url.PathEscape(rel)
	}
	if err := fsutil.WriteFile(filepath.Join(outDir, rel), data, overwrite); err != nil {
		return "", err
	}
	return uri, nil
}

func printInspection(w io.Writer, input string, d *gltf.Document) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "%s\n", input)
	fmt.Fprintf(tw, "  asset\t%s\t%s\n", d.Asset.Version, d.Asset.Generator)
	for _, b := range d.InspectBuffers() {
		fmt.Fprintf(tw, "  buffer %d\t%s\t%d bytes\t%s\n", b.Index, b.Format, b.ByteLength, status(b.Digest.String(), b.Err))
	}
	for _, img := range d.InspectImages() {
		fmt.Fprintf(tw, "  image %d\t%s\t%s %dx%d\t%s\n",
			img.Index, img.Format, img.MimeType, img.Width, img.Height, status(img.Digest.String(), img.Err))
	}
	return tw.Flush()
}

func status(digest string, err error) string {
	if err != nil {
		return "error: " + errString(err)
	}
	return digest
}

type inspectReport struct {
	File      string         `yaml:"file"`
	Version   string         `yaml:"version"`
	Generator string         `yaml:"generator,omitempty"`
	Buffers   []bufferReport `yaml:"buffers,omitempty"`
	Images    []imageReport  `yaml:"images,omitempty"`
}

type bufferReport struct {
	Index      int    `yaml:"index"`
	Name       string `yaml:"name,omitempty"`
	Format     string `yaml:"format"`
	ByteLength int    `yaml:"byteLength"`
	Digest     string `yaml:"digest,omitempty"`
	Error      string `yaml:"error,omitempty"`
}

type imageReport struct {
	Index    int    `yaml:"index"`
	Name     string `yaml:"name,omitempty"`
	Format   string `yaml:"format"`
	MimeType string `yaml:"mimeType,omitempty"`
	Width    int    `yaml:"width,omitempty"`
	Height   int    `yaml:"height,omitempty"`
	Size     int    `yaml:"size"`
	Digest   string `yaml:"digest,omitempty"`
	Error    string `yaml:"error,omitempty"`
}

func writeInspectionYAML(w io.Writer, input string, d *gltf.Document) error {
	report := inspectReport{
		File:      input,
		Version:   d.Asset.Version,
		Generator: d.Asset.Generator,
	}
	for _, b := range d.InspectBuffers() {
		report.Buffers = append(report.Buffers, bufferReport{
			Index:      b.Index,
			Name:       b.Name,
			Format:     b.Format.String(),
			ByteLength: b.ByteLength,
			Digest:     b.Digest.String(),
			Error:      errString(b.Err),
		})
	}
	for _, img := range d.InspectImages() {
		report.Images = append(report.Images, imageReport{
			Index:    img.Index,
			Name:     img.Name,
			Format:   img.Format.String(),
			MimeType: img.MimeType,
			Width:    img.Width,
			Height:   img.Height,
			Size:     img.Size,
			Digest:   img.Digest.String(),
			Error:    errString(img.Err),
		})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(report); err != nil {
		return err
	}
	return enc.Close()
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
