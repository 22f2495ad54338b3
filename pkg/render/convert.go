package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
)

// rsvgConvert is the librsvg command-line converter.
const rsvgConvert = "rsvg-convert"

// ErrNoConverter is returned for PDF and PNG output when rsvg-convert is not
// on the PATH. Install librsvg (brew install librsvg, apt install
// librsvg2-bin) to enable those formats.
var ErrNoConverter = errors.New("rsvg-convert not found; install librsvg")

// ToPDF converts an SVG document to PDF.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return convert(ctx, svg, "pdf")
}

// ToPNG converts an SVG document to PNG, zoomed by scale (1 when scale is
// not positive).
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	if scale <= 0 {
		scale = 1
	}
	return convert(ctx, svg, "png", "--zoom", strconv.FormatFloat(scale, 'f', -1, 64))
}

// Available reports whether PDF and PNG conversion is possible.
func Available() bool {
	_, err := exec.LookPath(rsvgConvert)
	return err == nil
}

func convert(ctx context.Context, svg []byte, format string, args ...string) ([]byte, error) {
	bin, err := exec.LookPath(rsvgConvert)
	if err != nil {
		return nil, fmt.Errorf("%s export: %w", format, ErrNoConverter)
	}

	cmd := exec.CommandContext(ctx, bin, append([]string{"--format", format}, args...)...)
	cmd.Stdin = bytes.NewReader(svg)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("%s %s: %w: %s", rsvgConvert, format, err, msg)
		}
		return nil, fmt.Errorf("%s %s: %w", rsvgConvert, format, err)
	}
	return out, nil
}
