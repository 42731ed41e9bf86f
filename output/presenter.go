package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
)

// Viewer shows an encoded chart to the user and blocks until it is dismissed
// or ctx is done.
type Viewer interface {
	View(ctx context.Context, image []byte, format, name string) error
}

type PresenterOptions struct {
	Mode   Mode
	Format string
	Width  vg.Length
	Height vg.Length
	// Viewer is required in Display mode.
	Viewer Viewer
}

// Presenter saves or displays rendered charts according to its Mode.
type Presenter struct {
	mode   Mode
	format string
	width  vg.Length
	height vg.Length
	viewer Viewer
}

func NewPresenter(options *PresenterOptions) (*Presenter, error) {
	if options.Mode == Display && options.Viewer == nil {
		return nil, errors.New("NewPresenter() expected a Viewer in display mode; got nil")
	}
	if options.Format == "" {
		return nil, errors.New("NewPresenter() expected an image format; got empty string")
	}
	return &Presenter{
		mode:   options.Mode,
		format: options.Format,
		width:  options.Width,
		height: options.Height,
		viewer: options.Viewer,
	}, nil
}

func (p *Presenter) Mode() Mode {
	return p.mode
}

// Present handles the chart rendered from input. In Save mode it returns the
// path of the written image; in Display mode it returns once the viewer is
// dismissed, with an empty path.
func (p *Presenter) Present(ctx context.Context, plt *plot.Plot, input string) (string, error) {
	switch p.mode {
	case Save:
		path := PathFor(input, p.format)
		if err := plt.Save(p.width, p.height, path); err != nil {
			return "", fmt.Errorf("Present() got err saving chart to %s: %w", path, err)
		}
		return path, nil
	case Display:
		w, err := plt.WriterTo(p.width, p.height, p.format)
		if err != nil {
			return "", fmt.Errorf("Present() got err encoding chart as %s: %w", p.format, err)
		}
		var buf bytes.Buffer
		if _, err := w.WriteTo(&buf); err != nil {
			return "", fmt.Errorf("Present() got err encoding chart as %s: %w", p.format, err)
		}
		if err := p.viewer.View(ctx, buf.Bytes(), p.format, filepath.Base(input)); err != nil {
			return "", fmt.Errorf("Present() got err from viewer: %w", err)
		}
		return "", nil
	default:
		return "", fmt.Errorf("Present() got unexpected mode %v", p.mode)
	}
}
