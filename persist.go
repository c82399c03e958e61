package paint

import (
	"fmt"
	"image"
)

// Store is the persistence collaborator: it turns images into files and
// back. Implementations must be atomic, leaving no partial file on a
// failed Save.
type Store interface {
	Save(path string, img image.Image) error
	Open(path string) (image.Image, error)
}

// Save writes the current document through the configured Store.
func (e *Engine) Save(path string) error {
	if e.opts.store == nil {
		return ErrNoStore
	}
	if err := e.opts.store.Save(path, e.surface.ToImage()); err != nil {
		Logger().Warn("paint: save failed", "path", path, "err", err)
		return fmt.Errorf("paint: save %s: %w", path, err)
	}
	Logger().Info("paint: saved document", "path", path,
		"width", e.surface.Width(), "height", e.surface.Height())
	return nil
}

// Open replaces the document with the image at path. On any failure the
// current document, view and history are left untouched.
func (e *Engine) Open(path string) error {
	if e.opts.store == nil {
		return ErrNoStore
	}
	img, err := e.opts.store.Open(path)
	if err != nil {
		Logger().Warn("paint: open failed", "path", path, "err", err)
		return fmt.Errorf("paint: open %s: %w", path, err)
	}
	s, err := SurfaceFromImage(img, e.opts.background)
	if err != nil {
		return fmt.Errorf("paint: open %s: %w", path, err)
	}
	e.install(s)
	Logger().Info("paint: opened document", "path", path,
		"width", s.Width(), "height", s.Height())
	return nil
}
