// Package vault keeps the user's health documents in memory, grouped in
// sections. Nothing is uploaded or written unless exported explicitly, and
// everything is lost when the process exits.
package vault

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/dmitrijs2005/healthnav/internal/client/models"
	"github.com/dmitrijs2005/healthnav/internal/filex"
)

var (
	ErrUnknownSection = errors.New("unknown vault section")
	ErrEmptyFile      = errors.New("file is empty")
	ErrNotImage       = errors.New("only images can be added to the vault")
	ErrNotFound       = errors.New("document not found")
)

// MaxSize caps a single document.
const MaxSize = 20 << 20

// Vault is safe for concurrent use.
type Vault struct {
	mu   sync.RWMutex
	docs map[uuid.UUID]models.Document

	now   func() time.Time
	newID func() uuid.UUID
}

func New() *Vault {
	return &Vault{
		docs:  map[uuid.UUID]models.Document{},
		now:   time.Now,
		newID: uuid.New,
	}
}

// Add stores data under section. The content is sniffed and must be an
// image; the name defaults to a generated one with the sniffed extension.
func (v *Vault) Add(section models.Section, name string, data []byte) (models.Document, error) {
	if _, ok := section.Info(); !ok {
		return models.Document{}, fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}
	if len(data) == 0 {
		return models.Document{}, ErrEmptyFile
	}
	if len(data) > MaxSize {
		return models.Document{}, fmt.Errorf("file exceeds %d bytes", MaxSize)
	}

	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") {
		return models.Document{}, fmt.Errorf("%w: detected %s", ErrNotImage, mt.String())
	}

	name = strings.TrimSpace(filepath.Base(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		name = "photo-" + v.now().Format("20060102-150405") + mt.Extension()
	}

	doc := models.Document{
		ID:        v.newID(),
		Section:   section,
		Name:      name,
		CreatedAt: v.now(),
		MIME:      mt.String(),
		Content:   slices.Clone(data),
	}

	v.mu.Lock()
	v.docs[doc.ID] = doc
	v.mu.Unlock()
	return metadataOnly(doc), nil
}

// Upload runs c and adds the result to section.
func (v *Vault) Upload(ctx context.Context, section models.Section, c Capturer) (models.Document, error) {
	if _, ok := section.Info(); !ok {
		return models.Document{}, fmt.Errorf("%w: %q", ErrUnknownSection, section)
	}
	got, err := c.Capture(ctx)
	if err != nil {
		return models.Document{}, err
	}
	return v.Add(section, got.Name, got.Data)
}

func metadataOnly(d models.Document) models.Document {
	d.Content = nil
	return d
}

// List returns the documents of section without content, oldest first.
func (v *Vault) List(section models.Section) []models.Document {
	v.mu.RLock()
	out := make([]models.Document, 0)
	for _, d := range v.docs {
		if d.Section == section {
			out = append(out, metadataOnly(d))
		}
	}
	v.mu.RUnlock()

	slices.SortFunc(out, func(a, b models.Document) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID.String(), b.ID.String())
	})
	return out
}

// Get returns a full copy of the document with id.
func (v *Vault) Get(id uuid.UUID) (models.Document, error) {
	v.mu.RLock()
	d, ok := v.docs[id]
	v.mu.RUnlock()
	if !ok {
		return models.Document{}, ErrNotFound
	}
	d.Content = slices.Clone(d.Content)
	return d, nil
}

// Remove deletes the document with id.
func (v *Vault) Remove(id uuid.UUID) error {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.docs[id]; !ok {
		return ErrNotFound
	}
	delete(v.docs, id)
	return nil
}

// Export writes the document with id into dir and returns the file path.
func (v *Vault) Export(id uuid.UUID, dir string) (string, error) {
	d, err := v.Get(id)
	if err != nil {
		return "", err
	}
	return filex.WriteInto(dir, d.Name, d.Content)
}

// Len is the number of documents across all sections.
func (v *Vault) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return len(v.docs)
}
