package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/healthnav/internal/client/models"
	"github.com/dmitrijs2005/healthnav/internal/client/vault"
)

// Vault prints every section with its documents.
func (a *App) Vault(ctx context.Context) error {
	fmt.Fprintln(a.out, "Documents are kept on this device only and are lost on exit.")
	for _, s := range models.Sections {
		info, _ := s.Info()
		docs := a.vault.List(s)
		fmt.Fprintf(a.out, "\n%s (%s): %d\n", info.Title, s, len(docs))
		fmt.Fprintf(a.out, "  %s\n", info.Description)
		for _, d := range docs {
			fmt.Fprintf(a.out, "  [%s] %s %s %s\n", d.ID, d.Name, d.MIME, d.CreatedAt.Local().Format("2006-01-02 15:04"))
		}
	}
	return nil
}

// Upload adds an image to section, from the camera when there is one and
// from a file otherwise.
func (a *App) Upload(ctx context.Context, section string) error {
	doc, err := a.vault.Upload(ctx, models.Section(section), a.capturer)
	switch {
	case errors.Is(err, vault.ErrCancelled):
		fmt.Fprintln(a.out, "Upload cancelled.")
		return nil
	case errors.Is(err, vault.ErrUnknownSection):
		fmt.Fprintf(a.out, "Unknown section %q.\n", section)
		return err
	case err != nil:
		fmt.Fprintf(a.out, "Upload failed: %v\n", err)
		return err
	}
	fmt.Fprintf(a.out, "Added %s as %s.\n", doc.Name, doc.ID)
	return nil
}

// Export writes a document into the download directory.
func (a *App) Export(ctx context.Context, id string) error {
	docID, err := a.parseDocumentID(id)
	if err != nil {
		return err
	}
	path, err := a.vault.Export(docID, a.config.DownloadDir)
	if err != nil {
		fmt.Fprintf(a.out, "Export failed: %v\n", err)
		return err
	}
	fmt.Fprintf(a.out, "Saved to %s\n", path)
	return nil
}

func (a *App) Remove(ctx context.Context, id string) error {
	docID, err := a.parseDocumentID(id)
	if err != nil {
		return err
	}
	if err := a.vault.Remove(docID); err != nil {
		fmt.Fprintf(a.out, "Remove failed: %v\n", err)
		return err
	}
	fmt.Fprintln(a.out, "Document removed.")
	return nil
}

func (a *App) parseDocumentID(id string) (uuid.UUID, error) {
	docID, err := uuid.Parse(id)
	if err != nil {
		fmt.Fprintf(a.out, "Invalid document id %q\n", id)
	}
	return docID, err
}
