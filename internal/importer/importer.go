// Package importer watches an inbox directory and turns dropped Markdown
// files into journal entries. Imported files move to an archive subdirectory
// so a crash mid-import never loses the original text.
package importer

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/starford/laguz/internal/journal"
	"github.com/starford/laguz/internal/sse"
)

const settleDelay = 200 * time.Millisecond

// Importer ingests Markdown drops through the journal service.
type Importer struct {
	svc    *journal.Service
	broker *sse.Broker // may be nil
	logger *slog.Logger
	root   string
}

// New creates an importer for the given inbox directory.
func New(svc *journal.Service, broker *sse.Broker, logger *slog.Logger, root string) *Importer {
	return &Importer{svc: svc, broker: broker, logger: logger, root: root}
}

// Run watches the inbox until ctx is cancelled. Files already present at
// startup are imported first, so entries written while the application was
// down are not missed.
func (im *Importer) Run(ctx context.Context) error {
	if err := os.MkdirAll(im.root, 0o755); err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(im.root); err != nil {
		return err
	}
	im.logger.Info("importer: started", slog.String("root", im.root))

	im.sweep(ctx)

	// pending debounces rapid write events while a file is still being
	// copied into the inbox.
	pending := make(map[string]*time.Timer)
	ingestCh := make(chan string, 64)

	for {
		select {
		case <-ctx.Done():
			for _, t := range pending {
				t.Stop()
			}
			im.logger.Info("importer: stopped")
			return nil

		case path := <-ingestCh:
			delete(pending, path)
			im.ingest(ctx, path)

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			if !strings.HasSuffix(ev.Name, ".md") {
				continue
			}
			path := ev.Name
			if t, ok := pending[path]; ok {
				t.Reset(settleDelay)
				continue
			}
			pending[path] = time.AfterFunc(settleDelay, func() {
				select {
				case ingestCh <- path:
				case <-ctx.Done():
				}
			})

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			im.logger.Error("importer: watch error", slog.String("error", watchErr.Error()))
		}
	}
}

// sweep imports any .md files already sitting in the inbox.
func (im *Importer) sweep(ctx context.Context) {
	names, err := os.ReadDir(im.root)
	if err != nil {
		im.logger.Warn("importer: sweep failed", slog.String("error", err.Error()))
		return
	}
	for _, d := range names {
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			continue
		}
		im.ingest(ctx, filepath.Join(im.root, d.Name()))
	}
}

// ingest parses one file, saves the entry, and archives the original.
func (im *Importer) ingest(ctx context.Context, path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		im.logger.Warn("importer: read failed", slog.String("path", path), slog.String("error", err.Error()))
		return
	}
	draft := parseDraft(data)
	if strings.TrimSpace(draft.Content) == "" {
		im.logger.Warn("importer: empty file skipped", slog.String("path", path))
		return
	}

	entry, err := im.svc.SaveEntry(ctx, draft)
	if err != nil {
		im.logger.Error("importer: save failed", slog.String("path", path), slog.String("error", err.Error()))
		return
	}
	im.logger.Info("importer: entry imported",
		slog.String("path", path),
		slog.String("id", entry.ID))
	if im.broker != nil {
		im.broker.PublishEntryEvent("created", entry.ID)
	}

	im.archive(path)
}

// archive moves an imported file under <inbox>/archive, suffixing the name
// if a previous import already used it.
func (im *Importer) archive(path string) {
	dir := filepath.Join(im.root, "archive")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		im.logger.Warn("importer: archive dir failed", slog.String("error", err.Error()))
		return
	}
	base := filepath.Base(path)
	dest := filepath.Join(dir, base)
	if _, err := os.Stat(dest); err == nil {
		stem := strings.TrimSuffix(base, ".md")
		dest = filepath.Join(dir, stem+"-"+time.Now().UTC().Format("20060102T150405")+".md")
	}
	if err := os.Rename(path, dest); err != nil {
		im.logger.Warn("importer: archive failed", slog.String("path", path), slog.String("error", err.Error()))
	}
}
