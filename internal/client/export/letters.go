// Package export stores composed letters: a text file in the letters
// directory and, when configured, a copy in an S3-compatible bucket.
package export

import (
	"context"
	"fmt"
	"path"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/moodkeeper/internal/filex"
	"github.com/dmitrijs2005/moodkeeper/internal/logging"
)

// Archive keeps a remote copy of a letter under key.
type Archive interface {
	Put(ctx context.Context, key string, body []byte) error
}

// Letters implements pages.LetterStore.
type Letters struct {
	dir     string
	archive Archive
	log     logging.Logger
}

// NewLetters writes into dir. archive may be nil.
func NewLetters(dir string, archive Archive, log logging.Logger) *Letters {
	return &Letters{dir: dir, archive: archive, log: log.With("module", "export")}
}

// Save writes body to dir/name and returns the file path. With an archive
// configured the letter is uploaded as well; an upload failure fails Save
// but leaves the local file in place.
func (l *Letters) Save(ctx context.Context, userID, name, body string) (string, error) {
	file, err := filex.WriteFileAtomic(l.dir, name, []byte(body))
	if err != nil {
		return "", fmt.Errorf("writing letter: %w", err)
	}
	l.log.Debug(ctx, "letter written", "path", file)

	if l.archive == nil {
		return file, nil
	}

	key := ArchiveKey(userID, name)
	if err := l.archive.Put(ctx, key, []byte(body)); err != nil {
		l.log.Warn(ctx, "letter kept locally only", "path", file, "error", err)
		return "", fmt.Errorf("archiving letter: %w", err)
	}
	l.log.Info(ctx, "letter archived", "key", key)
	return file, nil
}

// ArchiveKey is letters/<user-id>/<random id>/<name>.
func ArchiveKey(userID, name string) string {
	return path.Join("letters", userID, uuid.NewString(), name)
}
