package flatfile

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/srgjo27/launch_booking/internal/core/ports"
	"github.com/srgjo27/launch_booking/internal/platform/logger"
)

const (
	usersFile         = "userInfo.txt"
	venuesFile        = "venues.txt"
	registrationsFile = "registrations.txt"
	bookingsFile      = "bookings.txt"
	paymentsFile      = "payments.txt"
	feedbackFile      = "feedback.txt"

	sep = "|"
)

// Store keeps each collection in its own pipe-delimited file under dir.
// A missing file loads as an empty collection; a malformed line is logged
// and skipped.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Repositories exposes the store through the collection ports.
func (s *Store) Repositories() ports.Repositories {
	return ports.Repositories{
		Users:         s,
		Venues:        s,
		Registrations: s,
		Bookings:      s,
		Payments:      s,
		Feedback:      s,
	}
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name)
}

// readLines calls fn for every non-blank line of name. Lines fn rejects are
// logged with their position and skipped.
func (s *Store) readLines(ctx context.Context, name string, fn func(line string) error) error {
	log := logger.WithContext(ctx)

	f, err := os.Open(s.path(name))
	if errors.Is(err, fs.ErrNotExist) {
		log.Info("no existing data file, starting empty", "file", name)
		return nil
	}
	if err != nil {
		return fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	lineNo, skipped := 0, 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := fn(line); err != nil {
			skipped++
			log.Warn("skipping malformed line", "file", name, "line", lineNo, "error", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if skipped > 0 {
		log.Warn("data file loaded with errors", "file", name, "skipped", skipped)
	}
	return nil
}

// writeLines replaces name with lines.
func (s *Store) writeLines(ctx context.Context, name string, lines []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Create(s.path(name))
	if err != nil {
		return fmt.Errorf("create %s: %w", name, err)
	}

	w := bufio.NewWriter(f)
	for _, line := range lines {
		w.WriteString(line)
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", name, err)
	}

	logger.WithContext(ctx).Debug("data file written", "file", name, "records", len(lines))
	return nil
}

// split cuts line into exactly one of the accepted field counts.
func split(line string, counts ...int) ([]string, error) {
	fields := strings.Split(line, sep)
	for _, n := range counts {
		if len(fields) == n {
			return fields, nil
		}
	}
	return nil, fmt.Errorf("expected %v fields, got %d", counts, len(fields))
}

func join(fields ...string) string {
	return strings.Join(fields, sep)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func parseFloat(field, s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return v, nil
}

func parseInt(field, s string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%s: %w", field, err)
	}
	return v, nil
}

func formatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

func parseBool(s string) bool {
	s = strings.TrimSpace(s)
	return s == "1" || strings.EqualFold(s, "true")
}

func formatInt(v int) string {
	return strconv.Itoa(v)
}
