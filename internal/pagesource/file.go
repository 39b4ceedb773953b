package pagesource

import (
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/docsift/pdf-report-extractor/internal/extract"
)

// DefaultMaxFileSize caps how large a PDF may be before Open refuses it.
const DefaultMaxFileSize = 100 * 1024 * 1024

// PageBreakSeparator joins page texts in full-document output.
const PageBreakSeparator = "\n\n--- Page Break ---\n\n"

// File is an opened PDF exposed to the extraction engine as a page source.
// Pages are parsed on first access and cached; a File is not safe for
// concurrent use.
type File struct {
	path      string
	size      int64
	modTime   time.Time
	file      *os.File
	reader    *pdf.Reader
	pageCount int
	pages     map[int]*Page
}

// Open opens the PDF at path with the default file size limit.
func Open(path string) (*File, error) {
	return OpenLimit(path, DefaultMaxFileSize)
}

// OpenLimit opens the PDF at path, refusing files larger than maxFileSize
// bytes. Every failure wraps the source-unreadable sentinel so callers can
// classify it without inspecting messages.
func OpenLimit(path string, maxFileSize int64) (*File, error) {
	info, err := statPDF(path, maxFileSize)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", extract.ErrSourceUnreadable, err)
	}

	f, reader, count, err := openReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", extract.ErrSourceUnreadable, err)
	}

	return &File{
		path:      path,
		size:      info.Size(),
		modTime:   info.ModTime(),
		file:      f,
		reader:    reader,
		pageCount: count,
		pages:     make(map[int]*Page),
	}, nil
}

// statPDF checks that path names a readable PDF file within the size limit.
func statPDF(path string, maxFileSize int64) (os.FileInfo, error) {
	if path == "" {
		return nil, fmt.Errorf("path cannot be empty")
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("file does not exist: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("cannot access file: %w", err)
	}

	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}
	if !strings.HasSuffix(strings.ToLower(path), ".pdf") {
		return nil, fmt.Errorf("file is not a PDF: %s", path)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("file is empty: %s", path)
	}
	if info.Size() > maxFileSize {
		return nil, fmt.Errorf("file too large: %d bytes (max: %d bytes)",
			info.Size(), maxFileSize)
	}

	return info, nil
}

// openReader opens the PDF and reads its page count. The wrapped library can
// panic on malformed files, so both steps run behind a recover.
func openReader(path string) (f *os.File, reader *pdf.Reader, count int, err error) {
	defer func() {
		if r := recover(); r != nil {
			if f != nil {
				f.Close()
			}
			f, reader, count = nil, nil, 0
			err = fmt.Errorf("malformed PDF: %v", r)
		}
	}()

	f, reader, err = pdf.Open(path)
	if err != nil {
		return nil, nil, 0, fmt.Errorf("invalid PDF file: %w", err)
	}
	count = reader.NumPage()
	return f, reader, count, nil
}

// Close releases the underlying file handle.
func (f *File) Close() error {
	if f == nil || f.file == nil {
		return nil
	}
	err := f.file.Close()
	f.file = nil
	f.reader = nil
	return err
}

// Path returns the path the file was opened from.
func (f *File) Path() string { return f.path }

// Size returns the file size in bytes.
func (f *File) Size() int64 { return f.size }

// ModTime returns the file's modification time.
func (f *File) ModTime() time.Time { return f.modTime }

// PageCount reports the number of pages.
func (f *File) PageCount() int {
	if f == nil {
		return 0
	}
	return f.pageCount
}

// Page returns the zero-based page with its words assembled into reading
// order.
func (f *File) Page(index int) (extract.Page, error) {
	if f == nil || f.reader == nil {
		return nil, fmt.Errorf("file is closed")
	}
	if index < 0 || index >= f.pageCount {
		return nil, fmt.Errorf("page %d out of range (%d pages)", index, f.pageCount)
	}
	if page, ok := f.pages[index]; ok {
		return page, nil
	}

	page, err := buildPage(f.reader, index+1)
	if err != nil {
		return nil, err
	}
	f.pages[index] = page
	return page, nil
}

// Text returns the text of every page joined with the page break separator,
// truncated to maxTextSize bytes. A non-positive maxTextSize means no limit.
func (f *File) Text(maxTextSize int) (string, error) {
	if f == nil || f.reader == nil {
		return "", fmt.Errorf("file is closed")
	}
	if maxTextSize <= 0 {
		maxTextSize = math.MaxInt
	}

	var builder strings.Builder
	totalLength := 0

	for i := 0; i < f.pageCount; i++ {
		page, err := f.Page(i)
		if err != nil {
			// Continue with other pages even if one fails
			continue
		}
		content := page.Text()

		if totalLength+len(content) > maxTextSize {
			remaining := maxTextSize - totalLength
			if remaining > 0 {
				builder.WriteString(content[:remaining])
			}
			break
		}

		builder.WriteString(content)
		totalLength += len(content)

		if i < f.pageCount-1 {
			builder.WriteString(PageBreakSeparator)
		}
	}

	text := builder.String()
	if text == "" {
		return "", fmt.Errorf("no text content could be extracted from PDF")
	}
	return text, nil
}
