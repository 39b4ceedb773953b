package extract

// Word is a positioned run of text on a page. Coordinates are in PDF points
// with the origin at the top-left corner, so Top < Bottom. A word keeps its
// internal blanks: "Customer Information:" is one word when its characters
// are laid out contiguously.
type Word struct {
	Text   string
	X0     float64
	Top    float64
	X1     float64
	Bottom float64
}

// Page exposes one page of a document to the extraction engine.
type Page interface {
	// Width and Height report the page size in points.
	Width() float64
	Height() float64

	// Words returns the page's words in reading order.
	Words() []Word

	// Text returns the page's full text with one line per text row.
	Text() string

	// CropText returns the text inside the given box, reassembled into
	// lines. A text unit belongs to the box when its center does.
	CropText(x0, top, x1, bottom float64) string
}

// Source exposes a document as a sequence of pages.
type Source interface {
	// PageCount reports the number of pages.
	PageCount() int

	// Page returns the zero-based page. It fails when the page cannot be
	// parsed or the index is out of range.
	Page(index int) (Page, error)
}
