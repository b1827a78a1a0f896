package interact

// Key names understood by Lightbox.HandleKey
const (
	KeyEscape     = "Escape"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
)

// Lightbox is the image viewer: closed, or open on one index of a fixed list
type Lightbox struct {
	count int
	index int
	open  bool
}

// NewLightbox creates a closed viewer over count images
func NewLightbox(count int) *Lightbox {
	if count < 0 {
		count = 0
	}
	return &Lightbox{count: count}
}

// Len returns the number of images
func (l *Lightbox) Len() int {
	return l.count
}

// IsOpen reports whether the viewer is open
func (l *Lightbox) IsOpen() bool {
	return l.open
}

// Index returns the open index and true, or -1 and false when closed
func (l *Lightbox) Index() (int, bool) {
	if !l.open {
		return -1, false
	}
	return l.index, true
}

// Open shows image i. Out-of-range indices are ignored.
func (l *Lightbox) Open(i int) bool {
	if i < 0 || i >= l.count {
		return false
	}
	l.index = i
	l.open = true
	return true
}

// Close discards the open state
func (l *Lightbox) Close() {
	l.open = false
	l.index = 0
}

// Next moves forward, wrapping to the first image
func (l *Lightbox) Next() int {
	if !l.open {
		return -1
	}
	l.index = (l.index + 1) % l.count
	return l.index
}

// Prev moves back, wrapping to the last image
func (l *Lightbox) Prev() int {
	if !l.open {
		return -1
	}
	l.index = (l.index - 1 + l.count) % l.count
	return l.index
}

// HandleKey applies a keyboard event and reports whether it was consumed
func (l *Lightbox) HandleKey(key string) bool {
	if !l.open {
		return false
	}
	switch key {
	case KeyEscape:
		l.Close()
	case KeyArrowRight:
		l.Next()
	case KeyArrowLeft:
		l.Prev()
	default:
		return false
	}
	return true
}
