package modal

// Content is whatever a modal displays. The host only needs a title; rendering
// belongs to the owner.
type Content interface {
	Title() string
}

// CancelKeys dismiss the open modal.
var CancelKeys = []string{"esc", "ctrl+g"}

func isCancel(key string) bool {
	for _, k := range CancelKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Host shows at most one modal at a time. While a modal is open the host holds
// a Bus subscription routing the cancel keys to the modal's onClose; closing
// releases it and drops the content.
type Host struct {
	bus     *Bus
	content Content
	onClose func()
	release func()
}

func NewHost(bus *Bus) *Host {
	return &Host{bus: bus}
}

// Open mounts c. A modal that is already open is dismissed first (its onClose
// runs) since nested modals are not supported.
func (h *Host) Open(c Content, onClose func()) {
	if h.IsOpen() {
		h.Dismiss()
	}
	h.content = c
	h.onClose = onClose
	h.release = h.bus.Subscribe(func(key string) bool {
		if !isCancel(key) {
			return false
		}
		h.Dismiss()
		return true
	})
}

func (h *Host) IsOpen() bool { return h.content != nil }

func (h *Host) Content() Content { return h.content }

// Backdrop is an explicit close request (the dismiss control).
func (h *Host) Backdrop() {
	h.Dismiss()
}

// Dismiss unmounts the modal and then runs its onClose.
func (h *Host) Dismiss() {
	if !h.IsOpen() {
		return
	}
	cb := h.onClose
	h.Close()
	if cb != nil {
		cb()
	}
}

// Close unmounts without running onClose. Owners use it when they already
// performed their own close bookkeeping (e.g. after selecting a palette action).
func (h *Host) Close() {
	if h.release != nil {
		h.release()
	}
	h.release = nil
	h.content = nil
	h.onClose = nil
}
