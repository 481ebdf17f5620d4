package emotion

// HistorySize is the number of raw labels kept for the majority vote.
const HistorySize = 10

// History is a fixed-capacity ring buffer of raw labels; the oldest entry is
// evicted when it is full.
type History struct {
	buf   [HistorySize]Label
	start int
	size  int
}

func (h *History) Push(l Label) {
	if h.size < HistorySize {
		h.buf[(h.start+h.size)%HistorySize] = l
		h.size++
		return
	}
	h.buf[h.start] = l
	h.start = (h.start + 1) % HistorySize
}

func (h *History) Len() int {
	return h.size
}

// Labels returns the buffered labels oldest first.
func (h *History) Labels() []Label {
	out := make([]Label, h.size)
	for i := 0; i < h.size; i++ {
		out[i] = h.buf[(h.start+i)%HistorySize]
	}
	return out
}

// Mode returns the most frequent label. Ties go to the label that entered the
// buffer first. An empty history yields Neutral.
func (h *History) Mode() Label {
	if h.size == 0 {
		return Neutral
	}

	counts := make(map[Label]int, h.size)
	order := make([]Label, 0, h.size)
	for _, l := range h.Labels() {
		if counts[l] == 0 {
			order = append(order, l)
		}
		counts[l]++
	}

	best := order[0]
	for _, l := range order[1:] {
		if counts[l] > counts[best] {
			best = l
		}
	}
	return best
}
