package model

type Progress struct {
	Completed  int `json:"completed"`
	Total      int `json:"total"`
	Percentage int `json:"percentage"`
}

// Complete reports whether every entry is done. An empty checklist is not complete.
func (p Progress) Complete() bool {
	return p.Total > 0 && p.Completed == p.Total
}

// ComputeProgress counts done entries. Percentage rounds half up and is 0 for
// an empty checklist.
func ComputeProgress(c *Checklist) Progress {
	if c == nil {
		return Progress{}
	}
	p := Progress{Total: len(c.Items)}
	for _, e := range c.Items {
		if e.Done {
			p.Completed++
		}
	}
	if p.Total == 0 {
		return p
	}
	// Integer form of floor(completed*100/total + 0.5).
	p.Percentage = (p.Completed*200 + p.Total) / (2 * p.Total)
	return p
}
