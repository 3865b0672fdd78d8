package cartas

import "time"

// SetNow fixes the clock used for publication dates.
func (p *Page) SetNow(now func() time.Time) { p.now = now }
