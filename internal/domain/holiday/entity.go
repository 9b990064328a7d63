package holiday

import "time"

type Holiday struct {
	ID        string
	Date      string // YYYY-MM-DD
	Name      string
	CreatedAt time.Time
}
