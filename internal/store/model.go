package store

// LoginEntry is one row of the remote status report: a single logged-in
// session at a single capture instant. Entries are never mutated after
// construction; identity is the composite key (user, record_time, tty),
// so duplicate captures within the same wall-clock second collide at the
// store and are dropped there, not here.
type LoginEntry struct {
	User       string `gorm:"column:user;primaryKey;size:32"`
	RecordTime string `gorm:"column:record_time;primaryKey;size:32"`
	TTY        string `gorm:"column:tty;primaryKey;size:32"`
	From       string `gorm:"column:from;size:64"`
	LoginAt    string `gorm:"column:login@;size:32"`
	Idle       string `gorm:"column:idle;size:32"`
	JCPU       string `gorm:"column:jcpu;size:32"`
	PCPU       string `gorm:"column:pcpu;size:32"`
	What       string `gorm:"column:what;size:255"`
}

// TableName fixes the table name instead of gorm's pluralized default.
func (LoginEntry) TableName() string {
	return "logins"
}
